package testkit

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"listingdash/domain/listing"
)

// ListingGeneratorConfig configures the synthetic listings generator
type ListingGeneratorConfig struct {
	Count        int       `json:"count"`
	OutlierRate  float64   `json:"outlier_rate"`
	ZeroRate     float64   `json:"zero_rate"`
	ReviewedRate float64   `json:"reviewed_rate"`
	ReviewsFrom  time.Time `json:"reviews_from"`
	ReviewsTo    time.Time `json:"reviews_to"`
	Seed         int64     `json:"seed"`
}

// DefaultListingConfig approximates the shape of the 2019 NYC listings file
func DefaultListingConfig() ListingGeneratorConfig {
	return ListingGeneratorConfig{
		Count:        5000,
		OutlierRate:  0.005,
		ZeroRate:     0.0002,
		ReviewedRate: 0.8,
		ReviewsFrom:  time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC),
		ReviewsTo:    time.Date(2019, 7, 8, 0, 0, 0, 0, time.UTC),
		Seed:         42,
	}
}

type borough struct {
	name           string
	weight         float64
	lat, lng       float64
	spread         float64
	priceFactor    float64
	neighbourhoods []string
}

var boroughs = []borough{
	{"Manhattan", 0.443, 40.7831, -73.9712, 0.035, 1.35, []string{"Harlem", "Upper West Side", "Hell's Kitchen", "East Village", "Upper East Side", "Midtown", "Chelsea"}},
	{"Brooklyn", 0.411, 40.6782, -73.9442, 0.040, 0.95, []string{"Williamsburg", "Bedford-Stuyvesant", "Bushwick", "Crown Heights", "Greenpoint", "Park Slope"}},
	{"Queens", 0.116, 40.7282, -73.7949, 0.050, 0.8, []string{"Astoria", "Long Island City", "Flushing", "Ridgewood", "Jamaica"}},
	{"Bronx", 0.022, 40.8448, -73.8648, 0.030, 0.7, []string{"Kingsbridge", "Fordham", "Mott Haven"}},
	{"Staten Island", 0.008, 40.5795, -74.1502, 0.030, 0.75, []string{"St. George", "Tompkinsville"}},
}

type roomType struct {
	name   string
	weight float64
	median float64
}

var roomTypes = []roomType{
	{listing.RoomEntireHome, 0.52, 160},
	{listing.RoomPrivateRoom, 0.457, 70},
	{listing.RoomSharedRoom, 0.023, 45},
}

var hostNames = []string{
	"Michael", "David", "John", "Alex", "Sarah", "Maria", "Daniel", "Jessica",
	"Sonder (NYC)", "Blueground", "Kara", "Anna", "Mike", "Jennifer", "Chris",
}

// ListingGenerator produces deterministic synthetic listings for tests and local runs
type ListingGenerator struct {
	config ListingGeneratorConfig
	rng    *rand.Rand
}

// NewListingGenerator creates a new generator seeded from the config
func NewListingGenerator(config ListingGeneratorConfig) *ListingGenerator {
	return &ListingGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate returns config.Count listings. Prices follow a per-room-type lognormal
// with a small share of extreme outliers and zero prices so cleaning has work to do.
func (g *ListingGenerator) Generate() []listing.Listing {
	out := make([]listing.Listing, 0, g.config.Count)
	for i := 0; i < g.config.Count; i++ {
		out = append(out, g.listing(int64(i+1)))
	}
	return out
}

func (g *ListingGenerator) listing(id int64) listing.Listing {
	b := g.pickBorough()
	rt := g.pickRoomType()

	l := listing.Listing{
		ID:              id,
		Name:            fmt.Sprintf("%s in %s", rt.name, b.name),
		HostName:        hostNames[g.rng.Intn(len(hostNames))],
		Borough:         b.name,
		Neighbourhood:   b.neighbourhoods[g.rng.Intn(len(b.neighbourhoods))],
		Latitude:        round(b.lat+g.rng.NormFloat64()*b.spread, 5),
		Longitude:       round(b.lng+g.rng.NormFloat64()*b.spread, 5),
		RoomType:        rt.name,
		Price:           g.price(rt.median * b.priceFactor),
		MinimumNights:   g.minimumNights(),
		Availability365: g.rng.Intn(366),
	}

	if g.rng.Float64() < g.config.ReviewedRate {
		l.NumberOfReviews = 1 + int(g.rng.ExpFloat64()*25)
		reviewed := g.randomTime(g.config.ReviewsFrom, g.config.ReviewsTo)
		l.LastReview = &reviewed
	}
	return l
}

func (g *ListingGenerator) pickBorough() borough {
	r := g.rng.Float64()
	for _, b := range boroughs {
		if r < b.weight {
			return b
		}
		r -= b.weight
	}
	return boroughs[len(boroughs)-1]
}

func (g *ListingGenerator) pickRoomType() roomType {
	r := g.rng.Float64()
	for _, rt := range roomTypes {
		if r < rt.weight {
			return rt
		}
		r -= rt.weight
	}
	return roomTypes[len(roomTypes)-1]
}

func (g *ListingGenerator) price(median float64) float64 {
	r := g.rng.Float64()
	switch {
	case r < g.config.ZeroRate:
		return 0
	case r < g.config.ZeroRate+g.config.OutlierRate:
		return float64(2000 + g.rng.Intn(8001))
	}
	p := math.Round(median * math.Exp(g.rng.NormFloat64()*0.55))
	if p < 10 {
		p = 10
	}
	return p
}

func (g *ListingGenerator) minimumNights() int {
	r := g.rng.Float64()
	switch {
	case r < 0.02:
		return 30 + g.rng.Intn(336)
	case r < 0.10:
		return 30
	}
	return 1 + int(g.rng.ExpFloat64()*2.5)
}

func (g *ListingGenerator) randomTime(from, to time.Time) time.Time {
	days := int(to.Sub(from).Hours() / 24)
	if days <= 0 {
		return from
	}
	return from.AddDate(0, 0, g.rng.Intn(days+1))
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
