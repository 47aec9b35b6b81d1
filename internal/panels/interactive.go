package panels

import (
	"fmt"
	"math/rand"
	"sort"

	"listingdash/domain/listing"
	"listingdash/internal/spatial"
)

// Map defaults. MapZoom frames a sample without extent; otherwise the zoom is
// fitted to the sample's bounds within [MinMapZoom, MaxMapZoom].
const (
	DefaultMapSampleSize = 2000
	DefaultMapSampleSeed = 42
	MapZoom              = 10
	MinMapZoom           = 3
	MaxMapZoom           = 15
	MapViewportWidth     = 700
	MapViewportHeight    = 500
)

// InteractivePriceReviews scatters the full view by review count and price, one trace per borough
func InteractivePriceReviews(view *listing.View) Chart {
	c := Chart{ID: "interactive-price-reviews", Title: "Interactive: Price vs Reviews", Kind: KindInteractiveScatter, XLabel: "number_of_reviews", YLabel: "price"}
	if view.Empty() {
		return c
	}
	index := make(map[string]int)
	for _, l := range view.Listings {
		i, ok := index[l.Borough]
		if !ok {
			i = len(c.Traces)
			index[l.Borough] = i
			c.Traces = append(c.Traces, Trace{Name: l.Borough})
		}
		c.Traces[i].Points = append(c.Traces[i].Points, Point{
			X:    float64(l.NumberOfReviews),
			Y:    l.Price,
			Text: fmt.Sprintf("room_type=%s<br>neighbourhood=%s", l.RoomType, l.Neighbourhood),
		})
	}
	return c
}

// MapSampler draws a reproducible random sample of listings for the map
type MapSampler struct {
	Size int
	Seed int64
}

// NewMapSampler falls back to the defaults for non-positive sizes
func NewMapSampler(size int, seed int64) MapSampler {
	if size <= 0 {
		size = DefaultMapSampleSize
	}
	return MapSampler{Size: size, Seed: seed}
}

// Sample returns up to Size listings without replacement, in view order.
// The same view and seed always give the same sample.
func (s MapSampler) Sample(view *listing.View) []listing.Listing {
	n := view.Len()
	if n <= s.Size {
		return append([]listing.Listing(nil), view.Listings...)
	}
	rng := rand.New(rand.NewSource(s.Seed))
	picked := rng.Perm(n)[:s.Size]
	sort.Ints(picked)

	out := make([]listing.Listing, len(picked))
	for i, idx := range picked {
		out[i] = view.Listings[idx]
	}
	return out
}

// ListingMap places a sample of the view at its coordinates, coloured by price
func (s MapSampler) ListingMap(view *listing.View) Chart {
	c := Chart{ID: "listing-map", Title: "Map: Listings by Price", Kind: KindMap}
	if view.Empty() {
		return c
	}
	sample := s.Sample(view)
	bounds := spatial.NewBounds()
	frame := &MapFrame{Zoom: MapZoom, Points: make([]MapPoint, len(sample))}
	for i, l := range sample {
		frame.Points[i] = MapPoint{Lat: l.Latitude, Lon: l.Longitude, Price: l.Price, Neighbourhood: l.Neighbourhood}
		bounds.Add(l.Latitude, l.Longitude)
	}
	if !bounds.Empty() {
		frame.CenterLat, frame.CenterLon = bounds.Center()
	}
	if zoom, ok := bounds.FitZoom(MapViewportWidth, MapViewportHeight); ok {
		frame.Zoom = min(max(zoom, MinMapZoom), MaxMapZoom)
	}
	c.Map = frame
	return c
}
