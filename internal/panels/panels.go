package panels

import "listingdash/domain/listing"

// Panel is a named chart over a view
type Panel struct {
	ID     string
	Render func(*listing.View) Chart
}

// Tab groups static panels shown together
type Tab struct {
	ID     string
	Title  string
	Panels []Panel
}

// Options configures the panels that take parameters
type Options struct {
	MapSampleSize int
	MapSampleSeed int64
}

// DefaultOptions samples 2000 listings with seed 42
func DefaultOptions() Options {
	return Options{MapSampleSize: DefaultMapSampleSize, MapSampleSeed: DefaultMapSampleSeed}
}

// Catalog is the fixed set of dashboard panels
type Catalog struct {
	Tabs        []Tab
	Interactive []Panel
}

// NewCatalog builds the three static tabs and the interactive section
func NewCatalog(opts Options) *Catalog {
	sampler := NewMapSampler(opts.MapSampleSize, opts.MapSampleSeed)
	return &Catalog{
		Tabs: []Tab{
			{ID: "price", Title: "Price Analysis", Panels: []Panel{
				{ID: "price-distribution", Render: PriceDistribution},
				{ID: "avg-price-room-type", Render: AvgPriceByRoomType},
				{ID: "median-price-borough", Render: MedianPriceByBorough},
				{ID: "price-min-nights", Render: PriceVsMinNights},
			}},
			{ID: "location", Title: "Location", Panels: []Panel{
				{ID: "availability-borough", Render: AvgAvailabilityByBorough},
				{ID: "room-mix-borough", Render: RoomMixByBorough},
				{ID: "top-neighbourhoods", Render: TopNeighbourhoods},
				{ID: "top-neighbourhood-prices", Render: TopNeighbourhoodPrices},
			}},
			{ID: "hosts", Title: "Hosts & Types", Panels: []Panel{
				{ID: "price-reviews", Render: PriceVsReviews},
				{ID: "top-hosts", Render: TopHosts},
			}},
		},
		Interactive: []Panel{
			{ID: "interactive-price-reviews", Render: InteractivePriceReviews},
			{ID: "listing-map", Render: sampler.ListingMap},
		},
	}
}

// All returns every panel, static tabs first
func (c *Catalog) All() []Panel {
	var out []Panel
	for _, t := range c.Tabs {
		out = append(out, t.Panels...)
	}
	return append(out, c.Interactive...)
}
