package listing

import "time"

// RoomType values present in the NYC 2019 export. Other values are accepted as-is.
const (
	RoomEntireHome  = "Entire home/apt"
	RoomPrivateRoom = "Private room"
	RoomSharedRoom  = "Shared room"
)

// Listing is one cleaned row of the source dataset
type Listing struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	HostName        string     `json:"host_name"`
	Borough         string     `json:"neighbourhood_group"`
	Neighbourhood   string     `json:"neighbourhood"`
	Latitude        float64    `json:"latitude"`
	Longitude       float64    `json:"longitude"`
	RoomType        string     `json:"room_type"`
	Price           float64    `json:"price"`
	MinimumNights   int        `json:"minimum_nights"`
	NumberOfReviews int        `json:"number_of_reviews"`
	LastReview      *time.Time `json:"last_review,omitempty"`
	Availability365 int        `json:"availability_365"`

	// PricePerReview is Price / (NumberOfReviews + 1)
	PricePerReview float64 `json:"price_per_review"`
}

// Dataset is the cleaned, immutable set of listings shared by every redraw
type Dataset struct {
	Listings   []Listing
	SourcePath string
	RawCount   int
	// Threshold is the 99th percentile of the positive raw prices
	Threshold float64

	roomTypes []string
	boroughs  []string
}

// NewDataset wraps cleaned listings and indexes their categorical values
func NewDataset(listings []Listing, sourcePath string, rawCount int, threshold float64) *Dataset {
	return &Dataset{
		Listings:   listings,
		SourcePath: sourcePath,
		RawCount:   rawCount,
		Threshold:  threshold,
		roomTypes:  Distinct(listings, func(l Listing) string { return l.RoomType }),
		boroughs:   Distinct(listings, func(l Listing) string { return l.Borough }),
	}
}

// Len returns the number of cleaned listings
func (d *Dataset) Len() int {
	return len(d.Listings)
}

// RoomTypes returns distinct room types in order of first occurrence
func (d *Dataset) RoomTypes() []string {
	return append([]string(nil), d.roomTypes...)
}

// Boroughs returns distinct boroughs in order of first occurrence
func (d *Dataset) Boroughs() []string {
	return append([]string(nil), d.boroughs...)
}

// View is a filtered, order-preserving subset of a Dataset
type View struct {
	Listings []Listing
}

// NewView wraps listings as a view
func NewView(listings []Listing) *View {
	return &View{Listings: listings}
}

// Len returns the number of listings in the view. A nil view is empty.
func (v *View) Len() int {
	if v == nil {
		return 0
	}
	return len(v.Listings)
}

// Empty reports whether the view has no listings
func (v *View) Empty() bool {
	return v.Len() == 0
}

// Prices returns the price column of the view
func (v *View) Prices() []float64 {
	if v == nil {
		return nil
	}
	prices := make([]float64, len(v.Listings))
	for i, l := range v.Listings {
		prices[i] = l.Price
	}
	return prices
}

// Where returns a new view holding the listings that satisfy keep
func (v *View) Where(keep func(Listing) bool) *View {
	if v == nil {
		return NewView(nil)
	}
	out := make([]Listing, 0, len(v.Listings))
	for _, l := range v.Listings {
		if keep(l) {
			out = append(out, l)
		}
	}
	return NewView(out)
}

// Distinct returns the distinct keys of listings in order of first occurrence
func Distinct(listings []Listing, key func(Listing) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, l := range listings {
		k := key(l)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
