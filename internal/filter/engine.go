// Package filter derives the filtered view of the cleaned dataset from the
// current widget state.
package filter

import "listingdash/domain/listing"

// Criteria are the three row predicates of a redraw
type Criteria struct {
	PriceLo   float64
	PriceHi   float64
	RoomTypes []string
	Boroughs  []string
}

// Apply returns the listings of ds with PriceLo <= price <= PriceHi whose room type
// and borough are selected. Order-preserving; empty selections yield an empty view.
func Apply(ds *listing.Dataset, c Criteria) *listing.View {
	if ds == nil {
		return listing.NewView(nil)
	}
	rooms := toSet(c.RoomTypes)
	boroughs := toSet(c.Boroughs)

	out := make([]listing.Listing, 0)
	for _, l := range ds.Listings {
		if l.Price < c.PriceLo || l.Price > c.PriceHi {
			continue
		}
		if _, ok := rooms[l.RoomType]; !ok {
			continue
		}
		if _, ok := boroughs[l.Borough]; !ok {
			continue
		}
		out = append(out, l)
	}
	return listing.NewView(out)
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
