package panels

import "listingdash/domain/listing"

// MaxReviews bounds the price-vs-reviews scatter
const MaxReviews = 100

// TopHostCount is the number of hosts in the top-hosts panel
const TopHostCount = 8

// PriceVsReviews scatters price against review count for listings with at most 100 reviews
func PriceVsReviews(view *listing.View) Chart {
	capped := view.Where(func(l listing.Listing) bool { return l.NumberOfReviews <= MaxReviews })
	points := make([]Point, 0, capped.Len())
	for _, l := range capped.Listings {
		points = append(points, Point{X: float64(l.NumberOfReviews), Y: l.Price})
	}
	return scatterChart("price-reviews", "Q5: Price vs Reviews", "number_of_reviews", "price", points)
}

// TopHosts counts listings of the eight most frequent host names
func TopHosts(view *listing.View) Chart {
	return countsChart("top-hosts", "Q7: Top Hosts", "host_name", TopN(view, byHost, TopHostCount))
}
