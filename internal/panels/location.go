package panels

import (
	"listingdash/domain/listing"

	"github.com/montanaflynn/stats"
)

// TopNeighbourhoodCount is the number of neighbourhoods in the top-neighbourhood panels
const TopNeighbourhoodCount = 6

// AvgAvailabilityByBorough is mean availability_365 per borough
func AvgAvailabilityByBorough(view *listing.View) Chart {
	keys, means := meanBy(view, byBorough, availability)
	return barChart("availability-borough", "Q6: Avg Availability by Borough", KindBar, "neighbourhood_group", "availability_365", keys, means)
}

// RoomMixByBorough is the percentage of each room type within each borough
func RoomMixByBorough(view *listing.View) Chart {
	c := Chart{ID: "room-mix-borough", Title: "Q9: Room Types by Borough (%)", Kind: KindStackedBar, XLabel: "neighbourhood_group", YLabel: "%"}
	boroughs, roomTypes, pct := crosstab(view, byBorough, byRoomType)
	if len(boroughs) == 0 {
		return c
	}
	c.Categories = boroughs
	for j, rt := range roomTypes {
		values := make([]float64, len(boroughs))
		for i := range boroughs {
			values[i] = pct[i][j]
		}
		c.Series = append(c.Series, Series{Name: rt, Values: values})
	}
	return c
}

// TopNeighbourhoods counts listings in the six most frequent neighbourhoods
func TopNeighbourhoods(view *listing.View) Chart {
	return countsChart("top-neighbourhoods", "Q10: Top Neighbourhoods", "neighbourhood", TopN(view, byNeighbourhood, TopNeighbourhoodCount))
}

// TopNeighbourhoodPrices is the median price of the TopNeighbourhoods set, in the same order
func TopNeighbourhoodPrices(view *listing.View) Chart {
	top := TopN(view, byNeighbourhood, TopNeighbourhoodCount)
	keys := make([]string, len(top))
	values := make([]float64, len(top))
	if len(top) > 0 {
		_, groups := groupValues(view, byNeighbourhood, price)
		for i, c := range top {
			keys[i] = c.Key
			values[i], _ = stats.Median(groups[c.Key])
		}
	}
	return barChart("top-neighbourhood-prices", "Median Price - Top Neighbourhoods", KindHorizontalBar, "price", "neighbourhood", keys, values)
}
