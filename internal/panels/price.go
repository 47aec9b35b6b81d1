package panels

import (
	"listingdash/domain/listing"
	"listingdash/internal/profiling"
)

// HistogramBins is the fixed bin count of the price distribution
const HistogramBins = 30

// MaxMinimumNights bounds the min-nights scatter
const MaxMinimumNights = 30

// PriceDistribution is the price histogram with a count-scaled density overlay
func PriceDistribution(view *listing.View) Chart {
	c := Chart{ID: "price-distribution", Title: "Q1: Price Distribution", Kind: KindHistogram, XLabel: "price", YLabel: "Count"}
	if view.Empty() {
		return c
	}
	prices := view.Prices()
	analyzer := profiling.NewDistributionAnalyzer(HistogramBins)
	h := analyzer.Histogram(prices)
	c.Histogram = &h
	if curve, ok := analyzer.ScaledDensity(prices, h); ok {
		c.Density = &curve
	}
	return c
}

// AvgPriceByRoomType is mean price per room type
func AvgPriceByRoomType(view *listing.View) Chart {
	keys, means := meanBy(view, byRoomType, price)
	return barChart("avg-price-room-type", "Q2: Avg Price by Room Type", KindBar, "room_type", "price", keys, means)
}

// MedianPriceByBorough is median price per borough
func MedianPriceByBorough(view *listing.View) Chart {
	keys, medians := medianBy(view, byBorough, price)
	return barChart("median-price-borough", "Q4: Median Price by Borough", KindBar, "neighbourhood_group", "price", keys, medians)
}

// PriceVsMinNights scatters price against minimum nights for stays of at most 30 nights
func PriceVsMinNights(view *listing.View) Chart {
	shortStays := view.Where(func(l listing.Listing) bool { return l.MinimumNights <= MaxMinimumNights })
	points := make([]Point, 0, shortStays.Len())
	for _, l := range shortStays.Listings {
		points = append(points, Point{X: float64(l.MinimumNights), Y: l.Price})
	}
	return scatterChart("price-min-nights", "Q8: Price vs Min Nights", "minimum_nights", "price", points)
}

func barChart(id, title string, kind Kind, xLabel, yLabel string, keys []string, values []float64) Chart {
	c := Chart{ID: id, Title: title, Kind: kind, XLabel: xLabel, YLabel: yLabel}
	if len(keys) == 0 {
		return c
	}
	c.Categories = keys
	c.Series = []Series{{Name: yLabel, Values: values}}
	return c
}

func scatterChart(id, title, xLabel, yLabel string, points []Point) Chart {
	c := Chart{ID: id, Title: title, Kind: KindScatter, XLabel: xLabel, YLabel: yLabel}
	if len(points) > 0 {
		c.Traces = []Trace{{Name: yLabel, Points: points}}
	}
	return c
}

func countsChart(id, title, yLabel string, counts []Count) Chart {
	keys := make([]string, len(counts))
	values := make([]float64, len(counts))
	for i, c := range counts {
		keys[i] = c.Key
		values[i] = float64(c.N)
	}
	return barChart(id, title, KindHorizontalBar, "count", yLabel, keys, values)
}
