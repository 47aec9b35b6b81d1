// Package profiling computes the summary statistics shown above and inside the charts.
package profiling

import (
	"listingdash/domain/listing"

	"github.com/montanaflynn/stats"
)

// Metrics is the header row of the dashboard. MeanPrice and MedianPrice are only
// meaningful when Defined is true; an empty view reports zero and Defined=false.
type Metrics struct {
	Count       int     `json:"count"`
	MeanPrice   float64 `json:"mean_price"`
	MedianPrice float64 `json:"median_price"`
	Defined     bool    `json:"defined"`
}

// Summarize computes count, mean and median price over the view
func Summarize(view *listing.View) Metrics {
	m := Metrics{Count: view.Len()}
	if m.Count == 0 {
		return m
	}
	prices := view.Prices()

	mean, err := stats.Mean(prices)
	if err != nil {
		return m
	}
	median, err := stats.Median(prices)
	if err != nil {
		return m
	}

	m.MeanPrice = mean
	m.MedianPrice = median
	m.Defined = true
	return m
}
