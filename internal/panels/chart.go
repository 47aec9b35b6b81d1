// Package panels turns a filtered view into renderer-independent chart data.
// Every panel is a pure function of the view.
package panels

import "listingdash/internal/profiling"

// Kind identifies how a chart is drawn
type Kind string

const (
	KindHistogram          Kind = "histogram"
	KindBar                Kind = "bar"
	KindHorizontalBar      Kind = "hbar"
	KindStackedBar         Kind = "stacked_bar"
	KindScatter            Kind = "scatter"
	KindInteractiveScatter Kind = "interactive_scatter"
	KindMap                Kind = "map"
)

// Series is one named row of values aligned with Chart.Categories
type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Point is a scatter point with optional hover text
type Point struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Text string  `json:"text,omitempty"`
}

// Trace is a named group of scatter points
type Trace struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// MapPoint is one sampled listing on the map
type MapPoint struct {
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	Price         float64 `json:"price"`
	Neighbourhood string  `json:"neighbourhood"`
}

// MapFrame is the sampled map layer and its initial viewport
type MapFrame struct {
	CenterLat float64    `json:"center_lat"`
	CenterLon float64    `json:"center_lon"`
	Zoom      int        `json:"zoom"`
	Points    []MapPoint `json:"points"`
}

// Chart is the output of a panel
type Chart struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Kind   Kind   `json:"kind"`
	XLabel string `json:"x_label,omitempty"`
	YLabel string `json:"y_label,omitempty"`

	// bar, hbar and stacked_bar
	Categories []string `json:"categories,omitempty"`
	Series     []Series `json:"series,omitempty"`

	// histogram
	Histogram *profiling.Histogram    `json:"histogram,omitempty"`
	Density   *profiling.DensityCurve `json:"density,omitempty"`

	// scatter and interactive_scatter
	Traces []Trace `json:"traces,omitempty"`

	Map *MapFrame `json:"map,omitempty"`
}

// Empty reports whether the chart has nothing to draw
func (c Chart) Empty() bool {
	switch c.Kind {
	case KindHistogram:
		return c.Histogram == nil || len(c.Histogram.Counts) == 0
	case KindScatter, KindInteractiveScatter:
		for _, t := range c.Traces {
			if len(t.Points) > 0 {
				return false
			}
		}
		return true
	case KindMap:
		return c.Map == nil || len(c.Map.Points) == 0
	default:
		return len(c.Categories) == 0
	}
}

// Values returns the first series, the only one for simple bar charts
func (c Chart) Values() []float64 {
	if len(c.Series) == 0 {
		return nil
	}
	return c.Series[0].Values
}
