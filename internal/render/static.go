// Package render draws panel charts. Static panels are rendered server-side
// through go-chart (SVG, or an inline PNG for point clouds); interactive panels
// are Plotly figures drawn in the browser.
package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html"
	"html/template"
	"math"

	"listingdash/internal"
	"listingdash/internal/panels"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/floats"
)

// Chart canvas size in pixels
const (
	DefaultWidth  = 700
	DefaultHeight = 500
)

// EmptyMessage is shown in place of a chart with no data
const EmptyMessage = "No data for the current filters"

var (
	histogramColor = drawing.ColorFromHex("4c72b0")
	densityColor   = drawing.ColorFromHex("1f3b73")
	scatterColor   = drawing.ColorFromHex("4c72b0").WithAlpha(160)
)

// ChartRenderer renders static charts to inline markup
type ChartRenderer struct {
	width  int
	height int
	logger *internal.Logger
}

// NewChartRenderer creates a renderer with the default canvas size
func NewChartRenderer(logger *internal.Logger) *ChartRenderer {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ChartRenderer{width: DefaultWidth, height: DefaultHeight, logger: logger.With("ChartRenderer")}
}

// Render never fails: empty charts and renderer errors produce a placeholder
func (r *ChartRenderer) Render(c panels.Chart) template.HTML {
	if c.Empty() {
		return r.Placeholder(c.Title)
	}

	var buf bytes.Buffer
	var err error
	switch c.Kind {
	case panels.KindHistogram:
		err = r.histogram(c).Render(chart.SVG, &buf)
	case panels.KindBar:
		err = r.bar(c).Render(chart.SVG, &buf)
	case panels.KindHorizontalBar:
		err = r.stacked(c, true).Render(chart.SVG, &buf)
	case panels.KindStackedBar:
		err = r.stacked(c, false).Render(chart.SVG, &buf)
	case panels.KindScatter:
		// point clouds are rasterized
		if err = r.scatter(c).Render(chart.PNG, &buf); err == nil {
			return r.inlinePNG(c.Title, buf.Bytes())
		}
	default:
		err = fmt.Errorf("chart kind %q has no static form", c.Kind)
	}
	if err != nil {
		r.logger.Warn("rendering %s failed: %v", c.ID, err)
		return r.Placeholder(c.Title)
	}
	return template.HTML(buf.String())
}

func (r *ChartRenderer) inlinePNG(title string, png []byte) template.HTML {
	return template.HTML(fmt.Sprintf(
		`<img class="chart-raster" width="%d" height="%d" alt="%s" src="data:image/png;base64,%s">`,
		r.width, r.height, html.EscapeString(title), base64.StdEncoding.EncodeToString(png)))
}

// Placeholder is a blank canvas carrying the chart title and EmptyMessage
func (r *ChartRenderer) Placeholder(title string) template.HTML {
	return template.HTML(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" class="chart-empty">`+
			`<rect width="100%%" height="100%%" fill="#ffffff" stroke="#dddddd"/>`+
			`<text x="50%%" y="40" text-anchor="middle" font-size="16" font-family="sans-serif">%s</text>`+
			`<text x="50%%" y="50%%" text-anchor="middle" font-size="14" font-family="sans-serif" fill="#888888">%s</text>`+
			`</svg>`,
		r.width, r.height, html.EscapeString(title), EmptyMessage))
}

func (r *ChartRenderer) histogram(c panels.Chart) *chart.Chart {
	h := c.Histogram
	counts := chart.ContinuousSeries{
		Name:    "count",
		XValues: h.Centers(),
		YValues: h.Counts,
	}
	series := []chart.Series{chart.HistogramSeries{
		Name:        "count",
		Style:       chart.Style{StrokeColor: histogramColor, FillColor: histogramColor.WithAlpha(180)},
		InnerSeries: counts,
	}}
	maxY := maxOf(h.Counts)
	if c.Density != nil {
		series = append(series, chart.ContinuousSeries{
			Name:    "density",
			Style:   chart.Style{StrokeColor: densityColor, StrokeWidth: 2},
			XValues: c.Density.X,
			YValues: c.Density.Y,
		})
		maxY = math.Max(maxY, maxOf(c.Density.Y))
	}

	return &chart.Chart{
		Title:      c.Title,
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10}},
		XAxis:      chart.XAxis{Name: c.XLabel, Range: padded(h.Edges[0], h.Edges[len(h.Edges)-1])},
		YAxis:      chart.YAxis{Name: c.YLabel, Range: &chart.ContinuousRange{Min: 0, Max: headroom(maxY)}},
		Series:     series,
	}
}

func (r *ChartRenderer) bar(c panels.Chart) *chart.BarChart {
	values := c.Values()
	bars := make([]chart.Value, len(c.Categories))
	for i, name := range c.Categories {
		bars[i] = chart.Value{Label: name, Value: values[i]}
	}
	return &chart.BarChart{
		Title:      c.Title,
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		BarWidth:   barWidth(r.width, len(bars)),
		YAxis:      chart.YAxis{Name: c.YLabel, Range: &chart.ContinuousRange{Min: 0, Max: headroom(maxOf(values))}},
		Bars:       bars,
	}
}

// stacked draws the percentage crosstab, or a single-segment bar per category when horizontal
func (r *ChartRenderer) stacked(c panels.Chart, horizontal bool) *chart.StackedBarChart {
	bars := make([]chart.StackedBar, len(c.Categories))
	for i, name := range c.Categories {
		bar := chart.StackedBar{Name: name}
		for _, s := range c.Series {
			bar.Values = append(bar.Values, chart.Value{Label: s.Name, Value: s.Values[i]})
		}
		bars[i] = bar
	}
	return &chart.StackedBarChart{
		Title:        c.Title,
		Width:        r.width,
		Height:       r.height,
		Background:   chart.Style{Padding: chart.Box{Top: 40}},
		IsHorizontal: horizontal,
		Bars:         bars,
	}
}

func (r *ChartRenderer) scatter(c panels.Chart) *chart.Chart {
	var xs, ys []float64
	for _, t := range c.Traces {
		for _, p := range t.Points {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
		}
	}
	return &chart.Chart{
		Title:      c.Title,
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10}},
		XAxis:      chart.XAxis{Name: c.XLabel, Range: padded(minOf(xs), maxOf(xs))},
		YAxis:      chart.YAxis{Name: c.YLabel, Range: padded(minOf(ys), maxOf(ys))},
		Series: []chart.Series{chart.ContinuousSeries{
			Name: c.YLabel,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    3,
				DotColor:    scatterColor,
			},
			XValues: xs,
			YValues: ys,
		}},
	}
}

// padded widens a range by 5% on both sides, or by 1 when it is a single value
func padded(lo, hi float64) *chart.ContinuousRange {
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = 1
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func headroom(max float64) float64 {
	if max <= 0 {
		return 1
	}
	return max * 1.1
}

func barWidth(width, n int) int {
	if n == 0 {
		return 0
	}
	w := (width - 100) / (n * 2)
	if w > 80 {
		return 80
	}
	if w < 10 {
		return 10
	}
	return w
}

func maxOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Max(values)
}

func minOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Min(values)
}
