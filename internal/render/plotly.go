package render

import (
	"encoding/json"
	"html/template"

	"listingdash/internal/panels"
)

// MapStyle is the tile style of the listing map; it needs no access token
const MapStyle = "carto-positron"

// Figure is a Plotly figure: traces plus layout
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is the subset of Plotly trace attributes the dashboard uses
type Trace struct {
	Type          string    `json:"type"`
	Mode          string    `json:"mode,omitempty"`
	Name          string    `json:"name,omitempty"`
	X             []float64 `json:"x,omitempty"`
	Y             []float64 `json:"y,omitempty"`
	Lat           []float64 `json:"lat,omitempty"`
	Lon           []float64 `json:"lon,omitempty"`
	Text          []string  `json:"text,omitempty"`
	HoverTemplate string    `json:"hovertemplate,omitempty"`
	Marker        *Marker   `json:"marker,omitempty"`
}

// Marker styles trace points
type Marker struct {
	Size       int           `json:"size,omitempty"`
	Color      []float64     `json:"color,omitempty"`
	ColorScale string        `json:"colorscale,omitempty"`
	ShowScale  bool          `json:"showscale,omitempty"`
	ColorBar   *ColorBarSpec `json:"colorbar,omitempty"`
}

// ColorBarSpec titles the colour scale
type ColorBarSpec struct {
	Title string `json:"title"`
}

// Layout is the subset of Plotly layout attributes the dashboard uses
type Layout struct {
	Title       string       `json:"title"`
	XAxis       *Axis        `json:"xaxis,omitempty"`
	YAxis       *Axis        `json:"yaxis,omitempty"`
	Mapbox      *Mapbox      `json:"mapbox,omitempty"`
	Legend      *LegendSpec  `json:"legend,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
	Margin      Margin       `json:"margin"`
}

type Axis struct {
	Title string `json:"title"`
}

type Mapbox struct {
	Style  string  `json:"style"`
	Center LatLon  `json:"center"`
	Zoom   float64 `json:"zoom"`
}

type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type LegendSpec struct {
	Title string `json:"title"`
}

type Annotation struct {
	Text      string  `json:"text"`
	ShowArrow bool    `json:"showarrow"`
	XRef      string  `json:"xref"`
	YRef      string  `json:"yref"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// PlotlyFigure converts an interactive panel chart into a Plotly figure.
// Empty charts keep their title and carry an EmptyMessage annotation.
func PlotlyFigure(c panels.Chart) Figure {
	fig := Figure{
		Data:   []Trace{},
		Layout: Layout{Title: c.Title, Margin: Margin{L: 40, R: 20, T: 50, B: 40}},
	}
	if c.Empty() {
		fig.Layout.Annotations = []Annotation{{Text: EmptyMessage, XRef: "paper", YRef: "paper", X: 0.5, Y: 0.5}}
		return fig
	}

	switch c.Kind {
	case panels.KindMap:
		fig.Data = append(fig.Data, mapTrace(c.Map))
		fig.Layout.Mapbox = &Mapbox{
			Style:  MapStyle,
			Center: LatLon{Lat: c.Map.CenterLat, Lon: c.Map.CenterLon},
			Zoom:   float64(c.Map.Zoom),
		}
		fig.Layout.Margin = Margin{L: 0, R: 0, T: 50, B: 0}
	default:
		for _, t := range c.Traces {
			fig.Data = append(fig.Data, scatterTrace(c, t))
		}
		fig.Layout.XAxis = &Axis{Title: c.XLabel}
		fig.Layout.YAxis = &Axis{Title: c.YLabel}
		fig.Layout.Legend = &LegendSpec{Title: "neighbourhood_group"}
	}
	return fig
}

// JSON returns the figure as a script-safe JSON literal
func (f Figure) JSON() (template.JS, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

func scatterTrace(c panels.Chart, t panels.Trace) Trace {
	tr := Trace{
		Type:          "scattergl",
		Mode:          "markers",
		Name:          t.Name,
		X:             make([]float64, len(t.Points)),
		Y:             make([]float64, len(t.Points)),
		Text:          make([]string, len(t.Points)),
		HoverTemplate: c.XLabel + "=%{x}<br>" + c.YLabel + "=%{y}<br>%{text}<extra>%{fullData.name}</extra>",
		Marker:        &Marker{Size: 5},
	}
	for i, p := range t.Points {
		tr.X[i], tr.Y[i], tr.Text[i] = p.X, p.Y, p.Text
	}
	return tr
}

func mapTrace(m *panels.MapFrame) Trace {
	tr := Trace{
		Type:          "scattermapbox",
		Mode:          "markers",
		Lat:           make([]float64, len(m.Points)),
		Lon:           make([]float64, len(m.Points)),
		Text:          make([]string, len(m.Points)),
		HoverTemplate: "<b>%{text}</b><br>price=%{marker.color}<extra></extra>",
		Marker: &Marker{
			Size:       6,
			Color:      make([]float64, len(m.Points)),
			ColorScale: "Plasma",
			ShowScale:  true,
			ColorBar:   &ColorBarSpec{Title: "price"},
		},
	}
	for i, p := range m.Points {
		tr.Lat[i], tr.Lon[i], tr.Text[i], tr.Marker.Color[i] = p.Lat, p.Lon, p.Neighbourhood, p.Price
	}
	return tr
}
