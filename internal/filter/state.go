package filter

import (
	"math"
	"net/url"
	"strconv"

	"listingdash/domain/listing"
)

// Slider bounds and defaults of the price widget
const (
	PriceMin        = 10
	PriceMax        = 800
	DefaultPriceLo  = 10
	DefaultPriceHi  = 300
	ParamPriceLo    = "price_lo"
	ParamPriceHi    = "price_hi"
	ParamRoomType   = "room_type"
	ParamBorough    = "borough"
	ParamSubmitted  = "submitted"
	submittedMarker = "1"
)

// State is the widget state of one redraw
type State struct {
	PriceLo   int      `json:"price_lo"`
	PriceHi   int      `json:"price_hi"`
	RoomTypes []string `json:"room_types"`
	Boroughs  []string `json:"boroughs"`
}

// DefaultState selects (10, 300) and every room type and borough present in ds
func DefaultState(ds *listing.Dataset) State {
	s := State{PriceLo: DefaultPriceLo, PriceHi: DefaultPriceHi}
	if ds != nil {
		s.RoomTypes = ds.RoomTypes()
		s.Boroughs = ds.Boroughs()
	}
	return s
}

// ParseState reads widget values from query parameters. Before the form is
// submitted the multiselects default to every value; afterwards an absent
// multiselect is an empty selection. Prices are clamped to the slider range
// and swapped when reversed.
func ParseState(q url.Values, ds *listing.Dataset) State {
	s := DefaultState(ds)
	s.PriceLo = parseBound(q.Get(ParamPriceLo), DefaultPriceLo)
	s.PriceHi = parseBound(q.Get(ParamPriceHi), DefaultPriceHi)
	if s.PriceLo > s.PriceHi {
		s.PriceLo, s.PriceHi = s.PriceHi, s.PriceLo
	}

	if q.Get(ParamSubmitted) == submittedMarker {
		s.RoomTypes = nonEmpty(q[ParamRoomType])
		s.Boroughs = nonEmpty(q[ParamBorough])
		return s
	}
	if v, ok := q[ParamRoomType]; ok {
		s.RoomTypes = nonEmpty(v)
	}
	if v, ok := q[ParamBorough]; ok {
		s.Boroughs = nonEmpty(v)
	}
	return s
}

// Criteria converts the widget state into filter predicates
func (s State) Criteria() Criteria {
	return Criteria{
		PriceLo:   float64(s.PriceLo),
		PriceHi:   float64(s.PriceHi),
		RoomTypes: append([]string(nil), s.RoomTypes...),
		Boroughs:  append([]string(nil), s.Boroughs...),
	}
}

// Query encodes the state so that ParseState(s.Query()) == s
func (s State) Query() url.Values {
	q := url.Values{}
	q.Set(ParamPriceLo, strconv.Itoa(s.PriceLo))
	q.Set(ParamPriceHi, strconv.Itoa(s.PriceHi))
	q.Set(ParamSubmitted, submittedMarker)
	for _, rt := range s.RoomTypes {
		q.Add(ParamRoomType, rt)
	}
	for _, b := range s.Boroughs {
		q.Add(ParamBorough, b)
	}
	return q
}

// HasRoomType reports whether rt is selected
func (s State) HasRoomType(rt string) bool {
	return contains(s.RoomTypes, rt)
}

// HasBorough reports whether b is selected
func (s State) HasBorough(b string) bool {
	return contains(s.Boroughs, b)
}

func parseBound(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return def
	}
	switch {
	case v < PriceMin:
		return PriceMin
	case v > PriceMax:
		return PriceMax
	}
	return int(v)
}

func nonEmpty(values []string) []string {
	out := []string{}
	for _, v := range values {
		if v != "" && !contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
