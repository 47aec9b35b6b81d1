// Package spatial computes map framing for listing coordinates.
package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

// Bounds is the lat/lng bounding rectangle of a set of points
type Bounds struct {
	rect s2.Rect
}

// NewBounds returns an empty bounding rectangle
func NewBounds() *Bounds {
	return &Bounds{rect: s2.EmptyRect()}
}

// Add extends the bounds with a point given in degrees. Invalid coordinates are ignored.
func (b *Bounds) Add(lat, lng float64) {
	if math.IsNaN(lat) || math.IsNaN(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return
	}
	b.rect = b.rect.AddPoint(s2.LatLngFromDegrees(lat, lng))
}

// Empty reports whether no valid point was added
func (b *Bounds) Empty() bool {
	return b.rect.IsEmpty()
}

// Center returns the center of the rectangle in degrees
func (b *Bounds) Center() (lat, lng float64) {
	c := b.rect.Center()
	return c.Lat.Degrees(), c.Lng.Degrees()
}

// Span returns the rectangle's height and width in degrees
func (b *Bounds) Span() (latSpan, lngSpan float64) {
	if b.Empty() {
		return 0, 0
	}
	size := b.rect.Size()
	return size.Lat.Degrees(), size.Lng.Degrees()
}

// worldSize is the web-mercator world width in pixels at zoom 0
const worldSize = 512

// FitZoom returns the deepest whole zoom level at which the rectangle fits a
// width x height pixel viewport. ok is false when the rectangle has no extent.
func (b *Bounds) FitZoom(width, height float64) (zoom int, ok bool) {
	latSpan, lngSpan := b.Span()
	if latSpan <= 0 && lngSpan <= 0 {
		return 0, false
	}
	z := math.Inf(1)
	if lngSpan > 0 {
		z = math.Log2(360 * width / (worldSize * lngSpan))
	}
	if latSpan > 0 {
		lat, _ := b.Center()
		// a degree of latitude is stretched by 1/cos(lat) on a mercator map
		z = math.Min(z, math.Log2(360*height*math.Cos(lat*math.Pi/180)/(worldSize*latSpan)))
	}
	return int(math.Floor(z)), true
}
