// Package scroll turns a viewport's scroll position into a normalized progress
// value for a tracked region, and maps that progress onto the visual state of
// the elements that depend on it (quote lines, petal markers).
//
// The math lives in pure functions. Driver is the thin lifecycle wrapper that
// samples scroll and resize events at most once per frame.
package scroll

import "math"

// Geometry is the measured bounding box of a ScrollSubject together with the
// height of the viewport it scrolls through. All values are in pixels.
type Geometry struct {
	RegionTop      float64 `json:"region_top"`
	RegionHeight   float64 `json:"region_height"`
	ViewportHeight float64 `json:"viewport_height"`
	// Measured is false until the region has mounted and been measured.
	Measured bool `json:"measured"`
}

// Measure returns geometry for a region that has been laid out.
func Measure(top, height, viewportHeight float64) Geometry {
	return Geometry{
		RegionTop:      top,
		RegionHeight:   height,
		ViewportHeight: viewportHeight,
		Measured:       true,
	}
}

// span is the scroll distance over which progress goes from 0 to 1.
func (g Geometry) span() float64 {
	return math.Max(1, g.RegionHeight-g.ViewportHeight)
}

// Progress reports how far the viewport has travelled through the region,
// clamped to [0, 1]. Unmeasured or non-finite input yields 0.
func Progress(g Geometry, scrollOffset float64) float64 {
	if !g.Measured {
		return 0
	}
	span := g.span()
	if math.IsNaN(span) || math.IsInf(span, 0) {
		return 0
	}
	return Clamp01((scrollOffset - g.RegionTop) / span)
}

// Clamp01 limits v to [0, 1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 1:
		return 1
	default:
		return v
	}
}
