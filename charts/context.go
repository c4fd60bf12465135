// Package charts rasterizes chart specifications to PNG images.
//
// All sizing flows through a Context resolved up front from the requested
// physical dimensions and resolution. Every drawing path receives the
// Context explicitly; nothing in this package reads or writes the chart
// backend's package-level defaults, so concurrent renders with different
// dimensions cannot bleed into each other.
package charts

import "math"

// Sizing limits. Dimensions are physical inches, resolution is dots per
// inch, and no rasterized axis may exceed MaxPixels pixels.
const (
	MinDimIn    = 1.0
	MaxWidthIn  = 20.0
	MaxHeightIn = 15.0

	DefaultWidthIn  = 9.0
	DefaultHeightIn = 5.0

	BaseDPI   = 100.0
	MinDPI    = 50.0
	MaxPixels = 10000
)

// Context is the resolved sizing for one render: clamped physical
// dimensions, the effective resolution, and the final pixel dimensions.
type Context struct {
	WidthIn  float64
	HeightIn float64
	DPI      float64

	PixelWidth  int
	PixelHeight int
}

// Resolve clamps the requested dimensions and resolution into a safe
// Context. Non-finite or non-positive dimensions fall back to the
// defaults; oversized requests are clamped rather than rejected. The
// resolution is scaled down so neither pixel axis exceeds MaxPixels,
// but never below MinDPI.
func Resolve(widthIn, heightIn, dpi float64) Context {
	widthIn = clampDim(widthIn, DefaultWidthIn, MaxWidthIn)
	heightIn = clampDim(heightIn, DefaultHeightIn, MaxHeightIn)

	if !isFinite(dpi) || dpi <= 0 {
		dpi = BaseDPI
	}
	// The epsilon keeps re-resolving an already resolved context stable
	// when MaxPixels/dim rounds up by an ulp.
	const eps = 1e-6
	if widthIn*dpi > MaxPixels+eps {
		dpi = MaxPixels / widthIn
	}
	if heightIn*dpi > MaxPixels+eps {
		dpi = MaxPixels / heightIn
	}
	if dpi < MinDPI {
		dpi = MinDPI
	}

	return Context{
		WidthIn:     widthIn,
		HeightIn:    heightIn,
		DPI:         dpi,
		PixelWidth:  pixels(widthIn, dpi),
		PixelHeight: pixels(heightIn, dpi),
	}
}

func clampDim(v, def, max float64) float64 {
	if !isFinite(v) || v <= 0 {
		return def
	}
	if v < MinDimIn {
		return MinDimIn
	}
	if v > max {
		return max
	}
	return v
}

func pixels(inches, dpi float64) int {
	px := int(math.Round(inches * dpi))
	if px > MaxPixels {
		px = MaxPixels
	}
	if px < 1 {
		px = 1
	}
	return px
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
