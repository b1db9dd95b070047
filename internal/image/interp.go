package image

import (
	"strings"

	xdraw "golang.org/x/image/draw"
)

// InterpolationMode defines how source pixels are resampled when an image
// is scaled.
type InterpolationMode uint8

const (
	// InterpNearest selects the closest pixel (no interpolation).
	// Fast but produces blocky results when scaling.
	InterpNearest InterpolationMode = iota

	// InterpApproxBilinear is a faster bilinear approximation.
	InterpApproxBilinear

	// InterpBilinear performs linear interpolation between neighboring pixels.
	// Good balance between quality and performance.
	InterpBilinear

	// InterpBicubic performs Catmull-Rom cubic interpolation.
	// Highest quality but slower than bilinear.
	InterpBicubic

	interpCount
)

var interpNames = [interpCount]string{
	InterpNearest:        "nearest",
	InterpApproxBilinear: "approx-bilinear",
	InterpBilinear:       "bilinear",
	InterpBicubic:        "bicubic",
}

// String returns a string representation of the interpolation mode.
func (m InterpolationMode) String() string {
	if m >= interpCount {
		return "unknown"
	}
	return interpNames[m]
}

// ParseInterpolation maps a name (as returned by String) to a mode.
// "catmull-rom" is accepted as an alias for bicubic.
func ParseInterpolation(name string) (InterpolationMode, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "catmull-rom" {
		return InterpBicubic, true
	}
	for m, n := range interpNames {
		if n == name {
			return InterpolationMode(m), true
		}
	}
	return InterpBilinear, false
}

// Transformer returns the x/image/draw implementation for the mode.
// Unknown modes fall back to bilinear.
func (m InterpolationMode) Transformer() xdraw.Transformer {
	switch m {
	case InterpNearest:
		return xdraw.NearestNeighbor
	case InterpApproxBilinear:
		return xdraw.ApproxBiLinear
	case InterpBicubic:
		return xdraw.CatmullRom
	default:
		return xdraw.BiLinear
	}
}
