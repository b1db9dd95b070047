package framer

import (
	"fmt"
	"time"

	intImage "github.com/gogpu/framer/internal/image"
)

// Placement is the cover-fit transform of a photo into a cutout.
// The photo is scaled uniformly by Scale to Width x Height and drawn with
// its top-left corner at (X, Y) in frame coordinates.
type Placement struct {
	Scale         float64
	X, Y          float64
	Width, Height float64
}

// CoverFit scales a photoW x photoH photo so that it covers cutout
// completely and centers it there. At least one scaled dimension equals the
// cutout's; the other may overhang, in which case X or Y lies outside the
// cutout. The overhang is hidden by the frame.
func CoverFit(photoW, photoH int, cutout Rect) Placement {
	if photoW <= 0 || photoH <= 0 {
		return Placement{}
	}
	cw, ch := float64(cutout.Dx()), float64(cutout.Dy())
	scale := max(cw/float64(photoW), ch/float64(photoH))
	sw, sh := float64(photoW)*scale, float64(photoH)*scale
	return Placement{
		Scale:  scale,
		X:      float64(cutout.Left) + (cw-sw)/2,
		Y:      float64(cutout.Top) + (ch-sh)/2,
		Width:  sw,
		Height: sh,
	}
}

// transform maps photo pixel coordinates to frame coordinates.
func (p Placement) transform() intImage.Affine {
	return intImage.Translate(p.X, p.Y).Multiply(intImage.Scale(p.Scale, p.Scale))
}

// Compose draws photo cover-fitted into cutout and then frame on top of
// it, on a fresh transparent canvas the size of frame.
//
// Compose does not modify its inputs and returns identical pixels for
// identical inputs.
func Compose(photo, frame *Raster, cutout Rect, opts ...ComposeOption) (*Raster, error) {
	if photo == nil || frame == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidDimensions)
	}
	w, h := frame.Size()
	if w <= 0 || h <= 0 || photo.Width() <= 0 || photo.Height() <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !cutout.Within(w, h) {
		return nil, fmt.Errorf("%w: %s not inside %dx%d frame", ErrInvalidCutout, cutout, w, h)
	}
	o := applyComposeOptions(opts)
	start := time.Now()

	surface, err := intImage.NewSurface(w, h)
	if err != nil {
		return nil, err
	}

	place := CoverFit(photo.Width(), photo.Height(), cutout)
	surface.DrawImage(photo, intImage.DrawParams{
		Transform: place.transform(),
		Interp:    o.interp,
		BlendMode: intImage.BlendNormal,
	})
	surface.DrawImage(frame, intImage.DrawParams{
		Transform: intImage.Identity(),
		BlendMode: intImage.BlendNormal,
	})

	out := surface.Snapshot()
	Logger().Debug("composite rendered",
		"width", w,
		"height", h,
		"scale", place.Scale,
		"interp", o.interp.String(),
		"elapsed", time.Since(start))
	return out, nil
}

// ComposeAsset composes photo into a prepared frame using its cached cutout.
func ComposeAsset(photo *Raster, asset *FrameAsset, opts ...ComposeOption) (*Raster, error) {
	if asset == nil {
		return nil, fmt.Errorf("%w: nil frame asset", ErrInvalidDimensions)
	}
	return Compose(photo, asset.frame, asset.cutout, opts...)
}
