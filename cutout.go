package framer

import (
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/framer/internal/parallel"
)

// DefaultAlphaThreshold is the alpha value below which a frame pixel is
// considered transparent.
const DefaultAlphaThreshold uint8 = 50

// Rect is an axis-aligned pixel rectangle. Right and Bottom are exclusive,
// so a rectangle covering a whole W x H frame is {0, 0, W, H}.
type Rect struct {
	Left, Top, Right, Bottom int
}

// FullRect returns the rectangle covering a width x height image.
func FullRect(width, height int) Rect {
	return Rect{Right: width, Bottom: height}
}

// Dx returns the width of r.
func (r Rect) Dx() int { return r.Right - r.Left }

// Dy returns the height of r.
func (r Rect) Dy() int { return r.Bottom - r.Top }

// Empty reports whether r contains no pixels.
func (r Rect) Empty() bool {
	return r.Left >= r.Right || r.Top >= r.Bottom
}

// Within reports whether r is non-empty and lies inside a width x height image.
func (r Rect) Within(width, height int) bool {
	return !r.Empty() && r.Left >= 0 && r.Top >= 0 && r.Right <= width && r.Bottom <= height
}

// Image returns r as an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Right, r.Bottom)
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Left, r.Top, r.Right, r.Bottom)
}

// extent tracks inclusive pixel extrema of transparent pixels.
// A fresh extent is inverted (left > right) until a pixel is added.
type extent struct {
	left, top, right, bottom int
}

func newExtent(width, height int) extent {
	return extent{left: width, top: height}
}

func (e extent) found() bool {
	return e.left <= e.right && e.top <= e.bottom
}

func (e extent) merge(o extent) extent {
	return extent{
		left:   min(e.left, o.left),
		top:    min(e.top, o.top),
		right:  max(e.right, o.right),
		bottom: max(e.bottom, o.bottom),
	}
}

func (e extent) rect() Rect {
	return Rect{Left: e.left, Top: e.top, Right: e.right + 1, Bottom: e.bottom + 1}
}

// scanRows visits every pixel in rows [y0, y1). There is no early exit:
// the cutout shape is unconstrained.
func scanRows(frame *Raster, y0, y1 int, threshold uint8) extent {
	e := newExtent(frame.Width(), frame.Height())
	for y := y0; y < y1; y++ {
		row := frame.RowBytes(y)
		for x := range frame.Width() {
			if row[x*4+3] >= threshold {
				continue
			}
			e.left = min(e.left, x)
			e.right = max(e.right, x)
			e.top = min(e.top, y)
			e.bottom = max(e.bottom, y)
		}
	}
	return e
}

// ScanCutout returns the bounding box of the pixels whose alpha is below
// the threshold, and whether any such pixel exists. When none exists the
// returned Rect is the zero value.
func ScanCutout(frame *Raster, opts ...DetectOption) (Rect, bool) {
	if frame == nil || frame.Width() <= 0 || frame.Height() <= 0 {
		return Rect{}, false
	}
	o := applyDetectOptions(opts)

	var e extent
	if o.workers == 1 || frame.Height() == 1 {
		e = scanRows(frame, 0, frame.Height(), o.threshold)
	} else {
		e = scanParallel(frame, o)
	}

	if !e.found() {
		return Rect{}, false
	}
	return e.rect(), true
}

func scanParallel(frame *Raster, o detectOptions) extent {
	pool := parallel.NewWorkerPool(o.workers)
	defer pool.Close()

	var mu sync.Mutex
	acc := newExtent(frame.Width(), frame.Height())
	pool.ForEachBand(frame.Height(), func(b parallel.Band) {
		e := scanRows(frame, b.Y0, b.Y1, o.threshold)
		mu.Lock()
		acc = acc.merge(e)
		mu.Unlock()
	})
	return acc
}

// DetectCutout returns the bounding box of the frame's transparent region.
// Disjoint transparent areas produce one box spanning all of them. If the
// frame has no transparent pixel the full frame bounds are returned, so the
// result is never empty for a non-empty frame.
func DetectCutout(frame *Raster, opts ...DetectOption) Rect {
	if frame == nil || frame.Width() <= 0 || frame.Height() <= 0 {
		return Rect{}
	}
	r, found := ScanCutout(frame, opts...)
	if !found {
		r = FullRect(frame.Width(), frame.Height())
	}
	logCutout(frame, r, found)
	return r
}

func logCutout(frame *Raster, r Rect, found bool) {
	Logger().Debug("cutout detected",
		"rect", r.String(),
		"found", found,
		"frame_width", frame.Width(),
		"frame_height", frame.Height())
}
