package framer

import "fmt"

// FrameAsset is a decoded frame together with its detected cutout.
// It is created once per frame and never modified; selecting another frame
// means building a new FrameAsset.
type FrameAsset struct {
	frame    *Raster
	cutout   Rect
	detected bool
	id       string
	name     string
}

// NewFrameAsset runs cutout detection on frame and wraps the result.
// The frame must not be modified afterwards.
func NewFrameAsset(frame *Raster, opts ...DetectOption) (*FrameAsset, error) {
	if frame == nil || frame.Width() <= 0 || frame.Height() <= 0 {
		return nil, ErrInvalidDimensions
	}
	cutout, found := ScanCutout(frame, opts...)
	if !found {
		cutout = FullRect(frame.Width(), frame.Height())
	}
	logCutout(frame, cutout, found)
	return &FrameAsset{frame: frame, cutout: cutout, detected: found}, nil
}

// LoadFrameAsset decodes PNG frame bytes and detects the cutout.
func LoadFrameAsset(data []byte, opts ...DetectOption) (*FrameAsset, error) {
	frame, err := DecodeFrame(data)
	if err != nil {
		return nil, err
	}
	return NewFrameAsset(frame, opts...)
}

// withRef returns a copy of a labelled with a library ID and display name.
func (a *FrameAsset) withRef(id, name string) *FrameAsset {
	c := *a
	c.id, c.name = id, name
	return &c
}

// Frame returns the frame raster. Callers must not modify it.
func (a *FrameAsset) Frame() *Raster { return a.frame }

// Cutout returns the cutout rectangle. It is the full frame when the frame
// has no transparent pixel.
func (a *FrameAsset) Cutout() Rect { return a.cutout }

// Detected reports whether transparent pixels were found. False means
// Cutout is the full-frame fallback.
func (a *FrameAsset) Detected() bool { return a.detected }

// ID returns the library reference of the frame, or "" for frames that did
// not come from a Library.
func (a *FrameAsset) ID() string { return a.id }

// Name returns the display name of the frame, if any.
func (a *FrameAsset) Name() string { return a.name }

// Size returns the frame dimensions, which are also the composite dimensions.
func (a *FrameAsset) Size() (int, int) { return a.frame.Size() }

func (a *FrameAsset) String() string {
	w, h := a.Size()
	return fmt.Sprintf("frame %q %dx%d cutout %s", a.id, w, h, a.cutout)
}
