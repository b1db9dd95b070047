package image

import (
	"image"
	"image/draw"
)

// BlendMode defines how source pixels are combined with destination pixels.
type BlendMode uint8

const (
	// BlendNormal performs standard alpha blending (source over destination).
	BlendNormal BlendMode = iota

	// BlendSource replaces destination pixels with source pixels.
	BlendSource
)

// String returns a string representation of the blend mode.
func (b BlendMode) String() string {
	switch b {
	case BlendNormal:
		return "Normal"
	case BlendSource:
		return "Source"
	default:
		return "Unknown"
	}
}

func (b BlendMode) op() draw.Op {
	if b == BlendSource {
		return draw.Src
	}
	return draw.Over
}

// DrawParams specifies parameters for Surface.DrawImage.
type DrawParams struct {
	// Transform maps source pixel coordinates to surface coordinates.
	Transform Affine

	// Interp specifies the resampling filter used when Transform scales.
	Interp InterpolationMode

	// BlendMode specifies how to blend source and destination pixels.
	BlendMode BlendMode
}

// Surface is a premultiplied RGBA drawing target. Compositing happens in
// premultiplied space; Snapshot converts the result back to straight alpha.
type Surface struct {
	rgba *image.RGBA
}

// NewSurface allocates a fully transparent surface.
func NewSurface(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Surface{rgba: image.NewRGBA(image.Rect(0, 0, width, height))}, nil
}

// Size returns the surface dimensions.
func (s *Surface) Size() (int, int) {
	b := s.rgba.Rect
	return b.Dx(), b.Dy()
}

// DrawImage draws src onto the surface through params.Transform.
// Pixels whose centers map outside src are left untouched.
func (s *Surface) DrawImage(src *ImageBuf, params DrawParams) {
	if src == nil {
		return
	}
	op := params.BlendMode.op()
	if params.Transform.IsIdentity() {
		draw.Draw(s.rgba, s.rgba.Rect, src.NRGBA(), image.Point{}, op)
		return
	}
	params.Interp.Transformer().Transform(s.rgba, params.Transform.Aff3(), src.NRGBA(), src.Rect(), op, nil)
}

// Snapshot converts the surface to a straight-alpha buffer.
func (s *Surface) Snapshot() *ImageBuf {
	w, h := s.Size()
	out, _ := NewImageBuf(w, h)
	for y := range h {
		src := s.rgba.Pix[y*s.rgba.Stride : y*s.rgba.Stride+w*BytesPerPixel]
		unpremultiplyRow(out.RowBytes(y), src)
	}
	return out
}

// unpremultiplyRow converts premultiplied RGBA bytes to straight alpha
// using the same arithmetic as color.NRGBAModel.
func unpremultiplyRow(dst, src []byte) {
	for i := 0; i+3 < len(src); i += BytesPerPixel {
		a := src[i+3]
		switch a {
		case 0xff:
			copy(dst[i:i+4], src[i:i+4])
		case 0:
			dst[i], dst[i+1], dst[i+2], dst[i+3] = 0, 0, 0, 0
		default:
			a16 := uint32(a) * 0x101
			for c := range 3 {
				v := uint32(src[i+c]) * 0x101
				dst[i+c] = uint8(((v * 0xffff) / a16) >> 8)
			}
			dst[i+3] = a
		}
	}
}
