// Package image provides the raster buffer, codecs and drawing primitives
// used by framer.
//
// All buffers hold straight (non-premultiplied) RGBA, 4 bytes per pixel,
// row-major. Sources without an alpha channel decode as fully opaque.
package image

import (
	"errors"
	"image"
	"image/color"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrInvalidStride is returned when stride is less than minimum required.
	ErrInvalidStride = errors.New("image: stride too small for width")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("image: data buffer too small")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")
)

// BytesPerPixel is the size of one RGBA8 pixel.
const BytesPerPixel = 4

// ImageBuf is a row-major RGBA8 pixel buffer with straight alpha.
//
// ImageBuf is safe for concurrent read access. Write operations (Set*,
// Clear, Fill) require external synchronization.
type ImageBuf struct {
	data   []byte
	width  int
	height int
	stride int
}

// NewImageBuf creates a zeroed (fully transparent) buffer.
func NewImageBuf(width, height int) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	stride := width * BytesPerPixel
	return &ImageBuf{
		data:   make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
	}, nil
}

// FromRaw creates an ImageBuf from existing data without copying.
// The caller must ensure data remains valid for the lifetime of the ImageBuf.
// Stride must be at least width*4.
func FromRaw(data []byte, width, height, stride int) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if stride < width*BytesPerPixel {
		return nil, ErrInvalidStride
	}
	required := stride*(height-1) + width*BytesPerPixel
	if len(data) < required {
		return nil, ErrDataTooSmall
	}
	return &ImageBuf{
		data:   data[:required],
		width:  width,
		height: height,
		stride: stride,
	}, nil
}

// Clone creates a deep copy of the image buffer with a packed stride.
func (b *ImageBuf) Clone() *ImageBuf {
	out, _ := NewImageBuf(b.width, b.height)
	for y := range b.height {
		copy(out.RowBytes(y), b.RowBytes(y))
	}
	return out
}

// Width returns the image width in pixels.
func (b *ImageBuf) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *ImageBuf) Height() int {
	return b.height
}

// Stride returns the number of bytes per row (including padding).
func (b *ImageBuf) Stride() int {
	return b.stride
}

// Size returns the image dimensions as (width, height).
func (b *ImageBuf) Size() (int, int) {
	return b.width, b.height
}

// Rect returns the image bounds with the origin at (0, 0).
func (b *ImageBuf) Rect() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// Data returns the raw pixel data slice.
func (b *ImageBuf) Data() []byte {
	return b.data
}

// RowBytes returns a slice of the pixel data for row y.
// Returns nil if y is out of bounds.
func (b *ImageBuf) RowBytes(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	start := y * b.stride
	return b.data[start : start+b.width*BytesPerPixel]
}

// PixelOffset returns the byte offset of pixel (x, y) in the data slice.
// Returns -1 if coordinates are out of bounds.
func (b *ImageBuf) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.stride + x*BytesPerPixel
}

// GetRGBA returns the color at (x, y) as (r, g, b, a) in 0-255 range.
// Returns (0,0,0,0) if coordinates are out of bounds.
func (b *ImageBuf) GetRGBA(x, y int) (r, g, bl, a uint8) {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return 0, 0, 0, 0
	}
	p := b.data[off : off+4 : off+4]
	return p[0], p[1], p[2], p[3]
}

// Alpha returns the alpha value at (x, y), or 0 when out of bounds.
func (b *ImageBuf) Alpha(x, y int) uint8 {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return 0
	}
	return b.data[off+3]
}

// SetRGBA sets the color at (x, y).
// Returns ErrOutOfBounds if coordinates are outside image bounds.
func (b *ImageBuf) SetRGBA(x, y int, r, g, bl, a uint8) error {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return ErrOutOfBounds
	}
	p := b.data[off : off+4 : off+4]
	p[0], p[1], p[2], p[3] = r, g, bl, a
	return nil
}

// Clear sets all pixels to transparent black.
func (b *ImageBuf) Clear() {
	clear(b.data)
}

// Fill sets all pixels to the given color.
func (b *ImageBuf) Fill(r, g, bl, a uint8) {
	b.FillRect(b.Rect(), r, g, bl, a)
}

// FillRect sets every pixel inside rect (clipped to the image) to the given color.
func (b *ImageBuf) FillRect(rect image.Rectangle, r, g, bl, a uint8) {
	rect = rect.Intersect(b.Rect())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		row := b.RowBytes(y)
		for x := rect.Min.X; x < rect.Max.X; x++ {
			i := x * BytesPerPixel
			row[i], row[i+1], row[i+2], row[i+3] = r, g, bl, a
		}
	}
}

// NRGBA returns a zero-copy *image.NRGBA view of the buffer. Writes
// through the view modify the buffer.
func (b *ImageBuf) NRGBA() *image.NRGBA {
	return &image.NRGBA{Pix: b.data, Stride: b.stride, Rect: b.Rect()}
}

// ColorModel implements image.Image.
func (b *ImageBuf) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements image.Image.
func (b *ImageBuf) Bounds() image.Rectangle {
	return b.Rect()
}

// At implements image.Image.
func (b *ImageBuf) At(x, y int) color.Color {
	r, g, bl, a := b.GetRGBA(x, y)
	return color.NRGBA{R: r, G: g, B: bl, A: a}
}

// Equal reports whether two buffers have the same size and pixels.
func (b *ImageBuf) Equal(o *ImageBuf) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.width != o.width || b.height != o.height {
		return false
	}
	for y := range b.height {
		if string(b.RowBytes(y)) != string(o.RowBytes(y)) {
			return false
		}
	}
	return true
}

// ByteSize returns the total size of the image data in bytes.
func (b *ImageBuf) ByteSize() int {
	return len(b.data)
}
