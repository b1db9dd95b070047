package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"

	"github.com/disintegration/imaging"

	// Registers WebP with image.Decode so imaging can read it.
	_ "golang.org/x/image/webp"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not accepted.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrDecode is returned when image bytes cannot be decoded.
	ErrDecode = errors.New("image: decode failed")

	// ErrEmptyData is returned when image data is empty. It wraps ErrDecode.
	ErrEmptyData = fmt.Errorf("%w: empty data", ErrDecode)

	// ErrEncode is returned when an image cannot be serialized.
	ErrEncode = errors.New("image: encode failed")
)

// DecodePNG decodes PNG bytes. Any other container is rejected with
// ErrUnsupportedFormat before decoding is attempted.
func DecodePNG(data []byte) (*ImageBuf, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	if f := Sniff(data); f != FormatPNG {
		return nil, fmt.Errorf("%w: want png, got %s", ErrUnsupportedFormat, f)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: png: %w", ErrDecode, err)
	}
	return FromStdImage(img)
}

// Decode decodes any supported container, applying the EXIF orientation
// tag when one is present.
func Decode(data []byte) (*ImageBuf, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	f := Sniff(data)
	if !f.IsValid() {
		return nil, ErrUnsupportedFormat
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, f, err)
	}
	return FromStdImage(img)
}

// FromStdImage converts a standard library image to a straight-alpha
// RGBA8 buffer. Images without alpha come out fully opaque.
func FromStdImage(img image.Image) (*ImageBuf, error) {
	bounds := img.Bounds()
	buf, err := NewImageBuf(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	// Fast path for NRGBA images
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := range buf.height {
			start := nrgba.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(buf.RowBytes(y), nrgba.Pix[start:start+buf.width*BytesPerPixel])
		}
		return buf, nil
	}

	draw.Draw(buf.NRGBA(), buf.Rect(), img, bounds.Min, draw.Src)
	return buf, nil
}

// EncodePNG writes the buffer as a lossless, full-resolution PNG.
// The output is deterministic for a given buffer.
func EncodePNG(w io.Writer, b *ImageBuf) error {
	if b == nil {
		return fmt.Errorf("%w: nil image", ErrEncode)
	}
	enc := png.Encoder{
		CompressionLevel: png.DefaultCompression,
		BufferPool:       encoderBuffers,
	}
	if err := enc.Encode(w, b.NRGBA()); err != nil {
		return fmt.Errorf("%w: png: %w", ErrEncode, err)
	}
	return nil
}

// EncodeToBytes encodes the image to PNG format and returns the bytes.
func EncodeToBytes(b *ImageBuf) ([]byte, error) {
	buf := GetBuffer()
	defer PutBuffer(buf)

	if err := EncodePNG(buf, b); err != nil {
		return nil, err
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}
