package framer

import (
	"fmt"

	intImage "github.com/gogpu/framer/internal/image"
)

// Raster is a decoded RGBA8 bitmap with straight alpha.
// It is an alias of the internal buffer type so that it can be used with
// the image package through Raster.NRGBA.
type Raster = intImage.ImageBuf

// InterpolationMode selects the filter used to scale the photo.
type InterpolationMode = intImage.InterpolationMode

// Interpolation modes.
const (
	// InterpNearest selects the closest pixel (no interpolation).
	InterpNearest = intImage.InterpNearest

	// InterpApproxBilinear is a faster approximation of bilinear filtering.
	InterpApproxBilinear = intImage.InterpApproxBilinear

	// InterpBilinear performs linear interpolation between neighboring
	// pixels. This is the default.
	InterpBilinear = intImage.InterpBilinear

	// InterpBicubic performs Catmull-Rom interpolation.
	InterpBicubic = intImage.InterpBicubic
)

// ParseInterpolation maps a mode name such as "bilinear" to a mode.
func ParseInterpolation(name string) (InterpolationMode, bool) {
	return intImage.ParseInterpolation(name)
}

// NewRaster returns a fully transparent raster.
func NewRaster(width, height int) (*Raster, error) {
	return intImage.NewImageBuf(width, height)
}

// DecodeFrame decodes frame bytes. Frames must be PNG; a PNG without an
// alpha channel decodes as fully opaque.
func DecodeFrame(data []byte) (*Raster, error) {
	r, err := intImage.DecodePNG(data)
	if err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	return r, nil
}

// DecodePhoto decodes photo bytes in any supported container (PNG, JPEG,
// GIF, BMP, TIFF, WebP). The EXIF orientation of JPEG photos is applied.
func DecodePhoto(data []byte) (*Raster, error) {
	r, err := intImage.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}
	return r, nil
}

// EncodePNG serializes a raster as PNG.
func EncodePNG(r *Raster) ([]byte, error) {
	return intImage.EncodeToBytes(r)
}
