package framer

import (
	"errors"

	intImage "github.com/gogpu/framer/internal/image"
)

// Errors returned by framer. Use errors.Is to test for them; returned
// errors usually wrap one of these with more detail.
var (
	// ErrDecode is returned when frame or photo bytes cannot be decoded.
	ErrDecode = intImage.ErrDecode

	// ErrUnsupportedFormat is returned when a frame is not a PNG or a photo
	// is in a container framer cannot read.
	ErrUnsupportedFormat = intImage.ErrUnsupportedFormat

	// ErrEncode is returned when a composite cannot be serialized. The
	// composite itself stays valid and the export may be retried.
	ErrEncode = intImage.ErrEncode

	// ErrEmptyData is returned when no image bytes were supplied.
	ErrEmptyData = intImage.ErrEmptyData

	// ErrInvalidDimensions is returned for nil or zero-area images.
	ErrInvalidDimensions = intImage.ErrInvalidDimensions

	// ErrInvalidCutout is returned when a cutout is empty or not contained
	// in the frame.
	ErrInvalidCutout = errors.New("framer: invalid cutout")

	// ErrNoFrame is returned by Session when a photo arrives before any
	// frame was selected.
	ErrNoFrame = errors.New("framer: no frame selected")

	// ErrNoResult is returned by Session.Export when nothing has been
	// rendered yet.
	ErrNoResult = errors.New("framer: nothing rendered")

	// ErrStale is returned when a render was superseded by a newer request
	// before it finished.
	ErrStale = errors.New("framer: render superseded")

	// ErrFrameNotFound is returned when a frame reference does not resolve.
	ErrFrameNotFound = errors.New("framer: frame not found")
)
