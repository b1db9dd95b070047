package framer

// DetectOption configures cutout detection.
//
// Example:
//
//	// Treat anything below alpha 128 as transparent, scan on 4 goroutines.
//	r := framer.DetectCutout(frame, framer.WithAlphaThreshold(128), framer.WithWorkers(4))
type DetectOption func(*detectOptions)

type detectOptions struct {
	threshold uint8
	workers   int
}

func defaultDetectOptions() detectOptions {
	return detectOptions{
		threshold: DefaultAlphaThreshold,
		workers:   1,
	}
}

func applyDetectOptions(opts []DetectOption) detectOptions {
	o := defaultDetectOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithAlphaThreshold sets the alpha value below which a pixel counts as
// part of the cutout. The default is DefaultAlphaThreshold.
func WithAlphaThreshold(t uint8) DetectOption {
	return func(o *detectOptions) {
		o.threshold = t
	}
}

// WithWorkers scans the frame in row bands on n goroutines.
// Values below 1 select GOMAXPROCS. The result does not depend on n.
func WithWorkers(n int) DetectOption {
	return func(o *detectOptions) {
		o.workers = n
	}
}

// ComposeOption configures Compose.
type ComposeOption func(*composeOptions)

type composeOptions struct {
	interp InterpolationMode
}

func applyComposeOptions(opts []ComposeOption) composeOptions {
	o := composeOptions{interp: InterpBilinear}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithInterpolation selects the filter used to scale the photo.
// The default is InterpBilinear.
func WithInterpolation(m InterpolationMode) ComposeOption {
	return func(o *composeOptions) {
		o.interp = m
	}
}

// EncoderOption configures an Encoder.
type EncoderOption func(*encoderOptions)

type encoderOptions struct {
	name string
}

func applyEncoderOptions(opts []EncoderOption) encoderOptions {
	o := encoderOptions{name: DefaultDownloadName}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithDownloadName sets the file name reported in Export.Name.
// An empty name keeps DefaultDownloadName.
func WithDownloadName(name string) EncoderOption {
	return func(o *encoderOptions) {
		if name != "" {
			o.name = name
		}
	}
}

// SessionOption configures a Session.
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	encoder Encoder
	compose []ComposeOption
	detect  []DetectOption
}

// WithEncoder sets the encoder used by Session.Export.
// The default is a DataURLEncoder.
func WithEncoder(e Encoder) SessionOption {
	return func(o *sessionOptions) {
		o.encoder = e
	}
}

// WithComposeOptions sets the options passed to every render.
func WithComposeOptions(opts ...ComposeOption) SessionOption {
	return func(o *sessionOptions) {
		o.compose = opts
	}
}

// WithDetectOptions sets the options used when a session decodes a frame.
func WithDetectOptions(opts ...DetectOption) SessionOption {
	return func(o *sessionOptions) {
		o.detect = opts
	}
}

// LibraryOption configures a Library.
type LibraryOption func(*libraryOptions)

type libraryOptions struct {
	cacheSize int
	detect    []DetectOption
}

// WithCacheSize sets how many decoded frames the library keeps.
func WithCacheSize(n int) LibraryOption {
	return func(o *libraryOptions) {
		if n > 0 {
			o.cacheSize = n
		}
	}
}

// WithLibraryDetectOptions sets the detection options for frames loaded
// from the store.
func WithLibraryDetectOptions(opts ...DetectOption) LibraryOption {
	return func(o *libraryOptions) {
		o.detect = opts
	}
}
