package framer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	intImage "github.com/gogpu/framer/internal/image"
	"github.com/gogpu/framer/internal/parallel"
	"github.com/gogpu/framer/internal/store"
)

// DefaultDownloadName is the file name given to exported composites.
const DefaultDownloadName = "framed-photo.png"

// PNGMIMEType is the MIME type of every export.
const PNGMIMEType = "image/png"

// Export is an encoded composite ready to be saved.
type Export struct {
	// Name is the download file name.
	Name string

	// MIMEType is always PNGMIMEType.
	MIMEType string

	// Data holds the PNG bytes.
	Data []byte

	// URL is a data URL of Data. Only DataURLEncoder sets it.
	URL string
}

// Encoder serializes a composite for download.
type Encoder interface {
	// Encode returns the PNG encoding of img. Failures wrap ErrEncode.
	Encode(ctx context.Context, img *Raster) (*Export, error)

	// Close releases background resources held by the encoder.
	Close() error
}

// encodeExport is shared by both strategies so that they emit identical bytes.
func encodeExport(img *Raster, name string) (*Export, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrEncode)
	}
	start := time.Now()
	data, err := intImage.EncodeToBytes(img)
	if err != nil {
		return nil, err
	}
	Logger().Debug("composite encoded",
		"name", name,
		"size", humanize.Bytes(uint64(len(data))),
		"elapsed", time.Since(start))
	return &Export{Name: name, MIMEType: PNGMIMEType, Data: data}, nil
}

// DataURLEncoder encodes on the calling goroutine and also returns the
// result as a data URL. It is the desktop strategy.
type DataURLEncoder struct {
	opts encoderOptions
}

// NewDataURLEncoder returns a synchronous encoder.
func NewDataURLEncoder(opts ...EncoderOption) *DataURLEncoder {
	return &DataURLEncoder{opts: applyEncoderOptions(opts)}
}

// Encode implements Encoder.
func (e *DataURLEncoder) Encode(ctx context.Context, img *Raster) (*Export, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	exp, err := encodeExport(img, e.opts.name)
	if err != nil {
		return nil, err
	}
	exp.URL = store.EncodeDataURL(exp.MIMEType, exp.Data)
	return exp, nil
}

// Close implements Encoder. It is a no-op.
func (e *DataURLEncoder) Close() error { return nil }

// BlobEncoder encodes on a background worker and delivers the result
// through a callback. It is the mobile strategy.
type BlobEncoder struct {
	opts encoderOptions
	pool *parallel.WorkerPool
}

// NewBlobEncoder returns an asynchronous encoder backed by one worker.
// Call Close when done with it.
func NewBlobEncoder(opts ...EncoderOption) *BlobEncoder {
	return &BlobEncoder{
		opts: applyEncoderOptions(opts),
		pool: parallel.NewWorkerPool(1),
	}
}

// EncodeAsync queues the encoding of img and returns immediately. done is
// called exactly once, from the worker goroutine, or from the caller's
// goroutine if the encoder is closed.
func (e *BlobEncoder) EncodeAsync(img *Raster, done func(*Export, error)) {
	ok := e.pool.Submit(func() {
		done(encodeExport(img, e.opts.name))
	})
	if !ok {
		done(nil, fmt.Errorf("%w: encoder closed", ErrEncode))
	}
}

// Encode implements Encoder by waiting for EncodeAsync.
func (e *BlobEncoder) Encode(ctx context.Context, img *Raster) (*Export, error) {
	type result struct {
		exp *Export
		err error
	}
	ch := make(chan result, 1)
	e.EncodeAsync(img, func(exp *Export, err error) {
		ch <- result{exp, err}
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		return r.exp, r.err
	}
}

// Close implements Encoder. Queued encodings finish before Close returns.
func (e *BlobEncoder) Close() error {
	e.pool.Close()
	return nil
}

// Environment is the class of client an export is produced for.
type Environment uint8

const (
	// Desktop clients receive a data URL synchronously.
	Desktop Environment = iota

	// Mobile clients receive the bytes from a background encode.
	Mobile
)

func (e Environment) String() string {
	switch e {
	case Desktop:
		return "desktop"
	case Mobile:
		return "mobile"
	default:
		return "unknown"
	}
}

// ParseEnvironment maps "desktop" or "mobile" to an Environment.
func ParseEnvironment(s string) (Environment, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desktop":
		return Desktop, true
	case "mobile":
		return Mobile, true
	}
	return Desktop, false
}

var mobileAgent = regexp.MustCompile(`(?i)iPhone|iPad|iPod|Android`)

// DetectEnvironment classifies a user agent string.
func DetectEnvironment(userAgent string) Environment {
	if mobileAgent.MatchString(userAgent) {
		return Mobile
	}
	return Desktop
}

// NewEncoder returns the encoding strategy for env.
func NewEncoder(env Environment, opts ...EncoderOption) Encoder {
	if env == Mobile {
		return NewBlobEncoder(opts...)
	}
	return NewDataURLEncoder(opts...)
}

var nameCleaner = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ligatures spells out letters that have no decomposition to ASCII.
var ligatures = strings.NewReplacer(
	"Æ", "AE", "æ", "ae", "Ø", "O", "ø", "o", "Œ", "OE", "œ", "oe",
	"ß", "ss", "Ð", "D", "ð", "d", "Þ", "TH", "þ", "th", "Ł", "L", "ł", "l",
)

// DownloadName derives a file name from a display title, for example
// "Café Frame" becomes "cafe-frame.png". Titles with no usable characters
// yield DefaultDownloadName.
func DownloadName(title string) string {
	folded, _, err := transform.String(nameCleaner, ligatures.Replace(title))
	if err != nil {
		return DefaultDownloadName
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
		default:
			dash = true
		}
	}
	if b.Len() == 0 {
		return DefaultDownloadName
	}
	return b.String() + ".png"
}

// Save writes exp into dir under exp.Name and returns the file path.
func Save(dir string, exp *Export) (string, error) {
	if exp == nil {
		return "", fmt.Errorf("%w: nothing to save", ErrEncode)
	}
	name := exp.Name
	if name == "" {
		name = DefaultDownloadName
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, exp.Data, 0o644); err != nil {
		return "", fmt.Errorf("save export: %w", err)
	}
	Logger().Info("export saved", "path", path, "size", humanize.Bytes(uint64(len(exp.Data))))
	return path, nil
}
