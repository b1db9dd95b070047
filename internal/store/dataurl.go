package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vincent-petithory/dataurl"
)

// ErrInvalidDataURL is returned for strings that do not parse as RFC 2397
// data URLs.
var ErrInvalidDataURL = errors.New("store: invalid data url")

// EncodeDataURL returns data as a base64 "data:" URL of the given MIME type.
// A malformed mimeType falls back to application/octet-stream.
func EncodeDataURL(mimeType string, data []byte) string {
	if typ, sub, ok := strings.Cut(mimeType, "/"); !ok || typ == "" || sub == "" || strings.Contains(sub, "/") {
		mimeType = "application/octet-stream"
	}
	return dataurl.New(data, mimeType).String()
}

// DecodeDataURL parses a data URL and returns its MIME type, without
// parameters, and payload. Both base64 and percent-encoded payloads are
// accepted.
func DecodeDataURL(s string) (mimeType string, data []byte, err error) {
	du, err := dataurl.DecodeString(s)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrInvalidDataURL, err)
	}
	return du.MediaType.ContentType(), du.Data, nil
}
