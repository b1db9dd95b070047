package image

import "bytes"

// Format identifies an encoded image container.
type Format uint8

const (
	// FormatUnknown is returned when the signature is not recognized.
	FormatUnknown Format = iota

	// FormatPNG is the Portable Network Graphics format. Frames must use it.
	FormatPNG

	// FormatJPEG is the JPEG/JFIF format.
	FormatJPEG

	// FormatGIF is the Graphics Interchange Format (first frame only).
	FormatGIF

	// FormatBMP is the Windows bitmap format.
	FormatBMP

	// FormatTIFF is the Tagged Image File Format.
	FormatTIFF

	// FormatWebP is the WebP format.
	FormatWebP

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatInfo contains metadata about an encoded format.
type FormatInfo struct {
	// Name is the short name used by image.RegisterFormat.
	Name string

	// MIMEType is the media type used in data URLs.
	MIMEType string

	// CanHaveAlpha indicates if the format can carry an alpha channel.
	CanHaveAlpha bool
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatUnknown: {Name: "unknown", MIMEType: "application/octet-stream"},
	FormatPNG:     {Name: "png", MIMEType: "image/png", CanHaveAlpha: true},
	FormatJPEG:    {Name: "jpeg", MIMEType: "image/jpeg"},
	FormatGIF:     {Name: "gif", MIMEType: "image/gif", CanHaveAlpha: true},
	FormatBMP:     {Name: "bmp", MIMEType: "image/bmp", CanHaveAlpha: true},
	FormatTIFF:    {Name: "tiff", MIMEType: "image/tiff", CanHaveAlpha: true},
	FormatWebP:    {Name: "webp", MIMEType: "image/webp", CanHaveAlpha: true},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return formatInfoTable[FormatUnknown]
	}
	return formatInfoTable[f]
}

// MIMEType returns the media type of the format.
func (f Format) MIMEType() string {
	return f.Info().MIMEType
}

// String returns the short format name.
func (f Format) String() string {
	return f.Info().Name
}

// IsValid returns true if the format is a known, decodable format.
func (f Format) IsValid() bool {
	return f > FormatUnknown && f < formatCount
}

// FormatFromMIME maps a media type to a Format.
func FormatFromMIME(mime string) Format {
	for f := FormatPNG; f < formatCount; f++ {
		if formatInfoTable[f].MIMEType == mime {
			return f
		}
	}
	if mime == "image/jpg" {
		return FormatJPEG
	}
	return FormatUnknown
}

var (
	sigPNG    = []byte("\x89PNG\r\n\x1a\n")
	sigJPEG   = []byte{0xff, 0xd8, 0xff}
	sigGIF87  = []byte("GIF87a")
	sigGIF89  = []byte("GIF89a")
	sigBMP    = []byte("BM")
	sigTIFFLE = []byte("II*\x00")
	sigTIFFBE = []byte("MM\x00*")
)

// Sniff detects the container format from the leading bytes of data.
func Sniff(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, sigPNG):
		return FormatPNG
	case bytes.HasPrefix(data, sigJPEG):
		return FormatJPEG
	case bytes.HasPrefix(data, sigGIF87), bytes.HasPrefix(data, sigGIF89):
		return FormatGIF
	case bytes.HasPrefix(data, sigTIFFLE), bytes.HasPrefix(data, sigTIFFBE):
		return FormatTIFF
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return FormatWebP
	case bytes.HasPrefix(data, sigBMP):
		return FormatBMP
	default:
		return FormatUnknown
	}
}
