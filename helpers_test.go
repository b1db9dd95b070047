package framer

import (
	"testing"
)

// newTestFrame returns an opaque blue frame with a fully transparent hole.
// An empty hole yields a fully opaque frame.
func newTestFrame(t testing.TB, w, h int, hole Rect) *Raster {
	t.Helper()
	frame := solidRaster(t, w, h, 0, 0, 255, 255)
	if !hole.Empty() {
		frame.FillRect(hole.Image(), 0, 0, 0, 0)
	}
	return frame
}

func solidRaster(t testing.TB, w, h int, r, g, b, a uint8) *Raster {
	t.Helper()
	img, err := NewRaster(w, h)
	if err != nil {
		t.Fatalf("NewRaster(%d, %d) error = %v", w, h, err)
	}
	img.Fill(r, g, b, a)
	return img
}

func pngBytes(t testing.TB, img *Raster) []byte {
	t.Helper()
	data, err := EncodePNG(img)
	if err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	return data
}

func assertPixel(t *testing.T, img *Raster, x, y int, want [4]uint8) {
	t.Helper()
	r, g, b, a := img.GetRGBA(x, y)
	if got := [4]uint8{r, g, b, a}; got != want {
		t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
	}
}
