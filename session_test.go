package framer

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSessionFlow(t *testing.T) {
	ctx := context.Background()
	s := NewSession(WithComposeOptions(WithInterpolation(InterpNearest)))
	t.Cleanup(func() { s.Close() })

	if _, ok := s.Result(); ok {
		t.Fatal("new session has a result")
	}
	if _, err := s.Export(ctx); !errors.Is(err, ErrNoResult) {
		t.Errorf("Export() error = %v, want ErrNoResult", err)
	}

	cutout := Rect{Left: 10, Top: 10, Right: 30, Bottom: 20}
	frame := newTestFrame(t, 40, 30, cutout)
	asset, err := s.LoadFrame(ctx, pngBytes(t, frame))
	if err != nil {
		t.Fatalf("LoadFrame() error = %v", err)
	}
	if asset.Cutout() != cutout {
		t.Errorf("Cutout() = %v, want %v", asset.Cutout(), cutout)
	}
	if s.Frame() != asset {
		t.Error("Frame() does not return the loaded asset")
	}

	out, err := s.SetPhoto(ctx, pngBytes(t, solidRaster(t, 8, 4, 255, 0, 0, 255)))
	if err != nil {
		t.Fatalf("SetPhoto() error = %v", err)
	}
	assertPixel(t, out, 15, 15, [4]uint8{255, 0, 0, 255})
	assertPixel(t, out, 0, 0, [4]uint8{0, 0, 255, 255})

	got, ok := s.Result()
	if !ok || got != out {
		t.Error("Result() does not return the last render")
	}

	exp, err := s.Export(ctx)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	want := pngBytes(t, out)
	if string(exp.Data) != string(want) {
		t.Error("Export() bytes differ from the composite encoding")
	}
}

func TestSessionDecodeFailureKeepsResult(t *testing.T) {
	ctx := context.Background()
	s := NewSession()
	t.Cleanup(func() { s.Close() })

	asset, err := NewFrameAsset(newTestFrame(t, 20, 20, Rect{Left: 5, Top: 5, Right: 15, Bottom: 15}))
	if err != nil {
		t.Fatal(err)
	}
	if out, err := s.SetFrame(ctx, asset); err != nil || out != nil {
		t.Fatalf("SetFrame() = %v, %v, want nil, nil", out, err)
	}
	first, err := s.SetPhoto(ctx, pngBytes(t, solidRaster(t, 4, 4, 0, 255, 0, 255)))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.SetPhoto(ctx, []byte("definitely not an image")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("SetPhoto(garbage) error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := s.SetPhoto(ctx, []byte("\x89PNG\r\n\x1a\n broken")); !errors.Is(err, ErrDecode) {
		t.Errorf("SetPhoto(truncated png) error = %v, want ErrDecode", err)
	}

	got, ok := s.Result()
	if !ok || got != first {
		t.Error("decode failure replaced the visible result")
	}
}

func TestSessionPhotoBeforeFrame(t *testing.T) {
	ctx := context.Background()
	s := NewSession()
	t.Cleanup(func() { s.Close() })

	if _, err := s.SetPhoto(ctx, pngBytes(t, solidRaster(t, 4, 4, 0, 255, 0, 255))); !errors.Is(err, ErrNoFrame) {
		t.Fatalf("SetPhoto() error = %v, want ErrNoFrame", err)
	}

	asset, err := NewFrameAsset(newTestFrame(t, 10, 10, Rect{Left: 2, Top: 2, Right: 8, Bottom: 8}))
	if err != nil {
		t.Fatal(err)
	}
	out, err := s.SetFrame(ctx, asset)
	if err != nil {
		t.Fatalf("SetFrame() error = %v", err)
	}
	if out == nil {
		t.Fatal("SetFrame() did not render the pending photo")
	}
	assertPixel(t, out, 5, 5, [4]uint8{0, 255, 0, 255})
}

func TestSessionFrameSwapInvalidatesResult(t *testing.T) {
	ctx := context.Background()
	s := NewSession()
	t.Cleanup(func() { s.Close() })

	a, _ := NewFrameAsset(newTestFrame(t, 10, 10, Rect{Left: 2, Top: 2, Right: 8, Bottom: 8}))
	b, _ := NewFrameAsset(newTestFrame(t, 30, 20, Rect{Left: 1, Top: 1, Right: 29, Bottom: 19}))

	if _, err := s.SetFrame(ctx, a); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SetPhoto(ctx, pngBytes(t, solidRaster(t, 4, 4, 9, 9, 9, 255))); err != nil {
		t.Fatal(err)
	}
	out, err := s.SetFrame(ctx, b)
	if err != nil {
		t.Fatal(err)
	}
	if w, h := out.Size(); w != 30 || h != 20 {
		t.Errorf("composite after swap is %dx%d, want 30x20", w, h)
	}
}

// waitForRequest blocks until the session has numbered n requests of the
// given kind, so a request started on another goroutine is known to be
// older than the next one.
func waitForRequest(t *testing.T, s *Session, frame bool, n uint64) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		s.mu.Lock()
		got := s.photoGen
		if frame {
			got = s.frameGen
		}
		s.mu.Unlock()
		if got >= n {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("request %d never started", n)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestSessionNewerPhotoWins(t *testing.T) {
	ctx := context.Background()
	s := NewSession()
	t.Cleanup(func() { s.Close() })

	asset, _ := NewFrameAsset(newTestFrame(t, 64, 64, Rect{Left: 8, Top: 8, Right: 56, Bottom: 56}))
	if _, err := s.SetFrame(ctx, asset); err != nil {
		t.Fatal(err)
	}

	slow := pngBytes(t, solidRaster(t, 2000, 1500, 255, 0, 0, 255))
	fast := pngBytes(t, solidRaster(t, 4, 4, 0, 255, 0, 255))

	done := make(chan error, 1)
	go func() {
		_, err := s.SetPhoto(ctx, slow)
		done <- err
	}()
	waitForRequest(t, s, false, 1)
	if _, err := s.SetPhoto(ctx, fast); err != nil {
		t.Fatalf("SetPhoto(fast) error = %v", err)
	}
	if err := <-done; err != nil && !errors.Is(err, ErrStale) {
		t.Fatalf("SetPhoto(slow) error = %v", err)
	}

	out, ok := s.Result()
	if !ok {
		t.Fatal("no result")
	}
	assertPixel(t, out, 32, 32, [4]uint8{0, 255, 0, 255})
}

func TestSessionNewerFrameWins(t *testing.T) {
	ctx := context.Background()
	s := NewSession()
	t.Cleanup(func() { s.Close() })

	slow := pngBytes(t, newTestFrame(t, 2000, 1500, Rect{Left: 100, Top: 100, Right: 1900, Bottom: 1400}))
	fast := pngBytes(t, newTestFrame(t, 10, 10, Rect{Left: 2, Top: 2, Right: 8, Bottom: 8}))

	done := make(chan error, 1)
	go func() {
		_, err := s.LoadFrame(ctx, slow)
		done <- err
	}()
	waitForRequest(t, s, true, 1)
	want, err := s.LoadFrame(ctx, fast)
	if err != nil {
		t.Fatalf("LoadFrame(fast) error = %v", err)
	}
	if err := <-done; err != nil && !errors.Is(err, ErrStale) {
		t.Fatalf("LoadFrame(slow) error = %v", err)
	}

	if got := s.Frame(); got != want {
		w, h := got.Size()
		t.Errorf("selected frame is %dx%d, want the 10x10 one requested last", w, h)
	}
}

func TestSessionFrameSwapDuringPhotoDecode(t *testing.T) {
	ctx := context.Background()
	s := NewSession()
	t.Cleanup(func() { s.Close() })

	a, _ := NewFrameAsset(newTestFrame(t, 10, 10, Rect{Left: 2, Top: 2, Right: 8, Bottom: 8}))
	b, _ := NewFrameAsset(newTestFrame(t, 30, 20, Rect{Left: 1, Top: 1, Right: 29, Bottom: 19}))
	if _, err := s.SetFrame(ctx, a); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SetPhoto(ctx, pngBytes(t, solidRaster(t, 4, 4, 0, 255, 0, 255))); err != nil {
		t.Fatal(err)
	}

	newer := pngBytes(t, solidRaster(t, 2000, 1500, 255, 0, 0, 255))
	done := make(chan error, 1)
	go func() {
		_, err := s.SetPhoto(ctx, newer)
		done <- err
	}()
	waitForRequest(t, s, false, 2)
	if _, err := s.SetFrame(ctx, b); err != nil && !errors.Is(err, ErrStale) {
		t.Fatalf("SetFrame() error = %v", err)
	}
	if err := <-done; err != nil && !errors.Is(err, ErrStale) {
		t.Fatalf("SetPhoto() error = %v", err)
	}

	if s.Frame() != b {
		t.Fatal("frame swap was lost")
	}
	out, ok := s.Result()
	if !ok {
		t.Fatal("no result after frame swap")
	}
	if w, h := out.Size(); w != 30 || h != 20 {
		t.Errorf("composite is %dx%d, want 30x20", w, h)
	}
	assertPixel(t, out, 15, 10, [4]uint8{255, 0, 0, 255})
}

func TestSessionCancelled(t *testing.T) {
	s := NewSession()
	t.Cleanup(func() { s.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.LoadFrame(ctx, pngBytes(t, newTestFrame(t, 4, 4, Rect{}))); !errors.Is(err, context.Canceled) {
		t.Errorf("LoadFrame(cancelled) error = %v, want context.Canceled", err)
	}
	if s.Frame() != nil {
		t.Error("cancelled LoadFrame selected a frame")
	}
}
