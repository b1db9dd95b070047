package framer

import (
	"context"
	"sync"
)

// Session holds the selected frame and the latest composite of an
// interactive framing flow.
//
// Decoding and rendering run off the caller's goroutine without holding
// any lock. Frame and photo requests are numbered separately: a decoded
// frame or photo is dropped with ErrStale when a newer request of the
// same kind arrived meanwhile, and a composite is kept only if its frame
// and photo are still the selected ones. The visible result therefore
// always pairs the last requested frame with the last requested photo.
//
// Session is safe for concurrent use.
type Session struct {
	opts sessionOptions

	mu       sync.Mutex
	frameGen uint64
	photoGen uint64
	frame    *FrameAsset
	photo    *Raster
	result   *Raster
}

// NewSession returns an empty session.
func NewSession(opts ...SessionOption) *Session {
	var o sessionOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.encoder == nil {
		o.encoder = NewDataURLEncoder()
	}
	return &Session{opts: o}
}

// await runs fn on its own goroutine and suspends the caller until fn
// finishes or ctx is done.
func await[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn()
		ch <- result{v, err}
	}()
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case r := <-ch:
		return r.v, r.err
	}
}

// LoadFrame decodes a PNG frame, detects its cutout and selects it.
// On failure the current frame and result stay in place. If another frame
// was requested while this one decoded, the asset is returned together
// with ErrStale and not selected.
func (s *Session) LoadFrame(ctx context.Context, data []byte) (*FrameAsset, error) {
	gen := s.nextFrameGen()
	asset, err := await(ctx, func() (*FrameAsset, error) {
		return LoadFrameAsset(data, s.opts.detect...)
	})
	if err != nil {
		return nil, err
	}
	if _, err := s.selectFrame(ctx, gen, asset); err != nil {
		return asset, err
	}
	return asset, nil
}

// SetFrame selects asset and discards the current composite. If a photo
// was already set it is rendered into the new frame and the composite is
// returned; otherwise the result is nil.
func (s *Session) SetFrame(ctx context.Context, asset *FrameAsset) (*Raster, error) {
	if asset == nil {
		return nil, ErrInvalidDimensions
	}
	return s.selectFrame(ctx, s.nextFrameGen(), asset)
}

func (s *Session) nextFrameGen() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frameGen++
	return s.frameGen
}

func (s *Session) selectFrame(ctx context.Context, gen uint64, asset *FrameAsset) (*Raster, error) {
	s.mu.Lock()
	if s.frameGen != gen {
		s.mu.Unlock()
		Logger().Warn("stale frame discarded", "generation", gen)
		return nil, ErrStale
	}
	s.frame = asset
	s.result = nil
	photo := s.photo
	s.mu.Unlock()

	if photo == nil {
		return nil, nil
	}
	return s.render(ctx, asset, photo)
}

// SetPhoto decodes photo bytes and renders them into the current frame.
// A decode failure leaves the previous result visible. A photo superseded
// by a newer SetPhoto while decoding is dropped with ErrStale. If no frame
// is selected yet the photo is kept and ErrNoFrame is returned; it is
// rendered as soon as a frame arrives.
func (s *Session) SetPhoto(ctx context.Context, data []byte) (*Raster, error) {
	s.mu.Lock()
	s.photoGen++
	gen := s.photoGen
	s.mu.Unlock()

	photo, err := await(ctx, func() (*Raster, error) {
		return DecodePhoto(data)
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.photoGen != gen {
		s.mu.Unlock()
		Logger().Warn("stale photo discarded", "generation", gen)
		return nil, ErrStale
	}
	s.photo = photo
	frame := s.frame
	s.mu.Unlock()

	if frame == nil {
		return nil, ErrNoFrame
	}
	return s.render(ctx, frame, photo)
}

// render composites photo into frame and publishes the result if both are
// still selected. Otherwise whoever replaced them renders the newer pair.
func (s *Session) render(ctx context.Context, frame *FrameAsset, photo *Raster) (*Raster, error) {
	out, err := await(ctx, func() (*Raster, error) {
		return ComposeAsset(photo, frame, s.opts.compose...)
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frame != frame || s.photo != photo {
		Logger().Warn("stale render discarded", "frame", frame.ID())
		return nil, ErrStale
	}
	s.result = out
	return out, nil
}

// Frame returns the selected frame, or nil.
func (s *Session) Frame() *FrameAsset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// Result returns the latest composite and whether one exists.
func (s *Session) Result() (*Raster, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.result != nil
}

// Export encodes the latest composite. Export can be retried after an
// encode failure; the composite is not affected.
func (s *Session) Export(ctx context.Context) (*Export, error) {
	img, ok := s.Result()
	if !ok {
		return nil, ErrNoResult
	}
	exp, err := s.opts.encoder.Encode(ctx, img)
	if err != nil {
		Logger().Warn("export failed", "err", err)
		return nil, err
	}
	Logger().Info("composite exported", "name", exp.Name, "bytes", len(exp.Data))
	return exp, nil
}

// Close releases the session's encoder.
func (s *Session) Close() error {
	return s.opts.encoder.Close()
}
