package framer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gogpu/framer/internal/store"
)

// DefaultFrameID references the built-in frame.
const DefaultFrameID = "default"

const defaultCacheSize = 16

// ErrBuiltinFrame is returned when removing the built-in frame.
var ErrBuiltinFrame = errors.New("framer: built-in frame cannot be removed")

// FrameInfo describes a frame known to a Library.
type FrameInfo struct {
	ID      string
	Name    string
	Created time.Time
	Builtin bool
}

// Library resolves frame references to FrameAssets. Custom frames are kept
// in a store as PNG data URLs; decoded assets are cached so reselecting a
// frame does not decode or scan it again.
//
// Library is safe for concurrent use.
type Library struct {
	store  store.Store
	cache  *lru.Cache[string, *FrameAsset]
	detect []DetectOption

	// mu orders cache fills against removals. removals counts Remove
	// calls; a lookup that raced one does not cache what it loaded.
	mu       sync.Mutex
	removals uint64
}

// NewLibrary returns a library over s. The library does not own s.
func NewLibrary(s store.Store, opts ...LibraryOption) (*Library, error) {
	o := libraryOptions{cacheSize: defaultCacheSize}
	for _, opt := range opts {
		opt(&o)
	}
	cache, err := lru.New[string, *FrameAsset](o.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("framer: frame cache: %w", err)
	}
	return &Library{store: s, cache: cache, detect: o.detect}, nil
}

// Add validates png as a frame, stores it and returns its new ID.
func (l *Library) Add(ctx context.Context, name string, png []byte) (string, error) {
	asset, err := LoadFrameAsset(png, l.detect...)
	if err != nil {
		return "", err
	}
	id, err := store.NewID()
	if err != nil {
		return "", err
	}
	entry := store.Entry{
		ID:      id,
		Name:    name,
		DataURL: store.EncodeDataURL(PNGMIMEType, png),
	}
	if err := l.store.Put(ctx, entry); err != nil {
		return "", err
	}
	l.cache.Add(id, asset.withRef(id, name))
	Logger().Info("frame added", "id", id, "name", name, "cutout", asset.Cutout().String())
	return id, nil
}

// Asset returns the FrameAsset for id. IDs without the custom prefix are
// accepted. Unknown IDs yield ErrFrameNotFound.
func (l *Library) Asset(ctx context.Context, id string) (*FrameAsset, error) {
	if id == DefaultFrameID {
		return defaultAsset()
	}
	id = store.NormalizeID(id)
	if a, ok := l.cache.Get(id); ok {
		return a, nil
	}

	l.mu.Lock()
	removals := l.removals
	l.mu.Unlock()

	e, err := l.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrFrameNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	_, data, err := store.DecodeDataURL(e.DataURL)
	if err != nil {
		return nil, fmt.Errorf("%w: frame %s: %w", ErrDecode, id, err)
	}
	asset, err := LoadFrameAsset(data, l.detect...)
	if err != nil {
		return nil, fmt.Errorf("frame %s: %w", id, err)
	}
	asset = asset.withRef(e.ID, e.Name)
	l.mu.Lock()
	if l.removals == removals {
		l.cache.Add(id, asset)
	}
	l.mu.Unlock()
	return asset, nil
}

// Remove deletes a custom frame.
func (l *Library) Remove(ctx context.Context, id string) error {
	if id == DefaultFrameID {
		return ErrBuiltinFrame
	}
	id = store.NormalizeID(id)
	err := l.store.Delete(ctx, id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	l.mu.Lock()
	l.removals++
	l.cache.Remove(id)
	l.mu.Unlock()
	if err != nil {
		return fmt.Errorf("%w: %s", ErrFrameNotFound, id)
	}
	Logger().Info("frame removed", "id", id)
	return nil
}

// Frames lists the built-in frame followed by the custom frames in
// creation order.
func (l *Library) Frames(ctx context.Context) ([]FrameInfo, error) {
	entries, err := l.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]FrameInfo, 0, len(entries)+1)
	out = append(out, FrameInfo{ID: DefaultFrameID, Name: "Default", Builtin: true})
	for _, e := range entries {
		out = append(out, FrameInfo{ID: e.ID, Name: e.Name, Created: e.Created})
	}
	return out, nil
}

// IDs returns the IDs of all frames, DefaultFrameID first.
func (l *Library) IDs(ctx context.Context) ([]string, error) {
	frames, err := l.Frames(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(frames))
	for i, f := range frames {
		ids[i] = f.ID
	}
	return ids, nil
}

// Built-in frame geometry: a solid border around a transparent window.
const (
	defaultFrameWidth  = 800
	defaultFrameHeight = 1000
	defaultFrameBorder = 60
)

var defaultAsset = sync.OnceValues(func() (*FrameAsset, error) {
	frame, err := NewRaster(defaultFrameWidth, defaultFrameHeight)
	if err != nil {
		return nil, err
	}
	frame.Fill(0x1b, 0x2a, 0x41, 0xff)
	inner := image.Rect(defaultFrameBorder, defaultFrameBorder,
		defaultFrameWidth-defaultFrameBorder, defaultFrameHeight-defaultFrameBorder)
	// Thin light rule just outside the window.
	frame.FillRect(inner.Inset(-4), 0xe8, 0xd8, 0xb0, 0xff)
	frame.FillRect(inner, 0, 0, 0, 0)

	asset, err := NewFrameAsset(frame)
	if err != nil {
		return nil, err
	}
	return asset.withRef(DefaultFrameID, "Default"), nil
})
