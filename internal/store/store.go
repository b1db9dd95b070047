// Package store persists custom frame images as data URLs keyed by frame ID.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Prefix marks IDs of user-supplied frames.
const Prefix = "custom-"

// Store errors.
var (
	// ErrNotFound is returned when no entry exists for an ID.
	ErrNotFound = errors.New("store: not found")

	// ErrInvalidID is returned for an empty ID.
	ErrInvalidID = errors.New("store: invalid id")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("store: closed")
)

// Entry is one stored frame.
type Entry struct {
	ID      string
	Name    string
	DataURL string
	Created time.Time
}

// Store is a key to data-URL store for frame images.
//
// Implementations are safe for concurrent use.
type Store interface {
	// Put inserts or replaces the entry with e.ID. IDs are normalized.
	Put(ctx context.Context, e Entry) error

	// Get returns the entry for id or ErrNotFound.
	Get(ctx context.Context, id string) (Entry, error)

	// Delete removes the entry for id or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// List returns all entries ordered by ID. Since IDs are time-ordered
	// this is also creation order.
	List(ctx context.Context) ([]Entry, error)

	// Close releases the store's resources.
	Close() error
}

// NormalizeID adds Prefix to id unless it already carries it.
func NormalizeID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || strings.HasPrefix(id, Prefix) {
		return id
	}
	return Prefix + id
}

// NewID returns a fresh, time-ordered frame ID.
func NewID() (string, error) {
	u, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("store: new id: %w", err)
	}
	return Prefix + u.String(), nil
}

// IDTime extracts the creation time encoded in an ID made by NewID.
func IDTime(id string) (time.Time, bool) {
	u, err := uuid.Parse(strings.TrimPrefix(id, Prefix))
	if err != nil || u.Version() != 7 {
		return time.Time{}, false
	}
	sec, nsec := u.Time().UnixTime()
	return time.Unix(sec, nsec), true
}

func prepare(e Entry) (Entry, error) {
	e.ID = NormalizeID(e.ID)
	if e.ID == "" {
		return Entry{}, ErrInvalidID
	}
	if e.Created.IsZero() {
		if t, ok := IDTime(e.ID); ok {
			e.Created = t
		} else {
			e.Created = time.Now()
		}
	}
	e.Created = e.Created.UTC()
	return e, nil
}
