package store

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"123", "custom-123"},
		{"custom-123", "custom-123"},
		{"  abc ", "custom-abc"},
		{"custom-custom-1", "custom-custom-1"},
	}
	for _, tt := range tests {
		if got := NormalizeID(tt.in); got != tt.want {
			t.Errorf("NormalizeID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewID(t *testing.T) {
	before := time.Now().Add(-time.Second)
	a, err := NewID()
	if err != nil {
		t.Fatalf("NewID() error = %v", err)
	}
	b, err := NewID()
	if err != nil {
		t.Fatalf("NewID() error = %v", err)
	}
	if !strings.HasPrefix(a, Prefix) {
		t.Errorf("NewID() = %q, want %q prefix", a, Prefix)
	}
	if a == b {
		t.Errorf("NewID() returned %q twice", a)
	}
	if a >= b {
		t.Errorf("NewID() not time ordered: %q >= %q", a, b)
	}
	ts, ok := IDTime(a)
	if !ok {
		t.Fatalf("IDTime(%q) failed", a)
	}
	if ts.Before(before) || ts.After(time.Now().Add(time.Second)) {
		t.Errorf("IDTime(%q) = %v, want about now", a, ts)
	}
	if _, ok := IDTime("custom-1700000000000"); ok {
		t.Error("IDTime accepted a non-UUID id")
	}
}

func TestDataURL(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G', 0, 1, 2, 255}
	url := EncodeDataURL("image/png", payload)
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Fatalf("EncodeDataURL() = %q", url)
	}
	mime, data, err := DecodeDataURL(url)
	if err != nil {
		t.Fatalf("DecodeDataURL() error = %v", err)
	}
	if mime != "image/png" {
		t.Errorf("mime = %q, want image/png", mime)
	}
	if string(data) != string(payload) {
		t.Errorf("data = %v, want %v", data, payload)
	}
}

func TestDecodeDataURLInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"no scheme", "image/png;base64,AAAA"},
		{"no comma", "data:image/png;base64"},
		{"bad payload", "data:image/png;base64,!!!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := DecodeDataURL(tt.in); !errors.Is(err, ErrInvalidDataURL) {
				t.Errorf("DecodeDataURL(%q) error = %v, want ErrInvalidDataURL", tt.in, err)
			}
		})
	}
}

func TestDecodeDataURLForms(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantMIME string
		wantData string
	}{
		{"percent encoded", "data:text/plain,A%20brief%20note", "text/plain", "A brief note"},
		{"default type", "data:,hello", "text/plain", "hello"},
		{"params before base64", "data:image/png;name=gold.png;base64,aGV5YQ==", "image/png", "heya"},
		{"charset param", "data:text/plain;charset=utf-8;base64,aGV5YQ==", "text/plain", "heya"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mime, data, err := DecodeDataURL(tt.in)
			if err != nil {
				t.Fatalf("DecodeDataURL(%q) error = %v", tt.in, err)
			}
			if mime != tt.wantMIME {
				t.Errorf("mime = %q, want %q", mime, tt.wantMIME)
			}
			if string(data) != tt.wantData {
				t.Errorf("data = %q, want %q", data, tt.wantData)
			}
		})
	}
}

// storeFactories lets every behavioral test run against each implementation.
func storeFactories(t *testing.T) map[string]func() Store {
	t.Helper()
	return map[string]func() Store{
		"memory": func() Store { return NewMemoryStore() },
		"sqlite": func() Store {
			s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "frames.db"))
			if err != nil {
				t.Fatalf("OpenSQLite() error = %v", err)
			}
			return s
		},
	}
}

func TestStorePutGet(t *testing.T) {
	ctx := context.Background()
	for name, open := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := open()
			t.Cleanup(func() { s.Close() })

			if err := s.Put(ctx, Entry{ID: "42", Name: "Gold", DataURL: "data:image/png;base64,AA=="}); err != nil {
				t.Fatalf("Put() error = %v", err)
			}
			for _, id := range []string{"42", "custom-42"} {
				e, err := s.Get(ctx, id)
				if err != nil {
					t.Fatalf("Get(%q) error = %v", id, err)
				}
				if e.ID != "custom-42" || e.Name != "Gold" || e.DataURL != "data:image/png;base64,AA==" {
					t.Errorf("Get(%q) = %+v", id, e)
				}
				if e.Created.IsZero() {
					t.Errorf("Get(%q).Created is zero", id)
				}
			}

			if err := s.Put(ctx, Entry{ID: "custom-42", Name: "Silver", DataURL: "data:image/png;base64,AQ=="}); err != nil {
				t.Fatalf("Put() replace error = %v", err)
			}
			e, err := s.Get(ctx, "42")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if e.Name != "Silver" || e.DataURL != "data:image/png;base64,AQ==" {
				t.Errorf("Get() after replace = %+v", e)
			}
		})
	}
}

func TestStoreMissing(t *testing.T) {
	ctx := context.Background()
	for name, open := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := open()
			t.Cleanup(func() { s.Close() })

			if _, err := s.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get() error = %v, want ErrNotFound", err)
			}
			if err := s.Delete(ctx, "nope"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Delete() error = %v, want ErrNotFound", err)
			}
			if err := s.Put(ctx, Entry{DataURL: "x"}); !errors.Is(err, ErrInvalidID) {
				t.Errorf("Put(empty id) error = %v, want ErrInvalidID", err)
			}
		})
	}
}

func TestStoreListDelete(t *testing.T) {
	ctx := context.Background()
	for name, open := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := open()
			t.Cleanup(func() { s.Close() })

			var ids []string
			for range 3 {
				id, err := NewID()
				if err != nil {
					t.Fatal(err)
				}
				ids = append(ids, id)
				if err := s.Put(ctx, Entry{ID: id, DataURL: "data:image/png;base64,"}); err != nil {
					t.Fatalf("Put() error = %v", err)
				}
			}

			list, err := s.List(ctx)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(list) != 3 {
				t.Fatalf("List() returned %d entries, want 3", len(list))
			}
			for i, e := range list {
				if e.ID != ids[i] {
					t.Errorf("List()[%d].ID = %q, want %q", i, e.ID, ids[i])
				}
			}

			if err := s.Delete(ctx, ids[1]); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			list, err = s.List(ctx)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(list) != 2 || list[0].ID != ids[0] || list[1].ID != ids[2] {
				t.Errorf("List() after delete = %+v", list)
			}
		})
	}
}

func TestSQLiteReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "frames.db")

	s, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	if err := s.Put(ctx, Entry{ID: "1", Name: "kept", DataURL: "data:image/png;base64,"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s, err = OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	e, err := s.Get(ctx, "1")
	if err != nil {
		t.Fatalf("Get() after reopen error = %v", err)
	}
	if e.Name != "kept" {
		t.Errorf("Name = %q, want kept", e.Name)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT max(version) FROM migration").Scan(&version); err != nil {
		t.Fatal(err)
	}
	if version != len(migrations) {
		t.Errorf("schema version = %d, want %d", version, len(migrations))
	}
}

func TestMemoryStoreClosed(t *testing.T) {
	s := NewMemoryStore()
	s.Close()
	if _, err := s.List(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("List() after Close error = %v, want ErrClosed", err)
	}
}
