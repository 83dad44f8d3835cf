package storage

import (
	"fmt"

	"github.com/cockroachdb/pebble"
)

// BlobStore is a key/value primitive holding opaque byte blobs. Access is
// scoped the same way as Region: open, get/put, close.
type BlobStore interface {
	// Open acquires the store. A read-only open may be served more cheaply.
	Open(readonly bool) error

	// Get returns the blob stored under key, or ok=false when absent.
	Get(key string) ([]byte, bool)

	// Put stores buf under key durably and returns the number of bytes
	// written.
	Put(key string, buf []byte) (int, error)

	// Close releases the store handle.
	Close() error
}

// PebbleStore keeps blobs in a pebble database. The database is opened per
// access scope and closed again, so at most one handle exists at a time.
type PebbleStore struct {
	path string
	db   *pebble.DB
}

// NewPebbleStore returns a blob store backed by a pebble database at path.
func NewPebbleStore(path string) *PebbleStore {
	return &PebbleStore{path: path}
}

// Open opens the pebble database.
func (s *PebbleStore) Open(readonly bool) error {
	if s.db != nil {
		return nil
	}
	db, err := pebble.Open(s.path, &pebble.Options{ReadOnly: readonly})
	if err != nil {
		return fmt.Errorf("open blob store %s: %w", s.path, err)
	}
	s.db = db
	return nil
}

// Get returns the blob under key. The returned slice is a copy and stays
// valid after Close.
func (s *PebbleStore) Get(key string) ([]byte, bool) {
	if s.db == nil {
		return nil, false
	}
	data, closer, err := s.db.Get([]byte(key))
	if err != nil {
		// pebble.ErrNotFound and read failures both read as absent.
		return nil, false
	}
	defer closer.Close()

	out := make([]byte, len(data))
	copy(out, data)
	return out, true
}

// Put stores buf under key with a synced write.
func (s *PebbleStore) Put(key string, buf []byte) (int, error) {
	if s.db == nil {
		return 0, fmt.Errorf("put blob %s: store not open", key)
	}
	if err := s.db.Set([]byte(key), buf, pebble.Sync); err != nil {
		return 0, fmt.Errorf("put blob %s: %w", key, err)
	}
	return len(buf), nil
}

// Close closes the pebble database.
func (s *PebbleStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// MemBlobStore is a volatile map-backed blob store for tests and embedding.
type MemBlobStore struct {
	blobs map[string][]byte
}

// NewMemBlobStore returns an empty in-memory blob store.
func NewMemBlobStore() *MemBlobStore {
	return &MemBlobStore{blobs: make(map[string][]byte)}
}

// Open is a no-op.
func (s *MemBlobStore) Open(readonly bool) error { return nil }

// Get returns a copy of the blob under key.
func (s *MemBlobStore) Get(key string) ([]byte, bool) {
	data, ok := s.blobs[key]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true
}

// Put stores a copy of buf under key.
func (s *MemBlobStore) Put(key string, buf []byte) (int, error) {
	data := make([]byte, len(buf))
	copy(data, buf)
	s.blobs[key] = data
	return len(buf), nil
}

// Close is a no-op.
func (s *MemBlobStore) Close() error { return nil }
