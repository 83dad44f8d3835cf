package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nvkv/credstore/pkg/codec"
)

const fillByte = codec.FillByte

// Region is a byte-addressable storage area with scoped access: a caller
// opens it, reads and writes bytes, then commits and closes. Reads outside
// the written extent return the fill byte, matching erased non-volatile
// storage.
type Region interface {
	// Open prepares at least capacity bytes for access.
	Open(capacity int) error

	// ReadByte returns the byte at off.
	ReadByte(off int) byte

	// WriteByte stores v at off. The write is not durable until Commit.
	WriteByte(off int, v byte)

	// Commit flushes all writes since Open to the backing store.
	Commit() error

	// Close releases the handle. Uncommitted writes are discarded.
	Close()
}

// FileRegion keeps the region in a single file. Open loads the file into a
// working buffer, Commit writes the buffer back and fsyncs, mirroring
// EEPROM-style begin/commit/end access.
type FileRegion struct {
	path string
	buf  []byte
	open bool
}

// NewFileRegion returns a region backed by the file at path. The file is
// created on the first Commit.
func NewFileRegion(path string) *FileRegion {
	return &FileRegion{path: path}
}

// Open reads the backing file into the working buffer and extends it to
// capacity with fill bytes.
func (r *FileRegion) Open(capacity int) error {
	data, err := os.ReadFile(r.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("open region %s: %w", r.path, err)
	}
	r.buf = data
	r.grow(capacity)
	r.open = true
	return nil
}

// ReadByte returns the byte at off, or the fill byte past the extent.
func (r *FileRegion) ReadByte(off int) byte {
	if off >= len(r.buf) {
		return fillByte
	}
	return r.buf[off]
}

// WriteByte stores v at off, growing the working buffer when needed.
func (r *FileRegion) WriteByte(off int, v byte) {
	r.grow(off + 1)
	r.buf[off] = v
}

// Commit writes the working buffer back to the file and fsyncs it.
func (r *FileRegion) Commit() error {
	if !r.open {
		return fmt.Errorf("commit region %s: not open", r.path)
	}
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("commit region %s: %w", r.path, err)
		}
	}
	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("commit region %s: %w", r.path, err)
	}
	if _, err := f.Write(r.buf); err != nil {
		f.Close()
		return fmt.Errorf("commit region %s: %w", r.path, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("commit region %s: %w", r.path, err)
	}
	return f.Close()
}

// Close drops the working buffer.
func (r *FileRegion) Close() {
	r.buf = nil
	r.open = false
}

func (r *FileRegion) grow(n int) {
	for len(r.buf) < n {
		r.buf = append(r.buf, fillByte)
	}
}

// MemRegion is a volatile in-memory region. The buffer persists across
// Open/Close cycles so it behaves like a backing store within one process;
// it is the region of choice for tests and for callers that handle
// durability themselves.
type MemRegion struct {
	buf []byte
}

// NewMemRegion returns an empty in-memory region.
func NewMemRegion() *MemRegion {
	return &MemRegion{}
}

// Open extends the buffer to capacity with fill bytes.
func (r *MemRegion) Open(capacity int) error {
	r.grow(capacity)
	return nil
}

// ReadByte returns the byte at off, or the fill byte past the extent.
func (r *MemRegion) ReadByte(off int) byte {
	if off >= len(r.buf) {
		return fillByte
	}
	return r.buf[off]
}

// WriteByte stores v at off, growing the buffer when needed.
func (r *MemRegion) WriteByte(off int, v byte) {
	r.grow(off + 1)
	r.buf[off] = v
}

// Commit is a no-op: the buffer is the backing store.
func (r *MemRegion) Commit() error { return nil }

// Close is a no-op.
func (r *MemRegion) Close() {}

// Bytes exposes the raw buffer for inspection in tests.
func (r *MemRegion) Bytes() []byte { return r.buf }

func (r *MemRegion) grow(n int) {
	for len(r.buf) < n {
		r.buf = append(r.buf, fillByte)
	}
}
