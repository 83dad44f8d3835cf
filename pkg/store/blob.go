package store

import (
	"sort"
	"sync"

	"github.com/nvkv/credstore/pkg/codec"
	"github.com/nvkv/credstore/pkg/storage"
)

// poolHeaderSize is the serialized pool header: entry count (uint8) plus
// total pool size (uint16 LE). The pool size counts these 3 bytes too.
const poolHeaderSize = 3

// Blob keeps the credential set in an in-memory cache backed by a single
// opaque blob in a key/value store. The whole blob is reloaded once at
// construction and rewritten in full on every mutating commit; with at
// most 255 small records the durability write dominates either way.
//
// Iteration order (LoadAt, All) is sorted by SSID, which keeps indexes
// stable across saves. This differs from the arena backend's physical
// layout order; callers addressing by index must not mix backends.
type Blob struct {
	mu    sync.Mutex
	kv    storage.BlobStore
	key   string
	cache map[string]blobEntry
}

type blobEntry struct {
	passphrase string
	bssid      [codec.BSSIDSize]byte
}

// NewBlob loads the blob stored under key and decodes it into the cache.
// An absent blob, or a store that cannot be opened, yields an empty cache.
func NewBlob(kv storage.BlobStore, key string) *Blob {
	b := &Blob{kv: kv, key: key, cache: make(map[string]blobEntry)}

	if err := kv.Open(true); err != nil {
		return b
	}
	defer kv.Close()

	data, ok := kv.Get(key)
	if !ok || len(data) < poolHeaderSize {
		return b
	}

	count := int(data[0])
	cur := codec.NewCursor(codec.Bytes(data), poolHeaderSize, len(data))
	for i := 0; i < count; i++ {
		cred, _, ok := codec.ReadRecord(cur)
		if !ok {
			break
		}
		b.cache[cred.SSID] = blobEntry{passphrase: cred.Passphrase, bssid: cred.BSSID}
	}
	return b
}

// Load returns the credential saved under ssid, or ErrNotFound.
func (b *Blob) Load(ssid string) (*codec.Credential, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry, ok := b.cache[ssid]
	if !ok {
		return nil, ErrNotFound
	}
	cred := entryCredential(ssid, entry)
	return &cred, nil
}

// LoadAt returns the credential at index in SSID-sorted order.
func (b *Blob) LoadAt(index int) (*codec.Credential, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	names := b.namesLocked()
	if index < 0 || index >= len(names) {
		return nil, ErrOutOfRange
	}
	cred := entryCredential(names[index], b.cache[names[index]])
	return &cred, nil
}

// All returns every credential in SSID-sorted order.
func (b *Blob) All() ([]codec.Credential, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	names := b.namesLocked()
	creds := make([]codec.Credential, 0, len(names))
	for _, name := range names {
		creds = append(creds, entryCredential(name, b.cache[name]))
	}
	return creds, nil
}

// Entries returns the number of cached credentials.
func (b *Blob) Entries() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.cache)
}

// Save replaces any entry with the same SSID, inserts the new one, and
// commits the reserialized pool as a single blob write. The cache is only
// mutated after the commit succeeded, so a failed save leaves both the
// blob and the cache untouched.
func (b *Blob) Save(cred *codec.Credential) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := validate(cred); err != nil {
		return err
	}

	next := b.cloneLocked()
	next[cred.SSID] = blobEntry{passphrase: cred.Passphrase, bssid: cred.BSSID}

	if err := b.commitLocked(next); err != nil {
		return err
	}
	b.cache = next
	return nil
}

// Delete removes the entry for ssid and commits the shrunk pool, or
// returns ErrNotFound leaving the store unchanged.
func (b *Blob) Delete(ssid string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.cache[ssid]; !ok {
		return ErrNotFound
	}

	next := b.cloneLocked()
	delete(next, ssid)

	if err := b.commitLocked(next); err != nil {
		return err
	}
	b.cache = next
	return nil
}

// commitLocked serializes the given cache state and writes it back as one
// blob. The caller holds the mutex.
func (b *Blob) commitLocked(entries map[string]blobEntry) error {
	buf, err := buildPool(entries)
	if err != nil {
		return err
	}
	if err := b.kv.Open(false); err != nil {
		return ErrStorageUnavailable
	}
	defer b.kv.Close()

	n, err := b.kv.Put(b.key, buf)
	if err != nil || n != len(buf) {
		return ErrCommitFailed
	}
	return nil
}

// buildPool serializes a cache state:
//
//	[0]     entry count (uint8)
//	[1..2]  pool size (uint16 LE), including these 3 header bytes
//	[3..)   records in SSID-sorted order, trailing 0x00 iff entries > 0
func buildPool(entries map[string]blobEntry) (codec.Bytes, error) {
	if len(entries) > MaxEntries {
		return nil, ErrStoreFull
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	size := 0
	for _, name := range names {
		entry := entries[name]
		size += len(name) + 1 + len(entry.passphrase) + 1 + codec.BSSIDSize
	}
	if len(entries) > 0 {
		size++ // container terminator
	}
	poolSize := size + poolHeaderSize
	if poolSize > 0xFFFF {
		return nil, ErrStoreFull
	}

	buf := make(codec.Bytes, poolSize)
	buf[0] = byte(len(entries))
	buf[1] = byte(poolSize)
	buf[2] = byte(poolSize >> 8)

	cur := codec.NewCursor(buf, poolHeaderSize, poolSize)
	for _, name := range names {
		cred := entryCredential(name, entries[name])
		codec.WriteRecord(cur, &cred)
	}
	if len(entries) > 0 {
		buf[poolSize-1] = 0x00
	}
	return buf, nil
}

func (b *Blob) cloneLocked() map[string]blobEntry {
	next := make(map[string]blobEntry, len(b.cache)+1)
	for name, entry := range b.cache {
		next[name] = entry
	}
	return next
}

func (b *Blob) namesLocked() []string {
	names := make([]string, 0, len(b.cache))
	for name := range b.cache {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func entryCredential(ssid string, entry blobEntry) codec.Credential {
	return codec.Credential{SSID: ssid, Passphrase: entry.passphrase, BSSID: entry.bssid}
}
