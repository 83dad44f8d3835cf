package store

import (
	"sync"

	"github.com/nvkv/credstore/pkg/codec"
	"github.com/nvkv/credstore/pkg/storage"
)

// arenaMagic tags a region that has been initialized by this engine.
// A region without it is treated as uninitialized and logically empty.
const arenaMagic = "CREDSTOR"

// Arena stores credentials directly in a linear byte region.
//
// Layout, relative to the configured base offset:
//
//	[0..8)   magic identifier, no terminator
//	[8]      entry count (uint8)
//	[9..10]  container size in bytes, excluding the header (uint16 LE)
//	[11..)   records back to back, freed spans filled with 0xFF,
//	         a single 0x00 terminates the area once entries > 0
//
// Deletion erases a record's exact span in place; insertion reuses the
// first fill run large enough, or appends and grows the container. The
// area is never compacted and never rewritten wholesale.
type Arena struct {
	mu     sync.Mutex
	region storage.Region
	base   int

	entries     uint8
	containSize uint16

	// lastMatch holds the offset of the most recently matched record's
	// first SSID byte; delete and replace erase from here.
	lastMatch int
}

// NewArena opens the region header at the given base offset. A region
// whose magic does not match, or that cannot be opened, starts out
// logically empty; nothing is written until the first successful Save.
func NewArena(region storage.Region, base int) *Arena {
	a := &Arena{region: region, base: base}

	if err := region.Open(a.headerEnd()); err != nil {
		return a
	}
	defer region.Close()

	dp := a.base
	magic := make([]byte, len(arenaMagic))
	for i := range magic {
		magic[i] = region.ReadByte(dp)
		dp++
	}
	if string(magic) == arenaMagic {
		a.entries = region.ReadByte(dp)
		dp++
		a.containSize = uint16(region.ReadByte(dp)) | uint16(region.ReadByte(dp+1))<<8
	}
	return a
}

// headerEnd returns the offset of the first record area byte.
func (a *Arena) headerEnd() int {
	return a.base + len(arenaMagic) + 1 + 2
}

// Load returns the credential saved under ssid, or ErrNotFound.
func (a *Arena) Load(ssid string) (*codec.Credential, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	cred, _, err := a.findLocked(ssid)
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

// LoadAt returns the credential at index in physical layout order,
// skipping freed spans. The index must satisfy 0 <= index < Entries.
func (a *Arena) LoadAt(index int) (*codec.Credential, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if index < 0 || index >= int(a.entries) {
		return nil, ErrOutOfRange
	}
	if err := a.region.Open(a.headerEnd() + int(a.containSize)); err != nil {
		return nil, ErrOutOfRange
	}
	defer a.region.Close()

	cur := codec.NewCursor(a.region, a.headerEnd(), a.headerEnd()+int(a.containSize))
	for i := 0; i <= index; i++ {
		cred, _, ok := codec.ReadRecord(cur)
		if !ok {
			return nil, ErrOutOfRange
		}
		if i == index {
			return &cred, nil
		}
	}
	return nil, ErrOutOfRange
}

// All returns every live credential in physical layout order.
func (a *Arena) All() ([]codec.Credential, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.entries == 0 {
		return nil, nil
	}
	if err := a.region.Open(a.headerEnd() + int(a.containSize)); err != nil {
		return nil, nil
	}
	defer a.region.Close()

	creds := make([]codec.Credential, 0, a.entries)
	cur := codec.NewCursor(a.region, a.headerEnd(), a.headerEnd()+int(a.containSize))
	for i := 0; i < int(a.entries); i++ {
		cred, _, ok := codec.ReadRecord(cur)
		if !ok {
			break
		}
		creds = append(creds, cred)
	}
	return creds, nil
}

// Entries returns the number of live credentials.
func (a *Arena) Entries() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return int(a.entries)
}

// Delete erases the record saved under ssid in place: its exact byte span
// is overwritten with the fill byte and the entry count is decremented.
// Surrounding bytes never move and the container size is unchanged.
func (a *Arena) Delete(ssid string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, _, err := a.findLocked(ssid); err != nil {
		return err
	}

	if err := a.region.Open(a.headerEnd() + int(a.containSize)); err != nil {
		return ErrStorageUnavailable
	}
	defer a.region.Close()

	cur := codec.NewCursor(a.region, a.lastMatch, a.headerEnd()+int(a.containSize))
	codec.EraseRecord(cur)

	a.entries--
	a.region.WriteByte(a.base+len(arenaMagic), a.entries)

	if err := a.region.Commit(); err != nil {
		return ErrCommitFailed
	}
	return nil
}

// Save writes the credential. An existing entry with the same SSID is
// replaced in place: its old span is freed first and the new encoding is
// written into the first fill run that fits, so the container does not
// grow. Otherwise the entry count is bumped and the record goes into a
// free run, or is appended past the current logical end, advancing the
// terminator and container size.
//
// Save issues two commits (header, then record bytes); if either fails the
// save reports ErrCommitFailed but no rollback of earlier writes is
// attempted.
func (a *Arena) Save(cred *codec.Credential) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := validate(cred); err != nil {
		return err
	}

	_, _, findErr := a.findLocked(cred.SSID)
	replacing := findErr == nil

	if !replacing && int(a.entries) >= MaxEntries {
		return ErrStoreFull
	}

	headerEnd := a.headerEnd()
	capacity := headerEnd + int(a.containSize) + cred.EncodedSize() + 1
	if err := a.region.Open(capacity); err != nil {
		return ErrStorageUnavailable
	}
	defer a.region.Close()

	if replacing {
		// Free the old span; the scan below will find it again if the
		// new encoding fits.
		cur := codec.NewCursor(a.region, a.lastMatch, headerEnd+int(a.containSize))
		codec.EraseRecord(cur)
	} else {
		a.entries++
		dp := a.base
		for i := 0; i < len(arenaMagic); i++ {
			a.region.WriteByte(dp, arenaMagic[i])
			dp++
		}
		a.region.WriteByte(dp, a.entries)
	}

	headerCommitErr := a.region.Commit()

	// Find the first free run that can host the new encoding.
	eSize := cred.EncodedSize()
	end := headerEnd + int(a.containSize)
	insert := -1
	for dp := headerEnd; dp < end; {
		if a.region.ReadByte(dp) != codec.FillByte {
			dp++
			continue
		}
		runStart := dp
		for dp < end && a.region.ReadByte(dp) == codec.FillByte {
			dp++
		}
		if dp-runStart >= eSize {
			insert = runStart
			break
		}
	}

	reused := insert >= 0
	if !reused {
		insert = end
	}

	cur := codec.NewCursor(a.region, insert, capacity)
	codec.WriteRecord(cur, cred)

	if !reused {
		// The container grew: advance the terminator and persist the
		// new size. A reused span leaves both untouched.
		tail := cur.Pos()
		if tail-headerEnd > 0xFFFF {
			return ErrStoreFull
		}
		a.region.WriteByte(tail, 0x00)
		a.containSize = uint16(tail - headerEnd)
		a.region.WriteByte(a.base+len(arenaMagic)+1, byte(a.containSize))
		a.region.WriteByte(a.base+len(arenaMagic)+2, byte(a.containSize>>8))
	}

	if err := a.region.Commit(); err != nil || headerCommitErr != nil {
		return ErrCommitFailed
	}
	return nil
}

// findLocked scans the record area for ssid, remembering the byte offset
// of the match in lastMatch. The caller holds the mutex.
func (a *Arena) findLocked(ssid string) (codec.Credential, int, error) {
	if a.entries == 0 {
		return codec.Credential{}, -1, ErrNotFound
	}
	// An unavailable region reads as an empty store.
	if err := a.region.Open(a.headerEnd() + int(a.containSize)); err != nil {
		return codec.Credential{}, -1, ErrNotFound
	}
	defer a.region.Close()

	cur := codec.NewCursor(a.region, a.headerEnd(), a.headerEnd()+int(a.containSize))
	for i := 0; i < int(a.entries); i++ {
		cred, start, ok := codec.ReadRecord(cur)
		if !ok {
			break
		}
		if cred.SSID == ssid {
			a.lastMatch = start
			return cred, i, nil
		}
	}
	return codec.Credential{}, -1, ErrNotFound
}
