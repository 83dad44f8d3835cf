package store

import (
	"github.com/nvkv/credstore/pkg/codec"
)

// MaxEntries is the most credentials a store can hold; the persisted entry
// count is a single byte.
const MaxEntries = 255

// Store is the credential store contract. Both backends implement it and
// are behaviorally equivalent at this boundary, except that LoadAt follows
// each backend's own deterministic iteration order: physical layout order
// for the arena backend, identifier-sorted order for the blob backend.
type Store interface {
	// Load returns the credential saved under ssid, or ErrNotFound.
	Load(ssid string) (*codec.Credential, error)

	// LoadAt returns the credential at a 0-based position in the backend's
	// iteration order, or ErrOutOfRange.
	LoadAt(index int) (*codec.Credential, error)

	// Save inserts the credential, replacing any existing entry with the
	// same SSID. The entry count is unchanged on replacement.
	Save(cred *codec.Credential) error

	// Delete removes the credential saved under ssid, or returns
	// ErrNotFound without changing the store.
	Delete(ssid string) error

	// All returns every live credential in the backend's iteration order.
	All() ([]codec.Credential, error)

	// Entries returns the number of live credentials.
	Entries() int
}

// Errors
var (
	ErrNotFound           = &StoreError{"credential not found"}
	ErrOutOfRange         = &StoreError{"entry index out of range"}
	ErrInvalidCredential  = &StoreError{"invalid credential"}
	ErrStorageUnavailable = &StoreError{"storage unavailable"}
	ErrCommitFailed       = &StoreError{"storage commit failed"}
	ErrStoreFull          = &StoreError{"credential store full"}
)

// StoreError represents a credential store error.
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}

// validate rejects credentials that must never be scheduled for a save.
// An empty SSID is the wire format's sentinel for a malformed entry.
func validate(cred *codec.Credential) error {
	if cred == nil || len(cred.SSID) == 0 {
		return ErrInvalidCredential
	}
	return nil
}
