package store

import (
	"fmt"

	"github.com/nvkv/credstore/pkg/config"
	"github.com/nvkv/credstore/pkg/storage"
)

// New builds the credential store the configuration selects: the arena
// backend over a file-backed linear region, or the blob backend over a
// pebble key/value store.
func New(cfg *config.Config) (Store, error) {
	switch cfg.Backend {
	case config.BackendArena:
		return NewArena(storage.NewFileRegion(cfg.Arena.Path), cfg.Arena.Offset), nil
	case config.BackendBlob:
		return NewBlob(storage.NewPebbleStore(cfg.Blob.Path), cfg.Blob.Key), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
