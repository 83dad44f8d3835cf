package api

import (
	"github.com/nvkv/credstore/pkg/codec"
)

// APIResponse represents a standard API response.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CredentialRequest is the body of a PUT on a credential resource.
type CredentialRequest struct {
	Passphrase string `json:"passphrase"`
	// BSSID in colon-separated hex form ("de:ad:be:ef:00:01"); optional,
	// defaults to all zero.
	BSSID string `json:"bssid,omitempty"`
}

// CredentialResponse is the JSON form of a stored credential.
type CredentialResponse struct {
	SSID       string `json:"ssid"`
	Passphrase string `json:"passphrase"`
	BSSID      string `json:"bssid"`
}

// StatsResponse reports store statistics.
type StatsResponse struct {
	Entries int    `json:"entries"`
	Backend string `json:"backend"`
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	Port    int
	Bind    string
	APIKey  string
	Backend string // reported by /stats
}

// CredentialStore defines the store operations the API serves. Both
// backend implementations of store.Store satisfy it.
type CredentialStore interface {
	Load(ssid string) (*codec.Credential, error)
	LoadAt(index int) (*codec.Credential, error)
	Save(cred *codec.Credential) error
	Delete(ssid string) error
	All() ([]codec.Credential, error)
	Entries() int
}
