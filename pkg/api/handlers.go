package api

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nvkv/credstore/pkg/codec"
	"github.com/nvkv/credstore/pkg/store"
)

// Server holds the API server state.
type Server struct {
	store   CredentialStore
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server.
func NewServer(credStore CredentialStore, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		store:   credStore,
		config:  config,
		metrics: metrics,
	}
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleStats reports the entry count and active backend.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	entries := s.store.Entries()
	s.metrics.SetEntries(entries)
	sendSuccess(w, StatsResponse{
		Entries: entries,
		Backend: s.config.Backend,
	})
}

// handleList returns every stored credential in the backend's iteration
// order.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	creds, err := s.store.All()
	if err != nil {
		s.metrics.RecordStoreOperation("list", false, time.Since(start))
		sendError(w, "Failed to list credentials", http.StatusInternalServerError)
		return
	}
	s.metrics.RecordStoreOperation("list", true, time.Since(start))
	s.metrics.SetEntries(len(creds))

	out := make([]CredentialResponse, 0, len(creds))
	for i := range creds {
		out = append(out, credentialResponse(&creds[i]))
	}
	sendSuccess(w, out)
}

// handleGet returns the credential saved under the ssid path parameter.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ssid, ok := ssidParam(w, r)
	if !ok {
		s.metrics.RecordStoreOperation("load", false, time.Since(start))
		return
	}

	cred, err := s.store.Load(ssid)
	if err != nil {
		s.metrics.RecordStoreOperation("load", false, time.Since(start))
		sendStoreError(w, err)
		return
	}
	s.metrics.RecordStoreOperation("load", true, time.Since(start))
	sendSuccess(w, credentialResponse(cred))
}

// handlePut saves a credential, replacing any entry with the same SSID.
func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ssid, ok := ssidParam(w, r)
	if !ok {
		s.metrics.RecordStoreOperation("save", false, time.Since(start))
		return
	}

	var req CredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.RecordStoreOperation("save", false, time.Since(start))
		sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}

	cred := codec.Credential{SSID: ssid, Passphrase: req.Passphrase}
	if req.BSSID != "" {
		hw, err := net.ParseMAC(req.BSSID)
		if err != nil || len(hw) != codec.BSSIDSize {
			s.metrics.RecordStoreOperation("save", false, time.Since(start))
			sendError(w, "Invalid BSSID", http.StatusBadRequest)
			return
		}
		copy(cred.BSSID[:], hw)
	}

	if err := s.store.Save(&cred); err != nil {
		s.metrics.RecordStoreOperation("save", false, time.Since(start))
		sendStoreError(w, err)
		return
	}
	s.metrics.RecordStoreOperation("save", true, time.Since(start))
	s.metrics.SetEntries(s.store.Entries())
	sendSuccess(w, map[string]string{"message": "Credential stored successfully"})
}

// handleDelete removes the credential saved under the ssid path parameter.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ssid, ok := ssidParam(w, r)
	if !ok {
		s.metrics.RecordStoreOperation("delete", false, time.Since(start))
		return
	}

	if err := s.store.Delete(ssid); err != nil {
		s.metrics.RecordStoreOperation("delete", false, time.Since(start))
		sendStoreError(w, err)
		return
	}
	s.metrics.RecordStoreOperation("delete", true, time.Since(start))
	s.metrics.SetEntries(s.store.Entries())
	sendSuccess(w, map[string]string{"message": "Credential deleted"})
}

// ssidParam extracts and unescapes the ssid path parameter, writing the
// error response itself when the parameter is unusable.
func ssidParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := chi.URLParam(r, "ssid")
	if raw == "" {
		sendError(w, "SSID is required", http.StatusBadRequest)
		return "", false
	}
	ssid, err := url.QueryUnescape(raw)
	if err != nil || ssid == "" {
		sendError(w, "Invalid SSID encoding", http.StatusBadRequest)
		return "", false
	}
	return ssid, true
}

// sendStoreError maps store errors onto HTTP status codes.
func sendStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrOutOfRange):
		sendError(w, "Credential not found", http.StatusNotFound)
	case errors.Is(err, store.ErrInvalidCredential):
		sendError(w, "Invalid credential", http.StatusBadRequest)
	case errors.Is(err, store.ErrStoreFull):
		sendError(w, "Credential store full", http.StatusInsufficientStorage)
	case errors.Is(err, store.ErrStorageUnavailable):
		sendError(w, "Storage unavailable", http.StatusServiceUnavailable)
	default:
		sendError(w, "Storage commit failed", http.StatusInternalServerError)
	}
}

func credentialResponse(cred *codec.Credential) CredentialResponse {
	return CredentialResponse{
		SSID:       cred.SSID,
		Passphrase: cred.Passphrase,
		BSSID:      net.HardwareAddr(cred.BSSID[:]).String(),
	}
}
