// Package fakevault runs an in-process fake of the small slice of the
// Vault HTTP API this module talks to: AppRole login, KV version 2 data
// reads with per-path policy simulation, and token self-renewal.
package fakevault

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/hashicorp/vault/api"
)

// Default credentials and token issued by a new Server.
const (
	RoleID   = "0b5a7c27-a449-4549-bd31-e6cb61337062"
	SecretID = "fad05e7b-d1a4-4e25-9a46-60bd9d47f4b4"
	Token    = "hvs.fake000token000value"
)

// Server is a fake Vault reachable over a real HTTP listener. Seed it
// with secrets and policy denials, then point an api.Client (or a full
// vaultcreds.Client) at URL.
type Server struct {
	URL string

	mu       sync.Mutex
	requests int
	revoked  bool
	ttl      int

	secrets map[string]map[string]string
	denied  map[string]bool
}

// New starts a fake Vault that accepts the default RoleID/SecretID pair
// and issues Token with a one hour TTL. The listener is closed when the
// test finishes.
func New(t *testing.T) *Server {
	t.Helper()

	s := &Server{
		ttl:     3600,
		secrets: map[string]map[string]string{},
		denied:  map[string]bool{},
	}

	srv := httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(srv.Close)

	s.URL = srv.URL

	return s
}

// APIClient returns a Vault API client pointed at this server.
func (s *Server) APIClient(t *testing.T) *api.Client {
	t.Helper()

	c, err := api.NewClient(&api.Config{Address: s.URL})
	if err != nil {
		t.Fatal(err)
	}

	return c
}

// SetSecret stores fields at path (relative to the mount, e.g.
// "myapp/database").
func (s *Server) SetSecret(path string, fields map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.secrets[path] = fields
}

// DenyPath makes reads of path fail with a policy denial, regardless of
// the token presented.
func (s *Server) DenyPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.denied[path] = true
}

// RevokeToken invalidates the issued token, simulating server-side
// expiry between calls.
func (s *Server) RevokeToken() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.revoked = true
}

// Requests reports how many HTTP requests the server has seen.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.requests
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests++
	s.mu.Unlock()

	switch {
	case isWrite(r) && strings.HasPrefix(r.URL.Path, "/v1/auth/") && strings.HasSuffix(r.URL.Path, "/login"):
		s.login(w, r)
	case isWrite(r) && r.URL.Path == "/v1/auth/token/renew-self":
		s.renew(w, r)
	case r.Method == http.MethodGet:
		s.read(w, r)
	default:
		writeErrors(w, http.StatusNotFound, "unsupported path")
	}
}

func isWrite(r *http.Request) bool {
	return r.Method == http.MethodPut || r.Method == http.MethodPost
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	body := map[string]string{}

	dec := json.NewDecoder(r.Body)
	_ = dec.Decode(&body)

	defer r.Body.Close()

	if body["role_id"] != RoleID || body["secret_id"] != SecretID {
		writeErrors(w, http.StatusBadRequest, "invalid role or secret ID")

		return
	}

	s.mu.Lock()
	s.revoked = false
	ttl := s.ttl
	s.mu.Unlock()

	writeJSON(w, map[string]any{
		"auth": map[string]any{
			"client_token":   Token,
			"accessor":       "fake-accessor",
			"lease_duration": ttl,
			"renewable":      true,
			"policies":       []string{"default", "myapp-read"},
		},
	})
}

func (s *Server) renew(w http.ResponseWriter, r *http.Request) {
	if !s.tokenValid(r) {
		writeErrors(w, http.StatusForbidden, "invalid token")

		return
	}

	s.mu.Lock()
	ttl := s.ttl
	s.mu.Unlock()

	writeJSON(w, map[string]any{
		"auth": map[string]any{
			"client_token":   Token,
			"accessor":       "fake-accessor",
			"lease_duration": ttl,
			"renewable":      true,
		},
	})
}

func (s *Server) read(w http.ResponseWriter, r *http.Request) {
	// KV v2 data reads look like /v1/<mount>/data/<path>
	trimmed := strings.TrimPrefix(r.URL.Path, "/v1/")

	mount, path, found := strings.Cut(trimmed, "/data/")
	if !found || mount == "" {
		writeErrors(w, http.StatusNotFound)

		return
	}

	if !s.tokenValid(r) {
		writeErrors(w, http.StatusForbidden, "permission denied", "invalid token")

		return
	}

	s.mu.Lock()
	denied := s.denied[path]
	fields, ok := s.secrets[path]
	s.mu.Unlock()

	if denied {
		writeErrors(w, http.StatusForbidden, "1 error occurred:\n\t* permission denied\n\n")

		return
	}

	if !ok {
		writeErrors(w, http.StatusNotFound)

		return
	}

	writeJSON(w, map[string]any{
		"data": map[string]any{
			"data": fields,
			"metadata": map[string]any{
				"created_time":  "2024-01-01T00:00:00.000000Z",
				"deletion_time": "",
				"destroyed":     false,
				"version":       1,
			},
		},
	})
}

func (s *Server) tokenValid(r *http.Request) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return r.Header.Get("X-Vault-Token") == Token && !s.revoked
}

func writeJSON(w http.ResponseWriter, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	_ = enc.Encode(body)
}

func writeErrors(w http.ResponseWriter, status int, msgs ...string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if msgs == nil {
		msgs = []string{}
	}

	enc := json.NewEncoder(w)
	_ = enc.Encode(map[string]any{"errors": msgs})
}
