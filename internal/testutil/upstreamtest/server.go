// Package upstreamtest provides an in-process fake of the orchestrator OData API.
package upstreamtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	// Token is the bearer token issued by the fake.
	Token = "test-access-token"
	// ClientID and ClientSecret are the credentials the fake accepts.
	ClientID     = "client-id"
	ClientSecret = "client-secret"
	Org          = "acme"
	Tenant       = "DefaultTenant"
)

// Request is a recorded upstream call.
type Request struct {
	Method   string
	Path     string
	Query    url.Values
	FolderID string
	Auth     string
}

// Server is a fake orchestrator. Configure it before issuing requests;
// the exported maps are read under the server lock.
type Server struct {
	*httptest.Server

	mu sync.Mutex

	// Folders is returned by the Folders endpoint.
	Folders []map[string]any
	// QueueItems and Jobs are keyed by folder id.
	QueueItems map[int64][]map[string]any
	Jobs       map[int64][]map[string]any
	// FailFolders makes folder-scoped calls for these ids return FailStatus.
	FailFolders map[int64]bool
	FailStatus  int
	// FailFolderList makes the Folders endpoint return 500.
	FailFolderList bool
	// RejectToken makes the token endpoint return 401.
	RejectToken bool

	requests []Request
}

// NewServer starts a fake orchestrator. It is closed via t.Cleanup by callers.
func NewServer() *Server {
	s := &Server{
		QueueItems:  map[int64][]map[string]any{},
		Jobs:        map[int64][]map[string]any{},
		FailFolders: map[int64]bool{},
		FailStatus:  http.StatusBadGateway,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /identity_/connect/token", s.handleToken)
	mux.HandleFunc("GET /identity_/.well-known/openid-configuration", s.handleDiscovery)
	mux.HandleFunc("GET /{org}/{tenant}/odata/Folders", s.handleFolders)
	mux.HandleFunc("GET /{org}/{tenant}/odata/queueitems", s.handleFolderScoped(func() map[int64][]map[string]any {
		return s.QueueItems
	}))
	mux.HandleFunc("GET /{org}/{tenant}/odata/Jobs", s.handleFolderScoped(func() map[int64][]map[string]any {
		return s.Jobs
	}))
	s.Server = httptest.NewServer(s.record(mux))
	return s
}

// AddFolder registers a folder.
func (s *Server) AddFolder(id int64, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Folders = append(s.Folders, map[string]any{"Id": id, "DisplayName": name})
}

// AddQueueItem registers a queue item under folder.
func (s *Server) AddQueueItem(folder int64, item map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.QueueItems[folder] = append(s.QueueItems[folder], item)
}

// AddJob registers a job under folder.
func (s *Server) AddJob(folder int64, job map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Jobs[folder] = append(s.Jobs[folder], job)
}

// FailFolder makes folder-scoped calls for id fail.
func (s *Server) FailFolder(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.FailFolders[id] = true
}

// Requests returns a copy of the recorded calls.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// RequestsTo returns recorded calls whose path ends with suffix.
func (s *Server) RequestsTo(suffix string) []Request {
	var out []Request
	for _, r := range s.Requests() {
		if strings.HasSuffix(r.Path, suffix) {
			out = append(out, r)
		}
	}
	return out
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:   r.Method,
			Path:     r.URL.Path,
			Query:    r.URL.Query(),
			FolderID: r.Header.Get("X-UIPATH-OrganizationUnitId"),
			Auth:     r.Header.Get("Authorization"),
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	reject := s.RejectToken
	s.mu.Unlock()

	if reject || r.PostForm.Get("grant_type") != "client_credentials" ||
		r.PostForm.Get("client_id") != ClientID || r.PostForm.Get("client_secret") != ClientSecret {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "invalid_client"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": Token,
		"token_type":   "Bearer",
		"expires_in":   int((time.Hour).Seconds()),
		"scope":        r.PostForm.Get("scope"),
	})
}

func (s *Server) handleDiscovery(w http.ResponseWriter, _ *http.Request) {
	issuer := s.URL + "/identity_"
	writeJSON(w, http.StatusOK, map[string]any{
		"issuer":                 issuer,
		"authorization_endpoint": issuer + "/connect/authorize",
		"token_endpoint":         issuer + "/connect/token",
		"jwks_uri":               issuer + "/.well-known/openid-configuration/jwks",
	})
}

func (s *Server) authorized(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("Authorization") != "Bearer "+Token {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "unauthorized"})
		return false
	}
	return true
}

func (s *Server) handleFolders(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(w, r) {
		return
	}
	s.mu.Lock()
	fail := s.FailFolderList
	folders := append([]map[string]any(nil), s.Folders...)
	s.mu.Unlock()

	if fail {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "boom"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"@odata.count": len(folders), "value": folders})
}

func (s *Server) handleFolderScoped(source func() map[int64][]map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.authorized(w, r) {
			return
		}
		folder, err := strconv.ParseInt(r.Header.Get("X-UIPATH-OrganizationUnitId"), 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": "missing folder header"})
			return
		}

		s.mu.Lock()
		fail := s.FailFolders[folder]
		status := s.FailStatus
		records := append([]map[string]any(nil), source()[folder]...)
		s.mu.Unlock()

		if fail {
			writeJSON(w, status, map[string]any{"message": "folder unavailable"})
			return
		}

		q := r.URL.Query()
		skip, _ := strconv.Atoi(q.Get("$skip"))
		top, err := strconv.Atoi(q.Get("$top"))
		if err != nil || top <= 0 {
			top = len(records)
		}
		start := min(skip, len(records))
		end := min(start+top, len(records))
		writeJSON(w, http.StatusOK, map[string]any{
			"@odata.count": len(records),
			"value":        records[start:end],
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
