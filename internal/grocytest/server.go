package grocytest

import (
	"bytes"
	"embed"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

//go:embed fixtures
var fixtures embed.FS

// Request is one call the server received.
type Request struct {
	Method string
	// Path is relative to the API root and keeps its escaping, e.g.
	// "stock/products/0" or "stock/products/by-barcode/ab%2Fcd".
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// JSON decodes the request body into a map.
func (r Request) JSON() map[string]any {
	var out map[string]any
	_ = json.Unmarshal(r.Body, &out)
	return out
}

type override struct {
	status int
	body   string
}

// Server is a fake Grocy API backed by fixture data. Mutations change its
// in-memory state so later reads observe them.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	requests  []Request
	overrides map[string]override
	apiKey    string

	objects    map[string][]map[string]any
	userfields map[string]map[string]any
	files      map[string][]byte
}

// NewServer starts a server that is closed when the test ends. The API is
// mounted at /api/ and at /grocy/api/ for sub-path configurations.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		overrides:  make(map[string]override),
		objects:    loadObjects(t),
		userfields: make(map[string]map[string]any),
		files:      make(map[string][]byte),
	}
	r := chi.NewRouter()
	r.Use(s.intercept)
	r.Route("/api", s.routes)
	r.Route("/grocy/api", s.routes)
	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// Host is the scheme and host without the port.
func (s *Server) Host() string {
	u, _ := url.Parse(s.URL)
	return u.Scheme + "://" + u.Hostname()
}

// Port is the listening port.
func (s *Server) Port() int {
	u, _ := url.Parse(s.URL)
	port, _ := strconv.Atoi(u.Port())
	return port
}

// RequireAPIKey makes every request without a matching GROCY-API-KEY
// header fail with 401.
func (s *Server) RequireAPIKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiKey = key
}

// Respond answers method and path with a canned status and body instead of
// the fixtures. An empty body sends no content.
func (s *Server) Respond(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[method+" "+path] = override{status: status, body: body}
}

// Fail answers method and path with a Grocy error payload.
func (s *Server) Fail(method, path string, status int, message string) {
	body, _ := json.Marshal(map[string]string{"error_message": message})
	s.Respond(method, path, status, string(body))
}

// Restore removes a Respond or Fail override so the fixtures answer again.
func (s *Server) Restore(method, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.overrides, method+" "+path)
}

// Requests returns every recorded request in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Count returns how many times method and path were requested.
func (s *Server) Count(method, path string) int {
	n := 0
	for _, req := range s.Requests() {
		if req.Method == method && req.Path == path {
			n++
		}
	}
	return n
}

// Last returns the most recent request for method and path.
func (s *Server) Last(method, path string) (Request, bool) {
	reqs := s.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Method == method && reqs[i].Path == path {
			return reqs[i], true
		}
	}
	return Request{}, false
}

// Reset forgets recorded requests.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

// File returns an uploaded file, e.g. File("productpictures", name).
func (s *Server) File(group, name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[group+"/"+name]
	return data, ok
}

func (s *Server) intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))

		rel := relativePath(r.URL.EscapedPath())
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   rel,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		key := s.apiKey
		o, overridden := s.overrides[r.Method+" "+rel]
		s.mu.Unlock()

		if key != "" && r.Header.Get("GROCY-API-KEY") != key {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if overridden {
			if o.body == "" {
				w.WriteHeader(o.status)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(o.status)
			_, _ = io.WriteString(w, o.body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func relativePath(p string) string {
	if i := strings.Index(p, "/api/"); i >= 0 {
		return p[i+len("/api/"):]
	}
	return strings.TrimPrefix(p, "/")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error_message": message})
}
