// Package apitest provides an in-memory fake of the to-do service for tests.
package apitest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/idilsaglam/tada/internal/model"
)

// Operation names used for call counting and failure injection.
const (
	OpList   = "list"
	OpCreate = "create"
	OpUpdate = "update"
)

type failure struct {
	status int
	body   string
}

// Server is a fake backend speaking the same JSON as the real service.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	items    []model.Item
	calls    map[string]int
	failures map[string]failure
	bodies   map[string][]string
}

// NewServer starts a fake seeded with items. Callers must Close it.
func NewServer(seed ...model.Item) *Server {
	s := &Server{
		items:    append([]model.Item(nil), seed...),
		calls:    map[string]int{},
		failures: map[string]failure{},
		bodies:   map[string][]string{},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/todoItems", s.handleCollection)
	mux.HandleFunc("/api/todoItems/", s.handleItem)
	s.Server = httptest.NewServer(mux)
	return s
}

// Fail makes every following call to op answer with status and body.
func (s *Server) Fail(op string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = failure{status: status, body: body}
}

// Recover undoes Fail for op.
func (s *Server) Recover(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, op)
}

// Calls reports how many requests op has received, failed ones included.
func (s *Server) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// Bodies returns the raw request bodies received for op.
func (s *Server) Bodies(op string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.bodies[op]...)
}

// Items returns a snapshot of the stored items.
func (s *Server) Items() []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Item{}, s.items...)
}

func (s *Server) handleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if s.enter(OpList, w, "") {
			return
		}
		writeJSON(w, http.StatusOK, s.Items())
	case http.MethodPost:
		var in model.Item
		raw, ok := decode(w, r, &in)
		if !ok || s.enter(OpCreate, w, raw) {
			return
		}
		if strings.TrimSpace(in.Description) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"title": "Description is required"})
			return
		}
		s.mu.Lock()
		for _, it := range s.items {
			if it.Description == in.Description && !it.IsCompleted {
				s.mu.Unlock()
				writeJSON(w, http.StatusBadRequest, map[string]string{"title": "Description already exists"})
				return
			}
		}
		in.ID = model.ID(uuid.NewString())
		s.items = append(s.items, in)
		s.mu.Unlock()
		writeJSON(w, http.StatusCreated, in)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := model.ID(strings.TrimPrefix(r.URL.Path, "/api/todoItems/"))
	var in model.Item
	raw, ok := decode(w, r, &in)
	if !ok || s.enter(OpUpdate, w, raw) {
		return
	}
	if in.ID != id {
		writeJSON(w, http.StatusBadRequest, map[string]string{"title": "Id mismatch"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, it := range s.items {
		if it.ID == id {
			s.items[i] = in
			writeJSON(w, http.StatusOK, in)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"title": "Not Found"})
}

// enter counts the call and answers with an injected failure if one is set.
func (s *Server) enter(op string, w http.ResponseWriter, body string) bool {
	s.mu.Lock()
	s.calls[op]++
	if body != "" {
		s.bodies[op] = append(s.bodies[op], body)
	}
	f, failing := s.failures[op]
	s.mu.Unlock()
	if !failing {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(f.status)
	_, _ = w.Write([]byte(f.body))
	return true
}

func decode(w http.ResponseWriter, r *http.Request, v any) (string, bool) {
	raw, err := io.ReadAll(r.Body)
	if err == nil {
		err = json.Unmarshal(raw, v)
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"title": "Malformed body"})
		return "", false
	}
	return string(raw), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
