// Package web provides the HTTP server and web UI for Emotify.
package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	visitorCookieName = "emotify_visitor"
	visitorTTL        = 30 * 24 * time.Hour
)

// VisitorStore identifies visitors by cookie and lets each visitor run one
// analysis at a time. It holds nothing but the set of busy visitor IDs.
type VisitorStore struct {
	mu   sync.Mutex
	busy map[string]struct{}
}

// NewVisitorStore creates an empty visitor store.
func NewVisitorStore() *VisitorStore {
	return &VisitorStore{
		busy: make(map[string]struct{}),
	}
}

// Identify returns the visitor ID from the request cookie, issuing a new
// one when the cookie is missing or invalid.
func (s *VisitorStore) Identify(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(visitorCookieName); err == nil {
		if id, err := uuid.Parse(cookie.Value); err == nil {
			return id.String()
		}
	}

	id := uuid.NewString()
	setCookie(w, id)
	return id
}

// TryAcquire marks id busy. It returns false if id already has an analysis
// in flight.
func (s *VisitorStore) TryAcquire(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.busy[id]; ok {
		return false
	}
	s.busy[id] = struct{}{}
	return true
}

// Release clears the busy mark for id.
func (s *VisitorStore) Release(id string) {
	s.mu.Lock()
	delete(s.busy, id)
	s.mu.Unlock()
}

// Busy returns the number of visitors with an analysis in flight.
func (s *VisitorStore) Busy() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.busy)
}

// setCookie sets the visitor cookie on the response.
func setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     visitorCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(visitorTTL.Seconds()),
	})
}
