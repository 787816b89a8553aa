package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/carlosbandelli/superlist/internal/creds"
)

// TokenStore is the durable side of the session. Implemented by *creds.Store.
type TokenStore interface {
	LoadToken() (string, error)
	SaveToken(token string) error
	DeleteToken() error
}

// Session is the process-wide authentication state. It is the only write
// path to the bearer token: screens read it, but mutate it exclusively
// through Restore, Login and Logout.
type Session struct {
	mu      sync.RWMutex
	store   TokenStore
	logger  *slog.Logger
	token   string
	present bool
	loading bool
}

// New creates a Session with no token. Call Restore to hydrate it from the
// durable store.
func New(store TokenStore, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{store: store, logger: logger}
}

// Restore hydrates the in-memory token from the durable store. An absent or
// unreadable token is a valid logged-out state, not an error, so Restore
// never fails; it only logs. Safe to call redundantly from multiple screens:
// concurrent restores serialize and converge on the last durable read.
func (s *Session) Restore() {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	token, err := s.store.LoadToken()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		if !errors.Is(err, creds.ErrNotFound) {
			s.logger.Warn("session restore failed", "error", err)
		}
		s.token = ""
		s.present = false
		return
	}
	s.token = token
	s.present = true
}

// Login durably saves the token, then sets it in memory. If the durable
// write fails the in-memory token is left untouched, so a session never
// claims a login it cannot recover after a restart.
func (s *Session) Login(token string) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	if err := s.store.SaveToken(token); err != nil {
		return fmt.Errorf("persist login: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.present = true
	s.mu.Unlock()
	return nil
}

// Logout removes the durable token, then clears memory. Durable removal
// comes first: a crash mid-logout may leave a durable token that a later
// Restore resurrects, but never a cleared session with no durable record of
// why.
func (s *Session) Logout() error {
	if err := s.store.DeleteToken(); err != nil {
		return fmt.Errorf("remove stored token: %w", err)
	}

	s.mu.Lock()
	s.token = ""
	s.present = false
	s.mu.Unlock()
	return nil
}

// Token returns the current bearer token and whether one is present.
func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.present
}

// Loading reports whether a restore or login exchange is in flight.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}
