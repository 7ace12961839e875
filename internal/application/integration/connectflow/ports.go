package connectflow

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrPopupBlocked means the consent window could not be opened.
	ErrPopupBlocked = errors.New("popup blocked")
	// ErrCancelled means the consent window closed, or ctx ended, before a callback arrived.
	ErrCancelled = errors.New("connect cancelled")
	// ErrStateMismatch means the returned state differs from the one stored. No exchange happens.
	ErrStateMismatch = errors.New("oauth state mismatch")
	// ErrProviderDenied means the provider redirected back with an error instead of a code.
	ErrProviderDenied = errors.New("provider denied authorization")
	ErrMissingCode    = errors.New("callback carried no code")
)

// Callback is what the consent page relays back to the opener.
type Callback struct {
	Code  string
	State string
	Error string
}

// Authorizer produces the consent URL and the state it carries.
type Authorizer interface {
	Authorize(ctx context.Context, redirectURI string) (authURL, state string, err error)
}

// Popup is the consent window. Callbacks yields at most one value per flow.
type Popup interface {
	Open(ctx context.Context, authURL string) error
	Callbacks() <-chan Callback
	Closed() bool
	Close() error
}

// Exchanger forwards the code to the backend exchange endpoint.
type Exchanger interface {
	Exchange(ctx context.Context, code, state, redirectURI string) (*ExchangeResult, error)
}

type ExchangeResult struct {
	TeamID   string
	TeamName string
	UserID   string
}

// SessionStorage keeps the pending state for the lifetime of one session.
type SessionStorage interface {
	Set(key, value string)
	Get(key string) (string, bool)
	Delete(key string)
}

// MemorySession is a process-local SessionStorage.
type MemorySession struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemorySession() *MemorySession {
	return &MemorySession{values: make(map[string]string)}
}

func (s *MemorySession) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *MemorySession) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemorySession) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}
