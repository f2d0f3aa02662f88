// Package session holds the single in-memory login session shared by all
// requests: the bearer token, the path to resume after login, the pending
// OAuth2 state parameter, and a one-shot cache of the last login failure.
// Nothing here survives a restart.
package session

import (
	"errors"
	"sync"
)

// ErrNeedsLogin signals that no token is installed. It is a control signal,
// not a failure: route boundaries convert it into a redirect to the login
// endpoint.
var ErrNeedsLogin = errors.New("session: login required")

// DefaultResumePath is where the browser lands after login when no request
// was deflected beforehand.
const DefaultResumePath = "/info"

// unknownError is returned by TakeError when no failure has been recorded
// since the last read.
const unknownError = "unknown error"

// Store is the process-wide session. All fields share one mutex; critical
// sections are field reads/writes only, never network calls.
type Store struct {
	mu         sync.Mutex
	token      string
	resumePath string
	authState  string
	lastError  string
}

// New returns an empty, unauthenticated store.
func New() *Store {
	return &Store{}
}

// Token returns the current bearer token. When none is installed it records
// resumePath for the post-login redirect and returns ErrNeedsLogin; the
// record and the signal are one atomic step.
func (s *Store) Token(resumePath string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" {
		s.resumePath = resumePath
		return "", ErrNeedsLogin
	}

	return s.token, nil
}

// InstallToken overwrites any existing token. Last writer wins; there are no
// refresh or merge semantics.
func (s *Store) InstallToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// TakeResumePath returns and clears the recorded resume path, substituting
// DefaultResumePath when none was recorded.
func (s *Store) TakeResumePath() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.resumePath
	s.resumePath = ""

	if path == "" {
		return DefaultResumePath
	}

	return path
}

// SetAuthState stores the OAuth2 state parameter generated at login, replacing
// any previous one.
func (s *Store) SetAuthState(state string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.authState = state
}

// TakeAuthState returns and clears the pending state parameter. Empty when no
// login round-trip is outstanding.
func (s *Store) TakeAuthState() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.authState
	s.authState = ""

	return state
}

// RecordError retains the detail text of a login failure for one read of the
// error endpoint.
func (s *Store) RecordError(detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastError = detail
}

// TakeError returns and clears the last recorded failure. Without an
// intervening RecordError, subsequent reads yield a generic message, never a
// stale one.
func (s *Store) TakeError() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	detail := s.lastError
	s.lastError = ""

	if detail == "" {
		return unknownError
	}

	return detail
}
