package web

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"
)

// stateTokenBytes is the number of random bytes in the OAuth2 state parameter.
const stateTokenBytes = 16

// generateState produces a cryptographically random hex string for the OAuth2
// state parameter.
func generateState() (string, error) {
	b := make([]byte, stateTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating state token: %w", err)
	}

	return hex.EncodeToString(b), nil
}

// handleLogin redirects the browser to the provider's authorization endpoint.
// The generated state parameter is held in the session until the callback.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	state, err := generateState()
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	s.sessions.SetAuthState(state)

	authURL := s.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline)

	s.logger.Info("redirecting to authorization endpoint")

	http.Redirect(w, r, authURL, http.StatusFound)
}

// handleCallback exchanges the authorization code for a token, installs it,
// and resumes the originally requested path. Every failure lands on the error
// endpoint with its detail retained for one read.
func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if errParam := q.Get("error"); errParam != "" {
		s.failLogin(w, r, fmt.Sprintf("authorization failed: %s: %s", errParam, q.Get("error_description")))
		return
	}

	state := q.Get("state")
	if want := s.sessions.TakeAuthState(); want == "" || state != want {
		s.failLogin(w, r, "state mismatch in authorization callback")
		return
	}

	code := q.Get("code")
	if code == "" {
		s.failLogin(w, r, "callback carries no authorization code")
		return
	}

	token, err := s.oauth.Exchange(r.Context(), code)
	if err != nil {
		s.failLogin(w, r, fmt.Sprintf("token exchange failed: %v", err))
		return
	}

	s.sessions.InstallToken(token.AccessToken)

	resume := s.sessions.TakeResumePath()

	s.logger.Info("login complete", slog.String("resume", resume))

	http.Redirect(w, r, resume, http.StatusFound)
}

// failLogin records the failure detail and sends the browser to the error
// endpoint.
func (s *Server) failLogin(w http.ResponseWriter, r *http.Request, detail string) {
	s.logger.Warn("login failed", slog.String("detail", detail))

	s.sessions.RecordError(detail)

	http.Redirect(w, r, "/error", http.StatusFound)
}

// handleError displays the last login failure, once. A repeat visit without a
// new failure reads a generic message.
func (s *Server) handleError(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, s.sessions.TakeError(), http.StatusInternalServerError)
}

// handleInfo relays the provider's userinfo body for the logged-in user.
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	token, ok := s.bearer(w, r)
	if !ok {
		return
	}

	body, err := s.client.Userinfo(r.Context(), token)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(body))
}
