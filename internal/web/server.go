// Package web exposes the HTTP surface: the login flow endpoints and the
// token-gated document routes.
package web

import (
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/mdview/mdview/internal/docsync"
	"github.com/mdview/mdview/internal/google"
	"github.com/mdview/mdview/internal/session"
)

// appName shows up in the root banner.
const appName = "mdview"

// Server holds the shared state every handler needs. One instance serves all
// requests.
type Server struct {
	sessions *session.Store
	oauth    *oauth2.Config
	client   *google.Client
	folder   *google.AppFolder
	engine   *docsync.Engine
	logger   *slog.Logger
}

// New assembles the server from its collaborators.
func New(
	sessions *session.Store,
	oauthCfg *oauth2.Config,
	client *google.Client,
	folder *google.AppFolder,
	engine *docsync.Engine,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		sessions: sessions,
		oauth:    oauthCfg,
		client:   client,
		folder:   folder,
		engine:   engine,
		logger:   logger,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleHello)

	mux.HandleFunc("GET /login", s.handleLogin)
	mux.HandleFunc("GET /callback", s.handleCallback)
	mux.HandleFunc("GET /error", s.handleError)
	mux.HandleFunc("GET /info", s.handleInfo)

	mux.HandleFunc("GET /ls", s.handleList)
	mux.HandleFunc("GET /folder/{id}", s.handleFolder)
	mux.HandleFunc("GET /file/{id}", s.handleFile)
	mux.HandleFunc("GET /create/{name}", s.handleCreate)
	mux.HandleFunc("GET /get-doc-len/{id}", s.handleDocLen)
	mux.HandleFunc("GET /get-content/{id}", s.handleGetContent)
	mux.HandleFunc("POST /set-content/{id}", s.handleSetContent)

	mux.HandleFunc("/", s.handleNotFound)

	return mux
}

func (s *Server) handleHello(w http.ResponseWriter, _ *http.Request) {
	w.Write([]byte("Hello world in " + appName + "!"))
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, "Oops! Page not found.", http.StatusNotFound)
}

// bearer returns the session token, deflecting the request to the login
// endpoint when none is installed. The deflection records the request path so
// the flow can resume it after the callback. Returns false when the request
// has been redirected.
func (s *Server) bearer(w http.ResponseWriter, r *http.Request) (string, bool) {
	token, err := s.sessions.Token(r.URL.Path)
	if err != nil {
		s.logger.Info("deflecting unauthenticated request",
			slog.String("path", r.URL.Path),
		)

		http.Redirect(w, r, "/login", http.StatusTemporaryRedirect)

		return "", false
	}

	return token, true
}

// internalError surfaces a remote or internal failure with its detail text.
// This is an operator-facing tool; the body is the diagnostic.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed",
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)

	http.Error(w, err.Error(), http.StatusInternalServerError)
}
