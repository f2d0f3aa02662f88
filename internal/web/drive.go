package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// handleList shows the contents of the app folder as indented JSON.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	token, ok := s.bearer(w, r)
	if !ok {
		return
	}

	folderID, err := s.folder.ID(r.Context(), token)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	list, err := s.client.ListFolder(r.Context(), folderID, token)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	s.writeJSON(w, r, list)
}

// handleFolder shows the contents of an arbitrary folder.
func (s *Server) handleFolder(w http.ResponseWriter, r *http.Request) {
	token, ok := s.bearer(w, r)
	if !ok {
		return
	}

	list, err := s.client.ListFolder(r.Context(), r.PathValue("id"), token)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	s.writeJSON(w, r, list)
}

// handleFile relays a file's metadata.
func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	token, ok := s.bearer(w, r)
	if !ok {
		return
	}

	body, err := s.client.FileMetadata(r.Context(), r.PathValue("id"), token)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(body))
}

// handleCreate creates a named document inside the app folder and returns
// its id.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	token, ok := s.bearer(w, r)
	if !ok {
		return
	}

	folderID, err := s.folder.ID(r.Context(), token)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	file, err := s.client.CreateDocument(r.Context(), r.PathValue("name"), folderID, token)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	w.Write([]byte(file.ID))
}

// handleDocLen returns the document length as reported by the provider.
func (s *Server) handleDocLen(w http.ResponseWriter, r *http.Request) {
	token, ok := s.bearer(w, r)
	if !ok {
		return
	}

	length, err := s.client.DocLength(r.Context(), r.PathValue("id"), token)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	w.Write([]byte(strconv.FormatInt(length, 10)))
}

// handleGetContent exports the document as plain text.
func (s *Server) handleGetContent(w http.ResponseWriter, r *http.Request) {
	token, ok := s.bearer(w, r)
	if !ok {
		return
	}

	text, err := s.client.ExportText(r.Context(), r.PathValue("id"), token)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(text))
}

// handleSetContent replaces the document's text with the request body.
func (s *Server) handleSetContent(w http.ResponseWriter, r *http.Request) {
	token, ok := s.bearer(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.internalError(w, r, fmt.Errorf("reading request body: %w", err))
		return
	}

	conf, err := s.engine.SetContent(r.Context(), r.PathValue("id"), string(body), token)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	fmt.Fprintf(w, "Document updated with content %s\nResponse:\n%s", conf.Applied, conf.Response)
}

// writeJSON renders a value as indented JSON.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, value any) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		s.internalError(w, r, fmt.Errorf("encoding response: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
