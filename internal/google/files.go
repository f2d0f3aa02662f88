package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
)

// rootQuery selects items directly under the Drive root.
const rootQuery = "'root' in parents"

// createFileRequest is the metadata body for files.create.
type createFileRequest struct {
	Name     string   `json:"name"`
	Parents  []string `json:"parents,omitempty"`
	MimeType string   `json:"mimeType"`
}

// ListFiles runs a files.list call with the given q filter and decodes the
// result.
func (c *Client) ListFiles(ctx context.Context, query, token string) (*FileList, error) {
	u := c.apiURL + "/drive/v3/files?q=" + url.QueryEscape(query)

	resp, err := c.do(ctx, http.MethodGet, u, token, "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var list FileList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("google: decoding file list for query %q: %w", query, err)
	}

	return &list, nil
}

// ListRoot lists the items directly under the Drive root.
func (c *Client) ListRoot(ctx context.Context, token string) (*FileList, error) {
	return c.ListFiles(ctx, rootQuery, token)
}

// ListFolder lists the children of the given folder.
func (c *Client) ListFolder(ctx context.Context, folderID, token string) (*FileList, error) {
	return c.ListFiles(ctx, fmt.Sprintf("'%s' in parents", folderID), token)
}

// FindInRoot scans the root listing for an entry matching name and type.
// Returns nil without error when no entry matches.
func (c *Client) FindInRoot(ctx context.Context, name string, filetype FileType, token string) (*File, error) {
	list, err := c.ListRoot(ctx, token)
	if err != nil {
		return nil, err
	}

	return list.Find(name, filetype), nil
}

// CreateDocument creates an empty Google Doc named name under parentID.
func (c *Client) CreateDocument(ctx context.Context, name, parentID, token string) (*File, error) {
	c.logger.Info("creating document",
		slog.String("name", name),
		slog.String("parent_id", parentID),
	)

	reqBody := createFileRequest{
		Name:     name,
		Parents:  []string{parentID},
		MimeType: TypeDocument.MimeType(),
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("google: marshaling create document request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, c.apiURL+"/drive/v3/files", token, "application/json", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var file File
	if err := json.NewDecoder(resp.Body).Decode(&file); err != nil {
		return nil, fmt.Errorf("google: decoding create document response: %w", err)
	}

	if file.ID == "" {
		return nil, fmt.Errorf("google: create document response carries no file ID")
	}

	return &file, nil
}

// CreateFolder creates a folder at the Drive root via the multipart upload
// endpoint. The request body is a single multipart/related part holding the
// JSON metadata that names the folder and declares the folder mime type.
func (c *Client) CreateFolder(ctx context.Context, name, token string) (*File, error) {
	c.logger.Info("creating folder", slog.String("name", name))

	metadata, err := json.Marshal(createFileRequest{
		Name:     name,
		MimeType: TypeFolder.MimeType(),
	})
	if err != nil {
		return nil, fmt.Errorf("google: marshaling folder metadata: %w", err)
	}

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Type", "application/json; charset=UTF-8")

	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("google: building multipart body: %w", err)
	}

	if _, err := part.Write(metadata); err != nil {
		return nil, fmt.Errorf("google: writing metadata part: %w", err)
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("google: finalizing multipart body: %w", err)
	}

	contentType := "multipart/related; boundary=" + mw.Boundary()
	u := c.uploadURL + "/drive/v3/files?uploadType=multipart"

	resp, err := c.do(ctx, http.MethodPost, u, token, contentType, &body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var file File
	if err := json.NewDecoder(resp.Body).Decode(&file); err != nil {
		return nil, fmt.Errorf("google: decoding create folder response: %w", err)
	}

	return &file, nil
}

// ExportText exports a document as plain text.
func (c *Client) ExportText(ctx context.Context, fileID, token string) (string, error) {
	u := fmt.Sprintf("%s/drive/v3/files/%s/export?mimeType=%s", c.apiURL, url.PathEscape(fileID), url.QueryEscape("text/plain"))

	return c.text(ctx, http.MethodGet, u, token, "", nil)
}

// FileMetadata fetches the raw metadata JSON for a file. The body is relayed
// verbatim; callers display it rather than interpret it.
func (c *Client) FileMetadata(ctx context.Context, fileID, token string) (string, error) {
	u := fmt.Sprintf("%s/drive/v3/files/%s", c.apiURL, url.PathEscape(fileID))

	return c.text(ctx, http.MethodGet, u, token, "", nil)
}
