package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
)

// Request is one entry of a Docs batchUpdate call. Exactly one field is set.
type Request struct {
	InsertText         *InsertTextRequest         `json:"insertText,omitempty"`
	DeleteContentRange *DeleteContentRangeRequest `json:"deleteContentRange,omitempty"`
}

// InsertTextRequest inserts text at a location in the document body.
type InsertTextRequest struct {
	Text     string   `json:"text"`
	Location Location `json:"location"`
}

// Location is a 1-based index into the document body. Index 0 is reserved by
// the document format; index 1 is the first writable position.
type Location struct {
	Index int64 `json:"index"`
}

// DeleteContentRangeRequest removes the content between two indices.
type DeleteContentRangeRequest struct {
	Range Range `json:"range"`
}

// Range spans [StartIndex, EndIndex) in the document body.
type Range struct {
	StartIndex int64 `json:"startIndex"`
	EndIndex   int64 `json:"endIndex"`
}

// batchUpdateRequest is the wire shape of the batchUpdate call body.
type batchUpdateRequest struct {
	Requests []Request `json:"requests"`
}

// docStructure is the subset of the documents.get response needed to find the
// end of the body.
type docStructure struct {
	Body struct {
		Content []struct {
			EndIndex int64 `json:"endIndex"`
		} `json:"content"`
	} `json:"body"`
}

// DocLength fetches the document structure and returns the end index of the
// last body content element. The provider counts a mandatory trailing newline
// in this value.
func (c *Client) DocLength(ctx context.Context, docID, token string) (int64, error) {
	u := fmt.Sprintf("%s/v1/documents/%s", c.docsURL, url.PathEscape(docID))

	resp, err := c.do(ctx, http.MethodGet, u, token, "", nil)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var doc docStructure
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return 0, fmt.Errorf("google: decoding document structure: %w", err)
	}

	content := doc.Body.Content
	if len(content) == 0 {
		return 0, fmt.Errorf("google: document %s has no body content", docID)
	}

	return content[len(content)-1].EndIndex, nil
}

// BatchUpdate submits an ordered list of edit requests as one atomic
// batchUpdate call and returns the raw response body. The provider applies
// all requests or none.
func (c *Client) BatchUpdate(ctx context.Context, docID string, requests []Request, token string) (string, error) {
	c.logger.Info("submitting document batch update",
		slog.String("doc_id", docID),
		slog.Int("requests", len(requests)),
	)

	bodyBytes, err := json.Marshal(batchUpdateRequest{Requests: requests})
	if err != nil {
		return "", fmt.Errorf("google: marshaling batch update: %w", err)
	}

	u := fmt.Sprintf("%s/v1/documents/%s:batchUpdate", c.docsURL, url.PathEscape(docID))

	return c.text(ctx, http.MethodPost, u, token, "application/json", bytes.NewReader(bodyBytes))
}
