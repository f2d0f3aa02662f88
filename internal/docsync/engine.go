package docsync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mdview/mdview/internal/google"
)

// DocsAPI is the slice of the provider client the engine needs.
type DocsAPI interface {
	DocLength(ctx context.Context, docID, token string) (int64, error)
	BatchUpdate(ctx context.Context, docID string, requests []google.Request, token string) (string, error)
}

// Engine performs whole-document content replacement. Concurrent calls on
// the same document are not ordered; the last batch the provider applies
// wins.
type Engine struct {
	docs   DocsAPI
	logger *slog.Logger
}

// NewEngine returns an engine backed by the given Docs client.
func NewEngine(docs DocsAPI, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{docs: docs, logger: logger}
}

// Confirmation reports a completed content update.
type Confirmation struct {
	// Applied is the text now in the document.
	Applied string
	// Response is the provider's raw batch-update response, empty for a
	// no-op update.
	Response string
}

// SetContent replaces the document's text with the desired text. The current
// extent is read first, then the minimal batch (insert, delete, or
// delete-then-insert) is submitted as one atomic call; either the whole
// replacement is applied or the document is left untouched.
func (e *Engine) SetContent(ctx context.Context, docID, text, token string) (*Confirmation, error) {
	length, err := e.docs.DocLength(ctx, docID, token)
	if err != nil {
		return nil, err
	}

	// The reported end index counts the document's trailing newline, which
	// can be neither deleted nor written over.
	end := length - 1
	if end < 0 {
		end = 0
	}

	plan := BuildPlan(end, text)

	e.logger.Info("updating document content",
		slog.String("doc_id", docID),
		slog.Int64("end", end),
		slog.String("plan", plan.Kind.String()),
	)

	if plan.Kind == NoOp {
		return &Confirmation{Applied: text}, nil
	}

	raw, err := e.docs.BatchUpdate(ctx, docID, plan.Requests(), token)
	if err != nil {
		return nil, fmt.Errorf("updating document %s: %w", docID, err)
	}

	return &Confirmation{Applied: text, Response: raw}, nil
}
