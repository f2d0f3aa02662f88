// Package docsync replaces the entire text of a remote document with a
// minimal edit batch: a pure insert, a pure delete, or an atomic
// delete-then-insert.
package docsync

import "github.com/mdview/mdview/internal/google"

// Kind classifies the edit a document needs.
type Kind int

const (
	// NoOp means the document is already empty and no text is wanted.
	NoOp Kind = iota
	// InsertOnly inserts the desired text into an empty document.
	InsertOnly
	// DeleteOnly clears the document.
	DeleteOnly
	// DeleteThenInsert clears the document and inserts the desired text as
	// one atomic batch.
	DeleteThenInsert
)

func (k Kind) String() string {
	switch k {
	case NoOp:
		return "noop"
	case InsertOnly:
		return "insert"
	case DeleteOnly:
		return "delete"
	case DeleteThenInsert:
		return "replace"
	default:
		return "unknown"
	}
}

// firstIndex is the first writable position in a document body; index 0 is
// reserved by the document format.
const firstIndex = 1

// Plan is the edit computed for one content update. It is recomputed on
// every call, never stored.
type Plan struct {
	Kind Kind
	End  int64
	Text string
}

// BuildPlan classifies the edit for a document whose writable extent ends at
// end (the provider-reported length minus its trailing sentinel newline)
// given the desired replacement text. end <= 1 means the document holds no
// writable content.
func BuildPlan(end int64, text string) Plan {
	switch {
	case end <= firstIndex && text == "":
		return Plan{Kind: NoOp, End: end}
	case end <= firstIndex:
		return Plan{Kind: InsertOnly, End: end, Text: text}
	case text == "":
		return Plan{Kind: DeleteOnly, End: end}
	default:
		return Plan{Kind: DeleteThenInsert, End: end, Text: text}
	}
}

// Requests renders the plan as ordered batch-update entries. A NoOp plan
// renders no entries.
func (p Plan) Requests() []google.Request {
	insert := google.Request{InsertText: &google.InsertTextRequest{
		Text:     p.Text,
		Location: google.Location{Index: firstIndex},
	}}

	del := google.Request{DeleteContentRange: &google.DeleteContentRangeRequest{
		Range: google.Range{StartIndex: firstIndex, EndIndex: p.End},
	}}

	switch p.Kind {
	case InsertOnly:
		return []google.Request{insert}
	case DeleteOnly:
		return []google.Request{del}
	case DeleteThenInsert:
		return []google.Request{del, insert}
	default:
		return nil
	}
}
