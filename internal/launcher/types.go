package launcher

import (
	"context"

	"github.com/atotto/clipboard"
)

// Query is one launcher search as delivered by the host.
type Query struct {
	// Search is the text after the action keyword, if any.
	Search string
	// ActionKeyword is empty for ambient (global) queries.
	ActionKeyword string
	// RawQuery is the full text as typed, used for logging.
	RawQuery string
}

// Explicit reports whether the query was issued with the trigger keyword.
func (q Query) Explicit() bool { return q.ActionKeyword != "" }

// MarkExplicit returns q as an explicit query issued with keyword. Callers
// that learn explicitness out of band (a flag, a request parameter) use it
// even when no trigger keyword is configured.
func (q Query) MarkExplicit(keyword string) Query {
	if keyword == "" {
		keyword = defaultMarker
	}
	q.ActionKeyword = keyword
	return q
}

// defaultMarker stands in for the keyword when none is configured.
const defaultMarker = "="

// Result is a single answer item shown by the launcher.
type Result struct {
	Title    string
	SubTitle string
	Score    int

	// Action runs when the item is chosen. It is nil for failure items.
	Action func() bool
}

// Locator reports the engine location, if known.
type Locator interface {
	Path() (string, bool)
}

// Evaluator computes a query with the engine at enginePath.
type Evaluator interface {
	Evaluate(ctx context.Context, enginePath, query string) (line string, ok bool, err error)
}

// Clipboard receives text copied from a result.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard is the Clipboard of the host OS.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }
