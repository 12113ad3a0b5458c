// Package launcher adapts the classifier and engine to a launcher host: it
// decides which queries reach qalc and what the user gets to see.
package launcher

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shahar-caura/qalcrun/internal/classify"
)

// DefaultScore ranks qalc answers in mixed result lists.
const DefaultScore = 300

const (
	copySubTitle = "Copy to clipboard"
	failureTitle = "Failed to evaluate query"
)

// Plugin answers launcher queries with qalc results.
type Plugin struct {
	Locator   Locator
	Evaluator Evaluator
	Clipboard Clipboard
	Logger    *slog.Logger
	Score     int
}

// New creates a Plugin backed by the system clipboard.
func New(locator Locator, evaluator Evaluator, logger *slog.Logger) *Plugin {
	return &Plugin{
		Locator:   locator,
		Evaluator: evaluator,
		Clipboard: SystemClipboard{},
		Logger:    logger,
		Score:     DefaultScore,
	}
}

// Query returns zero or one results for q. Ambient queries must pass the
// classifier first and never surface errors; explicit queries are always
// evaluated and report failures as a single item.
func (p *Plugin) Query(ctx context.Context, q Query) []Result {
	search := strings.TrimSpace(q.Search)

	enginePath, found := p.Locator.Path()
	if !found || search == "" {
		return nil
	}

	if !q.Explicit() && !classify.ShouldEvaluate(search) {
		return nil
	}

	line, ok, err := p.Evaluator.Evaluate(ctx, enginePath, search)
	if err != nil {
		return p.errorResult(q, err)
	}
	if !ok {
		return nil
	}

	return []Result{{
		Title:    line,
		SubTitle: copySubTitle,
		Score:    p.Score,
		Action:   func() bool { return p.copy(line) },
	}}
}

func (p *Plugin) errorResult(q Query, err error) []Result {
	p.Logger.Error("evaluating query failed", "query", q.RawQuery, "explicit", q.Explicit(), "error", err)

	if !q.Explicit() {
		return nil
	}
	return []Result{{
		Title:    failureTitle,
		SubTitle: err.Error(),
		Score:    p.Score,
	}}
}

func (p *Plugin) copy(text string) bool {
	if err := p.Clipboard.WriteAll(text); err != nil {
		p.Logger.Warn("copy to clipboard failed", "error", err)
		return false
	}
	return true
}

// ParseQuery splits a raw launcher line into a Query. A line starting with
// keyword followed by whitespace (or the keyword alone) is explicit. An empty
// keyword makes every line ambient.
func ParseQuery(raw, keyword string) Query {
	q := Query{Search: raw, RawQuery: raw}
	if keyword == "" {
		return q
	}

	trimmed := strings.TrimLeft(raw, " \t")
	rest, ok := strings.CutPrefix(trimmed, keyword)
	if !ok {
		return q
	}
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return q
	}
	q.ActionKeyword = keyword
	q.Search = rest
	return q
}
