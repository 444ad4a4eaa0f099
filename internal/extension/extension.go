// Package extension wires the language support (highlight rules and
// snippets) into a host through an explicit activate/dispose lifecycle,
// independent of any particular editor.
package extension

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/plang/ptool/internal/highlight"
	"github.com/plang/ptool/internal/lexicon"
	"github.com/plang/ptool/internal/logging"
	"github.com/plang/ptool/internal/snippets"
)

// Host is the surface a hosting environment offers the extension. Hosts
// own trigger matching, cursor placement, and re-coloring; the extension
// only hands them its tables.
type Host interface {
	RegisterHighlighter(rules []highlight.Rule) error
	RegisterSnippets(source string, snips []snippets.Snippet) error
	UnregisterAll()
	Warnf(format string, args ...any)
}

// Options adjusts activation.
type Options struct {
	// SnippetDir names an extra snippet directory to load alongside the
	// bundled templates. Its absence is a warning, never a failure.
	SnippetDir string
}

// Extension is the live, disposable result of an activation.
type Extension struct {
	Lexicon  *lexicon.Lexicon
	Registry *snippets.Registry

	host   Host
	closed bool
}

// Activate registers the highlight rule set and the snippet sources with
// the host and returns a disposable extension. A missing snippet directory
// degrades to zero snippets from that source with a warning.
func Activate(ctx context.Context, host Host, opts Options) (*Extension, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lex := lexicon.New()
	ext := &Extension{
		Lexicon:  lex,
		Registry: snippets.NewRegistry(),
		host:     host,
	}

	if err := host.RegisterHighlighter(highlight.Rules(lex)); err != nil {
		return nil, fmt.Errorf("registering highlighter: %w", err)
	}

	if err := ext.registerSnippetSource(snippets.EmbeddedSource, snippets.LoadEmbedded); err != nil {
		return nil, err
	}

	if opts.SnippetDir != "" {
		load := func() ([]snippets.Snippet, error) { return snippets.LoadDir(opts.SnippetDir) }
		if err := ext.registerSnippetSource(opts.SnippetDir, load); err != nil {
			return nil, err
		}
	}

	logging.Debug("Extension activated", "snippets", ext.Registry.Len())
	return ext, nil
}

// registerSnippetSource loads one snippet source and registers it with both
// the host and the registry. Load failures are non-fatal: the extension
// stays usable with whatever snippets did load.
func (e *Extension) registerSnippetSource(source string, load func() ([]snippets.Snippet, error)) error {
	snips, err := load()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			e.host.Warnf("snippet source %s not found, continuing without it", source)
			return nil
		}
		e.host.Warnf("snippet source %s unreadable, continuing without it: %v", source, err)
		return nil
	}

	if added := e.Registry.RegisterSource(source, snips); added == 0 {
		// Already registered; nothing new to hand the host
		return nil
	}

	if err := e.host.RegisterSnippets(source, snips); err != nil {
		return fmt.Errorf("registering snippets from %s: %w", source, err)
	}
	return nil
}

// Close tears the registration down. Closing twice is a no-op.
func (e *Extension) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.host.UnregisterAll()
	logging.Debug("Extension deactivated")
	return nil
}

// InProcessHost is a Host that keeps registrations in memory. The commands
// use it to consume the same tables an editor host would, and tests use it
// to observe activation.
type InProcessHost struct {
	Rules    []highlight.Rule
	Snippets map[string][]snippets.Snippet
	Warnings []string
}

// NewInProcessHost creates an empty in-process host.
func NewInProcessHost() *InProcessHost {
	return &InProcessHost{Snippets: make(map[string][]snippets.Snippet)}
}

// RegisterHighlighter stores the rule set.
func (h *InProcessHost) RegisterHighlighter(rules []highlight.Rule) error {
	h.Rules = rules
	return nil
}

// RegisterSnippets stores a snippet source.
func (h *InProcessHost) RegisterSnippets(source string, snips []snippets.Snippet) error {
	h.Snippets[source] = snips
	return nil
}

// UnregisterAll drops every registration.
func (h *InProcessHost) UnregisterAll() {
	h.Rules = nil
	h.Snippets = make(map[string][]snippets.Snippet)
}

// Warnf records a warning.
func (h *InProcessHost) Warnf(format string, args ...any) {
	h.Warnings = append(h.Warnings, fmt.Sprintf(format, args...))
	logging.Warn(fmt.Sprintf(format, args...))
}
