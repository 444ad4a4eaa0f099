package highlight

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/plang/ptool/internal/lexicon"
	"github.com/plang/ptool/internal/styles"
)

// Renderer writes colorized P source to a writer using lipgloss styles.
type Renderer struct {
	highlighter *Highlighter
	color       bool
}

// NewRenderer creates a renderer. When color is false the source passes
// through unchanged, which keeps the command usable in pipes.
func NewRenderer(lex *lexicon.Lexicon, color bool) *Renderer {
	return &Renderer{
		highlighter: New(lex),
		color:       color,
	}
}

// Render writes src to w with highlight spans styled.
func (r *Renderer) Render(w io.Writer, src string) error {
	if !r.color {
		_, err := io.WriteString(w, src)
		return err
	}

	spans := r.highlighter.Scan(src)
	pos := 0

	for _, span := range spans {
		if span.Start > pos {
			if _, err := io.WriteString(w, src[pos:span.Start]); err != nil {
				return err
			}
		}

		style := spanStyle(span)
		if _, err := io.WriteString(w, style.Render(src[span.Start:span.End])); err != nil {
			return err
		}
		pos = span.End
	}

	if pos < len(src) {
		if _, err := io.WriteString(w, src[pos:]); err != nil {
			return err
		}
	}

	return nil
}

// Summarize writes a per-category token count for src, used by the
// highlight command's --stats flag.
func (r *Renderer) Summarize(w io.Writer, src string) error {
	counts := make(map[string]int)
	for _, span := range r.highlighter.Scan(src) {
		counts[spanLabel(span)]++
	}

	for _, label := range []string{"keyword", "constant", "type", "variable", "event", "machine", "comment", "string", "number"} {
		if counts[label] == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%-10s %d\n", label, counts[label]); err != nil {
			return err
		}
	}
	return nil
}

func spanStyle(span Span) lipgloss.Style {
	switch span.Kind {
	case KindComment:
		return styles.CommentStyle
	case KindString:
		return styles.StringStyle
	case KindNumber:
		return styles.NumberStyle
	default:
		return styles.CategoryStyle(span.Category)
	}
}

func spanLabel(span Span) string {
	switch span.Kind {
	case KindComment:
		return "comment"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	default:
		return span.Category.String()
	}
}
