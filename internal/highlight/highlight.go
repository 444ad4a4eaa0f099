package highlight

import (
	"fmt"

	"github.com/plang/ptool/internal/lexicon"
)

// Kind classifies a highlighted span of source text.
type Kind int

const (
	KindNone Kind = iota
	KindComment
	KindString
	KindNumber
	KindIdentifier
)

// Span is a half-open byte range [Start, End) of the source with its
// assigned highlight. Category is meaningful only for KindIdentifier.
type Span struct {
	Start    int
	End      int
	Kind     Kind
	Category lexicon.Category
}

// Highlighter scans P source text into highlight spans. Scanning is pure:
// the same source always yields the same spans, with no side effects, so
// a host can re-run it on every text change.
type Highlighter struct {
	lex *lexicon.Lexicon
}

// New creates a highlighter over the given lexicon.
func New(lex *lexicon.Lexicon) *Highlighter {
	return &Highlighter{lex: lex}
}

// Scan returns the highlight spans for src in source order.
// Identifiers that classify to no category produce no span.
func (h *Highlighter) Scan(src string) []Span {
	var spans []Span
	i := 0
	n := len(src)

	for i < n {
		c := src[i]

		switch {
		// Line comment: // to end of line
		case c == '/' && i+1 < n && src[i+1] == '/':
			end := i
			for end < n && src[end] != '\n' {
				end++
			}
			spans = append(spans, Span{Start: i, End: end, Kind: KindComment})
			i = end

		// Block comment: /* ... */, unterminated runs to end of source
		case c == '/' && i+1 < n && src[i+1] == '*':
			end := i + 2
			for end+1 < n && !(src[end] == '*' && src[end+1] == '/') {
				end++
			}
			if end+1 < n {
				end += 2
			} else {
				end = n
			}
			spans = append(spans, Span{Start: i, End: end, Kind: KindComment})
			i = end

		// String literal with backslash escapes
		case c == '"':
			end := i + 1
			for end < n && src[end] != '"' {
				if src[end] == '\\' && end+1 < n {
					end++
				}
				end++
			}
			if end < n {
				end++
			}
			spans = append(spans, Span{Start: i, End: end, Kind: KindString})
			i = end

		// Number literal
		case isDigit(c):
			end := i + 1
			for end < n && (isDigit(src[end]) || src[end] == '.') {
				end++
			}
			spans = append(spans, Span{Start: i, End: end, Kind: KindNumber})
			i = end

		// Identifier
		case isIdentStart(c):
			end := i + 1
			for end < n && isIdentPart(src[end]) {
				end++
			}
			if cat := h.lex.Classify(src[i:end]); cat != lexicon.CategoryNone {
				spans = append(spans, Span{Start: i, End: end, Kind: KindIdentifier, Category: cat})
			}
			i = end

		default:
			i++
		}
	}

	return spans
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

// Rule is one entry of the ordered pattern-to-category mapping consumed by
// host highlighting engines (e.g. TextMate grammar generation). Match is a
// regular expression source string, not a compiled regexp, because hosts
// compile patterns with their own engines.
type Rule struct {
	Name     string
	Match    string
	Kind     Kind
	Category lexicon.Category
}

// Rules returns the full ordered rule set for the lexicon: comments and
// literals first, then the exact identifier sets, then the four
// naming-convention rules. Order encodes precedence.
func Rules(lex *lexicon.Lexicon) []Rule {
	rules := []Rule{
		{Name: "line-comment", Match: `//[^\n]*`, Kind: KindComment},
		{Name: "block-comment", Match: `/\*[\s\S]*?\*/`, Kind: KindComment},
		{Name: "string", Match: `"(\\.|[^"\\])*"`, Kind: KindString},
		{Name: "number", Match: `\b[0-9][0-9.]*\b`, Kind: KindNumber},
		{Name: "keyword", Match: alternation(lex.Keywords()), Kind: KindIdentifier, Category: lexicon.CategoryKeyword},
		{Name: "constant", Match: alternation(lex.Constants()), Kind: KindIdentifier, Category: lexicon.CategoryConstant},
		{Name: "builtin-type", Match: alternation(lex.BuiltinTypes()), Kind: KindIdentifier, Category: lexicon.CategoryType},
	}

	for _, conv := range lexicon.ConventionRules() {
		rules = append(rules, Rule{
			Name:     conv.Name,
			Match:    unanchor(conv.Pattern.String()),
			Kind:     KindIdentifier,
			Category: conv.Category,
		})
	}

	return rules
}

// alternation builds a word-boundary alternation for an identifier set.
func alternation(idents []string) string {
	pattern := `\b(?:`
	for i, ident := range idents {
		if i > 0 {
			pattern += "|"
		}
		pattern += ident
	}
	return pattern + `)\b`
}

// unanchor converts an ^...$ identifier pattern into a word-bounded one.
func unanchor(pattern string) string {
	if len(pattern) >= 2 && pattern[0] == '^' && pattern[len(pattern)-1] == '$' {
		return fmt.Sprintf(`\b%s\b`, pattern[1:len(pattern)-1])
	}
	return pattern
}
