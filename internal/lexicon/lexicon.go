package lexicon

import (
	"fmt"
	"regexp"
	"sort"
)

// Category identifies the display category assigned to an identifier.
type Category int

const (
	CategoryNone Category = iota
	CategoryKeyword
	CategoryConstant
	CategoryType
	CategoryVariable
	CategoryEvent
	CategoryMachine
)

// String returns the lowercase name of the category
func (c Category) String() string {
	switch c {
	case CategoryKeyword:
		return "keyword"
	case CategoryConstant:
		return "constant"
	case CategoryType:
		return "type"
	case CategoryVariable:
		return "variable"
	case CategoryEvent:
		return "event"
	case CategoryMachine:
		return "machine"
	default:
		return "none"
	}
}

// P language identifier sets. The three sets must stay disjoint: an
// identifier belongs to exactly one of them or to none.
var (
	defaultKeywords = []string{
		"announce", "assert", "assume", "break", "case", "choose", "cold",
		"continue", "defer", "do", "else", "entry", "enum", "event",
		"exit", "foreach", "format", "fun", "goto", "hot", "if", "ignore",
		"in", "interface", "keys", "machine", "module", "new", "observes",
		"on", "print", "raise", "receive", "return", "send", "sizeof",
		"spec", "start", "state", "test", "this", "type", "values", "var",
		"while", "with",
	}

	defaultConstants = []string{
		"default", "false", "halt", "null", "true",
	}

	defaultBuiltinTypes = []string{
		"any", "bool", "data", "float", "int", "map", "seq", "set", "string",
	}
)

// Naming-convention patterns, applied only when an identifier is absent
// from every lexicon set, in this exact order.
var (
	// Type names by convention: ResultType, payloadType
	typeSuffixRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*Type$`)

	// Field/local names by convention: countV, indexV
	fieldSuffixRegex = regexp.MustCompile(`^[a-z][A-Za-z0-9_]*V$`)

	// Event names by convention: eSendAck, eTimeout
	eventPrefixRegex = regexp.MustCompile(`^e[A-Z][A-Za-z0-9_]*$`)

	// Machine names by convention: clientMachine, ServerMachine
	machineSuffixRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*Machine$`)
)

// ConventionRule pairs a naming-convention pattern with the category it implies.
type ConventionRule struct {
	Name     string
	Pattern  *regexp.Regexp
	Category Category
}

// ConventionRules returns the four naming-convention rules in application order.
func ConventionRules() []ConventionRule {
	return []ConventionRule{
		{Name: "type-suffix", Pattern: typeSuffixRegex, Category: CategoryType},
		{Name: "field-suffix", Pattern: fieldSuffixRegex, Category: CategoryVariable},
		{Name: "event-prefix", Pattern: eventPrefixRegex, Category: CategoryEvent},
		{Name: "machine-suffix", Pattern: machineSuffixRegex, Category: CategoryMachine},
	}
}

// Lexicon holds the identifier sets for exact-match classification.
// It is built once and never mutated afterwards.
type Lexicon struct {
	keywords     map[string]struct{}
	constants    map[string]struct{}
	builtinTypes map[string]struct{}
	conventions  []ConventionRule
}

// New returns the default P language lexicon.
func New() *Lexicon {
	lex, err := NewWithSets(defaultKeywords, defaultConstants, defaultBuiltinTypes)
	if err != nil {
		// The built-in tables are disjoint by construction
		panic(err)
	}
	return lex
}

// NewWithSets builds a lexicon from explicit identifier sets. It returns an
// error if any identifier appears in more than one category.
func NewWithSets(keywords, constants, builtinTypes []string) (*Lexicon, error) {
	lex := &Lexicon{
		keywords:     toSet(keywords),
		constants:    toSet(constants),
		builtinTypes: toSet(builtinTypes),
		conventions:  ConventionRules(),
	}

	for ident := range lex.constants {
		if _, ok := lex.keywords[ident]; ok {
			return nil, fmt.Errorf("identifier %q is both keyword and constant", ident)
		}
	}
	for ident := range lex.builtinTypes {
		if _, ok := lex.keywords[ident]; ok {
			return nil, fmt.Errorf("identifier %q is both keyword and built-in type", ident)
		}
		if _, ok := lex.constants[ident]; ok {
			return nil, fmt.Errorf("identifier %q is both constant and built-in type", ident)
		}
	}

	return lex, nil
}

// Classify returns the display category for an identifier, or CategoryNone.
// Exact set membership always wins over naming conventions: an identifier that
// is a declared keyword is a keyword even when it also ends in "Type".
func (l *Lexicon) Classify(ident string) Category {
	if _, ok := l.keywords[ident]; ok {
		return CategoryKeyword
	}
	if _, ok := l.constants[ident]; ok {
		return CategoryConstant
	}
	if _, ok := l.builtinTypes[ident]; ok {
		return CategoryType
	}

	for _, rule := range l.conventions {
		if rule.Pattern.MatchString(ident) {
			return rule.Category
		}
	}

	return CategoryNone
}

// Keywords returns the keyword set in sorted order.
func (l *Lexicon) Keywords() []string {
	return sorted(l.keywords)
}

// Constants returns the constant set in sorted order.
func (l *Lexicon) Constants() []string {
	return sorted(l.constants)
}

// BuiltinTypes returns the built-in type set in sorted order.
func (l *Lexicon) BuiltinTypes() []string {
	return sorted(l.builtinTypes)
}

func toSet(idents []string) map[string]struct{} {
	set := make(map[string]struct{}, len(idents))
	for _, ident := range idents {
		set[ident] = struct{}{}
	}
	return set
}

func sorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for ident := range set {
		out = append(out, ident)
	}
	sort.Strings(out)
	return out
}
