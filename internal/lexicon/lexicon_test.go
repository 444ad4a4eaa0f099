package lexicon

import (
	"testing"
)

func TestDefaultSetsAreDisjoint(t *testing.T) {
	// New panics if the built-in tables overlap, but check explicitly so a
	// table edit fails with a readable message instead of a panic trace.
	if _, err := NewWithSets(defaultKeywords, defaultConstants, defaultBuiltinTypes); err != nil {
		t.Fatalf("default lexicon sets overlap: %v", err)
	}
}

func TestNewWithSetsRejectsOverlap(t *testing.T) {
	tests := []struct {
		name         string
		keywords     []string
		constants    []string
		builtinTypes []string
	}{
		{
			name:      "keyword and constant",
			keywords:  []string{"halt"},
			constants: []string{"halt"},
		},
		{
			name:         "keyword and type",
			keywords:     []string{"machine"},
			builtinTypes: []string{"machine"},
		},
		{
			name:         "constant and type",
			constants:    []string{"null"},
			builtinTypes: []string{"null"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewWithSets(tt.keywords, tt.constants, tt.builtinTypes); err == nil {
				t.Errorf("Expected overlap error, got none")
			}
		})
	}
}

func TestClassifyExactSets(t *testing.T) {
	lex := New()

	tests := []struct {
		ident string
		want  Category
	}{
		{"machine", CategoryKeyword},
		{"event", CategoryKeyword},
		{"goto", CategoryKeyword},
		{"announce", CategoryKeyword},
		{"true", CategoryConstant},
		{"null", CategoryConstant},
		{"halt", CategoryConstant},
		{"int", CategoryType},
		{"seq", CategoryType},
		{"string", CategoryType},
	}

	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			if got := lex.Classify(tt.ident); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.ident, got, tt.want)
			}
		})
	}
}

func TestClassifyNamingConventions(t *testing.T) {
	lex := New()

	tests := []struct {
		ident string
		want  Category
	}{
		{"ResultType", CategoryType},
		{"payloadType", CategoryType},
		{"countV", CategoryVariable},
		{"indexV", CategoryVariable},
		{"eSendAck", CategoryEvent},
		{"eTimeout", CategoryEvent},
		{"clientMachine", CategoryMachine},
		{"ServerMachine", CategoryMachine},
		// Near-misses that must not match
		{"Envelope", CategoryNone},
		{"eV", CategoryNone},
		{"CountV", CategoryNone},
		{"typedef", CategoryNone},
		{"plain", CategoryNone},
	}

	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			if got := lex.Classify(tt.ident); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.ident, got, tt.want)
			}
		})
	}
}

func TestExactMatchBeatsConvention(t *testing.T) {
	// An identifier that is both a declared keyword and a convention match
	// must classify by its set, never by the pattern.
	lex, err := NewWithSets(
		[]string{"eventType", "startMachine"},
		[]string{"eNull"},
		[]string{"counterV"},
	)
	if err != nil {
		t.Fatalf("Unexpected overlap error: %v", err)
	}

	tests := []struct {
		ident string
		want  Category
	}{
		{"eventType", CategoryKeyword},
		{"startMachine", CategoryKeyword},
		{"eNull", CategoryConstant},
		{"counterV", CategoryType},
	}

	for _, tt := range tests {
		if got := lex.Classify(tt.ident); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.ident, got, tt.want)
		}
	}
}

func TestConventionOrder(t *testing.T) {
	// field-suffix is tested before event-prefix, so a name matching both
	// resolves to the first rule in order.
	lex := New()
	if got := lex.Classify("eCountV"); got != CategoryVariable {
		t.Errorf("Classify(eCountV) = %v, want %v", got, CategoryVariable)
	}
}
