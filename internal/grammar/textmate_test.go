package grammar

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/plang/ptool/internal/lexicon"
)

func TestBuild(t *testing.T) {
	grammar := Build(lexicon.New())

	if grammar.ScopeName != "source.p" {
		t.Errorf("ScopeName = %q", grammar.ScopeName)
	}

	// Includes follow rule-set order so exact matches precede conventions
	var includes []string
	for _, p := range grammar.Patterns {
		includes = append(includes, p.Include)
	}
	joined := strings.Join(includes, ",")
	if !strings.Contains(joined, "#keyword") || !strings.Contains(joined, "#type-suffix") {
		t.Fatalf("missing includes: %v", includes)
	}
	if strings.Index(joined, "#keyword") > strings.Index(joined, "#type-suffix") {
		t.Errorf("keyword include must precede convention includes: %v", includes)
	}

	kw, ok := grammar.Repository["keyword"]
	if !ok || len(kw.Patterns) != 1 {
		t.Fatalf("keyword repository entry missing: %+v", kw)
	}
	if !strings.Contains(kw.Patterns[0].Match, "machine") {
		t.Errorf("keyword pattern missing alternation: %q", kw.Patterns[0].Match)
	}
	if kw.Patterns[0].Name != "keyword.control.p" {
		t.Errorf("keyword scope = %q", kw.Patterns[0].Name)
	}

	block := grammar.Repository["block-comment"]
	if len(block.Patterns) != 1 || block.Patterns[0].Begin == "" || block.Patterns[0].End == "" {
		t.Errorf("block comment should use begin/end: %+v", block.Patterns)
	}
}

func TestWriteExtension(t *testing.T) {
	dir := t.TempDir()
	grammar := Build(lexicon.New())

	if err := WriteExtension(dir, grammar); err != nil {
		t.Fatalf("WriteExtension: %v", err)
	}

	for _, rel := range []string{
		"syntaxes/p.tmLanguage.json",
		"package.json",
		"language-configuration.json",
		"README.md",
	} {
		if _, err := os.Stat(filepath.Join(dir, rel)); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}

	// The grammar file round-trips as valid JSON
	data, err := os.ReadFile(filepath.Join(dir, "syntaxes", "p.tmLanguage.json"))
	if err != nil {
		t.Fatalf("reading grammar: %v", err)
	}
	var decoded TextMateGrammar
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("grammar is not valid JSON: %v", err)
	}
	if decoded.Name != "P" {
		t.Errorf("decoded grammar name = %q", decoded.Name)
	}
}
