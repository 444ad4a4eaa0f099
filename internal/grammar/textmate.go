// Package grammar generates a TextMate grammar and VSCode extension
// scaffold from the P highlight rule set, so editor hosts consume the same
// ordered pattern-to-category mapping the terminal renderer uses.
package grammar

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/plang/ptool/internal/highlight"
	"github.com/plang/ptool/internal/lexicon"
)

// TextMateGrammar represents the structure of a TextMate grammar file
type TextMateGrammar struct {
	SchemaVersion string                            `json:"$schema"`
	Name          string                            `json:"name"`
	ScopeName     string                            `json:"scopeName"`
	FileTypes     []string                          `json:"fileTypes"`
	Patterns      []TextMatePattern                 `json:"patterns"`
	Repository    map[string]TextMateRepositoryItem `json:"repository"`
}

type TextMatePattern struct {
	Include string `json:"include,omitempty"`
	Name    string `json:"name,omitempty"`
	Match   string `json:"match,omitempty"`
	Begin   string `json:"begin,omitempty"`
	End     string `json:"end,omitempty"`
}

type TextMateRepositoryItem struct {
	Patterns []TextMatePattern `json:"patterns"`
}

// scopeNames maps each rule in the highlight rule set to a TextMate scope.
var scopeNames = map[string]string{
	"line-comment":   "comment.line.double-slash.p",
	"block-comment":  "comment.block.p",
	"string":         "string.quoted.double.p",
	"number":         "constant.numeric.p",
	"keyword":        "keyword.control.p",
	"constant":       "constant.language.p",
	"builtin-type":   "storage.type.p",
	"type-suffix":    "entity.name.type.p",
	"field-suffix":   "variable.other.p",
	"event-prefix":   "entity.name.function.event.p",
	"machine-suffix": "entity.name.type.machine.p",
}

// Build creates the TextMate grammar for the lexicon. Repository entries
// appear in rule-set order, which is what encodes highlight precedence:
// exact lexicon matches shadow the naming-convention rules.
func Build(lex *lexicon.Lexicon) TextMateGrammar {
	grammar := TextMateGrammar{
		SchemaVersion: "https://raw.githubusercontent.com/martinring/tmlanguage/master/tmlanguage.json",
		Name:          "P",
		ScopeName:     "source.p",
		FileTypes:     []string{"p", "pproj"},
		Repository:    make(map[string]TextMateRepositoryItem),
	}

	for _, rule := range highlight.Rules(lex) {
		scope, ok := scopeNames[rule.Name]
		if !ok {
			scope = "markup.other.p"
		}

		pattern := TextMatePattern{Match: rule.Match, Name: scope}
		if rule.Name == "block-comment" {
			// Block comments span lines; TextMate needs begin/end for that
			pattern = TextMatePattern{Begin: `/\*`, End: `\*/`, Name: scope}
		}

		grammar.Repository[rule.Name] = TextMateRepositoryItem{
			Patterns: []TextMatePattern{pattern},
		}
		grammar.Patterns = append(grammar.Patterns, TextMatePattern{Include: "#" + rule.Name})
	}

	return grammar
}

// packageManifest is the package.json scaffold for the generated extension.
type packageManifest struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Version     string `json:"version"`
	Engines     struct {
		VSCode string `json:"vscode"`
	} `json:"engines"`
	Categories  []string `json:"categories"`
	Contributes struct {
		Languages []struct {
			ID            string   `json:"id"`
			Aliases       []string `json:"aliases"`
			Extensions    []string `json:"extensions"`
			Configuration string   `json:"configuration"`
		} `json:"languages"`
		Grammars []struct {
			Language  string `json:"language"`
			ScopeName string `json:"scopeName"`
			Path      string `json:"path"`
		} `json:"grammars"`
	} `json:"contributes"`
}

// WriteExtension writes the grammar plus the VSCode extension scaffold
// (package.json, language configuration, README) to outputDir.
func WriteExtension(outputDir string, grammar TextMateGrammar) error {
	syntaxDir := filepath.Join(outputDir, "syntaxes")
	if err := os.MkdirAll(syntaxDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if err := writeJSON(filepath.Join(syntaxDir, "p.tmLanguage.json"), grammar); err != nil {
		return err
	}

	var manifest packageManifest
	manifest.Name = "p-language"
	manifest.DisplayName = "P Language"
	manifest.Description = "Syntax highlighting for the P model-checker language"
	manifest.Version = "0.1.0"
	manifest.Engines.VSCode = "^1.74.0"
	manifest.Categories = []string{"Programming Languages"}
	manifest.Contributes.Languages = []struct {
		ID            string   `json:"id"`
		Aliases       []string `json:"aliases"`
		Extensions    []string `json:"extensions"`
		Configuration string   `json:"configuration"`
	}{{
		ID:            "p",
		Aliases:       []string{"P", "p"},
		Extensions:    []string{".p"},
		Configuration: "./language-configuration.json",
	}}
	manifest.Contributes.Grammars = []struct {
		Language  string `json:"language"`
		ScopeName string `json:"scopeName"`
		Path      string `json:"path"`
	}{{
		Language:  "p",
		ScopeName: grammar.ScopeName,
		Path:      "./syntaxes/p.tmLanguage.json",
	}}

	if err := writeJSON(filepath.Join(outputDir, "package.json"), manifest); err != nil {
		return err
	}

	languageConfig := map[string]any{
		"comments": map[string]any{
			"lineComment":  "//",
			"blockComment": []string{"/*", "*/"},
		},
		"brackets": [][]string{{"{", "}"}, {"[", "]"}, {"(", ")"}},
		"autoClosingPairs": []map[string]string{
			{"open": "{", "close": "}"},
			{"open": "[", "close": "]"},
			{"open": "(", "close": ")"},
			{"open": "\"", "close": "\""},
		},
	}
	if err := writeJSON(filepath.Join(outputDir, "language-configuration.json"), languageConfig); err != nil {
		return err
	}

	readme := `# P Language Support

Syntax highlighting for the P model-checker language, generated by ptool.

## Install

    code --install-extension .

## Regenerate

    ptool grammar <output-dir>
`
	if err := os.WriteFile(filepath.Join(outputDir, "README.md"), []byte(readme), 0644); err != nil {
		return fmt.Errorf("writing README: %w", err)
	}

	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}
