package snippets

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed templates/*.json
var templatesFS embed.FS

// EmbeddedSource is the registry source name for the bundled templates.
const EmbeddedSource = "embedded"

// snippetFile mirrors the on-disk template format: a map from snippet name
// to its definition.
type snippetFile map[string]struct {
	Prefix      string   `json:"prefix"`
	Description string   `json:"description"`
	Body        []string `json:"body"`
}

// LoadEmbedded parses the bundled snippet templates.
func LoadEmbedded() ([]Snippet, error) {
	return loadFS(templatesFS, "templates")
}

// LoadDir parses snippet templates from an external directory. A missing
// directory is reported via fs.ErrNotExist so callers can degrade to a
// warning instead of failing activation.
func LoadDir(dir string) ([]Snippet, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("snippet directory %s: %w", dir, err)
	}
	return loadFS(os.DirFS(dir), ".")
}

func loadFS(fsys fs.FS, root string) ([]Snippet, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("reading snippet directory: %w", err)
	}

	var snips []Snippet
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := fs.ReadFile(fsys, fsPath(root, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading snippet file %s: %w", entry.Name(), err)
		}

		var file snippetFile
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parsing snippet file %s: %w", entry.Name(), err)
		}

		names := make([]string, 0, len(file))
		for name := range file {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			def := file[name]
			snips = append(snips, Snippet{
				Name:        name,
				Trigger:     def.Prefix,
				Description: def.Description,
				Body:        def.Body,
			})
		}
	}

	return snips, nil
}

func fsPath(root, name string) string {
	if root == "." {
		return name
	}
	return root + "/" + name
}

// Extract writes the bundled templates to a directory on disk so they can
// be edited or handed to another snippet host.
func Extract(targetDir string) error {
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return fmt.Errorf("failed to create target directory: %v", err)
	}

	return fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		content, err := templatesFS.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read embedded file %s: %v", p, err)
		}

		targetPath := filepath.Join(targetDir, strings.TrimPrefix(p, "templates/"))
		if err := os.WriteFile(targetPath, content, 0644); err != nil {
			return fmt.Errorf("failed to write file %s: %v", targetPath, err)
		}
		return nil
	})
}
