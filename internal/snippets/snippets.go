// Package snippets loads and registers the bundled P code snippets.
package snippets

import (
	"regexp"
	"strings"
)

// Snippet is one expandable template: a trigger word, a body with ordered
// fill-in points (${1:placeholder} / $1), and a human-readable description.
type Snippet struct {
	Name        string
	Trigger     string
	Description string
	Body        []string
}

// Registry holds the snippet set for one session. Registration is keyed by
// source name so loading the same source twice registers each trigger
// exactly once.
type Registry struct {
	triggers map[string]Snippet
	order    []string
	sources  map[string]bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		triggers: make(map[string]Snippet),
		sources:  make(map[string]bool),
	}
}

// RegisterSource adds the snippets from a named source and returns how many
// triggers were newly registered. A source already registered is skipped
// entirely, and within a source the first snippet wins a trigger collision.
func (r *Registry) RegisterSource(source string, snips []Snippet) int {
	if r.sources[source] {
		return 0
	}
	r.sources[source] = true

	added := 0
	for _, sn := range snips {
		if _, exists := r.triggers[sn.Trigger]; exists {
			continue
		}
		r.triggers[sn.Trigger] = sn
		r.order = append(r.order, sn.Trigger)
		added++
	}
	return added
}

// Lookup returns the snippet registered for a trigger.
func (r *Registry) Lookup(trigger string) (Snippet, bool) {
	sn, ok := r.triggers[trigger]
	return sn, ok
}

// List returns all registered snippets in registration order.
func (r *Registry) List() []Snippet {
	out := make([]Snippet, 0, len(r.order))
	for _, trigger := range r.order {
		out = append(out, r.triggers[trigger])
	}
	return out
}

// Len returns the number of registered triggers.
func (r *Registry) Len() int {
	return len(r.order)
}

// Fill-in point syntax: ${1:placeholder} with a default, or bare $1
var (
	placeholderRegex     = regexp.MustCompile(`\$\{(\d+):([^}]*)\}`)
	barePlaceholderRegex = regexp.MustCompile(`\$\d+`)
)

// Preview renders a snippet body with every fill-in point replaced by its
// placeholder default, for display outside a snippet-expanding host.
func Preview(sn Snippet) string {
	body := strings.Join(sn.Body, "\n")
	body = placeholderRegex.ReplaceAllString(body, "$2")
	body = barePlaceholderRegex.ReplaceAllString(body, "")
	return body
}
