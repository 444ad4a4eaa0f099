package snippets

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	snips, err := LoadEmbedded()
	require.NoError(t, err)
	require.NotEmpty(t, snips)

	triggers := make(map[string]bool)
	for _, sn := range snips {
		assert.NotEmpty(t, sn.Trigger, "snippet %q has no trigger", sn.Name)
		assert.NotEmpty(t, sn.Body, "snippet %q has no body", sn.Name)
		assert.False(t, triggers[sn.Trigger], "trigger %q bundled twice", sn.Trigger)
		triggers[sn.Trigger] = true
	}

	// A few triggers the bundle must always carry
	for _, trigger := range []string{"machine", "state", "event", "spec", "test"} {
		assert.True(t, triggers[trigger], "missing bundled trigger %q", trigger)
	}
}

func TestRegisterSourceIsIdempotent(t *testing.T) {
	snips, err := LoadEmbedded()
	require.NoError(t, err)

	reg := NewRegistry()
	first := reg.RegisterSource(EmbeddedSource, snips)
	second := reg.RegisterSource(EmbeddedSource, snips)

	assert.Equal(t, len(snips), first)
	assert.Zero(t, second, "re-registering the same source must add nothing")
	assert.Equal(t, len(snips), reg.Len())
}

func TestRegisterSourceTriggerCollision(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterSource("a", []Snippet{{Name: "first", Trigger: "machine", Body: []string{"x"}}})
	reg.RegisterSource("b", []Snippet{{Name: "second", Trigger: "machine", Body: []string{"y"}}})

	sn, ok := reg.Lookup("machine")
	require.True(t, ok)
	assert.Equal(t, "first", sn.Name, "earlier registration keeps the trigger")
	assert.Equal(t, 1, reg.Len())
}

func TestLoadDirMissing(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist), "missing directory should surface fs.ErrNotExist, got %v", err)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	content := `{"Custom": {"prefix": "cust", "description": "d", "body": ["line"]}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.json"), []byte(content), 0644))
	// Non-JSON files are skipped
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore"), 0644))

	snips, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, snips, 1)
	assert.Equal(t, "cust", snips[0].Trigger)
}

func TestPreviewFillsPlaceholders(t *testing.T) {
	sn := Snippet{
		Trigger: "event",
		Body:    []string{"event e${1:Name}: ${2:payloadType};", "$0"},
	}

	got := Preview(sn)
	assert.Equal(t, "event eName: payloadType;\n", got)
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Extract(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	for _, e := range entries {
		assert.True(t, strings.HasSuffix(e.Name(), ".json"))
	}
}
