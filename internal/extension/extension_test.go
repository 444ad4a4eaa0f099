package extension

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivateRegistersRulesAndSnippets(t *testing.T) {
	host := NewInProcessHost()

	ext, err := Activate(context.Background(), host, Options{})
	require.NoError(t, err)
	defer ext.Close()

	assert.NotEmpty(t, host.Rules, "highlight rules must reach the host")
	assert.NotEmpty(t, host.Snippets["embedded"], "bundled snippets must reach the host")
	assert.Empty(t, host.Warnings)
	assert.Equal(t, len(host.Snippets["embedded"]), ext.Registry.Len())
}

func TestActivateMissingSnippetDirIsNonFatal(t *testing.T) {
	host := NewInProcessHost()

	ext, err := Activate(context.Background(), host, Options{
		SnippetDir: filepath.Join(t.TempDir(), "absent"),
	})
	require.NoError(t, err, "activation must survive a missing snippet directory")
	defer ext.Close()

	assert.NotEmpty(t, host.Warnings, "the missing directory should be warned about")
	assert.NotZero(t, ext.Registry.Len(), "bundled snippets still load")
}

func TestActivateExtraSnippetDir(t *testing.T) {
	dir := t.TempDir()
	content := `{"Local": {"prefix": "localsnip", "body": ["x"]}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "local.json"), []byte(content), 0644))

	host := NewInProcessHost()
	ext, err := Activate(context.Background(), host, Options{SnippetDir: dir})
	require.NoError(t, err)
	defer ext.Close()

	_, ok := ext.Registry.Lookup("localsnip")
	assert.True(t, ok, "extra directory snippets must register")
	assert.NotEmpty(t, host.Snippets[dir])
}

func TestCloseUnregisters(t *testing.T) {
	host := NewInProcessHost()
	ext, err := Activate(context.Background(), host, Options{})
	require.NoError(t, err)

	require.NoError(t, ext.Close())
	assert.Empty(t, host.Rules)
	assert.Empty(t, host.Snippets)

	// Closing twice is a no-op
	require.NoError(t, ext.Close())
}

func TestActivateCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Activate(ctx, NewInProcessHost(), Options{})
	assert.Error(t, err)
}
