package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes into dir for the duration of the test, restoring the
// previous working directory on cleanup (t.Chdir requires Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestInitializeAndLoad(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	cfg, err := Initialize("/opt/merge-tools")
	require.NoError(t, err)
	assert.Equal(t, "/opt/merge-tools", cfg.ToolsDir)
	assert.Equal(t, filepath.Join(dir, "repos"), cfg.WorkspacesDir)
	assert.Equal(t, filepath.Join(dir, "results"), cfg.OutputDir)
	assert.Equal(t, "https://github.com/", cfg.CloneURLPrefix)

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg.ToolsDir, loaded.ToolsDir)
	assert.Equal(t, cfg.WorkspacesDir, loaded.WorkspacesDir)
	assert.Equal(t, filepath.Join(dir, MergebenchDir), loaded.Path())
	assert.Equal(t, filepath.Join(dir, MergebenchDir, DatabaseFile), loaded.DatabasePath())
}

func TestInitializeTwiceFails(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Initialize("tools")
	require.NoError(t, err)

	_, err = Initialize("tools")
	assert.ErrorContains(t, err, "already exists")
}

func TestFindRootWalksUp(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	_, err := Initialize("tools")
	require.NoError(t, err)

	nested := filepath.Join(dir, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0755))
	chdir(t, nested)

	root, err := FindRoot()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, MergebenchDir), root)
}

func TestFindRootOutsideWorkspace(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := FindRoot()
	assert.ErrorContains(t, err, "not a mergebench workspace")
}

func TestSaveRoundTrip(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Initialize("tools")
	require.NoError(t, err)

	cfg.CloneURLPrefix = "git@github.com:"
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "git@github.com:", loaded.CloneURLPrefix)
}
