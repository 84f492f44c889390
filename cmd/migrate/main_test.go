package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveConfigPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	assert.Equal(t, "assets/local.yaml", effectiveConfigPath(""))
	assert.Equal(t, "custom.yaml", effectiveConfigPath("custom.yaml"))

	t.Setenv("CONFIG_PATH", "/etc/app.yaml")
	assert.Equal(t, "/etc/app.yaml", effectiveConfigPath(""))
}

func TestRootCmd_Subcommands(t *testing.T) {
	t.Parallel()

	root := newRootCmd()
	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"up", "down", "drop", "version", "seed"}, names)
}

func TestRootCmd_RejectsExtraArgs(t *testing.T) {
	t.Parallel()

	root := newRootCmd()
	root.SetArgs([]string{"up", "extra"})
	root.SetOut(new(strings.Builder))
	root.SetErr(new(strings.Builder))
	require.Error(t, root.Execute())
}

func TestSourceURL(t *testing.T) {
	t.Parallel()

	url, err := sourceURL("assets/migrations")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "file://"))
	assert.True(t, strings.HasSuffix(url, "/assets/migrations"))
}

func TestSeedFiles_Sorted(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"000002_more.sql", "000001_base.sql", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o600))
	}

	files, err := seedFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "000001_base.sql", filepath.Base(files[0]))
	assert.Equal(t, "000002_more.sql", filepath.Base(files[1]))
}
