// cmd/strap/root_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem via t.TempDir()
// PURPOSE: Test CLI wiring: commands, flags and end-to-end patch/init/status

package strap

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootHasExpectedCommands(t *testing.T) {
	cmd := NewRootCmd()

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}

	for _, want := range []string{"up", "status", "patch", "init", "docs", "version", "completion"} {
		assert.Contains(t, names, want)
	}
}

func TestRootWithoutSubcommandErrors(t *testing.T) {
	_, err := execute(t, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestDocsListsTopics(t *testing.T) {
	out, err := execute(t, "", "docs")

	require.NoError(t, err)
	assert.Contains(t, out, "blocks")
	assert.Contains(t, out, "manifest")
}

func TestDocsUnknownTopic(t *testing.T) {
	_, err := execute(t, "", "docs", "nonexistent")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such topic")
}

func TestPatchRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	target := filepath.Join(dir, "profile")
	require.NoError(t, os.WriteFile(target, []byte("export LANG=en_US.UTF-8\n"), 0644))

	stdin := "export PATH=\"$HOME/bin:$PATH\"\n"

	out, err := execute(t, stdin, "patch", target, "# strap: path")
	require.NoError(t, err)
	assert.Contains(t, out, "created")

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t,
		"export LANG=en_US.UTF-8\n\n# strap: path\nexport PATH=\"$HOME/bin:$PATH\"\n",
		string(content))

	// Same block again is a no-op
	out, err = execute(t, stdin, "patch", target, "# strap: path")
	require.NoError(t, err)
	assert.Contains(t, out, "unchanged")
}

func TestPatchRejectsDryRun(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := execute(t, "x\n", "patch", "/tmp/whatever", "# m", "--dry-run")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "dry-run")
}

func TestInitWritesStarterManifest(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	root := t.TempDir()
	t.Setenv("DOTFILES_ROOT", root)

	out, err := execute(t, "", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote starter manifest")

	manifestPath := filepath.Join(root, "strap.toml")
	data, err := os.ReadFile(manifestPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[settings]")

	// A second init must not clobber the file
	_, err = execute(t, "", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestStatusWithoutReceipt(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("STRAP_STATE_DIR", t.TempDir())

	out, err := execute(t, "", "status")

	require.NoError(t, err)
	assert.Contains(t, out, "no runs recorded")
}

func TestUpWithoutManifestFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DOTFILES_ROOT", t.TempDir())
	t.Setenv("STRAP_MANIFEST", filepath.Join(t.TempDir(), "strap.toml"))
	t.Setenv("STRAP_STATE_DIR", t.TempDir())

	_, err := execute(t, "", "up")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no manifest found")
}
