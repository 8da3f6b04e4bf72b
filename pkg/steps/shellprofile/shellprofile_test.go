// pkg/steps/shellprofile/shellprofile_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: pkg/testutil (in-memory FS)
// PURPOSE: Test managed-block maintenance across rc files

package shellprofile_test

import (
	"context"
	"testing"

	"github.com/strapkit/strap/pkg/errors"
	"github.com/strapkit/strap/pkg/manifest"
	"github.com/strapkit/strap/pkg/paths"
	"github.com/strapkit/strap/pkg/steps"
	"github.com/strapkit/strap/pkg/steps/shellprofile"
	"github.com/strapkit/strap/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const home = "/home/user"

func newContext(t *testing.T, blocks []manifest.Block) (*steps.Context, *testutil.MemoryFS) {
	t.Helper()
	t.Setenv("HOME", home)

	p, err := paths.New("")
	require.NoError(t, err)

	mfs := testutil.NewMemoryFS()
	require.NoError(t, mfs.MkdirAll(home, 0755))
	require.NoError(t, mfs.WriteFile(home+"/.zshrc", []byte("# existing config\n"), 0644))

	return &steps.Context{
		FS:       mfs,
		Paths:    p,
		Manifest: &manifest.Manifest{Blocks: blocks},
	}, mfs
}

func TestRunAppliesBlocks(t *testing.T) {
	rc, mfs := newContext(t, []manifest.Block{
		{
			File:   "~/.zshrc",
			Marker: "# strap: aliases",
			Lines:  []string{"alias ll='ls -la'"},
		},
		{
			File:   "~/.zshrc",
			Marker: "# strap: direnv",
			Lines:  []string{`eval "$(direnv hook zsh)"`},
		},
	})

	result, err := shellprofile.New().Run(context.Background(), rc)

	require.NoError(t, err)
	assert.Equal(t, steps.StatusApplied, result.Status)
	assert.Equal(t, "2 of 2 blocks written", result.Detail)

	data, err := mfs.ReadFile(home + "/.zshrc")
	require.NoError(t, err)
	assert.Equal(t,
		"# existing config\n\n"+
			"# strap: aliases\nalias ll='ls -la'\n\n"+
			"# strap: direnv\neval \"$(direnv hook zsh)\"\n",
		string(data))
}

func TestRunIsIdempotent(t *testing.T) {
	blocks := []manifest.Block{
		{File: "~/.zshrc", Marker: "# strap: aliases", Lines: []string{"alias x=1"}},
	}
	rc, mfs := newContext(t, blocks)

	first, err := shellprofile.New().Run(context.Background(), rc)
	require.NoError(t, err)
	assert.Equal(t, steps.StatusApplied, first.Status)

	after, err := mfs.ReadFile(home + "/.zshrc")
	require.NoError(t, err)

	second, err := shellprofile.New().Run(context.Background(), rc)
	require.NoError(t, err)
	assert.Equal(t, steps.StatusUnchanged, second.Status)

	again, err := mfs.ReadFile(home + "/.zshrc")
	require.NoError(t, err)
	assert.Equal(t, string(after), string(again))
}

func TestRunUpdatesStaleBlock(t *testing.T) {
	rc, mfs := newContext(t, []manifest.Block{
		{File: "~/.zshrc", Marker: "# strap: aliases", Lines: []string{"alias new=2"}},
	})
	require.NoError(t, mfs.WriteFile(home+"/.zshrc",
		[]byte("top\n\n# strap: aliases\nalias old=1\n\nbottom\n"), 0644))

	result, err := shellprofile.New().Run(context.Background(), rc)

	require.NoError(t, err)
	assert.Equal(t, steps.StatusApplied, result.Status)

	data, err := mfs.ReadFile(home + "/.zshrc")
	require.NoError(t, err)
	assert.Equal(t, "top\n\n# strap: aliases\nalias new=2\n\nbottom\n", string(data))
}

func TestRunFailsOnMissingFile(t *testing.T) {
	rc, _ := newContext(t, []manifest.Block{
		{File: "~/.bashrc", Marker: "# strap: x", Lines: []string{"y"}},
	})

	result, err := shellprofile.New().Run(context.Background(), rc)

	require.Error(t, err)
	assert.Equal(t, steps.StatusFailed, result.Status)
	assert.True(t, errors.IsCode(err, errors.ErrStepExecute))
}

func TestRunSkippedWithoutBlocks(t *testing.T) {
	rc, _ := newContext(t, nil)

	result, err := shellprofile.New().Run(context.Background(), rc)

	require.NoError(t, err)
	assert.Equal(t, steps.StatusSkipped, result.Status)
}

func TestRunDryRunTouchesNothing(t *testing.T) {
	rc, mfs := newContext(t, []manifest.Block{
		{File: "~/.zshrc", Marker: "# strap: aliases", Lines: []string{"alias x=1"}},
	})
	rc.DryRun = true

	result, err := shellprofile.New().Run(context.Background(), rc)

	require.NoError(t, err)
	assert.Equal(t, steps.StatusApplied, result.Status)

	data, err := mfs.ReadFile(home + "/.zshrc")
	require.NoError(t, err)
	assert.Equal(t, "# existing config\n", string(data))
}
