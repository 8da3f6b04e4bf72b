// pkg/steps/homebrew/homebrew_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: pkg/testutil (fake command runner)
// PURPOSE: Test package installation, skip-if-installed and dry-run

package homebrew_test

import (
	"context"
	"testing"

	"github.com/strapkit/strap/pkg/manifest"
	"github.com/strapkit/strap/pkg/paths"
	"github.com/strapkit/strap/pkg/steps"
	"github.com/strapkit/strap/pkg/steps/homebrew"
	"github.com/strapkit/strap/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(t *testing.T, pkgs manifest.Packages) (*steps.Context, *testutil.FakeRunner) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	p, err := paths.New("")
	require.NoError(t, err)

	runner := testutil.NewFakeRunner()
	return &steps.Context{
		Paths:    p,
		Manifest: &manifest.Manifest{Packages: pkgs},
		Runner:   runner,
	}, runner
}

func TestRunInstallsMissingPackages(t *testing.T) {
	rc, runner := newContext(t, manifest.Packages{
		Brews: []string{"git", "direnv"},
		Casks: []string{"kitty"},
	})
	runner.Outputs["brew list -1"] = "git\n"

	result, err := homebrew.New().Run(context.Background(), rc)

	require.NoError(t, err)
	assert.Equal(t, steps.StatusApplied, result.Status)
	assert.False(t, runner.Called("brew install git"), "installed formula must be skipped")
	assert.True(t, runner.Called("brew install direnv"))
	assert.True(t, runner.Called("brew install --cask kitty"))
}

func TestRunUnchangedWhenAllInstalled(t *testing.T) {
	rc, runner := newContext(t, manifest.Packages{Brews: []string{"git"}})
	runner.Outputs["brew list -1"] = "git\ndirenv\n"

	result, err := homebrew.New().Run(context.Background(), rc)

	require.NoError(t, err)
	assert.Equal(t, steps.StatusUnchanged, result.Status)
}

func TestRunSkippedWithoutPackages(t *testing.T) {
	rc, runner := newContext(t, manifest.Packages{})

	result, err := homebrew.New().Run(context.Background(), rc)

	require.NoError(t, err)
	assert.Equal(t, steps.StatusSkipped, result.Status)
	assert.Empty(t, runner.Calls)
}

func TestRunFailsWithoutBrew(t *testing.T) {
	rc, runner := newContext(t, manifest.Packages{Brews: []string{"git"}})
	runner.Missing["brew"] = true

	result, err := homebrew.New().Run(context.Background(), rc)

	require.Error(t, err)
	assert.Equal(t, steps.StatusFailed, result.Status)
}

func TestRunDryRunExecutesNothing(t *testing.T) {
	rc, runner := newContext(t, manifest.Packages{
		Taps:  []string{"homebrew/cask-fonts"},
		Brews: []string{"git"},
	})
	rc.DryRun = true

	result, err := homebrew.New().Run(context.Background(), rc)

	require.NoError(t, err)
	assert.Equal(t, steps.StatusApplied, result.Status)
	// Only the read-only listing runs in dry-run mode
	assert.Equal(t, []string{"brew list -1"}, runner.Calls)
}

func TestRunTapPrefixedFormula(t *testing.T) {
	rc, runner := newContext(t, manifest.Packages{Brews: []string{"homebrew/core/jq"}})
	runner.Outputs["brew list -1"] = "jq\n"

	result, err := homebrew.New().Run(context.Background(), rc)

	require.NoError(t, err)
	assert.Equal(t, steps.StatusUnchanged, result.Status)
}

func TestRunBrewfile(t *testing.T) {
	rc, runner := newContext(t, manifest.Packages{Brewfile: "~/dotfiles/Brewfile"})

	result, err := homebrew.New().Run(context.Background(), rc)

	require.NoError(t, err)
	assert.Equal(t, steps.StatusApplied, result.Status)
	assert.True(t, runner.Called("brew bundle --file "+rc.Paths.ExpandHome("~/dotfiles/Brewfile")))
}

func TestRunPropagatesInstallFailure(t *testing.T) {
	rc, runner := newContext(t, manifest.Packages{Brews: []string{"git"}})
	runner.Errors["brew install git"] = assert.AnError

	result, err := homebrew.New().Run(context.Background(), rc)

	require.Error(t, err)
	assert.Equal(t, steps.StatusFailed, result.Status)
}
