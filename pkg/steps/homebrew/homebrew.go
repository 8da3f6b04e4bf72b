package homebrew

import (
	"context"
	"fmt"
	"strings"

	"github.com/strapkit/strap/pkg/errors"
	"github.com/strapkit/strap/pkg/logging"
	"github.com/strapkit/strap/pkg/steps"
)

// StepName is the name of the homebrew step
const StepName = "packages"

// Step installs Homebrew taps, formulae and casks from the manifest.
// Already-installed packages are detected up front so a re-run is a
// cheap no-op.
type Step struct{}

// New creates the homebrew step
func New() *Step {
	return &Step{}
}

// Name returns the unique name of this step
func (s *Step) Name() string {
	return StepName
}

// Description returns a human-readable description of what this step does
func (s *Step) Description() string {
	return "Installs Homebrew taps, formulae and casks"
}

// Run installs everything the manifest lists that is not present yet
func (s *Step) Run(ctx context.Context, rc *steps.Context) (steps.Result, error) {
	logger := logging.GetLogger("steps.homebrew")
	pkgs := rc.Manifest.Packages

	if len(pkgs.Taps) == 0 && len(pkgs.Brews) == 0 && len(pkgs.Casks) == 0 && pkgs.Brewfile == "" {
		return steps.Result{Status: steps.StatusSkipped, Detail: "no packages declared"}, nil
	}

	if _, err := rc.Runner.LookPath("brew"); err != nil {
		return steps.Result{Status: steps.StatusFailed},
			errors.Wrap(err, errors.ErrStepExecute, "brew is not installed")
	}

	installed, err := s.installedFormulae(ctx, rc)
	if err != nil {
		return steps.Result{Status: steps.StatusFailed}, err
	}

	var applied []string

	for _, tap := range pkgs.Taps {
		if rc.DryRun {
			applied = append(applied, "tap "+tap)
			continue
		}
		if _, err := rc.Runner.Run(ctx, "brew", "tap", tap); err != nil {
			return steps.Result{Status: steps.StatusFailed}, err
		}
		applied = append(applied, "tap "+tap)
	}

	for _, brew := range pkgs.Brews {
		if installed[brewName(brew)] {
			logger.Debug().Str("formula", brew).Msg("already installed")
			continue
		}
		if rc.DryRun {
			applied = append(applied, brew)
			continue
		}
		if _, err := rc.Runner.Run(ctx, "brew", "install", brew); err != nil {
			return steps.Result{Status: steps.StatusFailed}, err
		}
		applied = append(applied, brew)
	}

	for _, cask := range pkgs.Casks {
		if installed[brewName(cask)] {
			logger.Debug().Str("cask", cask).Msg("already installed")
			continue
		}
		if rc.DryRun {
			applied = append(applied, cask)
			continue
		}
		if _, err := rc.Runner.Run(ctx, "brew", "install", "--cask", cask); err != nil {
			return steps.Result{Status: steps.StatusFailed}, err
		}
		applied = append(applied, cask)
	}

	if pkgs.Brewfile != "" {
		brewfile := rc.Paths.ExpandHome(pkgs.Brewfile)
		if rc.DryRun {
			applied = append(applied, "bundle "+brewfile)
		} else {
			if _, err := rc.Runner.Run(ctx, "brew", "bundle", "--file", brewfile); err != nil {
				return steps.Result{Status: steps.StatusFailed}, err
			}
			applied = append(applied, "bundle "+brewfile)
		}
	}

	if len(applied) == 0 {
		return steps.Result{Status: steps.StatusUnchanged, Detail: "all packages present"}, nil
	}

	logger.Info().Strs("installed", applied).Msg("packages installed")
	return steps.Result{
		Status: steps.StatusApplied,
		Detail: fmt.Sprintf("installed %s", strings.Join(applied, ", ")),
	}, nil
}

// installedFormulae returns the set of formulae and casks brew reports
// as installed. One listing up front beats per-package 'brew list' calls.
func (s *Step) installedFormulae(ctx context.Context, rc *steps.Context) (map[string]bool, error) {
	out, err := rc.Runner.Run(ctx, "brew", "list", "-1")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrStepExecute, "brew list failed")
	}

	installed := make(map[string]bool)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			installed[line] = true
		}
	}
	return installed, nil
}

// brewName strips a tap prefix: "homebrew/core/git" installs as "git"
func brewName(pkg string) string {
	if i := strings.LastIndexByte(pkg, '/'); i >= 0 {
		return pkg[i+1:]
	}
	return pkg
}

// Verify interface compliance
var _ steps.Step = (*Step)(nil)
