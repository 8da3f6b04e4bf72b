package symlink

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	stderrors "errors"

	"github.com/rs/zerolog"

	"github.com/strapkit/strap/pkg/errors"
	"github.com/strapkit/strap/pkg/logging"
	"github.com/strapkit/strap/pkg/steps"
)

// StepName is the name of the symlink step
const StepName = "links"

// Step farms symlinks from the dotfiles repository into the home
// directory. Links that already point at the right source are left
// alone; regular files in the way are renamed aside with the backup
// suffix before linking.
type Step struct{}

// New creates the symlink step
func New() *Step {
	return &Step{}
}

// Name returns the unique name of this step
func (s *Step) Name() string {
	return StepName
}

// Description returns a human-readable description of what this step does
func (s *Step) Description() string {
	return "Symlinks dotfiles into the home directory"
}

// Run ensures every manifest link exists and points at its source
func (s *Step) Run(_ context.Context, rc *steps.Context) (steps.Result, error) {
	logger := logging.GetLogger("steps.symlink")
	links := rc.Manifest.Links

	if len(links) == 0 {
		return steps.Result{Status: steps.StatusSkipped, Detail: "no links declared"}, nil
	}

	// Deterministic order keeps logs and dry-run output stable
	sources := make([]string, 0, len(links))
	for src := range links {
		sources = append(sources, src)
	}
	sort.Strings(sources)

	applied := 0
	for _, src := range sources {
		source := filepath.Join(rc.Paths.DotfilesRoot(), src)
		target := rc.Paths.ExpandHome(links[src])

		changed, err := s.ensureLink(rc, source, target, logger)
		if err != nil {
			return steps.Result{Status: steps.StatusFailed}, err
		}
		if changed {
			applied++
		}
	}

	if applied == 0 {
		return steps.Result{Status: steps.StatusUnchanged, Detail: "all links in place"}, nil
	}
	return steps.Result{
		Status: steps.StatusApplied,
		Detail: fmt.Sprintf("%d of %d links created", applied, len(links)),
	}, nil
}

func (s *Step) ensureLink(rc *steps.Context, source, target string, logger zerolog.Logger) (bool, error) {
	if _, err := rc.FS.Stat(source); err != nil {
		return false, errors.Wrapf(err, errors.ErrNotFound,
			"link source %s does not exist", source)
	}

	info, err := rc.FS.Lstat(target)
	switch {
	case err == nil && info.Mode()&fs.ModeSymlink != 0:
		dest, err := rc.FS.Readlink(target)
		if err == nil && dest == source {
			logger.Trace().Str("target", target).Msg("link already correct")
			return false, nil
		}
		// Points elsewhere: strap owns the target path, re-link it
		logger.Warn().
			Str("target", target).
			Str("expected", source).
			Str("actual", dest).
			Msg("symlink points elsewhere, re-linking")
		if rc.DryRun {
			return true, nil
		}
		if err := rc.FS.Remove(target); err != nil {
			return false, errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot replace %s", target)
		}

	case err == nil && info.IsDir():
		return false, errors.Newf(errors.ErrSymlinkExists,
			"%s is a directory, refusing to replace it", target)

	case err == nil:
		// Regular file in the way: move it aside
		backup := target + rc.Manifest.Settings.BackupSuffix
		logger.Info().Str("target", target).Str("backup", backup).Msg("backing up existing file")
		if rc.DryRun {
			return true, nil
		}
		if err := rc.FS.Rename(target, backup); err != nil {
			return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot back up %s", target)
		}

	case stderrors.Is(err, fs.ErrNotExist):
		if rc.DryRun {
			return true, nil
		}
		if err := rc.FS.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return false, errors.Wrapf(err, errors.ErrDirCreate,
				"cannot create %s", filepath.Dir(target))
		}

	default:
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect %s", target)
	}

	if rc.DryRun {
		return true, nil
	}
	if err := rc.FS.Symlink(source, target); err != nil {
		return false, errors.Wrapf(err, errors.ErrSymlinkCreate,
			"cannot link %s -> %s", target, source)
	}

	logger.Info().Str("source", source).Str("target", target).Msg("linked")
	return true, nil
}

// Verify interface compliance
var _ steps.Step = (*Step)(nil)
