package shellprofile

import (
	"context"
	"fmt"

	"github.com/strapkit/strap/pkg/blockpatch"
	"github.com/strapkit/strap/pkg/errors"
	"github.com/strapkit/strap/pkg/logging"
	"github.com/strapkit/strap/pkg/steps"
)

// StepName is the name of the managed-blocks step
const StepName = "blocks"

// Step keeps the manifest's managed blocks present in their target
// files: shell rc aliases, direnv hooks, terminal emulator layout
// sections. All edits go through blockpatch, so every block is replaced
// in place, appended when missing, and never written twice.
type Step struct{}

// New creates the managed-blocks step
func New() *Step {
	return &Step{}
}

// Name returns the unique name of this step
func (s *Step) Name() string {
	return StepName
}

// Description returns a human-readable description of what this step does
func (s *Step) Description() string {
	return "Maintains managed blocks in rc and config files"
}

// Run applies every block in manifest order and reports how many changed
func (s *Step) Run(_ context.Context, rc *steps.Context) (steps.Result, error) {
	logger := logging.GetLogger("steps.shellprofile")
	blocks := rc.Manifest.Blocks

	if len(blocks) == 0 {
		return steps.Result{Status: steps.StatusSkipped, Detail: "no blocks declared"}, nil
	}

	changed := 0
	for _, b := range blocks {
		target := rc.Paths.ExpandHome(b.File)

		if rc.DryRun {
			logger.Info().
				Str("file", target).
				Str("marker", b.Marker).
				Msg("would ensure managed block")
			changed++
			continue
		}

		result, err := blockpatch.Ensure(rc.FS, target, b.Marker, b.BlockLines())
		if err != nil {
			return steps.Result{Status: steps.StatusFailed},
				errors.Wrapf(err, errors.ErrStepExecute,
					"block %q in %s", b.Marker, target)
		}

		logger.Debug().
			Str("file", target).
			Str("marker", b.Marker).
			Str("result", string(result)).
			Msg("block ensured")

		if result != blockpatch.ResultUnchanged {
			changed++
		}
	}

	if changed == 0 {
		return steps.Result{Status: steps.StatusUnchanged, Detail: "all blocks up to date"}, nil
	}
	return steps.Result{
		Status: steps.StatusApplied,
		Detail: fmt.Sprintf("%d of %d blocks written", changed, len(blocks)),
	}, nil
}

// Verify interface compliance
var _ steps.Step = (*Step)(nil)
