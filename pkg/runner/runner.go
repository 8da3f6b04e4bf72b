package runner

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/strapkit/strap/pkg/errors"
	"github.com/strapkit/strap/pkg/logging"
	"github.com/strapkit/strap/pkg/state"
	"github.com/strapkit/strap/pkg/steps"
	"github.com/strapkit/strap/pkg/steps/command"
	"github.com/strapkit/strap/pkg/steps/fonts"
	"github.com/strapkit/strap/pkg/steps/homebrew"
	"github.com/strapkit/strap/pkg/steps/plist"
	"github.com/strapkit/strap/pkg/steps/shellprofile"
	"github.com/strapkit/strap/pkg/steps/symlink"
)

// Reporter receives per-step progress for terminal display. The runner
// works without one; logging is separate and always on.
type Reporter interface {
	StepStarted(name, description string)
	StepFinished(name string, result steps.Result, err error)
}

// Runner executes a bootstrap run: takes the advisory lock, walks the
// steps in order, halts on the first failure and records a receipt.
// Steps are never retried; the human decides whether to re-run.
type Runner struct {
	rc       *steps.Context
	steps    []steps.Step
	reporter Reporter
}

// DefaultSteps returns the bootstrap sequence in its fixed order:
// packages first (later steps may need the tools they install), then
// links, managed blocks, fonts, plists and raw commands last.
func DefaultSteps() []steps.Step {
	return []steps.Step{
		homebrew.New(),
		symlink.New(),
		shellprofile.New(),
		fonts.New(),
		plist.New(),
		command.New(),
	}
}

// New creates a Runner for the given context and step list
func New(rc *steps.Context, list []steps.Step) *Runner {
	return &Runner{rc: rc, steps: list}
}

// WithReporter attaches a progress reporter
func (r *Runner) WithReporter(rep Reporter) *Runner {
	r.reporter = rep
	return r
}

// Run executes all steps sequentially. It returns the receipt along
// with the first step error, if any; the receipt is persisted either way.
func (r *Runner) Run(ctx context.Context) (*state.Receipt, error) {
	logger := logging.GetLogger("runner")

	unlock, err := r.acquireLock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	receipt := &state.Receipt{
		StartedAt: time.Now(),
		DryRun:    r.rc.DryRun,
		Success:   true,
	}

	var runErr error
	for _, step := range r.steps {
		if r.reporter != nil {
			r.reporter.StepStarted(step.Name(), step.Description())
		}

		start := time.Now()
		result, err := step.Run(ctx, r.rc)
		elapsed := time.Since(start)

		if r.reporter != nil {
			r.reporter.StepFinished(step.Name(), result, err)
		}

		record := state.StepRecord{
			Name:     step.Name(),
			Status:   string(result.Status),
			Detail:   result.Detail,
			Duration: elapsed.Seconds(),
		}
		if err != nil {
			record.Status = string(steps.StatusFailed)
			record.Detail = err.Error()
			receipt.Steps = append(receipt.Steps, record)
			receipt.Success = false
			runErr = err
			logger.Error().Err(err).Str("step", step.Name()).Msg("step failed, halting run")
			break
		}

		receipt.Steps = append(receipt.Steps, record)
		logger.Info().
			Str("step", step.Name()).
			Str("status", string(result.Status)).
			Dur("duration", elapsed).
			Msg("step finished")
	}

	receipt.FinishedAt = time.Now()

	if err := state.Save(r.rc.Paths.ReceiptPath(), receipt); err != nil {
		logger.Warn().Err(err).Msg("failed to save run receipt")
	}

	return receipt, runErr
}

// acquireLock takes the advisory flock that keeps two strap runs from
// interleaving. The patcher and steps assume exclusive access to the
// files they touch; this makes that assumption explicit.
func (r *Runner) acquireLock() (func(), error) {
	lockPath := r.rc.Paths.LockPath()
	if err := os.MkdirAll(filepath.Dir(lockPath), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate,
			"cannot create %s", filepath.Dir(lockPath))
	}

	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRunLocked, "cannot acquire %s", lockPath)
	}
	if !locked {
		return nil, errors.Newf(errors.ErrRunLocked,
			"another strap run holds %s", lockPath)
	}

	return func() { _ = lock.Unlock() }, nil
}
