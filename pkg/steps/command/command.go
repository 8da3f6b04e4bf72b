package command

import (
	"context"
	"fmt"
	"time"

	"github.com/strapkit/strap/pkg/errors"
	"github.com/strapkit/strap/pkg/logging"
	"github.com/strapkit/strap/pkg/steps"
)

// StepName is the name of the raw-command step
const StepName = "commands"

// defaultTimeout bounds a command when the manifest does not set one
const defaultTimeout = 5 * time.Minute

// Step runs the manifest's raw commands: editor automation invoked
// headlessly, 'defaults write' calls, one-off installers. A command
// with a 'creates' path is skipped once that path exists, which is
// what makes re-running the bootstrap safe.
type Step struct{}

// New creates the command step
func New() *Step {
	return &Step{}
}

// Name returns the unique name of this step
func (s *Step) Name() string {
	return StepName
}

// Description returns a human-readable description of what this step does
func (s *Step) Description() string {
	return "Runs raw bootstrap commands"
}

// Run executes every command whose 'creates' check does not skip it
func (s *Step) Run(ctx context.Context, rc *steps.Context) (steps.Result, error) {
	logger := logging.GetLogger("steps.command")
	commands := rc.Manifest.Commands

	if len(commands) == 0 {
		return steps.Result{Status: steps.StatusSkipped, Detail: "no commands declared"}, nil
	}

	timeout := defaultTimeout
	if rc.Manifest.Settings.CommandTimeoutSeconds > 0 {
		timeout = time.Duration(rc.Manifest.Settings.CommandTimeoutSeconds) * time.Second
	}

	ran := 0
	for _, c := range commands {
		name := c.Name
		if name == "" {
			name = c.Cmd
		}

		if c.Creates != "" {
			created := rc.Paths.ExpandHome(c.Creates)
			if _, err := rc.FS.Stat(created); err == nil {
				logger.Debug().Str("command", name).Str("creates", created).Msg("already done")
				continue
			}
		}

		if rc.DryRun {
			logger.Info().Str("command", name).Msg("would run command")
			ran++
			continue
		}

		cmdCtx, cancel := context.WithTimeout(ctx, timeout)
		out, err := rc.Runner.Run(cmdCtx, c.Cmd, c.Args...)
		cancel()
		if err != nil {
			return steps.Result{Status: steps.StatusFailed},
				errors.Wrapf(err, errors.ErrStepExecute, "command %q", name)
		}

		logger.Info().Str("command", name).Int("output_bytes", len(out)).Msg("command finished")
		ran++
	}

	if ran == 0 {
		return steps.Result{Status: steps.StatusUnchanged, Detail: "all commands already done"}, nil
	}
	return steps.Result{
		Status: steps.StatusApplied,
		Detail: fmt.Sprintf("%d of %d commands run", ran, len(commands)),
	}, nil
}

// Verify interface compliance
var _ steps.Step = (*Step)(nil)
