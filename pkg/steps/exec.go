package steps

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/strapkit/strap/pkg/errors"
	"github.com/strapkit/strap/pkg/logging"
)

// CommandRunner abstracts external tool invocation so steps can be
// tested without brew, defaults or editors installed.
type CommandRunner interface {
	// Run executes the command and returns its combined output
	Run(ctx context.Context, name string, args ...string) (string, error)
	// LookPath reports whether the tool is on PATH
	LookPath(name string) (string, error)
}

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

// NewExecRunner creates the production CommandRunner
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes name with args and returns combined stdout and stderr
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	logger := logging.GetLogger("steps.exec")
	logger.Debug().
		Str("command", name).
		Strs("args", args).
		Msg("Executing command")

	cmd := exec.CommandContext(ctx, name, args...)

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	if err := cmd.Run(); err != nil {
		output := strings.TrimSpace(buf.String())
		return output, errors.Wrapf(err, errors.ErrStepExecute,
			"%s failed: %s", name, firstLine(output))
	}

	return buf.String(), nil
}

// LookPath wraps exec.LookPath
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
