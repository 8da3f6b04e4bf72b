package steps

import (
	"context"
	"net/http"

	"github.com/strapkit/strap/pkg/manifest"
	"github.com/strapkit/strap/pkg/paths"
	"github.com/strapkit/strap/pkg/types"
)

// Status describes the outcome of one step
type Status string

const (
	// StatusApplied means the step changed something on this machine
	StatusApplied Status = "applied"
	// StatusUnchanged means everything the step owns was already in place
	StatusUnchanged Status = "unchanged"
	// StatusSkipped means the step had nothing to do or was skipped by dry-run
	StatusSkipped Status = "skipped"
	// StatusFailed means the step aborted the run
	StatusFailed Status = "failed"
)

// Result is the outcome of running one step
type Result struct {
	Status Status
	Detail string
}

// Context carries everything a step needs. Steps hold no global state;
// tests inject an in-memory FS, a fake command runner and a test server.
type Context struct {
	FS       types.FS
	Paths    *paths.Paths
	Manifest *manifest.Manifest
	Runner   CommandRunner
	HTTP     *http.Client
	DryRun   bool
}

// Step is one sequential unit of a bootstrap run. Steps are idempotent:
// re-running a step whose work is already done reports StatusUnchanged.
type Step interface {
	Name() string
	Description() string
	Run(ctx context.Context, rc *Context) (Result, error)
}
