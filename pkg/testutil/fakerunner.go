package testutil

import (
	"context"
	"os/exec"
	"strings"
	"sync"
)

// FakeRunner implements steps.CommandRunner for tests. Outputs and
// errors are keyed by the full command line ("brew install git").
type FakeRunner struct {
	mu      sync.Mutex
	Calls   []string
	Outputs map[string]string
	Errors  map[string]error
	Missing map[string]bool
}

// NewFakeRunner creates an empty FakeRunner
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Outputs: make(map[string]string),
		Errors:  make(map[string]error),
		Missing: make(map[string]bool),
	}
}

// Run records the call and replays any configured output or error
func (r *FakeRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.Join(append([]string{name}, args...), " ")
	r.Calls = append(r.Calls, key)

	if err, ok := r.Errors[key]; ok {
		return r.Outputs[key], err
	}
	return r.Outputs[key], nil
}

// LookPath reports tools as present unless marked Missing
func (r *FakeRunner) LookPath(name string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Missing[name] {
		return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	return "/opt/homebrew/bin/" + name, nil
}

// Called reports whether a command line was executed
func (r *FakeRunner) Called(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, call := range r.Calls {
		if call == key {
			return true
		}
	}
	return false
}
