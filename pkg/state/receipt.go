// Package state persists the outcome of the last bootstrap run as a
// small YAML receipt under the XDG state directory. 'strap status'
// reads it back; nothing else depends on it, so a missing or stale
// receipt is never an error for the run itself.
package state

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/strapkit/strap/pkg/errors"
)

// StepRecord is the outcome of one step in a run
type StepRecord struct {
	Name     string  `yaml:"name"`
	Status   string  `yaml:"status"`
	Detail   string  `yaml:"detail,omitempty"`
	Duration float64 `yaml:"duration_seconds"`
}

// Receipt is the persisted outcome of one bootstrap run
type Receipt struct {
	StartedAt  time.Time    `yaml:"started_at"`
	FinishedAt time.Time    `yaml:"finished_at"`
	Success    bool         `yaml:"success"`
	DryRun     bool         `yaml:"dry_run,omitempty"`
	Steps      []StepRecord `yaml:"steps"`
}

// Save writes the receipt to path, creating parent directories as needed
func Save(path string, r *Receipt) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to serialize run receipt")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileCreate, "cannot write %s", path)
	}
	return nil
}

// Load reads a receipt back. A missing file returns ErrNotFound.
func Load(path string) (*Receipt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrNotFound, "no run recorded at %s", path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
	}

	var r Receipt
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "corrupt run receipt at %s", path)
	}
	return &r, nil
}
