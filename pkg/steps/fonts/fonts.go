package fonts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/strapkit/strap/pkg/errors"
	"github.com/strapkit/strap/pkg/logging"
	"github.com/strapkit/strap/pkg/steps"
)

// StepName is the name of the fonts step
const StepName = "fonts"

// fontsDir is where macOS looks for per-user fonts
const fontsDir = "Library/Fonts"

// Step downloads font assets into ~/Library/Fonts. A font file that is
// already present is never re-downloaded or overwritten.
type Step struct{}

// New creates the fonts step
func New() *Step {
	return &Step{}
}

// Name returns the unique name of this step
func (s *Step) Name() string {
	return StepName
}

// Description returns a human-readable description of what this step does
func (s *Step) Description() string {
	return "Downloads fonts into ~/Library/Fonts"
}

// Run fetches every missing font from the manifest
func (s *Step) Run(ctx context.Context, rc *steps.Context) (steps.Result, error) {
	logger := logging.GetLogger("steps.fonts")
	fonts := rc.Manifest.Fonts

	if len(fonts) == 0 {
		return steps.Result{Status: steps.StatusSkipped, Detail: "no fonts declared"}, nil
	}

	dir := filepath.Join(rc.Paths.Home(), fontsDir)
	applied := 0

	for _, f := range fonts {
		target := filepath.Join(dir, f.File)

		if _, err := rc.FS.Stat(target); err == nil {
			logger.Debug().Str("font", f.File).Msg("font already installed")
			continue
		}

		if rc.DryRun {
			logger.Info().Str("font", f.File).Str("url", f.URL).Msg("would download font")
			applied++
			continue
		}

		data, err := s.fetch(ctx, rc.HTTP, f.URL)
		if err != nil {
			return steps.Result{Status: steps.StatusFailed},
				errors.Wrapf(err, errors.ErrDownload, "font %s", f.Name)
		}

		if err := rc.FS.MkdirAll(dir, 0755); err != nil {
			return steps.Result{Status: steps.StatusFailed},
				errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", dir)
		}

		// Stage and rename so an interrupted download never leaves a
		// half-written font file behind.
		tmp := target + ".strap.tmp"
		if err := rc.FS.WriteFile(tmp, data, 0644); err != nil {
			return steps.Result{Status: steps.StatusFailed},
				errors.Wrapf(err, errors.ErrWriteFailure, "cannot write %s", tmp)
		}
		if err := rc.FS.Rename(tmp, target); err != nil {
			_ = rc.FS.Remove(tmp)
			return steps.Result{Status: steps.StatusFailed},
				errors.Wrapf(err, errors.ErrWriteFailure, "cannot write %s", target)
		}

		logger.Info().Str("font", f.File).Int("bytes", len(data)).Msg("font installed")
		applied++
	}

	if applied == 0 {
		return steps.Result{Status: steps.StatusUnchanged, Detail: "all fonts present"}, nil
	}
	return steps.Result{
		Status: steps.StatusApplied,
		Detail: fmt.Sprintf("%d of %d fonts downloaded", applied, len(fonts)),
	}, nil
}

func (s *Step) fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s for %s", resp.Status, url)
	}

	return io.ReadAll(resp.Body)
}

// Verify interface compliance
var _ steps.Step = (*Step)(nil)
