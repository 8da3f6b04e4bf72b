// pkg/state/receipt_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None (temp files only)
// PURPOSE: Test run receipt persistence

package state_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/strapkit/strap/pkg/errors"
	"github.com/strapkit/strap/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "last-run.yaml")
	started := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)

	in := &state.Receipt{
		StartedAt:  started,
		FinishedAt: started.Add(42 * time.Second),
		Success:    true,
		Steps: []state.StepRecord{
			{Name: "packages", Status: "applied", Duration: 40.1},
			{Name: "links", Status: "unchanged", Duration: 0.2},
			{Name: "blocks", Status: "applied", Detail: "2 blocks written", Duration: 0.1},
		},
	}

	require.NoError(t, state.Save(path, in))

	out, err := state.Load(path)
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.True(t, out.StartedAt.Equal(started))
	require.Len(t, out.Steps, 3)
	assert.Equal(t, "packages", out.Steps[0].Name)
	assert.Equal(t, "2 blocks written", out.Steps[2].Detail)
}

func TestLoadMissing(t *testing.T) {
	_, err := state.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrNotFound))
}
