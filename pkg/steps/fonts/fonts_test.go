// pkg/steps/fonts/fonts_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: pkg/testutil (in-memory FS), net/http/httptest
// PURPOSE: Test font download, skip-if-present and failure handling

package fonts_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/strapkit/strap/pkg/errors"
	"github.com/strapkit/strap/pkg/manifest"
	"github.com/strapkit/strap/pkg/paths"
	"github.com/strapkit/strap/pkg/steps"
	"github.com/strapkit/strap/pkg/steps/fonts"
	"github.com/strapkit/strap/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const home = "/home/user"

func newContext(t *testing.T, entries []manifest.Font) (*steps.Context, *testutil.MemoryFS) {
	t.Helper()
	t.Setenv("HOME", home)

	p, err := paths.New("")
	require.NoError(t, err)

	mfs := testutil.NewMemoryFS()
	require.NoError(t, mfs.MkdirAll(home, 0755))

	return &steps.Context{
		FS:       mfs,
		Paths:    p,
		Manifest: &manifest.Manifest{Fonts: entries},
		HTTP:     http.DefaultClient,
	}, mfs
}

func TestRunDownloadsFont(t *testing.T) {
	payload := []byte("fake-ttf-bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	rc, mfs := newContext(t, []manifest.Font{
		{Name: "Test Mono", URL: srv.URL + "/TestMono.ttf", File: "TestMono.ttf"},
	})

	result, err := fonts.New().Run(context.Background(), rc)

	require.NoError(t, err)
	assert.Equal(t, steps.StatusApplied, result.Status)

	data, err := mfs.ReadFile(home + "/Library/Fonts/TestMono.ttf")
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.False(t, mfs.Exists(home+"/Library/Fonts/TestMono.ttf.strap.tmp"))
}

func TestRunSkipsPresentFont(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("present font must not be re-downloaded")
	}))
	defer srv.Close()

	rc, mfs := newContext(t, []manifest.Font{
		{Name: "Test Mono", URL: srv.URL, File: "TestMono.ttf"},
	})
	require.NoError(t, mfs.MkdirAll(home+"/Library/Fonts", 0755))
	require.NoError(t, mfs.WriteFile(home+"/Library/Fonts/TestMono.ttf", []byte("x"), 0644))

	result, err := fonts.New().Run(context.Background(), rc)

	require.NoError(t, err)
	assert.Equal(t, steps.StatusUnchanged, result.Status)
}

func TestRunFailsOnHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	rc, mfs := newContext(t, []manifest.Font{
		{Name: "Test Mono", URL: srv.URL, File: "TestMono.ttf"},
	})

	result, err := fonts.New().Run(context.Background(), rc)

	require.Error(t, err)
	assert.Equal(t, steps.StatusFailed, result.Status)
	assert.True(t, errors.IsCode(err, errors.ErrDownload))
	assert.False(t, mfs.Exists(home+"/Library/Fonts/TestMono.ttf"))
}

func TestRunSkippedWithoutFonts(t *testing.T) {
	rc, _ := newContext(t, nil)

	result, err := fonts.New().Run(context.Background(), rc)

	require.NoError(t, err)
	assert.Equal(t, steps.StatusSkipped, result.Status)
}

func TestRunDryRunDownloadsNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("dry-run must not hit the network")
	}))
	defer srv.Close()

	rc, mfs := newContext(t, []manifest.Font{
		{Name: "Test Mono", URL: srv.URL, File: "TestMono.ttf"},
	})
	rc.DryRun = true

	result, err := fonts.New().Run(context.Background(), rc)

	require.NoError(t, err)
	assert.Equal(t, steps.StatusApplied, result.Status)
	assert.False(t, mfs.Exists(home+"/Library/Fonts/TestMono.ttf"))
}
