// pkg/testutil/memoryfs_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Sanity-check the in-memory filesystem used by other test suites

package testutil

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFSReadWrite(t *testing.T) {
	mfs := NewMemoryFS()
	require.NoError(t, mfs.MkdirAll("/home/user", 0755))
	require.NoError(t, mfs.WriteFile("/home/user/.zshrc", []byte("export A=1\n"), 0644))

	data, err := mfs.ReadFile("/home/user/.zshrc")
	require.NoError(t, err)
	assert.Equal(t, "export A=1\n", string(data))

	info, err := mfs.Stat("/home/user/.zshrc")
	require.NoError(t, err)
	assert.Equal(t, int64(11), info.Size())
	assert.False(t, info.IsDir())
}

func TestMemoryFSWriteRequiresParent(t *testing.T) {
	mfs := NewMemoryFS()
	err := mfs.WriteFile("/missing/dir/file", []byte("x"), 0644)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestMemoryFSRename(t *testing.T) {
	mfs := NewMemoryFS()
	require.NoError(t, mfs.MkdirAll("/tmp", 0755))
	require.NoError(t, mfs.WriteFile("/tmp/a", []byte("payload"), 0644))

	require.NoError(t, mfs.Rename("/tmp/a", "/tmp/b"))

	assert.False(t, mfs.Exists("/tmp/a"))
	data, err := mfs.ReadFile("/tmp/b")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestMemoryFSSymlink(t *testing.T) {
	mfs := NewMemoryFS()
	require.NoError(t, mfs.MkdirAll("/home/user", 0755))
	require.NoError(t, mfs.WriteFile("/home/user/src", []byte("content"), 0644))
	require.NoError(t, mfs.Symlink("/home/user/src", "/home/user/link"))

	dest, err := mfs.Readlink("/home/user/link")
	require.NoError(t, err)
	assert.Equal(t, "/home/user/src", dest)

	// Stat follows the link
	data, err := mfs.ReadFile("/home/user/link")
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	// Second symlink to the same target must fail
	err = mfs.Symlink("/home/user/src", "/home/user/link")
	assert.ErrorIs(t, err, fs.ErrExist)
}

func TestMemoryFSErrorInjection(t *testing.T) {
	mfs := NewMemoryFS()
	require.NoError(t, mfs.MkdirAll("/tmp", 0755))
	require.NoError(t, mfs.WriteFile("/tmp/a", []byte("x"), 0644))

	injected := assert.AnError
	mfs.SetOpError("rename", injected)
	assert.ErrorIs(t, mfs.Rename("/tmp/a", "/tmp/b"), injected)

	mfs.SetOpError("rename", nil)
	assert.NoError(t, mfs.Rename("/tmp/a", "/tmp/b"))
}

func TestMemoryFSReadDir(t *testing.T) {
	mfs := NewMemoryFS()
	require.NoError(t, mfs.MkdirAll("/d/sub", 0755))
	require.NoError(t, mfs.WriteFile("/d/b", []byte("1"), 0644))
	require.NoError(t, mfs.WriteFile("/d/a", []byte("2"), 0644))

	entries, err := mfs.ReadDir("/d")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "a", entries[0].Name())
	assert.Equal(t, "b", entries[1].Name())
	assert.Equal(t, "sub", entries[2].Name())
	assert.True(t, entries[2].IsDir())
}
