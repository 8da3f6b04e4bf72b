package testutil

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryFS implements types.FS with in-memory storage.
// It supports per-path and per-operation error injection so tests can
// exercise failure paths (e.g. a rename that fails after the temp file
// was written).
type MemoryFS struct {
	mu    sync.RWMutex
	files map[string]*fileNode

	errorPaths map[string]error
	errorOps   map[string]error
}

// fileNode represents a file, directory or symlink in memory
type fileNode struct {
	name     string
	mode     fs.FileMode
	modTime  time.Time
	content  []byte
	isDir    bool
	isLink   bool
	linkDest string
}

// NewMemoryFS creates a new in-memory filesystem with a root directory
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		files: map[string]*fileNode{
			"/": {name: "/", mode: 0755 | fs.ModeDir, modTime: time.Now(), isDir: true},
		},
		errorPaths: make(map[string]error),
		errorOps:   make(map[string]error),
	}
}

// SetErrorPath injects an error for any operation touching the given path
func (m *MemoryFS) SetErrorPath(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorPaths[filepath.Clean(path)] = err
}

// SetOpError injects an error for every call of the given operation
// ("read", "write", "rename", "stat", "symlink", "remove", "mkdir", "readdir")
func (m *MemoryFS) SetOpError(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.errorOps, op)
	} else {
		m.errorOps[op] = err
	}
}

func (m *MemoryFS) checkError(op, path string) error {
	if err, ok := m.errorOps[op]; ok {
		return err
	}
	if err, ok := m.errorPaths[filepath.Clean(path)]; ok {
		return err
	}
	return nil
}

func (m *MemoryFS) getNode(path string) (*fileNode, error) {
	path = filepath.Clean(path)
	node, exists := m.files[path]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return node, nil
}

func (m *MemoryFS) parentExists(path string) bool {
	dir := filepath.Dir(filepath.Clean(path))
	node, ok := m.files[dir]
	return ok && node.isDir
}

func (m *MemoryFS) Stat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkError("stat", name); err != nil {
		return nil, err
	}
	node, err := m.getNode(name)
	if err != nil {
		return nil, err
	}
	// Follow symlinks like os.Stat does
	for node.isLink {
		node, err = m.getNode(node.linkDest)
		if err != nil {
			return nil, err
		}
	}
	return node.info(filepath.Base(name)), nil
}

func (m *MemoryFS) Lstat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkError("stat", name); err != nil {
		return nil, err
	}
	node, err := m.getNode(name)
	if err != nil {
		return nil, err
	}
	return node.info(filepath.Base(name)), nil
}

func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkError("read", name); err != nil {
		return nil, err
	}
	node, err := m.getNode(name)
	if err != nil {
		return nil, err
	}
	if node.isLink {
		node, err = m.getNode(node.linkDest)
		if err != nil {
			return nil, err
		}
	}
	if node.isDir {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	out := make([]byte, len(node.content))
	copy(out, node.content)
	return out, nil
}

func (m *MemoryFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError("write", name); err != nil {
		return err
	}
	name = filepath.Clean(name)
	if !m.parentExists(name) {
		return &fs.PathError{Op: "write", Path: name, Err: fs.ErrNotExist}
	}
	content := make([]byte, len(data))
	copy(content, data)
	m.files[name] = &fileNode{
		name:    filepath.Base(name),
		mode:    perm,
		modTime: time.Now(),
		content: content,
	}
	return nil
}

func (m *MemoryFS) MkdirAll(path string, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError("mkdir", path); err != nil {
		return err
	}
	path = filepath.Clean(path)
	parts := strings.Split(path, string(filepath.Separator))
	cur := "/"
	for _, part := range parts {
		if part == "" {
			continue
		}
		cur = filepath.Join(cur, part)
		if node, ok := m.files[cur]; ok {
			if !node.isDir {
				return &fs.PathError{Op: "mkdir", Path: cur, Err: fs.ErrExist}
			}
			continue
		}
		m.files[cur] = &fileNode{
			name:    part,
			mode:    perm | fs.ModeDir,
			modTime: time.Now(),
			isDir:   true,
		}
	}
	return nil
}

func (m *MemoryFS) Symlink(oldname, newname string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError("symlink", newname); err != nil {
		return err
	}
	newname = filepath.Clean(newname)
	if _, exists := m.files[newname]; exists {
		return &fs.PathError{Op: "symlink", Path: newname, Err: fs.ErrExist}
	}
	if !m.parentExists(newname) {
		return &fs.PathError{Op: "symlink", Path: newname, Err: fs.ErrNotExist}
	}
	m.files[newname] = &fileNode{
		name:     filepath.Base(newname),
		mode:     0777 | fs.ModeSymlink,
		modTime:  time.Now(),
		isLink:   true,
		linkDest: oldname,
	}
	return nil
}

func (m *MemoryFS) Readlink(name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkError("read", name); err != nil {
		return "", err
	}
	node, err := m.getNode(name)
	if err != nil {
		return "", err
	}
	if !node.isLink {
		return "", &fs.PathError{Op: "readlink", Path: name, Err: fs.ErrInvalid}
	}
	return node.linkDest, nil
}

func (m *MemoryFS) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError("remove", name); err != nil {
		return err
	}
	name = filepath.Clean(name)
	if _, exists := m.files[name]; !exists {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}
	delete(m.files, name)
	return nil
}

func (m *MemoryFS) Rename(oldpath, newpath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError("rename", oldpath); err != nil {
		return err
	}
	if err := m.checkError("rename", newpath); err != nil {
		return err
	}
	oldpath = filepath.Clean(oldpath)
	newpath = filepath.Clean(newpath)
	node, exists := m.files[oldpath]
	if !exists {
		return &fs.PathError{Op: "rename", Path: oldpath, Err: fs.ErrNotExist}
	}
	if !m.parentExists(newpath) {
		return &fs.PathError{Op: "rename", Path: newpath, Err: fs.ErrNotExist}
	}
	delete(m.files, oldpath)
	renamed := *node
	renamed.name = filepath.Base(newpath)
	m.files[newpath] = &renamed
	return nil
}

func (m *MemoryFS) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkError("readdir", name); err != nil {
		return nil, err
	}
	name = filepath.Clean(name)
	node, err := m.getNode(name)
	if err != nil {
		return nil, err
	}
	if !node.isDir {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}

	var entries []fs.DirEntry
	for path, child := range m.files {
		if path == name {
			continue
		}
		if filepath.Dir(path) == name {
			entries = append(entries, dirEntry{node: child, name: filepath.Base(path)})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// Exists reports whether a path is present, for test assertions
func (m *MemoryFS) Exists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[filepath.Clean(path)]
	return ok
}

// fileInfo implements fs.FileInfo for memory nodes
type fileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (fi fileInfo) Name() string       { return fi.name }
func (fi fileInfo) Size() int64        { return fi.size }
func (fi fileInfo) Mode() fs.FileMode  { return fi.mode }
func (fi fileInfo) ModTime() time.Time { return fi.modTime }
func (fi fileInfo) IsDir() bool        { return fi.isDir }
func (fi fileInfo) Sys() interface{}   { return nil }

func (n *fileNode) info(name string) fs.FileInfo {
	return fileInfo{
		name:    name,
		size:    int64(len(n.content)),
		mode:    n.mode,
		modTime: n.modTime,
		isDir:   n.isDir,
	}
}

// dirEntry implements fs.DirEntry
type dirEntry struct {
	node *fileNode
	name string
}

func (d dirEntry) Name() string               { return d.name }
func (d dirEntry) IsDir() bool                { return d.node.isDir }
func (d dirEntry) Type() fs.FileMode          { return d.node.mode.Type() }
func (d dirEntry) Info() (fs.FileInfo, error) { return d.node.info(d.name), nil }
