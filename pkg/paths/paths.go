// Package paths provides centralized path handling for strap.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/strapkit/strap/pkg/errors"
)

// Environment variable names
const (
	// EnvDotfilesRoot points at the dotfiles repository the symlink step farms from
	EnvDotfilesRoot = "DOTFILES_ROOT"

	// EnvManifest overrides the manifest file location
	EnvManifest = "STRAP_MANIFEST"

	// EnvStateDir overrides the XDG state directory for strap
	EnvStateDir = "STRAP_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Names of strap-owned files and directories. These are not
// user-configurable; user-facing paths belong in the manifest.
const (
	appDirName   = "strap"
	manifestName = "strap.toml"
	receiptName  = "last-run.yaml"
	lockName     = "strap.lock"
)

// Paths resolves all filesystem locations strap reads or writes
type Paths struct {
	home     string
	config   string
	state    string
	dotfiles string
}

// New resolves paths from the environment. dotfilesRoot may be empty, in
// which case DOTFILES_ROOT and then ~/dotfiles are used.
func New(dotfilesRoot string) (*Paths, error) {
	home := os.Getenv(EnvHome)
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrNotFound, "cannot determine home directory")
		}
	}

	if dotfilesRoot == "" {
		dotfilesRoot = os.Getenv(EnvDotfilesRoot)
	}
	if dotfilesRoot == "" {
		dotfilesRoot = filepath.Join(home, "dotfiles")
	}

	state := os.Getenv(EnvStateDir)
	if state == "" {
		state = filepath.Join(xdg.StateHome, appDirName)
	}

	return &Paths{
		home:     home,
		config:   filepath.Join(xdg.ConfigHome, appDirName),
		state:    state,
		dotfiles: dotfilesRoot,
	}, nil
}

// Home returns the user's home directory
func (p *Paths) Home() string {
	return p.home
}

// ConfigDir returns strap's XDG config directory
func (p *Paths) ConfigDir() string {
	return p.config
}

// StateDir returns strap's XDG state directory
func (p *Paths) StateDir() string {
	return p.state
}

// DotfilesRoot returns the dotfiles repository the symlink step links from
func (p *Paths) DotfilesRoot() string {
	return p.dotfiles
}

// ManifestPath returns the manifest location, honoring STRAP_MANIFEST and
// falling back to a strap.toml in the dotfiles root, then the config dir.
func (p *Paths) ManifestPath() string {
	if env := os.Getenv(EnvManifest); env != "" {
		return env
	}
	inRoot := filepath.Join(p.dotfiles, manifestName)
	if _, err := os.Stat(inRoot); err == nil {
		return inRoot
	}
	return filepath.Join(p.config, manifestName)
}

// InitManifestPath returns where 'strap init' writes a new manifest:
// the STRAP_MANIFEST override, the dotfiles root when that directory
// exists, otherwise the config dir.
func (p *Paths) InitManifestPath() string {
	if env := os.Getenv(EnvManifest); env != "" {
		return env
	}
	if info, err := os.Stat(p.dotfiles); err == nil && info.IsDir() {
		return filepath.Join(p.dotfiles, manifestName)
	}
	return filepath.Join(p.config, manifestName)
}

// ReceiptPath returns the location of the last-run receipt
func (p *Paths) ReceiptPath() string {
	return filepath.Join(p.state, receiptName)
}

// LockPath returns the location of the advisory run lock
func (p *Paths) LockPath() string {
	return filepath.Join(p.state, lockName)
}

// ExpandHome replaces a leading ~ or $HOME in path with the home directory
func (p *Paths) ExpandHome(path string) string {
	switch {
	case path == "~":
		return p.home
	case len(path) > 1 && path[0] == '~' && path[1] == '/':
		return filepath.Join(p.home, path[2:])
	default:
		return os.Expand(path, func(name string) string {
			if name == "HOME" {
				return p.home
			}
			return os.Getenv(name)
		})
	}
}
