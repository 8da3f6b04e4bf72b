package manifest

import (
	"os"
	"path/filepath"

	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/strapkit/strap/pkg/errors"
)

// Starter returns the manifest written by 'strap init': a small working
// example of every step type, ready to be edited.
func Starter() *Manifest {
	return &Manifest{
		Settings: Settings{
			BackupSuffix:          ".strap-backup",
			CommandTimeoutSeconds: 300,
		},
		Packages: Packages{
			Brews: []string{"git", "direnv"},
		},
		Links: map[string]string{
			"zsh/zshrc": "~/.zshrc",
		},
		Blocks: []Block{
			{
				File:   "~/.zshrc",
				Marker: "# strap: direnv",
				Lines:  []string{`eval "$(direnv hook zsh)"`},
			},
		},
	}
}

// WriteStarter serializes the starter manifest to path. It refuses to
// overwrite an existing file.
func WriteStarter(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Newf(errors.ErrManifestValid, "manifest already exists at %s", path)
	}

	data, err := gotoml.Marshal(Starter())
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to serialize starter manifest")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileCreate, "cannot write %s", path)
	}
	return nil
}
