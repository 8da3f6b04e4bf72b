package manifest

import (
	_ "embed"
	"os"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/strapkit/strap/pkg/errors"
	"github.com/strapkit/strap/pkg/logging"
)

//go:embed defaults.toml
var defaultsTOML []byte

// Load reads the manifest at path, layered over the embedded defaults,
// and validates it.
func Load(path string) (*Manifest, error) {
	logger := logging.GetLogger("manifest")

	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultsTOML), toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load built-in defaults")
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrManifestLoad,
				"no manifest found at %s (run 'strap init' to create one)", path)
		}
		return nil, errors.Wrapf(err, errors.ErrManifestLoad, "cannot access manifest %s", path)
	}

	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to parse %s", path)
	}

	var m Manifest
	if err := k.Unmarshal("", &m); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to decode %s", path)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("path", path).
		Int("links", len(m.Links)).
		Int("blocks", len(m.Blocks)).
		Int("fonts", len(m.Fonts)).
		Int("plists", len(m.Plists)).
		Int("commands", len(m.Commands)).
		Msg("manifest loaded")

	return &m, nil
}
