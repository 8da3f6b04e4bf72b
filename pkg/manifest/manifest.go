package manifest

import (
	"strconv"
	"strings"

	"github.com/strapkit/strap/pkg/errors"
)

// Manifest is the declarative description of one machine bootstrap:
// which packages to install, which files to symlink, which managed
// blocks to keep in rc files, which fonts to fetch, which plist keys to
// set and which raw commands to run. Steps execute in that order.
type Manifest struct {
	// Dotfiles optionally overrides the dotfiles repository root
	Dotfiles string `koanf:"dotfiles" toml:"dotfiles,omitempty"`

	Settings Settings          `koanf:"settings" toml:"settings"`
	Packages Packages          `koanf:"packages" toml:"packages"`
	Links    map[string]string `koanf:"links" toml:"links,omitempty"`
	Blocks   []Block           `koanf:"blocks" toml:"blocks,omitempty"`
	Fonts    []Font            `koanf:"fonts" toml:"fonts,omitempty"`
	Plists   []PlistEdit       `koanf:"plists" toml:"plists,omitempty"`
	Commands []Command         `koanf:"commands" toml:"commands,omitempty"`
}

// Settings holds knobs shared by several steps
type Settings struct {
	// BackupSuffix is appended to regular files the symlink step would clobber
	BackupSuffix string `koanf:"backup_suffix" toml:"backup_suffix"`
	// CommandTimeoutSeconds bounds each raw command invocation
	CommandTimeoutSeconds int `koanf:"command_timeout_seconds" toml:"command_timeout_seconds"`
}

// Packages lists what the package-manager step installs
type Packages struct {
	Taps     []string `koanf:"taps" toml:"taps,omitempty"`
	Brews    []string `koanf:"brews" toml:"brews,omitempty"`
	Casks    []string `koanf:"casks" toml:"casks,omitempty"`
	Brewfile string   `koanf:"brewfile" toml:"brewfile,omitempty"`
}

// Block declares one managed block in a text file
type Block struct {
	File   string   `koanf:"file" toml:"file"`
	Marker string   `koanf:"marker" toml:"marker"`
	Lines  []string `koanf:"lines" toml:"lines"`
}

// Font declares one font asset to download into ~/Library/Fonts
type Font struct {
	Name string `koanf:"name" toml:"name"`
	URL  string `koanf:"url" toml:"url"`
	File string `koanf:"file" toml:"file"`
}

// PlistEdit declares one key to pin in an XML plist preferences file
type PlistEdit struct {
	File  string `koanf:"file" toml:"file"`
	Key   string `koanf:"key" toml:"key"`
	Type  string `koanf:"type" toml:"type"` // string, integer, real, true, false
	Value string `koanf:"value" toml:"value,omitempty"`
}

// Command declares one raw external tool invocation
type Command struct {
	Name string   `koanf:"name" toml:"name"`
	Cmd  string   `koanf:"cmd" toml:"cmd"`
	Args []string `koanf:"args" toml:"args,omitempty"`
	// Creates skips the command when the given path already exists
	Creates string `koanf:"creates" toml:"creates,omitempty"`
}

// Validate checks the manifest for the mistakes a hand-edited TOML file
// tends to accumulate. It returns the first problem found.
func (m *Manifest) Validate() error {
	markers := make(map[string]string)
	for i, b := range m.Blocks {
		if b.File == "" {
			return errors.Newf(errors.ErrManifestValid, "blocks[%d]: file is required", i)
		}
		if b.Marker == "" {
			return errors.Newf(errors.ErrManifestValid, "blocks[%d]: marker is required", i)
		}
		if strings.ContainsAny(b.Marker, "\r\n") {
			return errors.Newf(errors.ErrManifestValid, "blocks[%d]: marker must be a single line", i)
		}
		// One block per marker per file, across the whole manifest
		key := b.File + "\x00" + b.Marker
		if prev, dup := markers[key]; dup {
			return errors.Newf(errors.ErrManifestValid,
				"blocks[%d]: duplicate marker %q for %s (first declared at %s)", i, b.Marker, b.File, prev)
		}
		markers[key] = "blocks[" + strconv.Itoa(i) + "]"
	}

	for i, f := range m.Fonts {
		if f.URL == "" || f.File == "" {
			return errors.Newf(errors.ErrManifestValid, "fonts[%d]: url and file are required", i)
		}
	}

	for i, p := range m.Plists {
		if p.File == "" || p.Key == "" {
			return errors.Newf(errors.ErrManifestValid, "plists[%d]: file and key are required", i)
		}
		switch p.Type {
		case "string", "integer", "real", "true", "false":
		default:
			return errors.Newf(errors.ErrManifestValid,
				"plists[%d]: unsupported type %q", i, p.Type)
		}
	}

	for i, c := range m.Commands {
		if c.Cmd == "" {
			return errors.Newf(errors.ErrManifestValid, "commands[%d]: cmd is required", i)
		}
	}

	for src, dst := range m.Links {
		if src == "" || dst == "" {
			return errors.New(errors.ErrManifestValid, "links entries need both source and target")
		}
	}

	return nil
}

// BlockLines returns the full managed block for a Block entry, marker
// line included as the first line.
func (b Block) BlockLines() []string {
	lines := make([]string, 0, len(b.Lines)+1)
	lines = append(lines, b.Marker)
	lines = append(lines, b.Lines...)
	return lines
}
