// Package docs serves strap's built-in documentation. Topics are
// markdown files embedded at build time and rendered with glamour when
// stdout is a terminal, or printed raw when it is not.
package docs

import (
	"embed"
	"path"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/strapkit/strap/pkg/errors"
)

//go:embed topics/*.md
var topicFiles embed.FS

const topicsDir = "topics"

// List returns the available topic names, sorted
func List() []string {
	entries, err := topicFiles.ReadDir(topicsDir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".md"))
	}
	sort.Strings(names)
	return names
}

// Get returns the raw markdown for a topic
func Get(name string) (string, error) {
	data, err := topicFiles.ReadFile(path.Join(topicsDir, name+".md"))
	if err != nil {
		return "", errors.Newf(errors.ErrNotFound,
			"no such topic %q, try one of: %s", name, strings.Join(List(), ", "))
	}
	return string(data), nil
}

// Render returns a topic formatted for the terminal. Styled output
// goes through glamour; any rendering failure falls back to the raw
// markdown so docs are never unreadable.
func Render(name string, styled bool) (string, error) {
	content, err := Get(name)
	if err != nil {
		return "", err
	}
	if !styled {
		return content, nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return content, nil
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content, nil
	}
	return rendered, nil
}
