package plist

import (
	"context"
	"fmt"

	"github.com/beevik/etree"

	"github.com/strapkit/strap/pkg/errors"
	"github.com/strapkit/strap/pkg/logging"
	"github.com/strapkit/strap/pkg/manifest"
	"github.com/strapkit/strap/pkg/steps"
	"github.com/strapkit/strap/pkg/types"
)

// StepName is the name of the plist step
const StepName = "plists"

// Step pins keys in XML plist preference files (terminal emulator and
// editor settings exported as XML). Keys already holding the desired
// value are left alone; everything else in the plist is preserved.
//
// Binary plists are out of scope; export them with
// 'plutil -convert xml1' first.
type Step struct{}

// New creates the plist step
func New() *Step {
	return &Step{}
}

// Name returns the unique name of this step
func (s *Step) Name() string {
	return StepName
}

// Description returns a human-readable description of what this step does
func (s *Step) Description() string {
	return "Pins keys in XML plist preference files"
}

// Run applies every plist edit from the manifest
func (s *Step) Run(_ context.Context, rc *steps.Context) (steps.Result, error) {
	logger := logging.GetLogger("steps.plist")
	edits := rc.Manifest.Plists

	if len(edits) == 0 {
		return steps.Result{Status: steps.StatusSkipped, Detail: "no plist edits declared"}, nil
	}

	changed := 0
	for _, e := range edits {
		target := rc.Paths.ExpandHome(e.File)

		if rc.DryRun {
			logger.Info().Str("file", target).Str("key", e.Key).Msg("would pin plist key")
			changed++
			continue
		}

		didChange, err := s.apply(rc.FS, target, e)
		if err != nil {
			return steps.Result{Status: steps.StatusFailed}, err
		}
		if didChange {
			changed++
		}
	}

	if changed == 0 {
		return steps.Result{Status: steps.StatusUnchanged, Detail: "all plist keys pinned"}, nil
	}
	return steps.Result{
		Status: steps.StatusApplied,
		Detail: fmt.Sprintf("%d of %d plist keys written", changed, len(edits)),
	}, nil
}

func (s *Step) apply(fsys types.FS, path string, e manifest.PlistEdit) (bool, error) {
	raw, err := fsys.ReadFile(path)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileNotFound, "cannot read plist %s", path)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return false, errors.Wrapf(err, errors.ErrStepInvalid, "%s is not valid XML (binary plist?)", path)
	}

	dict := doc.FindElement("plist/dict")
	if dict == nil {
		return false, errors.Newf(errors.ErrStepInvalid, "%s has no top-level dict", path)
	}

	value := findValue(dict, e.Key)
	if value != nil && matches(value, e) {
		return false, nil
	}

	if value != nil {
		dict.RemoveChild(value)
		insertValueAfterKey(dict, e)
	} else {
		key := dict.CreateElement("key")
		key.SetText(e.Key)
		appendValue(dict, e)
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrInternal, "cannot serialize %s", path)
	}

	// Atomic write, same staging scheme the block patcher uses
	tmp := path + ".strap.tmp"
	if err := fsys.WriteFile(tmp, out, 0644); err != nil {
		return false, errors.Wrapf(err, errors.ErrWriteFailure, "cannot write %s", tmp)
	}
	if err := fsys.Rename(tmp, path); err != nil {
		_ = fsys.Remove(tmp)
		return false, errors.Wrapf(err, errors.ErrWriteFailure, "cannot write %s", path)
	}

	return true, nil
}

// findValue returns the value element following the <key> whose text is
// name, or nil when the key is absent.
func findValue(dict *etree.Element, name string) *etree.Element {
	children := dict.ChildElements()
	for i, child := range children {
		if child.Tag == "key" && child.Text() == name && i+1 < len(children) {
			return children[i+1]
		}
	}
	return nil
}

func matches(value *etree.Element, e manifest.PlistEdit) bool {
	switch e.Type {
	case "true", "false":
		return value.Tag == e.Type
	default:
		return value.Tag == e.Type && value.Text() == e.Value
	}
}

// insertValueAfterKey places the new value element right after its key
func insertValueAfterKey(dict *etree.Element, e manifest.PlistEdit) {
	for _, child := range dict.ChildElements() {
		if child.Tag == "key" && child.Text() == e.Key {
			dict.InsertChildAt(child.Index()+1, newValueElement(e))
			return
		}
	}
}

func appendValue(dict *etree.Element, e manifest.PlistEdit) {
	dict.AddChild(newValueElement(e))
}

func newValueElement(e manifest.PlistEdit) *etree.Element {
	el := etree.NewElement(e.Type)
	if e.Type != "true" && e.Type != "false" {
		el.SetText(e.Value)
	}
	return el
}

// Verify interface compliance
var _ steps.Step = (*Step)(nil)
