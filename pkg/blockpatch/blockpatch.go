package blockpatch

import (
	"io/fs"
	"strings"

	stderrors "errors"

	"github.com/strapkit/strap/pkg/errors"
	"github.com/strapkit/strap/pkg/logging"
	"github.com/strapkit/strap/pkg/types"
)

// Result describes what Ensure did to the target file
type Result string

const (
	// ResultUnchanged means the managed block already matched the desired content
	ResultUnchanged Result = "unchanged"
	// ResultCreated means no marker was found and the block was appended
	ResultCreated Result = "created"
	// ResultUpdated means an existing block was replaced in place
	ResultUpdated Result = "updated"
)

// tmpSuffix is appended to the target path for the atomic write staging file.
// The temp file lives in the same directory so the final rename cannot
// cross filesystems.
const tmpSuffix = ".strap.tmp"

// Ensure guarantees that the file at path contains exactly one managed
// block for marker: the marker line followed by the remaining block lines,
// terminated by a blank line or end of file.
//
// The marker is matched as a whole line, literally. If a block is found it
// is replaced in place; otherwise the block is appended, separated from
// existing content by one blank line. Content outside the managed region
// is preserved byte for byte. The write-back is atomic (temp file plus
// rename), so a failure mid-write leaves the original file intact.
//
// block must start with the marker line itself and may not contain blank
// lines, since a blank line terminates the managed region.
func Ensure(fsys types.FS, path, marker string, block []string) (Result, error) {
	logger := logging.GetLogger("blockpatch")

	if err := validate(marker, block); err != nil {
		return "", err
	}

	info, err := fsys.Stat(path)
	if err != nil {
		return "", classifyReadErr(err, path)
	}

	raw, err := fsys.ReadFile(path)
	if err != nil {
		return "", classifyReadErr(err, path)
	}

	// Work in LF internally, restore the input convention on write.
	text := string(raw)
	crlf := strings.Contains(text, "\r\n")
	if crlf {
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}

	out, result, dupLine := patch(text, marker, block)
	if dupLine > 0 {
		logger.Warn().
			Str("path", path).
			Str("marker", marker).
			Int("line", dupLine).
			Msg("duplicate marker found; only the first block is managed")
	}
	if result == ResultUnchanged {
		logger.Debug().Str("path", path).Str("marker", marker).Msg("block already up to date")
		return ResultUnchanged, nil
	}

	if crlf {
		out = strings.ReplaceAll(out, "\n", "\r\n")
	}

	if err := writeAtomic(fsys, path, []byte(out), info.Mode().Perm()); err != nil {
		return "", err
	}

	logger.Info().
		Str("path", path).
		Str("marker", marker).
		Str("result", string(result)).
		Msg("managed block written")
	return result, nil
}

// patch computes the new file text. dupLine is the 1-based line number of
// a second marker occurrence, or 0; only the first occurrence is managed.
func patch(text, marker string, block []string) (out string, result Result, dupLine int) {
	lines := strings.Split(text, "\n")

	start := -1
	for i, line := range lines {
		if line == marker {
			start = i
			break
		}
	}

	if start == -1 {
		return appendBlock(text, block), ResultCreated, 0
	}

	// Region runs from the marker to the first blank line or EOF,
	// terminator exclusive.
	end := len(lines)
	for j := start + 1; j < len(lines); j++ {
		if lines[j] == "" {
			end = j
			break
		}
	}

	// Later duplicates of the marker are left untouched. Silently
	// rewriting only the first copy is a latent correctness risk, so
	// it gets surfaced to the caller for logging.
	for k := end; k < len(lines); k++ {
		if lines[k] == marker {
			dupLine = k + 1
			break
		}
	}

	if equalLines(lines[start:end], block) {
		return text, ResultUnchanged, dupLine
	}

	merged := make([]string, 0, len(lines)-(end-start)+len(block))
	merged = append(merged, lines[:start]...)
	merged = append(merged, block...)
	merged = append(merged, lines[end:]...)
	return strings.Join(merged, "\n"), ResultUpdated, dupLine
}

// appendBlock appends the block to the end of text with exactly one blank
// line between existing content and the marker. Existing bytes are never
// touched; a missing trailing newline is added first.
func appendBlock(text string, block []string) string {
	body := strings.Join(block, "\n") + "\n"

	switch {
	case text == "":
		return body
	case strings.HasSuffix(text, "\n\n"):
		return text + body
	case strings.HasSuffix(text, "\n"):
		return text + "\n" + body
	default:
		return text + "\n\n" + body
	}
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func validate(marker string, block []string) error {
	if marker == "" {
		return errors.New(errors.ErrInvalidInput, "marker must not be empty")
	}
	if strings.ContainsAny(marker, "\r\n") {
		return errors.Newf(errors.ErrAmbiguousMarker,
			"marker %q contains a line break", marker)
	}
	if len(block) == 0 {
		return errors.New(errors.ErrInvalidInput, "block must not be empty")
	}
	if block[0] != marker {
		return errors.Newf(errors.ErrInvalidInput,
			"block must start with the marker line, got %q", block[0])
	}
	for i, line := range block {
		if line == "" {
			return errors.Newf(errors.ErrAmbiguousMarker,
				"block line %d is blank; a blank line terminates the managed region", i+1)
		}
	}
	return nil
}

// writeAtomic stages the content next to the target and renames it over
// the original, so a crash never leaves a truncated file.
func writeAtomic(fsys types.FS, path string, data []byte, perm fs.FileMode) error {
	tmp := path + tmpSuffix
	if err := fsys.WriteFile(tmp, data, perm); err != nil {
		return classifyWriteErr(err, tmp)
	}
	if err := fsys.Rename(tmp, path); err != nil {
		// Best effort cleanup; the original file is still intact.
		_ = fsys.Remove(tmp)
		return classifyWriteErr(err, path)
	}
	return nil
}

func classifyReadErr(err error, path string) error {
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		return errors.Wrapf(err, errors.ErrFileNotFound, "target file %s does not exist", path)
	case stderrors.Is(err, fs.ErrPermission):
		return errors.Wrapf(err, errors.ErrPermission, "cannot read %s", path)
	default:
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
	}
}

func classifyWriteErr(err error, path string) error {
	if stderrors.Is(err, fs.ErrPermission) {
		return errors.Wrapf(err, errors.ErrPermission, "cannot write %s", path)
	}
	return errors.Wrapf(err, errors.ErrWriteFailure, "cannot write %s", path)
}
