// Package blockpatch implements idempotent managed-block patching of
// text files.
//
// A managed block is a region of a file that strap owns: a unique marker
// line followed by the lines of the block, terminated by a blank line or
// the end of the file. Ensure guarantees the file contains exactly one
// such region with the desired content, creating it on first run and
// replacing it on later runs, while leaving every byte outside the region
// alone. Repeated application with identical inputs is a no-op.
//
// This replaces the ad hoc per-call-site regex substitutions a bootstrap
// script would otherwise accumulate, with one tested code path shared by
// every rc-file and config-file edit.
package blockpatch
