// Package filesystem provides filesystem implementations for strap.
//
// This package contains implementations of the types.FS interface,
// including the standard OS filesystem. Test filesystems live in
// pkg/testutil.
package filesystem
