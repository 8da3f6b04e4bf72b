// Package types defines the shared interfaces used across strap.
//
// Keeping the FS abstraction here avoids import cycles between the
// patcher, the steps, and the filesystem implementations.
package types
