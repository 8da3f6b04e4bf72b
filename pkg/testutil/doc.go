// Package testutil provides shared helpers for strap's tests, most
// notably an in-memory types.FS implementation with error injection.
package testutil
