// Package steps defines the sequential units of a bootstrap run and the
// context they execute in. Concrete steps live in subpackages, one per
// concern: homebrew packages, symlinks, managed shell-profile blocks,
// fonts, plist preferences and raw commands.
package steps
