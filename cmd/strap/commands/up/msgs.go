package up

// Message constants
const (
	MsgShort = "Apply the manifest to this machine"
	MsgLong  = `The 'up' command applies every section of the manifest in a fixed
order: Homebrew packages, symlinks, managed shell-profile blocks,
fonts, plist defaults, then raw commands.

Every step is idempotent; work that is already done reports 'unchanged'
and touches nothing. The run halts at the first failure, and a receipt
of what happened is written for 'strap status'.`

	MsgExample = `  # Apply the manifest
  strap up

  # Preview without changing anything
  strap up --dry-run

  # Apply with debug logging
  strap up -vv`

	MsgDryRunDone = "dry run: nothing was changed"
)
