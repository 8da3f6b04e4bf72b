package strap

// Message constants for the root command
const (
	MsgRootShort = "Bootstrap a macOS machine from a declarative manifest"
	MsgRootLong  = `strap reads a TOML manifest describing the machine you want (Homebrew
packages, dotfile symlinks, managed shell-profile blocks, fonts, plist
defaults and raw commands) and applies it idempotently. Running strap
twice with the same manifest changes nothing the second time.

Keep the manifest in your dotfiles repository and run 'strap up'
whenever it changes. See 'strap docs getting-started' to begin.`

	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Preview changes without executing them"

	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgCompletionLong  = `To load completions:

Bash:
  $ source <(strap completion bash)

Zsh:
  $ strap completion zsh > "${fpath[1]}/_strap"

Fish:
  $ strap completion fish | source

PowerShell:
  PS> strap completion powershell | Out-String | Invoke-Expression
`
)
