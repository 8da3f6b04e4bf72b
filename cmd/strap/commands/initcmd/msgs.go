package initcmd

// Message constants
const (
	MsgShort = "Create a starter manifest"
	MsgLong  = `Writes a small working manifest with one example of each step type.
The file goes to $DOTFILES_ROOT/strap.toml when DOTFILES_ROOT points at
an existing directory, otherwise to ~/.config/strap/strap.toml. An
existing manifest is never overwritten.`

	MsgCreated = "wrote starter manifest to %s\nedit it, then run 'strap up'\n"
)
