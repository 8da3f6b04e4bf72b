package patch

// Message constants
const (
	MsgShort = "Apply a single managed block to a file"
	MsgLong  = `Reads block lines from stdin and ensures the file contains exactly one
managed block for the given marker, using the same semantics as the
manifest's [[blocks]] section: the marker line is matched literally as
a whole line, the block runs to the next blank line, and writes are
atomic. The marker itself must not be repeated on stdin.

Prints one of 'unchanged', 'created' or 'updated'.`

	MsgExample = `  # Manage a PATH entry in ~/.zshrc
  printf 'export PATH="$HOME/bin:$PATH"\n' | strap patch ~/.zshrc "# strap: path"`
)
