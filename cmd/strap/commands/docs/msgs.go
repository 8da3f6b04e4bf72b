package docs

// Message constants
const (
	MsgShort = "Read built-in documentation"
	MsgLong  = `Renders a built-in documentation topic for the terminal. With no
argument, lists the available topics.`

	MsgAvailable = "Available topics (strap docs <topic>):"
)
