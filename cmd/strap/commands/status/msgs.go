package status

// Message constants
const (
	MsgShort = "Show the outcome of the last run"
	MsgLong  = `Shows what the last 'strap up' did: each step, its status, how long it
took and, for failures, what went wrong.`

	MsgNoRuns = "no runs recorded yet; run 'strap up' first"
)
