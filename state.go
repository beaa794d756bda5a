package blockgen

// State is one of the five lifecycle phases a Generator passes through.
// States advance monotonically; there is no restart.
type State int

const (
	// Initialized is the state immediately after construction, before
	// Start is called.
	Initialized State = iota

	// Active accepts Add*/is the only state in which items are admitted.
	Active

	// StoppedAddingData is entered at the start of Stop: no further Add*
	// calls succeed, but the timer and drain workers are still running.
	StoppedAddingData

	// StoppedGeneratingBlocks is entered once the timer has been stopped
	// and any in-flight tick has completed: the drain worker is draining
	// its final backlog.
	StoppedGeneratingBlocks

	// StoppedAll is the terminal state: both workers have exited and the
	// block queue is empty.
	StoppedAll
)

// String renders the state for log lines. Log text is human-oriented and
// not a compatibility surface.
func (s State) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Active:
		return "active"
	case StoppedAddingData:
		return "stopped_adding_data"
	case StoppedGeneratingBlocks:
		return "stopped_generating_blocks"
	case StoppedAll:
		return "stopped_all"
	default:
		return "unknown"
	}
}
