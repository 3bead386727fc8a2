package bucketsync

// State is the protocol state.
type State uint8

const (
	// Idle means no sync session is running.
	Idle State = iota
	// Syncing means a start packet was applied and the session awaits its
	// last packet.
	Syncing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Syncing:
		return "syncing"
	default:
		return "unknown"
	}
}
