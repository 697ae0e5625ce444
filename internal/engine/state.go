package engine

// State represents the engine's transport state machine.
//
//	┌──────────┐   PlayResume    ┌──────────┐
//	│  Paused  │ ───────────────▶│  Playing │
//	└──────────┘                 └──────────┘
//	     ▲                            │
//	     └────────────────────────────┘
//	                Pause
//
// Valid transitions:
//   - Paused  → Playing (via PlayResume, only once a stream is attached)
//   - Playing → Paused  (via Pause, or on reaching the end with no loop)
//
// PlayResume at the end of a stream with no loop restarts from frame 0.
// Repeated commands are no-ops: Pause while Paused, PlayResume while Playing.
// SetLoop and SeekTo are accepted in both states.
type State int

const (
	Paused State = iota
	Playing
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Paused:
		return "Paused"
	case Playing:
		return "Playing"
	default:
		return "Unknown"
	}
}
