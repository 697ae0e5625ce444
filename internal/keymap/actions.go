// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	ActionQuit Action = "quit"

	// Transport
	ActionPlayPause  Action = "play_pause"
	ActionRewind     Action = "rewind"
	ActionNudgeBack  Action = "nudge_back"
	ActionNudgeAhead Action = "nudge_ahead"

	// Loop editing
	ActionLoopStart Action = "loop_start"
	ActionLoopEnd   Action = "loop_end"
	ActionLoopClear Action = "loop_clear"
)
