package keymap

import "strings"

// Binding maps keys to an action. The first key is the one shown in help.
type Binding struct {
	Keys        []string
	Description string
	Action      Action
}

// All contains every key binding.
var All = []Binding{
	{[]string{" "}, "play/pause", ActionPlayPause},
	{[]string{"home", "0"}, "rewind", ActionRewind},
	{[]string{"left", "h"}, "back 1s", ActionNudgeBack},
	{[]string{"right", "l"}, "ahead 1s", ActionNudgeAhead},
	{[]string{"["}, "loop start", ActionLoopStart},
	{[]string{"]"}, "loop end", ActionLoopEnd},
	{[]string{"L"}, "clear loop", ActionLoopClear},
	{[]string{"q", "ctrl+c"}, "quit", ActionQuit},
}

// Help renders the bindings as a single line: "space play/pause · [ loop start · ...".
func Help(bindings []Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if len(b.Keys) == 0 {
			continue
		}
		key := b.Keys[0]
		if key == " " {
			key = "space"
		}
		parts = append(parts, key+" "+b.Description)
	}
	return strings.Join(parts, " · ")
}
