package app

// RepaintMsg is sent by the repaint ticker. Handling it pulls the latest
// engine reports before the next View.
type RepaintMsg struct{}
