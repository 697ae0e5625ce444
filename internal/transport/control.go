package transport

// Control tracks one drag gesture on a rail.
type Control struct {
	Style Style
	Rail  Rail

	dragging bool
}

// NewControl returns a control with the default style.
func NewControl(rail Rail) Control {
	return Control{Style: DefaultStyle(), Rail: rail}
}

// Press starts a gesture at (x, y). Gestures starting off the rail are
// ignored until the next press.
func (c *Control) Press(x, y float64) bool {
	c.dragging = c.Rail.Hit(x, y)
	return c.dragging
}

// Drag returns the position under pointer x while a gesture is active.
// changed is false when no gesture is active.
func (c *Control) Drag(x float64, maxValue int) (value int, changed bool) {
	if !c.dragging {
		return 0, false
	}
	return c.Rail.Value(x, maxValue), true
}

// Release ends the active gesture.
func (c *Control) Release() {
	c.dragging = false
}

// Dragging reports whether a gesture is active.
func (c *Control) Dragging() bool {
	return c.dragging
}
