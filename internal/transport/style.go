package transport

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/loopdeck/internal/ui/styles"
)

// Style holds the rail and handle appearance.
type Style struct {
	Rail   lipgloss.Style
	Loop   lipgloss.Style
	Handle lipgloss.Style

	// LoopFrom and LoopTo, when both set, shade the loop cells as a
	// gradient instead of using Loop.
	LoopFrom lipgloss.Color
	LoopTo   lipgloss.Color

	RailGlyph   string
	LoopGlyph   string
	HandleGlyph string
}

// DefaultStyle is a subtle rail with a white handle and a shaded loop.
func DefaultStyle() Style {
	t := styles.T()
	return Style{
		Rail:        t.S().Subtle,
		Loop:        t.S().Loop,
		Handle:      t.S().Handle,
		LoopFrom:    t.LoopFrom,
		LoopTo:      t.LoopTo,
		RailGlyph:   "─",
		LoopGlyph:   "━",
		HandleGlyph: "┃",
	}
}

// Region is a span of the rail in value units, [Start, End).
type Region struct {
	Start int
	End   int
}

// Render draws the rail as a line of cells, one cell per unit of rail
// width. Cells inside loop use the loop glyph; the handle cell sits at
// HandleX. An inverted rail renders as an empty string.
func (c Control) Render(value, maxValue int, loop *Region) string {
	if c.Rail.Width() < 0 {
		return ""
	}
	cells := int(c.Rail.Width()) + 1

	handle := min(max(int(c.Rail.HandleX(value, maxValue)-c.Rail.StartX+0.5), 0), cells-1)

	looped := make([]bool, cells)
	n := 0
	if loop != nil {
		for i := range cells {
			if c.inLoop(i, maxValue, *loop) {
				looped[i] = true
				n++
			}
		}
	}
	shades := c.loopShades(n)

	var b strings.Builder
	k := 0
	for i := range cells {
		switch {
		case i == handle:
			b.WriteString(c.Style.Handle.Render(c.Style.HandleGlyph))
		case looped[i] && shades != nil:
			b.WriteString(c.Style.Loop.Foreground(shades[k]).Render(c.Style.LoopGlyph))
		case looped[i]:
			b.WriteString(c.Style.Loop.Render(c.Style.LoopGlyph))
		default:
			b.WriteString(c.Style.Rail.Render(c.Style.RailGlyph))
		}
		if looped[i] {
			k++
		}
	}
	return b.String()
}

// loopShades returns one color per loop cell, or nil when no gradient is
// configured.
func (c Control) loopShades(n int) []lipgloss.Color {
	if c.Style.LoopFrom == "" || c.Style.LoopTo == "" {
		return nil
	}
	return styles.Blend(n, c.Style.LoopFrom, c.Style.LoopTo)
}

func (c Control) inLoop(cell, maxValue int, loop Region) bool {
	if loop.End <= loop.Start {
		return false
	}
	x := c.Rail.StartX + float64(cell)
	v := c.Rail.Value(x, maxValue)
	return v >= loop.Start && v < loop.End
}
