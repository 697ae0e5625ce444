package transport

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func plainControl(width float64) Control {
	c := NewControl(Rail{StartX: 0, EndX: width})
	c.Style.Rail = lipgloss.NewStyle()
	c.Style.Loop = lipgloss.NewStyle()
	c.Style.Handle = lipgloss.NewStyle()
	c.Style.LoopFrom, c.Style.LoopTo = "", ""
	c.Style.RailGlyph, c.Style.LoopGlyph, c.Style.HandleGlyph = "-", "=", "|"
	return c
}

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		width float64
		value int
		max   int
		loop  *Region
		want  string
	}{
		{"start", 4, 0, 100, nil, "|----"},
		{"middle", 4, 50, 100, nil, "--|--"},
		{"end", 4, 100, 100, nil, "----|"},
		{"loop first half", 8, 100, 100, &Region{Start: 0, End: 50}, "====----|"},
		{"empty loop ignored", 4, 0, 100, &Region{Start: 10, End: 10}, "|----"},
		{"zero width", 0, 10, 100, nil, "|"},
		{"inverted", -3, 10, 100, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, plainControl(tt.width).Render(tt.value, tt.max, tt.loop))
		})
	}
}

func TestRender_GradientLoopKeepsGlyphs(t *testing.T) {
	c := plainControl(8)
	c.Style.LoopFrom, c.Style.LoopTo = "#000000", "#ffffff"

	got := ansi.Strip(c.Render(100, 100, &Region{Start: 0, End: 50}))

	assert.Equal(t, "====----|", got)
}

func TestDefaultStyle_ShadesLoop(t *testing.T) {
	s := DefaultStyle()

	assert.NotEmpty(t, s.LoopFrom)
	assert.NotEmpty(t, s.LoopTo)
	assert.Equal(t, "┃", s.HandleGlyph)
}
