package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/loopdeck/internal/keymap"
	"github.com/llehouerou/loopdeck/internal/ui/render"
	"github.com/llehouerou/loopdeck/internal/ui/styles"
)

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
)

const brand = "loopdeck"

// View renders the application UI. Line railRow holds the rail so mouse
// rows map onto it directly.
func (m Model) View() string {
	s := styles.T().S()
	lines := []string{
		m.renderHeader(),
		m.renderPosition(),
		m.renderRail(),
		m.renderStatus(),
		s.Subtle.Render(m.fit(keymap.Help(keymap.All))),
	}
	return strings.Join(lines, "\n")
}

// fit truncates plain text to the window width once it is known.
func (m Model) fit(text string) string {
	if m.Width <= 0 {
		return render.Sanitize(text)
	}
	return render.Truncate(text, m.Width)
}

func (m Model) renderHeader() string {
	t := styles.T()
	left := styles.ApplyBoldGradient(brand, t.Primary, t.Secondary) + "  " +
		t.S().Title.Render(m.fit(m.Title()))

	var meta []string
	if m.Info.Artist != "" {
		meta = append(meta, m.Info.Artist)
	}
	if m.Info.Album != "" {
		meta = append(meta, m.Info.Album)
	}
	if info := formatAudioInfo(m.Info.Format, int(m.Info.SampleRate)); info != "" {
		meta = append(meta, info)
	}
	if len(meta) == 0 {
		return left
	}
	right := t.S().Muted.Render(render.Sanitize(strings.Join(meta, " · ")))
	if m.Width <= 0 {
		return left + "   " + right
	}
	return render.Row(left, right, m.Width)
}

func (m Model) renderPosition() string {
	s := styles.T().S()
	status := pauseSymbol
	if m.Transport.Playing {
		status = playSymbol
	}

	frames := fmt.Sprintf("%s / %s",
		humanize.Comma(int64(m.Transport.CurrentFrame)),
		humanize.Comma(int64(m.Transport.NumFrames)))

	var elapsed string
	if m.Info.SampleRate > 0 {
		elapsed = fmt.Sprintf("%s / %s",
			formatDuration(m.Info.SampleRate.D(m.Transport.CurrentFrame)),
			formatDuration(m.Info.Duration()))
	}

	parts := []string{status, frames}
	if elapsed != "" {
		parts = append(parts, s.Muted.Render(elapsed))
	}
	if !m.Loop.Empty() {
		parts = append(parts, s.Loop.Render(fmt.Sprintf("loop %s – %s",
			humanize.Comma(int64(m.Loop.Start)),
			humanize.Comma(int64(m.Loop.End)))))
	}
	return strings.Join(parts, "   ")
}

func (m Model) renderRail() string {
	if m.Width <= 0 {
		return ""
	}
	pad := strings.Repeat(" ", max(m.display.RailPadding, 0))
	return pad + m.control.Render(m.Transport.CurrentFrame, m.Transport.NumFrames, regionOf(m.Loop))
}

func (m Model) renderStatus() string {
	if m.StatusMsg == "" {
		return ""
	}
	s := styles.T().S()
	msg := m.fit(m.StatusMsg)
	if strings.HasPrefix(m.StatusMsg, "Failed to ") {
		return s.Error.Render(msg)
	}
	return s.Success.Render(msg)
}

func formatDuration(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

func formatAudioInfo(format string, sampleRate int) string {
	var parts []string
	if format != "" {
		parts = append(parts, format)
	}
	if sampleRate > 0 {
		khz := float64(sampleRate) / 1000.0
		if khz == float64(int(khz)) {
			parts = append(parts, fmt.Sprintf("%d kHz", int(khz)))
		} else {
			parts = append(parts, fmt.Sprintf("%.1f kHz", khz))
		}
	}
	return strings.Join(parts, " · ")
}
