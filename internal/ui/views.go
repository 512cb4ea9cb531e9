package ui

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

const barWidth = 40

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5F87FF"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5F87FF")).
			Padding(0, 1).
			Width(60)

	okIcon   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")).Render("✓")
	failIcon = lipgloss.NewStyle().Foreground(lipgloss.Color("#A40000")).Render("✗")
)

func renderProgressView(m Model) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(filepath.Base(m.Input)))
	b.WriteString("\n\n")

	var content strings.Builder

	content.WriteString(renderProgressBar(m.Progress, barWidth))
	content.WriteString("\n\n")

	elapsed := m.Elapsed.Seconds()

	var remaining float64
	if m.Progress > 0 {
		remaining = elapsed/m.Progress - elapsed
	}

	fmt.Fprintf(&content, "Elapsed: %.1fs | Remaining: ~%.1fs\n", elapsed, remaining)
	fmt.Fprintf(&content, "Output: %s | Peak: %s | Reverb: %s",
		formatDB(m.Peak), formatDB(m.MaxPeak), formatDB(m.Reverb))

	b.WriteString(boxStyle.Render(content.String()))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("q to cancel"))
	b.WriteString("\n")

	return b.String()
}

func renderSummary(m Model) string {
	if m.Err != nil {
		return fmt.Sprintf(" %s %s\n   Error: %v\n", failIcon, filepath.Base(m.Input), m.Err)
	}

	return fmt.Sprintf(" %s %s → %s\n   %.1fs | Peak: %s\n",
		okIcon, filepath.Base(m.Input), filepath.Base(m.OutputPath),
		m.Elapsed.Seconds(), formatDB(m.MaxPeak))
}

func renderProgressBar(progress float64, width int) string {
	progress = math.Max(0, math.Min(1, progress))
	filled := int(progress * float64(width))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	return fmt.Sprintf("%s %d%%", bar, int(progress*100))
}

// formatDB renders a linear level in dBFS, showing silence as "-inf dB".
func formatDB(v float64) string {
	if v <= 0 {
		return "-inf dB"
	}

	return fmt.Sprintf("%.1f dB", core.LinearToDB(v))
}
