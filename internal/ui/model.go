// Package ui provides the Bubbletea progress view shown while the CLI
// renders a file through the reverb.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ProgressMsg reports how far a render has come.
type ProgressMsg struct {
	Frames int
	Total  int
	// Peak is the output peak of the last block, linear.
	Peak float64
	// Reverb is the wet meter, linear.
	Reverb float64
}

// DoneMsg ends a render. Err is nil on success.
type DoneMsg struct {
	OutputPath string
	Err        error
}

// Model is the Bubbletea model for a single render.
type Model struct {
	Title string
	Input string

	Progress float64
	Peak     float64
	MaxPeak  float64
	Reverb   float64

	StartTime time.Time
	Elapsed   time.Duration

	OutputPath string
	Err        error
	Done       bool
	Cancelled  bool

	Updates chan tea.Msg
	Width   int
}

// NewModel returns a model fed by updates.
func NewModel(title, input string, updates chan tea.Msg) Model {
	return Model{
		Title:     title,
		Input:     input,
		StartTime: time.Now(),
		Updates:   updates,
	}
}

// Init starts listening for updates.
func (m Model) Init() tea.Cmd {
	return waitForUpdate(m.Updates)
}

// Update handles key presses and render updates.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Cancelled = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width

	case ProgressMsg:
		m = m.applyProgress(msg)
		return m, waitForUpdate(m.Updates)

	case DoneMsg:
		m.Done = true
		m.Err = msg.Err
		m.OutputPath = msg.OutputPath
		m.Elapsed = time.Since(m.StartTime)

		if msg.Err == nil {
			m.Progress = 1
		}

		return m, tea.Quit
	}

	return m, nil
}

func (m Model) applyProgress(msg ProgressMsg) Model {
	if msg.Total > 0 {
		m.Progress = min(float64(msg.Frames)/float64(msg.Total), 1)
	}

	m.Peak = msg.Peak
	m.MaxPeak = max(m.MaxPeak, msg.Peak)
	m.Reverb = msg.Reverb
	m.Elapsed = time.Since(m.StartTime)

	return m
}

// View renders the UI.
func (m Model) View() string {
	if m.Done {
		return renderSummary(m)
	}

	return renderProgressView(m)
}

func waitForUpdate(updates chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-updates
	}
}
