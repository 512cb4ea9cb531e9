package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestProgressUpdates(t *testing.T) {
	m := NewModel("Rendering", "/tmp/in.wav", make(chan tea.Msg, 1))

	next, cmd := m.Update(ProgressMsg{Frames: 250, Total: 1000, Peak: 0.5, Reverb: 0.1})
	m = next.(Model)

	if cmd == nil {
		t.Fatal("progress must keep listening")
	}

	if m.Progress != 0.25 || m.Peak != 0.5 || m.MaxPeak != 0.5 || m.Reverb != 0.1 {
		t.Fatalf("model=%+v", m)
	}

	next, _ = m.Update(ProgressMsg{Frames: 2000, Total: 1000, Peak: 0.25})
	m = next.(Model)

	if m.Progress != 1 || m.MaxPeak != 0.5 || m.Peak != 0.25 {
		t.Fatalf("model=%+v", m)
	}

	view := m.View()
	if !strings.Contains(view, "Rendering") || !strings.Contains(view, "in.wav") || !strings.Contains(view, "100%") {
		t.Fatalf("view:\n%s", view)
	}
}

func TestDoneAndCancel(t *testing.T) {
	m := NewModel("Rendering", "in.wav", nil)

	next, cmd := m.Update(DoneMsg{OutputPath: "out/wet.wav"})
	done := next.(Model)

	if !done.Done || done.Progress != 1 || cmd == nil {
		t.Fatalf("model=%+v", done)
	}

	if view := done.View(); !strings.Contains(view, "wet.wav") {
		t.Fatalf("view:\n%s", view)
	}

	next, _ = m.Update(DoneMsg{Err: errors.New("disk full")})
	if view := next.(Model).View(); !strings.Contains(view, "disk full") {
		t.Fatalf("view:\n%s", view)
	}

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !next.(Model).Cancelled || cmd == nil {
		t.Fatal("q did not cancel")
	}
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		progress float64
		want     string
	}{
		{0, "░░░░ 0%"},
		{0.5, "██░░ 50%"},
		{1, "████ 100%"},
		{2, "████ 100%"},
		{-1, "░░░░ 0%"},
	}

	for _, tt := range tests {
		if got := renderProgressBar(tt.progress, 4); got != tt.want {
			t.Fatalf("bar(%v)=%q, want %q", tt.progress, got, tt.want)
		}
	}
}

func TestFormatDB(t *testing.T) {
	if got := formatDB(0); got != "-inf dB" {
		t.Fatalf("got %q", got)
	}

	if got := formatDB(1); got != "0.0 dB" {
		t.Fatalf("got %q", got)
	}

	if got := formatDB(0.5); got != "-6.0 dB" {
		t.Fatalf("got %q", got)
	}
}
