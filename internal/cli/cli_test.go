package cli

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestTableAlignsColumns(t *testing.T) {
	tb := &Table{
		Headers: []string{"Metric", "Value"},
		Rows: []Row{
			{Label: "RT60", Cells: []string{"1.23 s"}},
			{Label: "Center time", Cells: []string{"84 ms"}},
			{Label: "C80"},
		},
	}

	out := tb.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	if len(lines) != 4 {
		t.Fatalf("lines=%d:\n%s", len(lines), out)
	}

	for _, want := range []string{"Metric", "RT60", "1.23 s", "Center time", "84 ms", "C80"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}

	if (&Table{}).String() != "" {
		t.Fatal("empty table renders")
	}
}

func TestPad(t *testing.T) {
	if got := pad("ab", 4, false); got != "ab  " {
		t.Fatalf("left pad=%q", got)
	}

	if got := pad("ab", 4, true); got != "  ab" {
		t.Fatalf("right pad=%q", got)
	}

	if got := pad("abcdef", 4, true); got != "abcdef" {
		t.Fatalf("overflow=%q", got)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := NewLogger(&buf, "info")
	if err != nil {
		t.Fatal(err)
	}

	if logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("debug enabled at info level")
	}

	logger.Info("engine ready", "sample_rate", 48000)

	if !strings.Contains(buf.String(), "engine ready") || !strings.Contains(buf.String(), "48000") {
		t.Fatalf("output=%q", buf.String())
	}

	if _, err := NewLogger(&buf, "loud"); err == nil {
		t.Fatal("invalid level accepted")
	}
}

func TestPrintHelpers(t *testing.T) {
	var buf bytes.Buffer

	PrintTitle(&buf, "Impulse response")
	PrintKeyValue(&buf, "RT60", "1.2 s")
	PrintError(&buf, "no such file")

	for _, want := range []string{"Impulse response", "RT60:", "1.2 s", "Error:", "no such file"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("missing %q in %q", want, buf.String())
		}
	}
}

type helpCLI struct {
	Level string `help:"Log level." default:"warn" placeholder:"LEVEL"`

	Render struct {
		In   string  `arg:"" help:"Input file."`
		Tail float64 `help:"Tail seconds." default:"2"`
	} `cmd:"" help:"Render a file."`

	Preset struct {
		Save struct {
			File string `arg:""`
		} `cmd:"" help:"Write a preset."`
	} `cmd:"" help:"Preset commands."`
}

func TestStyledHelpPrinter(t *testing.T) {
	var buf bytes.Buffer

	var c helpCLI

	parser, err := kong.New(&c, kong.Name("reverb"), kong.Writers(&buf, &buf))
	if err != nil {
		t.Fatal(err)
	}

	ctx, err := parser.Parse([]string{"render", "in.wav"})
	if err != nil {
		t.Fatal(err)
	}

	if err := StyledHelpPrinter("Reverb")(kong.HelpOptions{}, ctx); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"Reverb", "Render a file.", "reverb render", "<in>", "--tail", "(default: 2)", "--level=LEVEL", "-h, --help"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestHelpListsNestedCommands(t *testing.T) {
	var buf bytes.Buffer

	var c helpCLI

	parser, err := kong.New(&c, kong.Name("reverb"), kong.Writers(&buf, &buf))
	if err != nil {
		t.Fatal(err)
	}

	ctx, err := kong.Trace(parser, nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := StyledHelpPrinter("Reverb")(kong.HelpOptions{}, ctx); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"Commands:", "render", "preset save", "Write a preset.", "<command>"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}
