package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/effects/reverb"
	"github.com/cwbudde/algo-reverb/host"
	"github.com/cwbudde/algo-reverb/internal/audio"
	"github.com/cwbudde/algo-reverb/internal/testutil"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()

	var c CLI

	parser, err := newParser(&c,
		kong.Writers(io.Discard, io.Discard),
		kong.Exit(func(code int) { t.Fatalf("unexpected exit %d", code) }),
	)
	if err != nil {
		t.Fatalf("newParser: %v", err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		t.Fatalf("Parse(%q): %v", args, err)
	}

	return &c, ctx
}

func quietGlobals(out io.Writer) *Globals {
	return &Globals{Logger: slog.New(slog.DiscardHandler), Out: out}
}

func TestFlagsOverrideDefaults(t *testing.T) {
	c, _ := parse(t, "preset", "save", "out.json", "--decay", "4", "--mix", "0.25", "--predelay", "900")

	params, err := c.Preset.Save.Parameters()
	if err != nil {
		t.Fatalf("Parameters: %v", err)
	}

	want := reverb.DefaultParameters()
	want.Set(reverb.ParamDecayTime, 4)
	want.Set(reverb.ParamDryWet, 0.25)
	want.Set(reverb.ParamPreDelay, 500)

	for _, p := range reverb.AllParams() {
		if got := params.Get(p); got != want.Get(p) {
			t.Fatalf("%s = %v, want %v", p.ID(), got, want.Get(p))
		}
	}
}

func TestFlagsOverridePreset(t *testing.T) {
	preset := reverb.DefaultParameters()
	preset.Set(reverb.ParamDecayTime, 7)
	preset.Set(reverb.ParamRoomSize, 1.5)

	path := filepath.Join(t.TempDir(), "hall.json")

	var buf bytes.Buffer
	if err := host.SaveState(&buf, preset); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c, _ := parse(t, "preset", "save", "out.json", "--preset", path, "--decay", "3")

	params, err := c.Preset.Save.Parameters()
	if err != nil {
		t.Fatalf("Parameters: %v", err)
	}

	if got := params.Get(reverb.ParamDecayTime); got != 3 {
		t.Fatalf("decay = %v, want 3 from the flag", got)
	}

	if got := params.Get(reverb.ParamRoomSize); got != 1.5 {
		t.Fatalf("size = %v, want 1.5 from the preset", got)
	}
}

func TestStrategyFlag(t *testing.T) {
	tests := []struct {
		args []string
		want reverb.CombStrategy
	}{
		{args: nil, want: reverb.CombBasic},
		{args: []string{"--strategy", "basic"}, want: reverb.CombBasic},
		{args: []string{"--strategy", "spread"}, want: reverb.CombStereoSpread},
	}

	for _, tt := range tests {
		c, _ := parse(t, append([]string{"preset", "save", "x.json"}, tt.args...)...)
		if got := c.Preset.Save.CombStrategy(); got != tt.want {
			t.Fatalf("%v: strategy = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestFlagParseErrors(t *testing.T) {
	tests := [][]string{
		{"preset", "save", "x.json", "--decay", "long"},
		{"preset", "save", "x.json", "--strategy", "fdn"},
		{"preset", "save", "x.json", "--preset", filepath.Join(t.TempDir(), "missing.json")},
		{"params", "--log-level", "loud"},
	}

	for _, args := range tests {
		var c CLI

		parser, err := newParser(&c, kong.Writers(io.Discard, io.Discard))
		if err != nil {
			t.Fatalf("newParser: %v", err)
		}

		if _, err := parser.Parse(args); err == nil {
			t.Fatalf("Parse(%q) succeeded", args)
		}
	}
}

func TestParamVarsCoverEveryFlag(t *testing.T) {
	vars := paramVars()

	for _, p := range reverb.AllParams() {
		if _, ok := vars["range_"+p.ID()]; !ok {
			t.Fatalf("missing range var for %s", p.ID())
		}
	}

	if got := vars["range_decay"]; got != "0.01 to 60 s, default 2" {
		t.Fatalf("range_decay = %q", got)
	}
}

func TestClipRendererMatchesEngine(t *testing.T) {
	left, right := testutil.StereoNoise(3, 0.5, 3000)

	newTestEngine := func() *host.Engine {
		e, err := host.NewEngine(core.ApplyProcessorOptions(core.WithSampleRate(44100), core.WithBlockSize(256)))
		if err != nil {
			t.Fatalf("NewEngine: %v", err)
		}

		return e
	}

	clip := &audio.Stereo{SampleRate: 44100, BitDepth: 16, Left: testutil.Clone(left), Right: testutil.Clone(right)}
	r := &clipRenderer{engine: newTestEngine(), clip: clip}

	var gotL, gotR []float64

	bufL := make([]float64, 700)
	bufR := make([]float64, 700)

	for {
		n := r.Render(bufL, bufR)
		if n == 0 {
			break
		}

		gotL = append(gotL, bufL[:n]...)
		gotR = append(gotR, bufR[:n]...)
	}

	wantL, wantR := testutil.Clone(left), testutil.Clone(right)
	newTestEngine().Process(wantL, wantR)

	testutil.RequireIdentical(t, gotL, wantL)
	testutil.RequireIdentical(t, gotR, wantR)
}

func TestRenderClipReportsProgress(t *testing.T) {
	e, err := host.NewEngine(core.ApplyProcessorOptions(core.WithSampleRate(48000)))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	left, right := testutil.StereoNoise(9, 0.25, 20000)
	clip := &audio.Stereo{SampleRate: 48000, BitDepth: 24, Left: left, Right: right}

	var reports []int

	err = renderClip(t.Context(), e, clip, func(done, total int, _ host.Levels) {
		if total != 20000 {
			t.Fatalf("total = %d, want 20000", total)
		}

		reports = append(reports, done)
	})
	if err != nil {
		t.Fatalf("renderClip: %v", err)
	}

	want := []int{8192, 16384, 20000}
	if len(reports) != len(want) {
		t.Fatalf("reports = %v, want %v", reports, want)
	}

	for i := range want {
		if reports[i] != want[i] {
			t.Fatalf("reports = %v, want %v", reports, want)
		}
	}

	testutil.RequireBounded(t, clip.Left, 1)
	testutil.RequireBounded(t, clip.Right, 1)
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")

	clip := audio.NewStereo(22050, 16, 2205)
	clip.Left[0], clip.Right[0] = 0.5, 0.5

	if err := audio.WriteFile(in, clip, 16); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, ctx := parse(t, "render", in, out, "--tail", "0.5", "--no-progress", "--decay", "1")

	var stdout bytes.Buffer
	if err := ctx.Run(quietGlobals(&stdout)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := audio.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if got.Frames() != 2205+11025 {
		t.Fatalf("frames = %d, want %d", got.Frames(), 2205+11025)
	}

	if got.SampleRate != 22050 || got.BitDepth != 16 {
		t.Fatalf("format = %d Hz %d bit", got.SampleRate, got.BitDepth)
	}

	if !strings.Contains(stdout.String(), out) {
		t.Fatalf("summary does not name the output:\n%s", stdout.String())
	}
}

func TestImpulseCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "ir.wav")

	_, ctx := parse(t, "impulse", "--rate", "22050", "--seconds", "1", "--decay", "0.5", "--out", out)

	var stdout bytes.Buffer
	if err := ctx.Run(quietGlobals(&stdout)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, want := range []string{"RT60", "EDT", "C80"} {
		if !strings.Contains(stdout.String(), want) {
			t.Fatalf("report is missing %s:\n%s", want, stdout.String())
		}
	}

	ir, err := audio.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if ir.Frames() != 22050 || ir.BitDepth != 24 {
		t.Fatalf("ir = %d frames %d bit", ir.Frames(), ir.BitDepth)
	}
}

func TestParamsCommand(t *testing.T) {
	_, ctx := parse(t, "params")

	var stdout bytes.Buffer
	if err := ctx.Run(quietGlobals(&stdout)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, want := range []string{"decay", "Decay Time", "tielevel", "HF Level"} {
		if !strings.Contains(stdout.String(), want) {
			t.Fatalf("table is missing %q", want)
		}
	}
}

func TestParamsCommandJSON(t *testing.T) {
	_, ctx := parse(t, "params", "--json")

	var stdout bytes.Buffer
	if err := ctx.Run(quietGlobals(&stdout)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}

	params, err := host.LoadState(&stdout)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}

	if params != reverb.DefaultParameters() {
		t.Fatalf("params = %+v, want defaults", params)
	}
}

func TestPresetSaveCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "room.json")

	_, ctx := parse(t, "preset", "save", path, "--size", "0.4", "--damping", "0.2")

	if err := ctx.Run(quietGlobals(io.Discard)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	params, err := host.LoadState(f)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}

	if params.Get(reverb.ParamRoomSize) != 0.4 || params.Get(reverb.ParamDamping) != 0.2 {
		t.Fatalf("params = %+v", params)
	}
}
