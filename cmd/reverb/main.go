// Command reverb renders, plays and measures audio through the Schroeder
// stereo reverb.
package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/cwbudde/algo-reverb/internal/cli"
)

var version = "dev"

// CLI is the root command.
type CLI struct {
	LogLevel string           `name:"log-level" enum:"debug,info,warn,error" default:"warn" help:"Log level (debug, info, warn, error)."`
	Version  kong.VersionFlag `help:"Print the version and exit."`

	Render  RenderCmd  `cmd:"" help:"Process a WAV file and write the result."`
	Impulse ImpulseCmd `cmd:"" help:"Render the impulse response and report its decay."`
	Params  ParamsCmd  `cmd:"" help:"List the reverb parameters."`
	Play    PlayCmd    `cmd:"" help:"Play a WAV file through the reverb."`
	Preset  PresetCmd  `cmd:"" help:"Manage preset files."`
}

func newParser(c *CLI, opts ...kong.Option) (*kong.Kong, error) {
	base := []kong.Option{
		kong.Name("reverb"),
		kong.Description("Schroeder stereo reverb for WAV files."),
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter("Reverb")),
		kong.Vars{"version": version},
		paramVars(),
	}

	return kong.New(c, append(base, opts...)...)
}

func main() {
	var c CLI

	parser, err := newParser(&c)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	logger, err := cli.NewLogger(os.Stderr, c.LogLevel)
	parser.FatalIfErrorf(err)

	if err := ctx.Run(&Globals{Logger: logger, Out: os.Stdout}); err != nil {
		cli.PrintError(os.Stderr, err.Error())
		os.Exit(1)
	}
}
