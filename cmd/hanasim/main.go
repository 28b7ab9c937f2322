package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Simulate SimulateCmd      `cmd:"" help:"Run a batch of bot-played games and report statistics"`
	Replay   ReplayCmd        `cmd:"" help:"Record game transcripts and reconstruct state from them"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("hanasim"),
		kong.Description("Hanabi simulation engine for bot strategy evaluation"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
