package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Play    PlayCmd          `cmd:"" default:"withargs" help:"Play an interactive match in the terminal"`
	Deal    DealCmd          `cmd:"" help:"Deal one scripted round and print every phase"`
	Eval    EvalCmd          `cmd:"" help:"Rank the best five-card hand from five or more cards"`
	Odds    OddsCmd          `cmd:"" help:"Estimate strength-weighted equity for explicit hands"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem"),
		kong.Description("Texas Hold'em dealer, hand evaluator and equity estimator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
