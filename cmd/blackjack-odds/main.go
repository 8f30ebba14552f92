package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Table    TableCmd         `cmd:"" help:"Write the full odds table as CSV"`
	Query    QueryCmd         `cmd:"" help:"Show the odds for one player total against one upcard"`
	Chart    ChartCmd         `cmd:"" help:"Browse the strategy chart interactively"`
	Serve    ServeCmd         `cmd:"" help:"Run the WebSocket odds server"`
	Simulate SimulateCmd      `cmd:"" help:"Verify engine probabilities with Monte Carlo playouts"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack-odds"),
		kong.Description("Exact stand/hit/optimal win probabilities for simplified blackjack"),
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
