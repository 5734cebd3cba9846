// Command watch is the StockGlass client session: a local watchlist with
// target-price alerts over a simulated feed, and the remote portfolio.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/google/subcommands"

	"github.com/vignesh678/stock-glass-visualizer/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range watchlistCommands {
		commander.Register(c, "watchlist")
	}
	for _, c := range accountCommands {
		commander.Register(c, "account")
	}
	commander.Register(&portfolioCmd{}, "portfolio")

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return int(commander.Execute(ctx))
}
