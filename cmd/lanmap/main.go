package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/lanmap/internal/runner"
)

func main() {
	options := runner.ParseOptions()
	lanmapRunner, err := runner.NewRunner(options)
	if err != nil {
		gologger.Fatal().Msgf("Could not create runner: %s\n", err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup close handler, stdout carries snapshots only
	go func() {
		<-c
		gologger.Info().Msgf("Ctrl+C pressed in Terminal, Exiting...")
		cancel()
	}()

	if err := lanmapRunner.Run(ctx); err != nil {
		if runner.IsSelectionFailure(err) {
			gologger.Fatal().Msgf("%s\n", runner.SelectionFailedMessage)
		}
		gologger.Fatal().Msgf("Could not run lanmap: %s\n", err)
	}
}
