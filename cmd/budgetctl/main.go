package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-budget-console/api"
	"github.com/jrsteele09/go-budget-console/internal/cli"
	"github.com/jrsteele09/go-budget-console/internal/config"
)

func main() {
	// Create a context that listens for interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.New()
	if len(os.Args) == 1 {
		figure.NewFigure(cfg.GetAppName(), "cybermedium", true).Print()
		fmt.Println()
	}

	if err := cli.ExecuteContext(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		if ctx.Err() == context.Canceled {
			fmt.Fprintln(os.Stderr, "\nOperation cancelled by user")
			os.Exit(130)
		}
		// Pipeline failures were already shown to the user
		if !api.Notified(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
