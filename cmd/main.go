package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/luckfunc/gardenstock/internal/app"
	"github.com/luckfunc/gardenstock/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	withTUI := flag.Bool("tui", false, "show the terminal dashboard")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *withTUI {
		cfg.TUI.Enabled = true
	}
	if !cfg.TUI.Enabled {
		cfg.Print()
	}

	// Stop on SIGINT / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running service: %v\n", err)
		stop()
		os.Exit(1)
	}
}
