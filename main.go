package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-engine/patterns"
	"github.com/sheikhrachel/gol-engine/utils"
)

func main() {
	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run parses flags, loads the configuration and advances the seeded grid
// until a stop condition is reached.
func run(ctx context.Context, args []string, stderr io.Writer) error {
	flags := flag.NewFlagSet("gol-engine", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "config.json", "path to a JSON configuration file")
	if err := flags.Parse(args); err != nil {
		return errors.Wrap(err, "[run] failed to parse flags")
	}

	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(*configPath)
	usingDefaults := false
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		config, usingDefaults = utils.DefaultConfig(), true
	}
	if err = config.Validate(patterns.Known); err != nil {
		return errors.Wrapf(err, "[run] config %s", *configPath)
	}

	level, _ := utils.ParseLevel(config.LogLevel)
	logger := utils.NewLogger(stderr, level)
	if usingDefaults {
		logger.Info("using default configuration", "path", *configPath)
	}
	ctx = utils.WithLogger(ctx, logger)

	grid, pool, stats, err := initializeGame(config)
	if err != nil {
		return err
	}
	logger.Info("simulation starting",
		"pattern", config.Pattern,
		"size", config.Size,
		"living", grid.CountLivingCells(),
		"memory_pool", config.UseMemoryPool,
		"bounded", config.UseBoundedGrid,
		"parallel", config.UseParallel,
	)

	result := simulate(ctx, config, grid, pool, stats)
	logSummary(ctx, result, stats)
	return nil
}
