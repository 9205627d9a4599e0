// Command oskit boots the kernel over the simulated hardware layer and
// attaches the interactive shell to stdin/stdout.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/embeddedos/oskit/config"
	"github.com/embeddedos/oskit/fsstore"
	"github.com/embeddedos/oskit/hal"
	"github.com/embeddedos/oskit/hal/sim"
	"github.com/embeddedos/oskit/kernel"
	"github.com/embeddedos/oskit/shell"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		heapSize   int
		fsBaseURL  string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:           "oskit",
		Short:         "Embedded operating-system shim with a simulated hardware layer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if heapSize > 0 {
				cfg.HeapSize = heapSize
			}
			if fsBaseURL != "" {
				cfg.FSBaseURL = fsBaseURL
			}
			return run(cmd.Context(), cfg, verbose)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config overlay")
	cmd.Flags().IntVar(&heapSize, "heap-size", 0, "override heap size in bytes")
	cmd.Flags().StringVar(&fsBaseURL, "fs-url", "", "override file store base URL")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	return cmd
}

func run(ctx context.Context, cfg *config.Config, verbose bool) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	heap := sim.NewHeap(cfg.HeapSize)
	sched := sim.NewScheduler(cfg.MaxTasks)
	clock := sim.NewClock()
	board := sim.NewBoard(func() {
		logger.Info("board restart requested, exiting simulation")
	})

	k, err := kernel.New(cfg, kernel.Deps{
		Logger:    logger,
		Heap:      heap,
		Scheduler: sched,
		Clock:     clock,
		Board:     board,
	})
	if err != nil {
		return err
	}

	store, err := fsstore.New(ctx, logger, fsstore.Options{
		BaseURL:       cfg.FSBaseURL,
		TotalBytes:    cfg.FSTotalBytes,
		MaxPathLength: cfg.FSMaxPathLength,
	})
	if err != nil {
		return err
	}

	if err := spawnSystemTasks(k, cfg, board); err != nil {
		return err
	}

	sh := shell.New(k, store, board, cfg)
	err = sh.Run(ctx, os.Stdin, os.Stdout)

	board.DisableWatchdog()
	k.Shutdown()
	sched.Shutdown()
	return err
}

// spawnSystemTasks starts the background tasks a real firmware image
// would run: the status LED blinker and the periodic stats refresher.
func spawnSystemTasks(k *kernel.Kernel, cfg *config.Config, board hal.Board) error {
	blinker := func(ctx context.Context, _ any) {
		for sim.Yield(ctx) {
			board.ToggleLED()
			select {
			case <-ctx.Done():
				return
			case <-time.After(500 * time.Millisecond):
			}
		}
	}
	if err := k.CreateTask("led_blinker", blinker, cfg.DefaultStackSize, nil, 1); err != nil {
		return err
	}

	if cfg.WatchdogTimeoutSec > 0 {
		board.EnableWatchdog(time.Duration(cfg.WatchdogTimeoutSec) * time.Second)
	}

	refresher := func(ctx context.Context, _ any) {
		for sim.Yield(ctx) {
			if err := k.UpdateSystemStats(); err != nil {
				return
			}
			board.FeedWatchdog()
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
		}
	}
	return k.CreateTask("stats_refresher", refresher, cfg.DefaultStackSize, nil, 2)
}
