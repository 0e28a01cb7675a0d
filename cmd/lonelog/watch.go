package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ChristopherHardiman/lonelog/internal/config"
	"github.com/ChristopherHardiman/lonelog/internal/ingest"
	"github.com/ChristopherHardiman/lonelog/internal/watch"
)

func watchCmd() *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch journal directories and re-ingest on change",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(debounce)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "Quiet period before a change triggers re-ingestion")
	return cmd
}

func runWatch(debounce time.Duration) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadProjectConfig(config.DefaultFile)
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	reingest := func() {
		result, err := ingest.Run(ctx, cfg, db, ingest.Options{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "ingest failed: %v\n", err)
			return
		}
		fmt.Fprintf(os.Stdout, "Re-ingested: %d indexed, %d skipped, %d removed\n",
			result.FilesIndexed, result.FilesSkipped, result.FilesRemoved)
		for _, item := range result.Errors {
			fmt.Fprintf(os.Stderr, "  - %v\n", item)
		}
	}

	// Bring the index up to date before waiting for changes.
	reingest()

	var roots []string
	for _, journal := range cfg.Journals {
		roots = append(roots, journal.Paths...)
	}

	watcher, err := watch.New(roots, debounce, reingest)
	if err != nil {
		return err
	}
	defer watcher.Close()

	fmt.Fprintln(os.Stdout, "Watching for changes. Press Ctrl-C to stop.")
	if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
