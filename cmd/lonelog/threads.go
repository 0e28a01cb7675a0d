package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChristopherHardiman/lonelog/internal/config"
)

func threadsCmd() *cobra.Command {
	var journal string
	var state string
	cmd := &cobra.Command{
		Use:   "threads",
		Short: "List narrative threads and their states",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runThreads(journal, state)
		},
	}
	cmd.Flags().StringVar(&journal, "journal", "", "Journal to filter")
	cmd.Flags().StringVar(&state, "state", "", "Thread state to filter (e.g. Open, Resolved)")
	return cmd
}

func runThreads(journal, state string) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig(config.DefaultFile)
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	threads, err := db.ListThreads(ctx, journal, state)
	if err != nil {
		return err
	}
	if len(threads) == 0 {
		fmt.Fprintln(os.Stdout, "No threads found.")
		return nil
	}

	for _, thread := range threads {
		fmt.Fprintf(os.Stdout, "%s [%s] (%s, %d mentions)\n", thread.Name, thread.State, thread.Journal, len(thread.Mentions))
	}
	return nil
}
