package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChristopherHardiman/lonelog/internal/config"
	"github.com/ChristopherHardiman/lonelog/internal/ingest"
)

var ingestFull bool

func ingestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Synchronise the index with journal markdown files",
		RunE:  runIngest,
	}
	cmd.Flags().BoolVar(&ingestFull, "full", false, "Force full re-ingestion (ignore incremental hashes)")
	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
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

	result, err := ingest.Run(ctx, cfg, db, ingest.Options{Full: ingestFull})
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "Ingestion complete.")
	fmt.Fprintf(os.Stdout, "  Files indexed: %d\n", result.FilesIndexed)
	fmt.Fprintf(os.Stdout, "  Files skipped: %d\n", result.FilesSkipped)
	fmt.Fprintf(os.Stdout, "  Files removed: %d\n", result.FilesRemoved)
	fmt.Fprintf(os.Stdout, "  Entities:      %d\n", result.Entities)
	fmt.Fprintf(os.Stdout, "  Threads:       %d\n", result.Threads)
	fmt.Fprintf(os.Stdout, "  Progress:      %d\n", result.Progress)

	if len(result.Errors) > 0 {
		fmt.Fprintf(os.Stdout, "\nErrors (%d):\n", len(result.Errors))
		for _, item := range result.Errors {
			fmt.Fprintf(os.Stdout, "  - %v\n", item)
		}
		return fmt.Errorf("ingestion completed with errors")
	}

	return nil
}
