package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChristopherHardiman/lonelog/internal/config"
)

func progressCmd() *cobra.Command {
	var journal string
	var kind string
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "List progress clocks, tracks, and timers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgress(journal, kind)
		},
	}
	cmd.Flags().StringVar(&journal, "journal", "", "Journal to filter")
	cmd.Flags().StringVar(&kind, "kind", "", "Progress kind to filter (clock, track, timer)")
	return cmd
}

func runProgress(journal, kind string) error {
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

	elements, err := db.ListProgress(ctx, journal, kind)
	if err != nil {
		return err
	}
	if len(elements) == 0 {
		fmt.Fprintln(os.Stdout, "No progress elements found.")
		return nil
	}

	for _, element := range elements {
		fmt.Fprintf(os.Stdout, "%s %s %d/%d (%s:%d)\n",
			element.Kind, element.Name, element.Current, element.Max, element.SourceFile, element.Line)
	}
	return nil
}
