package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChristopherHardiman/lonelog/internal/config"
)

func searchCmd() *cobra.Command {
	var journal string
	var kind string
	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Search indexed entities by name and tags",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(args[0], journal, kind)
		},
	}
	cmd.Flags().StringVar(&journal, "journal", "", "Journal to filter")
	cmd.Flags().StringVar(&kind, "kind", "", "Entity kind to filter (npc, location, pc)")
	return cmd
}

func runSearch(query, journal, kind string) error {
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

	results, err := db.Search(ctx, query, journal, kind)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(os.Stdout, "No matches found.")
		return nil
	}

	for _, result := range results {
		fmt.Fprintf(os.Stdout, "%s (%s) [%s] score=%.2f\n", result.Name, result.Kind, result.Journal, result.Score)
	}
	return nil
}
