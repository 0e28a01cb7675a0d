package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ChristopherHardiman/lonelog/internal/config"
)

func entitiesCmd() *cobra.Command {
	var kind string
	var journal string
	var tag string
	cmd := &cobra.Command{
		Use:   "entities [name]",
		Short: "List indexed entities, or show one entity by name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runEntityDetail(args[0], kind)
			}
			return runEntityList(kind, journal, tag)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "Entity kind to filter (npc, location, pc)")
	cmd.Flags().StringVar(&journal, "journal", "", "Journal to filter")
	cmd.Flags().StringVar(&tag, "tag", "", "Tag to filter")
	return cmd
}

func runEntityList(kind, journal, tag string) error {
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

	entities, err := db.ListEntities(ctx, kind, journal, tag)
	if err != nil {
		return err
	}
	if len(entities) == 0 {
		fmt.Fprintln(os.Stdout, "No entities found.")
		return nil
	}

	for _, entity := range entities {
		line := fmt.Sprintf("%s (%s) [%s] %d mentions", entity.Name, entity.Kind, entity.Journal, len(entity.Mentions))
		if len(entity.Tags) > 0 {
			line += " " + strings.Join(entity.Tags, ", ")
		}
		fmt.Fprintln(os.Stdout, line)
	}
	return nil
}

func runEntityDetail(name, kind string) error {
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

	records, err := db.GetEntity(ctx, name, kind)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintf(os.Stdout, "No entity found for %q.\n", name)
		return nil
	}

	for i, record := range records {
		if i > 0 {
			fmt.Fprintln(os.Stdout)
		}
		fmt.Fprintf(os.Stdout, "Name: %s\n", record.Name)
		fmt.Fprintf(os.Stdout, "Kind: %s\n", record.Kind)
		fmt.Fprintf(os.Stdout, "Journal: %s\n", record.Journal)
		fmt.Fprintf(os.Stdout, "Source: %s\n", record.SourceFile)
		if len(record.Tags) > 0 {
			fmt.Fprintf(os.Stdout, "Tags: %s\n", strings.Join(record.Tags, ", "))
		}
		fmt.Fprintf(os.Stdout, "Mentions: %d (first line %d, last line %d)\n",
			len(record.Mentions), record.FirstMention, record.LastMention)
	}
	return nil
}
