package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ChristopherHardiman/lonelog/internal/parser"
)

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a journal file and print the extracted entities",
		Long:  "Parse a journal file and print the extracted entities. Reads stdin when no file is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args)
			if err != nil {
				return err
			}
			return runParse(text)
		},
	}
	return cmd
}

func readInput(args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}

func runParse(text string) error {
	doc := parser.New().Parse(text)

	printEntitySection("NPCs", doc.NPCs)
	printEntitySection("Locations", doc.Locations)
	printEntitySection("PCs", doc.PCs)

	if len(doc.Threads) > 0 {
		fmt.Fprintln(os.Stdout, "Threads:")
		for _, name := range sortedKeys(doc.Threads) {
			thread := doc.Threads[name]
			fmt.Fprintf(os.Stdout, "  %s [%s] (%d mentions)\n", thread.Name, thread.State, len(thread.Mentions))
		}
	}

	if len(doc.Progress) > 0 {
		fmt.Fprintln(os.Stdout, "Progress:")
		for _, element := range doc.Progress {
			fmt.Fprintf(os.Stdout, "  %s %s %d/%d (line %d)\n", element.Kind, element.Name, element.Current, element.Max, element.Line)
		}
	}

	return nil
}

func printEntitySection(label string, entities map[string]*parser.NamedEntity) {
	if len(entities) == 0 {
		return
	}
	fmt.Fprintf(os.Stdout, "%s:\n", label)
	names := make([]string, 0, len(entities))
	for name := range entities {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		entity := entities[name]
		line := fmt.Sprintf("  %s (%d mentions)", entity.Name, len(entity.Mentions))
		if len(entity.Tags) > 0 {
			line += " [" + strings.Join(entity.Tags, ", ") + "]"
		}
		fmt.Fprintln(os.Stdout, line)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
