package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ChristopherHardiman/lonelog/internal/parser"
	"github.com/ChristopherHardiman/lonelog/internal/suggest"
)

func suggestCmd() *cobra.Command {
	var file string
	var cursor int
	cmd := &cobra.Command{
		Use:   "suggest <line>",
		Short: "Show tag completions for a partially typed line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuggest(args[0], cursor, file)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Journal file the completion draws names from")
	cmd.Flags().IntVar(&cursor, "cursor", -1, "Cursor byte offset within the line (default: end of line)")
	return cmd
}

func runSuggest(line string, cursor int, file string) error {
	if cursor < 0 {
		cursor = len(line)
	}

	trig, ok := suggest.Trigger(line, cursor)
	if !ok {
		fmt.Fprintln(os.Stdout, "No completion context at cursor.")
		return nil
	}

	var text string
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading %s: %w", file, err)
		}
		text = string(data)
	}
	doc := parser.New().Parse(text)

	candidates := suggest.Candidates(doc, trig.Kind, trig.Query)
	if len(candidates) == 0 {
		fmt.Fprintf(os.Stdout, "No %s names match %q.\n", trig.Kind, trig.Query)
		return nil
	}

	for _, candidate := range candidates {
		insert, _ := suggest.Compose(candidate, trig.Reference)
		out := fmt.Sprintf("%s\tinsert %q", candidate.Name, insert)
		if len(candidate.Tags) > 0 {
			out += " [" + strings.Join(candidate.Tags, ", ") + "]"
		}
		fmt.Fprintln(os.Stdout, out)
	}
	return nil
}
