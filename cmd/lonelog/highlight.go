package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChristopherHardiman/lonelog/internal/config"
	"github.com/ChristopherHardiman/lonelog/internal/highlight"
)

func highlightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "highlight [file]",
		Short: "Print a journal file with notation highlighting",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args)
			if err != nil {
				return err
			}
			return runHighlight(text)
		},
	}
	return cmd
}

func runHighlight(text string) error {
	palette := config.DefaultPalette
	if cfg, err := config.LoadProjectConfig(config.DefaultFile); err == nil {
		palette = cfg.Highlight
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	renderer := highlight.NewRenderer(palette)
	fmt.Fprintln(os.Stdout, renderer.Document(text))
	return nil
}
