package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ChristopherHardiman/lonelog/internal/config"
)

func initCmd() *cobra.Command {
	var projectName string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new lonelog project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(projectName) == "" {
				return fmt.Errorf("--name is required")
			}
			return runInit(projectName)
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "Project name")
	return cmd
}

func runInit(projectName string) error {
	if _, err := os.Stat(config.DefaultFile); err == nil {
		return fmt.Errorf("%s already exists", config.DefaultFile)
	}

	contents := fmt.Sprintf("project: %s\nversion: 1\n\ndatabase:\n  driver: sqlite\n  dsn: sqlite://lonelog.db\n\njournals:\n  - name: campaign\n    paths:\n      - ./journal/\n\nexclude:\n  - ./journal/drafts/\n", projectName)
	if err := os.WriteFile(config.DefaultFile, []byte(contents), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", config.DefaultFile, err)
	}
	return nil
}
