package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "lonelog",
		Short: "Entity index and tag completion for solo RPG journals",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.AddCommand(parseCmd())
	root.AddCommand(highlightCmd())
	root.AddCommand(suggestCmd())
	root.AddCommand(ingestCmd())
	root.AddCommand(watchCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(entitiesCmd())
	root.AddCommand(threadsCmd())
	root.AddCommand(progressCmd())
	root.AddCommand(searchCmd())
	root.AddCommand(initCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
