package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var root = &cobra.Command{
		Use:   "docrank",
		Short: "Document outline extraction and persona-driven relevance ranking",
	}

	root.AddCommand(outlineCMD(), analyzeCMD(), serveCMD())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}
