package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mharker/docrank/internal/rank"
	"github.com/spf13/cobra"
)

func analyzeCMD() *cobra.Command {
	var docsDir string
	cmd := &cobra.Command{
		Use:   "analyze <spec.json> <output_dir>",
		Short: "Rank document sections against a persona and job-to-be-done",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), args[0], args[1], docsDir)
		},
	}
	cmd.Flags().StringVar(&docsDir, "docs", "", "directory holding the documents (default: the spec file's directory)")
	return cmd
}

func runAnalyze(ctx context.Context, specPath, outputDir, docsDir string) error {
	log := newLogger()

	data, err := os.ReadFile(specPath)
	if err != nil {
		return fmt.Errorf("read spec: %w", err)
	}

	var spec rank.Spec
	if err := json.Unmarshal(data, &spec); err != nil {
		return fmt.Errorf("decode spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return err
	}

	if docsDir == "" {
		docsDir = filepath.Dir(specPath)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	analyzer := rank.NewAnalyzer(rank.DefaultConfig(), log)
	result, err := analyzer.AnalyzeCollection(ctx, docsDir, spec)
	if err != nil {
		return err
	}

	outPath := filepath.Join(outputDir, "analysis.json")
	if err := writeJSON(outPath, result); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	log.Info("analysis complete",
		"documents", len(spec.Documents),
		"sections", result.Metadata.TotalSectionsAnalyzed,
		"subsections", result.Metadata.TotalSubsectionsFound,
		"output", outPath)
	return nil
}
