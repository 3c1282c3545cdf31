package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mharker/docrank/internal/heading"
	"github.com/mharker/docrank/internal/parser"
	"github.com/spf13/cobra"
)

func outlineCMD() *cobra.Command {
	return &cobra.Command{
		Use:   "outline <input_dir> <output_dir>",
		Short: "Extract title and heading outline from every supported document in a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOutline(args[0], args[1])
		},
	}
}

func runOutline(inputDir, outputDir string) error {
	log := newLogger()

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return fmt.Errorf("read input dir: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	detector := heading.NewDetector()
	processed := 0

	for _, entry := range entries {
		if entry.IsDir() || !parser.IsSupportedExtension(entry.Name()) {
			continue
		}

		start := time.Now()
		path := filepath.Join(inputDir, entry.Name())

		doc, err := parser.ParseFile(path)
		if err != nil {
			log.Error("parse failed", "file", entry.Name(), "error", err)
			continue
		}

		outline := detector.Detect(doc)
		if !heading.Validate(outline.Headings) {
			log.Warn("outline failed sanity check", "file", entry.Name(), "headings", len(outline.Headings))
		}

		outName := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())) + ".json"
		if err := writeJSON(filepath.Join(outputDir, outName), outline); err != nil {
			log.Error("write failed", "file", outName, "error", err)
			continue
		}

		processed++
		log.Info("outline extracted",
			"file", entry.Name(),
			"pages", doc.TotalPages,
			"headings", len(outline.Headings),
			"duration_ms", time.Since(start).Milliseconds())
	}

	log.Info("batch complete", "processed", processed)
	if processed == 0 {
		return fmt.Errorf("no supported documents in %s", inputDir)
	}
	return nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
