package pipeline

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/mharker/docrank/internal/heading"
	"github.com/mharker/docrank/internal/parser"
)

// Worker processes a single outline extraction job.
type Worker struct {
	detector *heading.Detector
	stats    *ProcessingStats
	log      *slog.Logger
}

func NewWorker(detector *heading.Detector, stats *ProcessingStats, log *slog.Logger) *Worker {
	return &Worker{
		detector: detector,
		stats:    stats,
		log:      log,
	}
}

// Process runs parse and detection for a job.
func (w *Worker) Process(job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)
	start := time.Now()

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	doc, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	// Phase 2: Detect headings
	job.SetStatus(StatusDetecting, "detecting")
	outline := w.detector.Detect(doc)
	if !heading.Validate(outline.Headings) {
		log.Warn("outline failed sanity check", "headings", len(outline.Headings))
		job.AddWarnings([]string{"outline structure looks unreliable"})
	}

	job.SetOutline(&outline)
	job.SetStatus(StatusCompleted, "done")

	elapsed := time.Since(start)
	w.stats.Record(elapsed.Milliseconds())
	log.Info("outline extracted",
		"pages", doc.TotalPages,
		"headings", len(outline.Headings),
		"duration_ms", elapsed.Milliseconds())
}
