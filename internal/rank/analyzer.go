package rank

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/mharker/docrank/internal/heading"
	"github.com/mharker/docrank/internal/parser"
)

// Spec is the analysis request: a document collection, a persona and the
// job that persona is trying to get done.
type Spec struct {
	Documents   []string `json:"documents"`
	Persona     string   `json:"persona"`
	JobToBeDone string   `json:"job_to_be_done"`
}

// Validate reports the first missing required field.
func (s Spec) Validate() error {
	if len(s.Documents) == 0 {
		return fmt.Errorf("spec: documents list is empty")
	}
	if s.Persona == "" {
		return fmt.Errorf("spec: persona is required")
	}
	if s.JobToBeDone == "" {
		return fmt.Errorf("spec: job_to_be_done is required")
	}
	return nil
}

// Metadata describes an analysis run.
type Metadata struct {
	Documents             []string `json:"documents"`
	Persona               string   `json:"persona"`
	JobToBeDone           string   `json:"job_to_be_done"`
	Timestamp             string   `json:"timestamp"`
	ProcessingTimeSeconds float64  `json:"processing_time_seconds"`
	TotalSectionsAnalyzed int      `json:"total_sections_analyzed"`
	TotalSubsectionsFound int      `json:"total_subsections_extracted"`
	Status                string   `json:"status,omitempty"`
}

// SectionResult is one ranked section as emitted in the final output.
type SectionResult struct {
	Document       string  `json:"document"`
	SectionTitle   string  `json:"section_title"`
	ImportanceRank int     `json:"importance_rank"`
	Page           int     `json:"page"`
	RelevanceScore float64 `json:"relevance_score"`
}

// SubsectionResult is one refined chunk as emitted in the final output.
type SubsectionResult struct {
	Document       string  `json:"document"`
	RefinedText    string  `json:"refined_text"`
	Page           int     `json:"page"`
	RelevanceScore float64 `json:"relevance_score"`
}

// Result is the complete output of an analysis run.
type Result struct {
	Metadata           Metadata           `json:"metadata"`
	ExtractedSections  []SectionResult    `json:"extracted_sections"`
	SubsectionAnalysis []SubsectionResult `json:"subsection_analysis"`
}

// statusFailed marks a fallback result produced after an internal failure.
const statusFailed = "processing_failed"

// Analyzer runs the full persona-driven ranking pipeline over a collection.
type Analyzer struct {
	cfg      Config
	detector *heading.Detector
	profiler *Profiler
	logger   *slog.Logger
}

func NewAnalyzer(cfg Config, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		cfg:      cfg,
		detector: heading.NewDetector(),
		profiler: NewProfiler(DefaultTaxonomy()),
		logger:   logger,
	}
}

// AnalyzeCollection parses every readable document in the spec, builds the
// semantic model and persona profile, and returns ranked sections plus
// refined subsections. Missing files are skipped with a warning; an internal
// panic yields a fallback result marked processing_failed rather than an
// error.
func (a *Analyzer) AnalyzeCollection(ctx context.Context, baseDir string, spec Spec) (result Result, err error) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("analysis failed, emitting fallback result", "panic", fmt.Sprint(r))
			result = a.fallbackResult(spec, start)
			err = nil
		}
	}()

	if err := spec.Validate(); err != nil {
		return Result{}, err
	}

	docs, err := a.loadDocuments(ctx, baseDir, spec.Documents)
	if err != nil {
		return Result{}, err
	}

	corpus := corpusTexts(docs)
	model := BuildSemanticModel(corpus, a.cfg)
	if model == nil {
		a.logger.Warn("semantic model unavailable, ranking on keywords only")
	}

	profile := a.profiler.Profile(spec.Persona, spec.JobToBeDone)
	a.logger.Info("profile built",
		"persona_type", profile.PersonaType,
		"job_type", profile.JobType,
		"job_keywords", len(profile.JobKeywords))

	sections := RankSections(docs, profile, model, a.cfg)
	chunks := AnalyzeSubsections(sections, profile, a.cfg)

	return a.buildResult(spec, start, sections, chunks), nil
}

func (a *Analyzer) loadDocuments(ctx context.Context, baseDir string, names []string) ([]DocumentContent, error) {
	docs := make([]DocumentContent, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(baseDir, name)
		if _, statErr := os.Stat(path); statErr != nil {
			a.logger.Warn("skipping missing document", "document", name, "error", statErr)
			continue
		}

		doc, parseErr := parser.ParseFile(path)
		if parseErr != nil {
			a.logger.Warn("skipping unparseable document", "document", name, "error", parseErr)
			continue
		}

		outline := a.detector.Detect(doc)
		sections := BuildSections(doc, outline.Headings)
		docs = append(docs, DocumentContent{
			Name:     name,
			Title:    outline.Title,
			Headings: outline.Headings,
			Sections: sections,
		})
		a.logger.Info("document loaded",
			"document", name,
			"pages", doc.TotalPages,
			"headings", len(outline.Headings),
			"sections", len(sections))
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("analyze: no valid documents in collection")
	}
	return docs, nil
}

// corpusTexts gathers every non-empty section body. The vectorizer fits on
// section contents only; the persona/job query is transformed against the
// fitted model afterwards so it cannot shift document frequencies.
func corpusTexts(docs []DocumentContent) []string {
	var corpus []string
	for _, doc := range docs {
		for _, section := range doc.Sections {
			if section.Content != "" {
				corpus = append(corpus, section.Content)
			}
		}
	}
	return corpus
}

func (a *Analyzer) buildResult(spec Spec, start time.Time, sections []ScoredSection, chunks []ScoredChunk) Result {
	out := Result{
		Metadata: Metadata{
			Documents:             spec.Documents,
			Persona:               spec.Persona,
			JobToBeDone:           spec.JobToBeDone,
			Timestamp:             time.Now().UTC().Format(time.RFC3339),
			ProcessingTimeSeconds: roundSeconds(time.Since(start)),
			TotalSectionsAnalyzed: len(sections),
			TotalSubsectionsFound: len(chunks),
		},
		ExtractedSections:  make([]SectionResult, 0, len(sections)),
		SubsectionAnalysis: make([]SubsectionResult, 0, len(chunks)),
	}
	for _, s := range sections {
		out.ExtractedSections = append(out.ExtractedSections, SectionResult{
			Document:       s.Document,
			SectionTitle:   s.SectionTitle,
			ImportanceRank: s.ImportanceRank,
			Page:           s.Page,
			RelevanceScore: round3(s.RelevanceScore),
		})
	}
	for _, c := range chunks {
		out.SubsectionAnalysis = append(out.SubsectionAnalysis, SubsectionResult{
			Document:       c.Document,
			RefinedText:    c.RefinedText,
			Page:           c.Page,
			RelevanceScore: round3(c.RelevanceScore),
		})
	}
	return out
}

// fallbackResult is a structurally valid empty result emitted when the
// pipeline panics partway through.
func (a *Analyzer) fallbackResult(spec Spec, start time.Time) Result {
	return Result{
		Metadata: Metadata{
			Documents:             spec.Documents,
			Persona:               spec.Persona,
			JobToBeDone:           spec.JobToBeDone,
			Timestamp:             time.Now().UTC().Format(time.RFC3339),
			ProcessingTimeSeconds: roundSeconds(time.Since(start)),
			Status:                statusFailed,
		},
		ExtractedSections:  []SectionResult{},
		SubsectionAnalysis: []SubsectionResult{},
	}
}

func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
