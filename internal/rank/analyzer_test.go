package rank

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mharker/docrank/internal/document"
)

func testAnalyzer() *Analyzer {
	return NewAnalyzer(DefaultConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestSpecValidate(t *testing.T) {
	valid := Spec{Documents: []string{"a.pdf"}, Persona: "analyst", JobToBeDone: "review"}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid spec, got %v", err)
	}

	cases := []Spec{
		{Persona: "analyst", JobToBeDone: "review"},
		{Documents: []string{"a.pdf"}, JobToBeDone: "review"},
		{Documents: []string{"a.pdf"}, Persona: "analyst"},
	}
	for i, spec := range cases {
		if err := spec.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestAnalyzeCollection_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "finance.txt",
		"Quarterly revenue grew 14% with strong growth in recurring revenue and market share. "+
			"The forecast projects continued revenue expansion and further growth across segments. "+
			"Historical revenue trends and performance data support the growth analysis presented here.")
	writeDoc(t, dir, "logistics.txt",
		"The warehouse relocation finished on schedule. Staff parking and shuttle routes were "+
			"announced, and the cafeteria reopened with an expanded menu for all shifts.")

	spec := Spec{
		Documents:   []string{"finance.txt", "logistics.txt"},
		Persona:     "Investment analyst at a hedge fund",
		JobToBeDone: "Analyze revenue trends and growth forecasts",
	}

	result, err := testAnalyzer().AnalyzeCollection(context.Background(), dir, spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Metadata.Persona != spec.Persona || result.Metadata.JobToBeDone != spec.JobToBeDone {
		t.Error("expected spec echoed in metadata")
	}
	if result.Metadata.Status != "" {
		t.Errorf("expected no failure status, got %q", result.Metadata.Status)
	}
	if _, err := time.Parse(time.RFC3339, result.Metadata.Timestamp); err != nil {
		t.Errorf("expected RFC3339 timestamp, got %q", result.Metadata.Timestamp)
	}

	if len(result.ExtractedSections) == 0 {
		t.Fatal("expected extracted sections")
	}
	if result.ExtractedSections[0].Document != "finance.txt" {
		t.Errorf("expected the finance document ranked first, got %q", result.ExtractedSections[0].Document)
	}
	for i, s := range result.ExtractedSections {
		if s.ImportanceRank != i+1 {
			t.Errorf("expected rank %d, got %d", i+1, s.ImportanceRank)
		}
	}
	if result.Metadata.TotalSectionsAnalyzed != len(result.ExtractedSections) {
		t.Error("expected section count in metadata to match")
	}
	if result.Metadata.TotalSubsectionsFound != len(result.SubsectionAnalysis) {
		t.Error("expected subsection count in metadata to match")
	}
}

func TestResultJSONKeys(t *testing.T) {
	a := testAnalyzer()
	spec := Spec{Documents: []string{"a.txt"}, Persona: "analyst", JobToBeDone: "analyze"}
	result := a.buildResult(spec, time.Now(),
		[]ScoredSection{{Document: "a.txt", Page: 2, SectionTitle: "Results", ImportanceRank: 1, RelevanceScore: 0.5}},
		[]ScoredChunk{{Document: "a.txt", Page: 2, RefinedText: "text", RelevanceScore: 0.4}})

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}

	var meta map[string]json.RawMessage
	if err := json.Unmarshal(decoded["metadata"], &meta); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"documents", "persona", "job_to_be_done", "timestamp"} {
		if _, ok := meta[key]; !ok {
			t.Errorf("metadata missing key %q", key)
		}
	}

	var sections []map[string]json.RawMessage
	if err := json.Unmarshal(decoded["extracted_sections"], &sections); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"document", "section_title", "importance_rank", "page"} {
		if _, ok := sections[0][key]; !ok {
			t.Errorf("extracted section missing key %q", key)
		}
	}

	var subs []map[string]json.RawMessage
	if err := json.Unmarshal(decoded["subsection_analysis"], &subs); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"document", "refined_text", "page"} {
		if _, ok := subs[0][key]; !ok {
			t.Errorf("subsection missing key %q", key)
		}
	}
}

func TestCorpusTexts_SectionContentsOnly(t *testing.T) {
	docs := []DocumentContent{
		{
			Name: "a.txt",
			Sections: []document.Section{
				{Content: "photosynthesis converts light into chemical energy"},
				{Content: ""},
				{Content: "cellular respiration releases stored energy"},
			},
		},
	}

	corpus := corpusTexts(docs)
	if len(corpus) != 2 {
		t.Fatalf("expected 2 corpus texts, got %d", len(corpus))
	}

	// A term confined to one section stays below the document-frequency
	// floor even when the query mentions it: the query never joins the fit.
	vec := FitVectorizer(corpus, DefaultConfig())
	if vec != nil {
		if _, ok := vec.vocab["photosynthesis"]; ok {
			t.Error("expected single-section term excluded from the vocabulary")
		}
	}
}

func TestAnalyzeCollection_SkipsMissingDocuments(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "present.txt",
		"Revenue growth analysis with revenue trends and forecast data across all revenue segments and markets under review this quarter.")

	spec := Spec{
		Documents:   []string{"present.txt", "missing.txt"},
		Persona:     "analyst tracking revenue data",
		JobToBeDone: "analyze revenue growth",
	}

	result, err := testAnalyzer().AnalyzeCollection(context.Background(), dir, spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range result.ExtractedSections {
		if s.Document == "missing.txt" {
			t.Error("expected missing document to be skipped")
		}
	}
}

func TestAnalyzeCollection_AllDocumentsMissing(t *testing.T) {
	spec := Spec{
		Documents:   []string{"nope.txt"},
		Persona:     "analyst",
		JobToBeDone: "analyze data",
	}
	if _, err := testAnalyzer().AnalyzeCollection(context.Background(), t.TempDir(), spec); err == nil {
		t.Error("expected error when no document is readable")
	}
}

func TestAnalyzeCollection_InvalidSpec(t *testing.T) {
	if _, err := testAnalyzer().AnalyzeCollection(context.Background(), t.TempDir(), Spec{}); err == nil {
		t.Error("expected validation error")
	}
}

func TestAnalyzeCollection_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "doc.txt", "some content for the parser to read")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	spec := Spec{Documents: []string{"doc.txt"}, Persona: "analyst", JobToBeDone: "analyze"}
	if _, err := testAnalyzer().AnalyzeCollection(ctx, dir, spec); err == nil {
		t.Error("expected error from cancelled context")
	}
}
