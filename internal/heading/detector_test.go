package heading

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/mharker/docrank/internal/document"
)

func element(text string, size float64, bold bool, y float64, page int) document.TextElement {
	return document.TextElement{
		Text:     text,
		FontName: "Helvetica",
		FontSize: size,
		Bold:     bold,
		X0:       72,
		Y0:       y,
		X1:       400,
		Y1:       y + size,
	}
}

// reportDoc builds a two-page document with a clear three-level font
// hierarchy over uniform body text.
func reportDoc() *document.Document {
	body := func(n int) []document.TextElement {
		var els []document.TextElement
		for i := 0; i < n; i++ {
			els = append(els, element(
				fmt.Sprintf("plain body paragraph text number %d going on at some length about nothing in particular, well past a hundred characters of prose", i),
				11, false, 600-float64(i)*20, 0))
		}
		return els
	}

	page1 := document.Page{Number: 1, Width: 612, Height: 792}
	page1.Elements = append(page1.Elements,
		element("System Overview", 24, true, 700, 0),
		element("Background Material", 18, true, 650, 0))
	page1.Elements = append(page1.Elements, body(12)...)

	page2 := document.Page{Number: 2, Width: 612, Height: 792}
	page2.Elements = append(page2.Elements,
		element("Design Decisions", 24, true, 700, 0),
		element("Storage Layer", 18, true, 650, 0),
		element("Cache Eviction", 14, true, 620, 0),
		element("Cache Warmup", 14, true, 600, 0))
	page2.Elements = append(page2.Elements, body(12)...)

	return &document.Document{
		Title:      "",
		TotalPages: 2,
		Pages:      []document.Page{page1, page2},
	}
}

func TestDetect_EmptyDocument(t *testing.T) {
	d := NewDetector()
	outline := d.Detect(&document.Document{})

	if outline.Title != UntitledDocument {
		t.Errorf("expected placeholder title, got %q", outline.Title)
	}
	if outline.Headings == nil {
		t.Fatal("expected non-nil headings slice")
	}
	if len(outline.Headings) != 0 {
		t.Errorf("expected no headings, got %d", len(outline.Headings))
	}
}

func TestDetect_FontSizeHierarchy(t *testing.T) {
	d := NewDetector()
	outline := d.Detect(reportDoc())

	wantLevels := map[string]string{
		"System Overview":     document.LevelH1,
		"Design Decisions":    document.LevelH1,
		"Background Material": document.LevelH2,
		"Storage Layer":       document.LevelH2,
		"Cache Eviction":      document.LevelH3,
		"Cache Warmup":        document.LevelH3,
	}

	got := make(map[string]string)
	for _, h := range outline.Headings {
		got[h.Text] = h.Level
	}
	for text, level := range wantLevels {
		if got[text] != level {
			t.Errorf("heading %q: expected level %s, got %q", text, level, got[text])
		}
	}
}

func TestDetect_BodyTextExcluded(t *testing.T) {
	d := NewDetector()
	outline := d.Detect(reportDoc())

	for _, h := range outline.Headings {
		if len(h.Text) > 120 {
			t.Errorf("body paragraph leaked into outline: %q", h.Text)
		}
	}
}

func TestDetect_PageOrdering(t *testing.T) {
	d := NewDetector()
	outline := d.Detect(reportDoc())

	lastPage := 0
	for _, h := range outline.Headings {
		if h.Page < lastPage {
			t.Fatalf("headings out of page order: page %d after page %d", h.Page, lastPage)
		}
		lastPage = h.Page
	}
}

func TestDetect_Deterministic(t *testing.T) {
	d := NewDetector()
	doc := reportDoc()

	first := d.Detect(doc)
	second := d.Detect(doc)
	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical outlines across runs")
	}
}

func TestDeduplicate_RepeatsAndArtifacts(t *testing.T) {
	d := NewDetector()
	headings := []document.Heading{
		{Level: document.LevelH1, Text: "Introduction", Page: 1},
		{Level: document.LevelH1, Text: "introduction", Page: 3},
		{Level: document.LevelH2, Text: "42", Page: 2},
		{Level: document.LevelH2, Text: "Page 7", Page: 7},
		{Level: document.LevelH2, Text: "ok", Page: 2},
		{Level: document.LevelH2, Text: "Methods", Page: 4},
	}

	got := d.deduplicate(headings)
	if len(got) != 2 {
		t.Fatalf("expected 2 headings after dedup, got %d: %v", len(got), got)
	}
	if got[0].Text != "Introduction" || got[0].Page != 1 {
		t.Errorf("expected first occurrence to win, got %+v", got[0])
	}
	if got[1].Text != "Methods" {
		t.Errorf("expected %q to survive, got %q", "Methods", got[1].Text)
	}
}

func TestDeduplicate_CapsOutput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxHeadings = 5
	d := NewDetectorWithConfig(cfg)

	var headings []document.Heading
	for i := 0; i < 20; i++ {
		headings = append(headings, document.Heading{
			Level: document.LevelH2,
			Text:  fmt.Sprintf("Unique Heading %d", i),
			Page:  i + 1,
		})
	}

	got := d.deduplicate(headings)
	if len(got) != 5 {
		t.Errorf("expected output capped at 5, got %d", len(got))
	}
}

func TestCollectElements_DropsShortRuns(t *testing.T) {
	doc := &document.Document{
		TotalPages: 1,
		Pages: []document.Page{{
			Number: 1, Width: 612, Height: 792,
			Elements: []document.TextElement{
				element("ab", 12, false, 700, 0),
				element("  ", 12, false, 690, 0),
				element("  a real run  ", 12, false, 680, 0),
			},
		}},
	}

	els := CollectElements(doc)
	if len(els) != 1 {
		t.Fatalf("expected 1 element, got %d", len(els))
	}
	if els[0].Text != "a real run" {
		t.Errorf("expected trimmed text, got %q", els[0].Text)
	}
	if els[0].Page != 1 || els[0].PageHeight != 792 {
		t.Errorf("expected page context attached, got page=%d height=%v", els[0].Page, els[0].PageHeight)
	}
}

func TestCleanHeadingText_CapsLength(t *testing.T) {
	long := ""
	for i := 0; i < 40; i++ {
		long += "verylongword "
	}
	got := cleanHeadingText(long)
	if len(got) > 160 {
		t.Errorf("expected capped heading text, got %d chars", len(got))
	}
}

func TestValidate_FlagsSuspectOutlines(t *testing.T) {
	if !Validate(nil) {
		t.Error("expected empty outline to validate")
	}

	var noH1 []document.Heading
	for i := 0; i < 8; i++ {
		noH1 = append(noH1, document.Heading{Level: document.LevelH2, Text: fmt.Sprintf("h%d", i), Page: i + 1})
	}
	if Validate(noH1) {
		t.Error("expected many headings without an H1 to fail validation")
	}

	var samePage []document.Heading
	for i := 0; i < 12; i++ {
		samePage = append(samePage, document.Heading{Level: document.LevelH1, Text: fmt.Sprintf("h%d", i), Page: 3})
	}
	if Validate(samePage) {
		t.Error("expected a large single-page outline to fail validation")
	}

	ok := []document.Heading{
		{Level: document.LevelH1, Text: "Intro", Page: 1},
		{Level: document.LevelH2, Text: "Detail", Page: 2},
	}
	if !Validate(ok) {
		t.Error("expected a normal outline to validate")
	}
}
