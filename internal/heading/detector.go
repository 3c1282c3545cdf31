package heading

import (
	"regexp"
	"sort"
	"strings"

	"github.com/mharker/docrank/internal/document"
)

// Detector classifies a document's text elements into a titled outline.
type Detector struct {
	cfg Config
}

// NewDetector creates a detector with default configuration.
func NewDetector() *Detector {
	return &Detector{cfg: DefaultConfig()}
}

// NewDetectorWithConfig creates a detector with custom thresholds.
func NewDetectorWithConfig(cfg Config) *Detector {
	return &Detector{cfg: cfg}
}

// Detect returns the document title and classified headings. An empty or
// unextractable document yields an empty outline, never an error.
func (d *Detector) Detect(doc *document.Document) document.Outline {
	outline := document.Outline{
		Title:    extractTitle(doc, d.cfg),
		Headings: []document.Heading{},
	}

	elements := CollectElements(doc)
	if len(elements) == 0 {
		return outline
	}

	profile := BuildFontProfile(elements, d.cfg)
	clusters := clusterLabels(elements, d.cfg)
	candidates := ScoreCandidates(elements, profile, clusters, d.cfg)

	outline.Headings = d.classifyHierarchy(candidates)
	return outline
}

// CollectElements flattens a document's pages into one element list with
// page context attached, dropping runs shorter than 3 characters.
func CollectElements(doc *document.Document) []document.TextElement {
	var elements []document.TextElement
	for _, page := range doc.Pages {
		for _, el := range page.Elements {
			text := strings.TrimSpace(el.Text)
			if len([]rune(text)) < 3 {
				continue
			}
			el.Text = text
			el.Page = page.Number
			el.PageHeight = page.Height
			el.PageWidth = page.Width
			elements = append(elements, el)
		}
	}
	return elements
}

var levelNames = []string{document.LevelH1, document.LevelH2, document.LevelH3}

// classifyHierarchy maps the top three distinct candidate font sizes to
// H1/H2/H3, filters by the selection threshold, orders, deduplicates and
// caps the result.
func (d *Detector) classifyHierarchy(candidates []Candidate) []document.Heading {
	if len(candidates) == 0 {
		return []document.Heading{}
	}

	ordered := make([]Candidate, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Score > ordered[j].Score
	})

	groups := make(map[float64][]Candidate)
	var sizes []float64
	for _, c := range ordered {
		size := c.Element.FontSize
		if _, seen := groups[size]; !seen {
			sizes = append(sizes, size)
		}
		groups[size] = append(groups[size], c)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sizes)))

	if len(sizes) > len(levelNames) {
		sizes = sizes[:len(levelNames)]
	}

	var headings []document.Heading
	for i, size := range sizes {
		for _, c := range groups[size] {
			if c.Score <= d.cfg.SelectionThreshold {
				continue
			}
			headings = append(headings, document.Heading{
				Level: levelNames[i],
				Text:  cleanHeadingText(c.Element.Text),
				Page:  c.Element.Page,
			})
		}
	}

	sort.SliceStable(headings, func(i, j int) bool {
		if headings[i].Page != headings[j].Page {
			return headings[i].Page < headings[j].Page
		}
		return headings[i].Level < headings[j].Level
	})

	return d.deduplicate(headings)
}

var purelyNumeric = regexp.MustCompile(`^\d+$`)

// deduplicate removes repeated, numeric-only and page-marker entries, first
// occurrence winning, and caps the output length.
func (d *Detector) deduplicate(headings []document.Heading) []document.Heading {
	seen := make(map[string]bool)
	unique := []document.Heading{}

	for _, h := range headings {
		key := strings.ToLower(strings.TrimSpace(h.Text))
		if len(key) < 3 || seen[key] {
			continue
		}
		if purelyNumeric.MatchString(key) || strings.HasPrefix(key, "page ") {
			continue
		}
		seen[key] = true
		unique = append(unique, h)
		if len(unique) == d.cfg.MaxHeadings {
			break
		}
	}
	return unique
}

// cleanHeadingText collapses whitespace, strips artifacts and caps length.
func cleanHeadingText(text string) string {
	cleaned := strings.Join(strings.Fields(text), " ")
	cleaned = strings.ReplaceAll(cleaned, "\x00", "")
	cleaned = strings.ReplaceAll(cleaned, "�", "")
	if len(cleaned) > 150 {
		cleaned = cleaned[:150] + "..."
	}
	return strings.TrimSpace(cleaned)
}

// Validate is an advisory sanity check on a detected outline. It reports
// false for distributions that usually mean misdetection: many headings with
// no H1, or a large outline confined to a single page.
func Validate(headings []document.Heading) bool {
	if len(headings) == 0 {
		return true
	}

	hasH1 := false
	samePage := true
	for _, h := range headings {
		if h.Level == document.LevelH1 {
			hasH1 = true
		}
		if h.Page != headings[0].Page {
			samePage = false
		}
	}

	if len(headings) > 5 && !hasH1 {
		return false
	}
	if len(headings) > 10 && samePage {
		return false
	}
	return true
}
