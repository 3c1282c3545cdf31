package rank

import (
	"regexp"
	"sort"
	"strings"

	"github.com/mharker/docrank/internal/chunker"
	"github.com/mharker/docrank/internal/document"
)

// DocumentContent is one extracted document prepared for ranking.
type DocumentContent struct {
	Name     string
	Title    string
	Headings []document.Heading
	Sections []document.Section
}

// ScoredSection is a section with its relevance score and 1-based rank.
type ScoredSection struct {
	Document       string
	Page           int
	SectionTitle   string
	Level          string
	Content        string
	RelevanceScore float64
	ImportanceRank int
}

// ScoredChunk is a refined sub-chunk of a ranked section.
type ScoredChunk struct {
	Document       string
	Page           int
	RefinedText    string
	RelevanceScore float64
}

// untitledSectionTitle labels text that precedes any detected heading.
const untitledSectionTitle = "Content Section"

// RankSections scores every section against the profile and returns the top
// sections by descending score. The sort is stable: equal scores keep their
// document/section discovery order, and ranks run 1..N without gaps.
func RankSections(docs []DocumentContent, profile Profile, model *SemanticModel, cfg Config) []ScoredSection {
	var queryVec []float64
	if model != nil {
		queryVec = model.Transform(profile.QueryText)
	}

	var scored []ScoredSection
	for _, doc := range docs {
		for _, section := range doc.Sections {
			content := section.Content
			if strings.TrimSpace(content) == "" || len(content) < cfg.MinSectionChars {
				continue
			}

			score := sectionRelevance(content, section.Heading, profile, model, queryVec, cfg)
			if score <= cfg.SectionKeep {
				continue
			}

			title := untitledSectionTitle
			level := ""
			if section.Heading != nil {
				level = section.Heading.Level
				if section.Heading.Text != "" {
					title = section.Heading.Text
				}
			}
			scored = append(scored, ScoredSection{
				Document:       doc.Name,
				Page:           section.PageStart,
				SectionTitle:   title,
				Level:          level,
				Content:        content,
				RelevanceScore: score,
			})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RelevanceScore > scored[j].RelevanceScore
	})
	for i := range scored {
		scored[i].ImportanceRank = i + 1
	}
	if len(scored) > cfg.MaxSections {
		scored = scored[:cfg.MaxSections]
	}
	return scored
}

// sectionRelevance combines keyword-hit ratios, semantic similarity, the
// heading-level bonus and a length bonus into a [0,1] score.
func sectionRelevance(content string, h *document.Heading, profile Profile, model *SemanticModel, queryVec []float64, cfg Config) float64 {
	lower := strings.ToLower(content)
	score := 0.0

	score += hitRatio(lower, profile.PersonaKeywords) * cfg.PersonaWeight
	score += hitRatio(lower, profile.JobKeywords) * cfg.JobWeight

	if model != nil {
		score += model.Similarity(queryVec, model.Transform(content)) * cfg.SemanticWeight
	}

	if h != nil {
		score += levelBonuses[h.Level]
	}

	words := len(strings.Fields(content))
	switch {
	case words >= 100 && words <= 1000:
		score += 0.05
	case words > 1000:
		score += 0.02
	}

	if score > 1 {
		return 1
	}
	return score
}

func hitRatio(lower string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}
	return float64(hits) / float64(len(keywords))
}

// numericPattern matches percentages, currency amounts and decimals.
var numericPattern = regexp.MustCompile(`\d+\.?\d*%|\$\d+|\d+\.\d+`)

// contentIndicators mark chunks that state substance rather than filler.
var contentIndicators = []string{"definition", "method", "result", "analysis", "conclusion"}

// AnalyzeSubsections splits the top-ranked sections into chunks, scores each
// against the profile, and returns the refined top chunks by descending
// score (stable for ties).
func AnalyzeSubsections(sections []ScoredSection, profile Profile, cfg Config) []ScoredChunk {
	top := sections
	if len(top) > cfg.ChunkSections {
		top = top[:cfg.ChunkSections]
	}

	var scored []ScoredChunk
	for _, section := range top {
		for _, chunk := range chunker.SplitContent(section.Content, cfg.Chunker) {
			if len(strings.Fields(chunk)) < cfg.MinChunkWords {
				continue
			}
			score := chunkRelevance(chunk, profile, cfg)
			if score <= cfg.ChunkKeep {
				continue
			}
			scored = append(scored, ScoredChunk{
				Document:       section.Document,
				Page:           section.Page,
				RefinedText:    chunker.Refine(chunk),
				RelevanceScore: score,
			})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RelevanceScore > scored[j].RelevanceScore
	})
	if len(scored) > cfg.MaxChunks {
		scored = scored[:cfg.MaxChunks]
	}
	return scored
}

// chunkRelevance scores a chunk by keyword density plus quality bonuses for
// concrete figures and substance-indicating terms.
func chunkRelevance(chunk string, profile Profile, cfg Config) float64 {
	lower := strings.ToLower(chunk)
	words := len(strings.Fields(chunk))
	if words == 0 {
		return 0
	}

	hits := 0
	for _, kw := range profile.PersonaKeywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}
	for _, kw := range profile.JobKeywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}

	score := float64(hits) / float64(words) * cfg.DensityWeight

	if numericPattern.MatchString(chunk) {
		score += cfg.QualityBonus
	}
	for _, indicator := range contentIndicators {
		if strings.Contains(lower, indicator) {
			score += cfg.QualityBonus
			break
		}
	}

	if score > 1 {
		return 1
	}
	return score
}
