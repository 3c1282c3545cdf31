package heading

import (
	"strings"

	"github.com/mharker/docrank/internal/document"
)

// UntitledDocument is the placeholder used when no title can be found.
const UntitledDocument = "Untitled Document"

// titleCandidateLimit bounds the first-page scan; real titles sit at the top.
const titleCandidateLimit = 10

// extractTitle finds the document title: metadata first, then the best
// scoring element near the top of page one, then a placeholder.
func extractTitle(doc *document.Document, cfg Config) string {
	if meta := strings.TrimSpace(doc.Title); len(meta) > 3 {
		return cleanTitle(meta)
	}
	if len(doc.Pages) > 0 {
		if candidate := titleFromPage(doc.Pages[0], cfg); candidate != "" {
			return cleanTitle(candidate)
		}
	}
	return UntitledDocument
}

func titleFromPage(page document.Page, cfg Config) string {
	best := ""
	bestScore := 0.0

	limit := len(page.Elements)
	if limit > titleCandidateLimit {
		limit = titleCandidateLimit
	}

	for _, el := range page.Elements[:limit] {
		text := strings.TrimSpace(el.Text)
		if len(text) < 5 {
			continue
		}
		score := titleScore(text, el, page.Height)
		if score > cfg.TitleThreshold && score > bestScore {
			best, bestScore = text, score
		}
	}
	return best
}

// titleScore weighs font prominence, vertical position, capitalization,
// length and boldness of a first-page element.
func titleScore(text string, el document.TextElement, pageHeight float64) float64 {
	score := 0.0

	if el.FontSize > 16 {
		score += 0.3 * clamp01(el.FontSize/24)
	}

	if pageHeight > 0 {
		pos := el.Y0 / pageHeight * 0.3
		if pos > 0 {
			score += pos
		}
	}

	if isUpperText(text) && len(text) > 5 {
		score += 0.2
	}
	if len(strings.Fields(text)) >= 2 && len(text) < 100 {
		score += 0.2
	}
	if el.Bold {
		score += 0.2
	}

	return clamp01(score)
}

// cleanTitle collapses whitespace and caps length for output.
func cleanTitle(title string) string {
	cleaned := strings.Join(strings.Fields(title), " ")
	if len(cleaned) > 200 {
		cleaned = cleaned[:200] + "..."
	}
	if cleaned == "" {
		return UntitledDocument
	}
	return cleaned
}
