package heading

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mharker/docrank/internal/document"
)

// englishPatterns match common English heading shapes: ALL-CAPS runs,
// numbered headings, roman-numeral prefixes, chapter/section markers.
var englishPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Z][A-Z\s]{2,}$`),
	regexp.MustCompile(`^\d+\.?\s+[A-Z]`),
	regexp.MustCompile(`^[IVX]+\.?\s+[A-Z]`),
	regexp.MustCompile(`^Chapter\s+\d+`),
	regexp.MustCompile(`^Section\s+\d+`),
}

// scriptPatterns match headings opening in CJK, kana, Hebrew or Arabic
// script, which the English shape patterns cannot see.
var scriptPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[\x{4e00}-\x{9fff}]+`),
	regexp.MustCompile(`^[\x{3040}-\x{309f}]+`),
	regexp.MustCompile(`^[\x{30a0}-\x{30ff}]+`),
	regexp.MustCompile(`^[\x{0590}-\x{05ff}]+`),
	regexp.MustCompile(`^[\x{0600}-\x{06ff}]+`),
}

// discourseConnectives mark body prose; headings do not argue.
var discourseConnectives = []string{"however", "therefore", "moreover", "furthermore"}

// Candidate is a text element with its derived heading score and cluster.
type Candidate struct {
	Element   document.TextElement
	Score     float64
	ClusterID int
}

// ScoreCandidates computes the multi-factor heading score for every element
// and keeps those above the candidate threshold, preserving input order.
func ScoreCandidates(elements []document.TextElement, profile FontProfile, clusters []int, cfg Config) []Candidate {
	var candidates []Candidate
	for i, el := range elements {
		score := scoreElement(el, profile, cfg)
		if score <= cfg.CandidateThreshold {
			continue
		}
		cluster := 0
		if i < len(clusters) {
			cluster = clusters[i]
		}
		candidates = append(candidates, Candidate{Element: el, Score: score, ClusterID: cluster})
	}
	return candidates
}

func scoreElement(el document.TextElement, profile FontProfile, cfg Config) float64 {
	sizeScore := 0.0
	if profile.IsSignificant(el.FontSize) && profile.MedianSize > 0 {
		sizeScore = clamp01(el.FontSize/(profile.MedianSize*2)) * cfg.SizeWeight
	}

	positionScore := positionScore(el) * cfg.PositionWeight
	contentScore := contentScore(el.Text) * cfg.ContentWeight

	formatScore := 0.0
	switch {
	case el.Bold:
		formatScore = cfg.BoldFlagBonus
	case strings.Contains(strings.ToLower(el.FontName), "bold"):
		formatScore = cfg.BoldNameBonus
	}

	total := sizeScore + positionScore + contentScore + formatScore

	// Long runs of text are paragraphs, not headings.
	if len(el.Text) > cfg.LongTextPenaltyLen {
		total *= 0.5
	}
	return clamp01(total)
}

// positionScore rewards left-margin alignment and short text that sits
// near the top of the page.
func positionScore(el document.TextElement) float64 {
	score := 0.0
	if el.X0 < 100 {
		score += 0.5
	}
	if len(el.Text) < 100 {
		score += 0.3
	}
	if el.PageHeight > 0 && el.Y0 > el.PageHeight*0.8 {
		score += 0.2
	}
	return clamp01(score)
}

// contentScore rates textual heading signals in [0,1].
func contentScore(text string) float64 {
	score := 0.0

	// Script-run match takes precedence over the English shape patterns.
	if matchesAny(scriptPatterns, text) {
		score += 0.4
	} else if matchesAny(englishPatterns, text) {
		score += 0.3
	}

	words := strings.Fields(text)
	if isUpperText(text) && len(words) <= 10 {
		score += 0.2
	} else if isTitleCase(text) && len(words) <= 8 {
		score += 0.15
	}

	if len(words) >= 2 && len(words) <= 8 {
		score += 0.1
	}

	lower := strings.ToLower(text)
	for _, connective := range discourseConnectives {
		if strings.Contains(lower, connective) {
			score -= 0.2
			break
		}
	}

	if score < 0 {
		return 0
	}
	return score
}

func matchesAny(patterns []*regexp.Regexp, text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// isUpperText reports whether the text has cased letters and all of them
// are uppercase.
func isUpperText(text string) bool {
	hasCased := false
	for _, r := range text {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasCased = true
		}
	}
	return hasCased
}

// isTitleCase reports whether every word starts with an uppercase letter
// followed only by non-uppercase letters.
func isTitleCase(text string) bool {
	words := strings.Fields(text)
	if len(words) == 0 {
		return false
	}
	sawCased := false
	for _, word := range words {
		first := true
		for _, r := range word {
			if !unicode.IsLetter(r) {
				continue
			}
			if first {
				if !unicode.IsUpper(r) {
					return false
				}
				sawCased = true
				first = false
				continue
			}
			if unicode.IsUpper(r) {
				return false
			}
		}
	}
	return sawCased
}

func clamp01(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}
