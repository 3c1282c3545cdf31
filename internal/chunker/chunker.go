// Package chunker splits section content into scoreable text chunks for
// subsection analysis: paragraphs first, with oversized paragraphs re-split
// into bounded groups of whole sentences.
package chunker

import (
	"strings"
)

// Config controls chunk splitting.
type Config struct {
	// LargeParagraphWords is the word count above which a paragraph is
	// re-split by sentence.
	LargeParagraphWords int
	// MaxChunkWords bounds the sentence groups produced by re-splitting.
	MaxChunkWords int
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		LargeParagraphWords: 150,
		MaxChunkWords:       100,
	}
}

// SplitContent breaks section content into chunks. Paragraphs are separated
// by blank lines; any paragraph above the large-paragraph threshold is split
// into groups of whole sentences no longer than MaxChunkWords.
func SplitContent(content string, cfg Config) []string {
	if cfg.LargeParagraphWords <= 0 {
		cfg.LargeParagraphWords = 150
	}
	if cfg.MaxChunkWords <= 0 {
		cfg.MaxChunkWords = 100
	}

	var chunks []string
	for _, para := range strings.Split(content, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if len(strings.Fields(para)) > cfg.LargeParagraphWords {
			chunks = append(chunks, splitBySentences(para, cfg.MaxChunkWords)...)
			continue
		}
		chunks = append(chunks, para)
	}
	return chunks
}

// splitBySentences accumulates whole sentences into chunks of at most
// maxWords words. A single sentence longer than the limit becomes its own
// chunk rather than being cut mid-sentence.
func splitBySentences(para string, maxWords int) []string {
	var chunks []string
	var current string

	for _, sentence := range SplitSentences(para) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		joined := strings.TrimSpace(current + " " + sentence)
		if len(strings.Fields(joined)) <= maxWords {
			current = joined
			continue
		}
		if current != "" {
			chunks = append(chunks, current)
		}
		current = sentence
	}
	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks
}

// SplitSentences splits on terminal punctuation. This does not guard against
// abbreviations or decimals and may over-split; that is an accepted
// approximation for heuristic ranking.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		s := strings.TrimSpace(current.String())
		if s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	for _, r := range text {
		if r == '.' || r == '!' || r == '?' {
			flush()
			continue
		}
		current.WriteRune(r)
	}
	flush()

	return sentences
}

// Refine normalizes a chunk for output: whitespace is collapsed, and chunks
// beyond 500 characters are trimmed to their first three sentences.
func Refine(chunk string) string {
	refined := strings.Join(strings.Fields(chunk), " ")
	if len(refined) <= 500 {
		return refined
	}
	sentences := strings.Split(refined, ". ")
	if len(sentences) > 3 {
		sentences = sentences[:3]
	}
	return strings.Join(sentences, ". ") + "."
}
