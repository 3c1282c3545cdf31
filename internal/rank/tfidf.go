package rank

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// tokenPattern matches words of two or more letters/digits, mirroring the
// usual vectorizer default.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_][\p{L}\p{N}_]+`)

// englishStopWords is a compact stop list for corpus vectorization.
var englishStopWords = map[string]bool{
	"a": true, "about": true, "above": true, "after": true, "again": true,
	"all": true, "also": true, "am": true, "an": true, "and": true,
	"any": true, "are": true, "as": true, "at": true, "be": true,
	"because": true, "been": true, "before": true, "being": true,
	"below": true, "between": true, "both": true, "but": true, "by": true,
	"can": true, "could": true, "did": true, "do": true, "does": true,
	"doing": true, "down": true, "during": true, "each": true, "few": true,
	"for": true, "from": true, "further": true, "had": true, "has": true,
	"have": true, "having": true, "he": true, "her": true, "here": true,
	"hers": true, "him": true, "his": true, "how": true, "i": true,
	"if": true, "in": true, "into": true, "is": true, "it": true,
	"its": true, "just": true, "me": true, "more": true, "most": true,
	"my": true, "no": true, "nor": true, "not": true, "now": true,
	"of": true, "off": true, "on": true, "once": true, "only": true,
	"or": true, "other": true, "our": true, "out": true, "over": true,
	"own": true, "same": true, "she": true, "should": true, "so": true,
	"some": true, "such": true, "than": true, "that": true, "the": true,
	"their": true, "them": true, "then": true, "there": true,
	"these": true, "they": true, "this": true, "those": true,
	"through": true, "to": true, "too": true, "under": true, "until": true,
	"up": true, "very": true, "was": true, "we": true, "were": true,
	"what": true, "when": true, "where": true, "which": true,
	"while": true, "who": true, "whom": true, "why": true, "will": true,
	"with": true, "would": true, "you": true, "your": true,
}

// Vectorizer is a fitted TF-IDF vector space over a text corpus: unigrams
// and bigrams, stop-words removed, document-frequency bounds applied and the
// vocabulary capped by corpus frequency.
type Vectorizer struct {
	vocab map[string]int
	idf   []float64
}

// tokenizeTerms produces the unigram+bigram term stream for one text.
func tokenizeTerms(text string) []string {
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
	kept := tokens[:0]
	for _, t := range tokens {
		if !englishStopWords[t] {
			kept = append(kept, t)
		}
	}

	terms := make([]string, 0, len(kept)*2)
	terms = append(terms, kept...)
	for i := 0; i+1 < len(kept); i++ {
		terms = append(terms, kept[i]+" "+kept[i+1])
	}
	return terms
}

// FitVectorizer builds the vector space and returns the fitted vectorizer.
// A degenerate corpus (too small for the document-frequency bounds, or with
// no usable terms) returns nil.
func FitVectorizer(texts []string, cfg Config) *Vectorizer {
	if len(texts) == 0 {
		return nil
	}

	docFreq := make(map[string]int)
	corpusFreq := make(map[string]int)
	for _, text := range texts {
		terms := tokenizeTerms(text)
		seen := make(map[string]bool, len(terms))
		for _, t := range terms {
			corpusFreq[t]++
			if !seen[t] {
				seen[t] = true
				docFreq[t]++
			}
		}
	}

	n := float64(len(texts))
	var candidates []string
	for term, df := range docFreq {
		if df < cfg.MinDocFreq {
			continue
		}
		if float64(df)/n > cfg.MaxDocFreqRatio {
			continue
		}
		candidates = append(candidates, term)
	}
	if len(candidates) == 0 {
		return nil
	}

	// Cap the vocabulary by corpus frequency; ties break alphabetically so
	// fitting is deterministic.
	sort.Slice(candidates, func(i, j int) bool {
		if corpusFreq[candidates[i]] != corpusFreq[candidates[j]] {
			return corpusFreq[candidates[i]] > corpusFreq[candidates[j]]
		}
		return candidates[i] < candidates[j]
	})
	if len(candidates) > cfg.MaxFeatures {
		candidates = candidates[:cfg.MaxFeatures]
	}
	sort.Strings(candidates)

	v := &Vectorizer{
		vocab: make(map[string]int, len(candidates)),
		idf:   make([]float64, len(candidates)),
	}
	for i, term := range candidates {
		v.vocab[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}
	return v
}

// Dims returns the vocabulary size.
func (v *Vectorizer) Dims() int {
	return len(v.idf)
}

// Transform maps a text into the fitted space as an L2-normalized TF-IDF
// vector. Texts sharing no vocabulary yield the zero vector.
func (v *Vectorizer) Transform(text string) []float64 {
	vec := make([]float64, len(v.idf))
	for _, term := range tokenizeTerms(text) {
		if col, ok := v.vocab[term]; ok {
			vec[col] += v.idf[col]
		}
	}
	normalize(vec)
	return vec
}

func normalize(vec []float64) {
	var sq float64
	for _, x := range vec {
		sq += x * x
	}
	if sq == 0 {
		return
	}
	norm := math.Sqrt(sq)
	for i := range vec {
		vec[i] /= norm
	}
}

// cosine returns the cosine similarity of two vectors, 0 for zero vectors.
func cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
