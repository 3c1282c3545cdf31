// Package rank implements persona-driven relevance analysis: it assembles
// heading-keyed sections from extracted documents, builds a corpus-wide
// TF-IDF model, profiles the persona and job-to-be-done, and produces ranked
// section and subsection lists.
package rank

import "github.com/mharker/docrank/internal/chunker"

// Config consolidates the ranking weights and thresholds.
type Config struct {
	// Semantic model.
	MaxFeatures     int     // vocabulary cap
	MinDocFreq      int     // terms in fewer documents are dropped
	MaxDocFreqRatio float64 // terms in a larger share of documents are dropped
	ReduceAboveDims int     // apply SVD only above this vocabulary size
	ReducedDims     int     // target dimensionality after reduction

	// Section scoring.
	PersonaWeight   float64
	JobWeight       float64
	SemanticWeight  float64
	MinSectionChars int
	SectionKeep     float64 // minimum score for inclusion
	MaxSections     int

	// Subsection scoring.
	ChunkSections int // how many top sections get chunk analysis
	MinChunkWords int
	DensityWeight float64
	QualityBonus  float64
	ChunkKeep     float64
	MaxChunks     int

	Chunker chunker.Config
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		MaxFeatures:     5000,
		MinDocFreq:      2,
		MaxDocFreqRatio: 0.95,
		ReduceAboveDims: 500,
		ReducedDims:     300,

		PersonaWeight:   0.3,
		JobWeight:       0.4,
		SemanticWeight:  0.3,
		MinSectionChars: 50,
		SectionKeep:     0.1,
		MaxSections:     20,

		ChunkSections: 10,
		MinChunkWords: 20,
		DensityWeight: 0.8,
		QualityBonus:  0.1,
		ChunkKeep:     0.2,
		MaxChunks:     15,

		Chunker: chunker.DefaultConfig(),
	}
}

// levelBonuses reward sections anchored by higher outline levels.
var levelBonuses = map[string]float64{
	"H1": 0.1,
	"H2": 0.05,
	"H3": 0.02,
}
