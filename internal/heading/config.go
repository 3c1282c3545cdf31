// Package heading turns extracted text elements into a classified outline:
// a document title plus H1/H2/H3 headings. Detection scores each element
// against corpus font statistics and layout-feature clusters.
package heading

// Config consolidates the detection weights and thresholds so tuning and
// tests can override them without touching algorithm code.
type Config struct {
	// SignificantSizeRatio is the minimum ratio above the median font size
	// for a size to count as a heading-sized font.
	SignificantSizeRatio float64
	// SignificantSizeMinCount is how often a size must occur to qualify.
	SignificantSizeMinCount int

	// Factor weights. Size, position and content scores are each computed
	// in [0,1] and then scaled by these.
	SizeWeight     float64
	PositionWeight float64
	ContentWeight  float64

	// Format bonuses for bold text.
	BoldFlagBonus float64
	BoldNameBonus float64

	// CandidateThreshold discards weak elements before hierarchy
	// classification; SelectionThreshold filters again per level.
	CandidateThreshold float64
	SelectionThreshold float64

	// TitleThreshold is the minimum score for a first-page title candidate.
	TitleThreshold float64

	// LongTextPenaltyLen halves the score of elements longer than this.
	LongTextPenaltyLen int

	// MaxHeadings caps the emitted outline.
	MaxHeadings int

	// Clustering.
	ClusterSeed   int64
	MinClusterK   int
	MaxClusterK   int
	MinClusterLen int // clustering is skipped at or below this element count
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		SignificantSizeRatio:    1.2,
		SignificantSizeMinCount: 2,

		SizeWeight:     0.5,
		PositionWeight: 0.3,
		ContentWeight:  0.2,

		BoldFlagBonus: 0.2,
		BoldNameBonus: 0.15,

		CandidateThreshold: 0.3,
		SelectionThreshold: 0.4,
		TitleThreshold:     0.6,

		LongTextPenaltyLen: 200,
		MaxHeadings:        50,

		ClusterSeed:   42,
		MinClusterK:   3,
		MaxClusterK:   5,
		MinClusterLen: 10,
	}
}
