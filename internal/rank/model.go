package rank

import (
	"gonum.org/v1/gonum/mat"
)

// SemanticModel is the corpus-wide vector space used for similarity scoring.
// Large vocabularies are projected into a reduced space via truncated SVD;
// small ones are compared in the raw TF-IDF space.
type SemanticModel struct {
	vec        *Vectorizer
	projection *mat.Dense // vocab x k, nil when no reduction applies
}

// BuildSemanticModel fits the TF-IDF space over all corpus texts and, when
// the vocabulary is large, factorizes the corpus matrix to obtain a
// truncated-SVD projection. A degenerate corpus returns nil; callers then
// omit the similarity term from scoring.
func BuildSemanticModel(texts []string, cfg Config) *SemanticModel {
	vec := FitVectorizer(texts, cfg)
	if vec == nil {
		return nil
	}

	model := &SemanticModel{vec: vec}
	if vec.Dims() <= cfg.ReduceAboveDims {
		return model
	}

	rows := len(texts)
	cols := vec.Dims()
	data := make([]float64, 0, rows*cols)
	for _, text := range texts {
		data = append(data, vec.Transform(text)...)
	}
	corpus := mat.NewDense(rows, cols, data)

	var svd mat.SVD
	if !svd.Factorize(corpus, mat.SVDThin) {
		// Spectral failure means no usable model, not an error.
		return nil
	}

	var v mat.Dense
	svd.VTo(&v)

	k := cfg.ReducedDims
	if _, vc := v.Dims(); k > vc {
		k = vc
	}
	if k < 1 {
		return model
	}
	model.projection = mat.DenseCopyOf(v.Slice(0, cols, 0, k))
	return model
}

// Transform maps a text into the model's comparison space.
func (m *SemanticModel) Transform(text string) []float64 {
	raw := m.vec.Transform(text)
	if m.projection == nil {
		return raw
	}

	_, k := m.projection.Dims()
	row := mat.NewDense(1, len(raw), raw)
	var reduced mat.Dense
	reduced.Mul(row, m.projection)

	out := make([]float64, k)
	copy(out, reduced.RawRowView(0))
	return out
}

// Similarity is the cosine similarity between two transformed vectors,
// floored at zero since reduced-space cosines can dip negative.
func (m *SemanticModel) Similarity(a, b []float64) float64 {
	sim := cosine(a, b)
	if sim < 0 {
		return 0
	}
	return sim
}
