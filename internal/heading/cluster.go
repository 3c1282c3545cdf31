package heading

import (
	"math"
	"math/rand"

	"github.com/mharker/docrank/internal/document"
)

// clusterLabels groups elements by a standardized layout feature vector
// (font size, text length, x/y position, boldness) using k-means with a
// fixed seed. Small inputs and degenerate feature matrices fall back to the
// all-zero assignment; clustering never fails to the caller.
func clusterLabels(elements []document.TextElement, cfg Config) []int {
	labels := make([]int, len(elements))
	if len(elements) <= cfg.MinClusterLen {
		return labels
	}

	features := make([][]float64, len(elements))
	for i, el := range elements {
		bold := 0.0
		if el.Bold {
			bold = 1.0
		}
		features[i] = []float64{el.FontSize, float64(len(el.Text)), el.X0, el.Y0, bold}
	}
	standardize(features)

	k := len(elements) / 10
	if k < cfg.MinClusterK {
		k = cfg.MinClusterK
	}
	if k > cfg.MaxClusterK {
		k = cfg.MaxClusterK
	}
	if k > len(elements) {
		return labels
	}

	assigned, ok := kmeans(features, k, cfg.ClusterSeed)
	if !ok {
		return labels
	}
	return assigned
}

// standardize rescales each feature column to zero mean and unit variance.
// Constant columns are zeroed rather than divided by a zero deviation.
func standardize(features [][]float64) {
	if len(features) == 0 {
		return
	}
	dims := len(features[0])
	n := float64(len(features))

	for d := 0; d < dims; d++ {
		var sum float64
		for _, row := range features {
			sum += row[d]
		}
		mean := sum / n

		var sqDiff float64
		for _, row := range features {
			diff := row[d] - mean
			sqDiff += diff * diff
		}
		std := math.Sqrt(sqDiff / n)

		for _, row := range features {
			if std == 0 {
				row[d] = 0
				continue
			}
			row[d] = (row[d] - mean) / std
		}
	}
}

const kmeansMaxIterations = 100

// kmeans partitions rows into k clusters by iteratively minimizing within-
// cluster squared distance. The seed fixes centroid initialization so runs
// are reproducible.
func kmeans(rows [][]float64, k int, seed int64) ([]int, bool) {
	if k <= 0 || len(rows) < k {
		return nil, false
	}

	rng := rand.New(rand.NewSource(seed))
	dims := len(rows[0])

	// Seed centroids from k distinct rows.
	perm := rng.Perm(len(rows))
	centroids := make([][]float64, k)
	for i := 0; i < k; i++ {
		centroids[i] = append([]float64(nil), rows[perm[i]]...)
	}

	labels := make([]int, len(rows))
	for iter := 0; iter < kmeansMaxIterations; iter++ {
		changed := false
		for i, row := range rows {
			best, bestDist := 0, math.Inf(1)
			for c, centroid := range centroids {
				d := sqDist(row, centroid)
				if d < bestDist {
					best, bestDist = c, d
				}
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		// Recompute centroids; empty clusters keep their position.
		sums := make([][]float64, k)
		counts := make([]int, k)
		for i := range sums {
			sums[i] = make([]float64, dims)
		}
		for i, row := range rows {
			c := labels[i]
			counts[c]++
			for d, v := range row {
				sums[c][d] += v
			}
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				continue
			}
			for d := 0; d < dims; d++ {
				centroids[c][d] = sums[c][d] / float64(counts[c])
			}
		}
	}
	return labels, true
}

func sqDist(a, b []float64) float64 {
	var total float64
	for i := range a {
		d := a[i] - b[i]
		total += d * d
	}
	return total
}
