package heading

import (
	"math"
	"sort"

	"github.com/mharker/docrank/internal/document"
)

// FontProfile holds corpus-wide font statistics for one document.
type FontProfile struct {
	MedianSize float64
	MeanSize   float64
	StdSize    float64

	// SizeHistogram counts elements per truncated point size.
	SizeHistogram map[int]int

	// SignificantSizes are the sizes exceeding MedianSize*ratio that occur
	// at least the configured number of times, strictly descending. These
	// are the candidate heading sizes.
	SignificantSizes []float64
}

// BuildFontProfile computes font statistics over a document's elements.
func BuildFontProfile(elements []document.TextElement, cfg Config) FontProfile {
	profile := FontProfile{SizeHistogram: make(map[int]int)}
	if len(elements) == 0 {
		return profile
	}

	sizes := make([]float64, len(elements))
	var sum float64
	for i, el := range elements {
		sizes[i] = el.FontSize
		sum += el.FontSize
		profile.SizeHistogram[int(el.FontSize)]++
	}

	sort.Float64s(sizes)
	profile.MedianSize = median(sizes)
	profile.MeanSize = sum / float64(len(sizes))

	var sqDiff float64
	for _, s := range sizes {
		d := s - profile.MeanSize
		sqDiff += d * d
	}
	profile.StdSize = math.Sqrt(sqDiff / float64(len(sizes)))

	threshold := profile.MedianSize * cfg.SignificantSizeRatio
	for size, count := range profile.SizeHistogram {
		if float64(size) > threshold && count >= cfg.SignificantSizeMinCount {
			profile.SignificantSizes = append(profile.SignificantSizes, float64(size))
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(profile.SignificantSizes)))

	return profile
}

// IsSignificant reports whether a font size falls in a significant bucket.
func (p FontProfile) IsSignificant(size float64) bool {
	bucket := float64(int(size))
	for _, s := range p.SignificantSizes {
		if s == bucket {
			return true
		}
	}
	return false
}

// median expects sizes sorted ascending.
func median(sizes []float64) float64 {
	n := len(sizes)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sizes[n/2]
	}
	return (sizes[n/2-1] + sizes[n/2]) / 2
}
