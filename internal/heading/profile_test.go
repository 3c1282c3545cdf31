package heading

import (
	"testing"

	"github.com/mharker/docrank/internal/document"
)

func sizedElements(sizes ...float64) []document.TextElement {
	els := make([]document.TextElement, len(sizes))
	for i, s := range sizes {
		els[i] = document.TextElement{Text: "text", FontSize: s}
	}
	return els
}

func TestBuildFontProfile_Empty(t *testing.T) {
	p := BuildFontProfile(nil, DefaultConfig())
	if p.MedianSize != 0 || p.MeanSize != 0 {
		t.Errorf("expected zero stats for empty input, got median=%v mean=%v", p.MedianSize, p.MeanSize)
	}
	if len(p.SignificantSizes) != 0 {
		t.Errorf("expected no significant sizes, got %v", p.SignificantSizes)
	}
}

func TestBuildFontProfile_MedianOddEven(t *testing.T) {
	odd := BuildFontProfile(sizedElements(10, 12, 14), DefaultConfig())
	if odd.MedianSize != 12 {
		t.Errorf("expected median 12, got %v", odd.MedianSize)
	}

	even := BuildFontProfile(sizedElements(10, 12, 14, 16), DefaultConfig())
	if even.MedianSize != 13 {
		t.Errorf("expected median 13, got %v", even.MedianSize)
	}
}

func TestBuildFontProfile_SignificantSizes(t *testing.T) {
	// Median 11, threshold 13.2. Size 24 and 18 occur twice, size 30 once.
	els := sizedElements(11, 11, 11, 11, 11, 11, 18, 18, 24, 24, 30)
	p := BuildFontProfile(els, DefaultConfig())

	want := []float64{24, 18}
	if len(p.SignificantSizes) != len(want) {
		t.Fatalf("expected significant sizes %v, got %v", want, p.SignificantSizes)
	}
	for i, s := range want {
		if p.SignificantSizes[i] != s {
			t.Errorf("expected size %v at position %d, got %v", s, i, p.SignificantSizes[i])
		}
	}
}

func TestBuildFontProfile_SingletonSizeNotSignificant(t *testing.T) {
	els := sizedElements(11, 11, 11, 11, 30)
	p := BuildFontProfile(els, DefaultConfig())
	if len(p.SignificantSizes) != 0 {
		t.Errorf("expected one-off large size to be ignored, got %v", p.SignificantSizes)
	}
}

func TestFontProfile_IsSignificantBuckets(t *testing.T) {
	els := sizedElements(11, 11, 11, 11, 11, 11, 18, 18)
	p := BuildFontProfile(els, DefaultConfig())

	if !p.IsSignificant(18) {
		t.Error("expected 18 to be significant")
	}
	// Fractional sizes fall into the same truncated bucket.
	if !p.IsSignificant(18.7) {
		t.Error("expected 18.7 to share the 18pt bucket")
	}
	if p.IsSignificant(11) {
		t.Error("expected body size to be insignificant")
	}
}

func TestBuildFontProfile_Histogram(t *testing.T) {
	els := sizedElements(11.2, 11.9, 14.1)
	p := BuildFontProfile(els, DefaultConfig())
	if p.SizeHistogram[11] != 2 {
		t.Errorf("expected 2 elements in the 11pt bucket, got %d", p.SizeHistogram[11])
	}
	if p.SizeHistogram[14] != 1 {
		t.Errorf("expected 1 element in the 14pt bucket, got %d", p.SizeHistogram[14])
	}
}
