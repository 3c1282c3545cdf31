package rank

import (
	"regexp"
	"sort"
	"strings"
)

// Profile is the derived relevance profile for one analysis run. It is
// computed once from the free-text persona and job descriptions and read
// immutably by the ranker.
type Profile struct {
	PersonaType       string
	JobType           string
	PersonaKeywords   []string
	JobKeywords       []string
	ImportanceWeights map[string]float64

	// QueryText seeds the semantic query vector.
	QueryText string
}

// Profiler classifies personas and jobs against a fixed taxonomy.
type Profiler struct {
	tax Taxonomy
}

// NewProfiler creates a profiler over the given taxonomy.
func NewProfiler(tax Taxonomy) *Profiler {
	return &Profiler{tax: tax}
}

// Profile derives the persona/job profile from free-text descriptions.
func (p *Profiler) Profile(persona, job string) Profile {
	personaType := p.classifyPersona(strings.ToLower(persona))
	jobType := p.classifyJob(strings.ToLower(job))

	profile := Profile{
		PersonaType:       personaType,
		JobType:           jobType,
		PersonaKeywords:   p.personaKeywords(personaType),
		JobKeywords:       extractJobKeywords(job),
		ImportanceWeights: p.tax.JobWeights[jobType],
		QueryText:         persona + " " + job,
	}
	if profile.ImportanceWeights == nil {
		profile.ImportanceWeights = map[string]float64{}
	}
	return profile
}

// classifyPersona matches the description against each persona class's
// first three keywords, falling back to secondary role indicators.
func (p *Profiler) classifyPersona(text string) string {
	for _, class := range p.tax.Personas {
		triggers := class.Keywords
		if len(triggers) > 3 {
			triggers = triggers[:3]
		}
		for _, kw := range triggers {
			if strings.Contains(text, kw) {
				return class.Type
			}
		}
	}
	for _, class := range p.tax.FallbackPersonas {
		for _, kw := range class.Keywords {
			if strings.Contains(text, kw) {
				return class.Type
			}
		}
	}
	return PersonaGeneral
}

func (p *Profiler) classifyJob(text string) string {
	for _, class := range p.tax.JobClasses {
		for _, trigger := range class.Triggers {
			if strings.Contains(text, trigger) {
				return class.Type
			}
		}
	}
	return JobGeneralAnalysis
}

func (p *Profiler) personaKeywords(personaType string) []string {
	for _, class := range p.tax.Personas {
		if class.Type == personaType {
			return class.Keywords
		}
	}
	return nil
}

var jobWordPattern = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)

// jobStopWords filters structural words out of job keyword extraction.
var jobStopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "with": true,
	"this": true, "that": true, "from": true, "they": true, "been": true,
	"have": true, "has": true,
}

const maxJobKeywords = 10

// extractJobKeywords pulls up to ten distinct alphabetic words from the job
// description, ranked by frequency with ties kept in encounter order.
func extractJobKeywords(job string) []string {
	words := jobWordPattern.FindAllString(strings.ToLower(job), -1)

	counts := make(map[string]int)
	var order []string
	for _, w := range words {
		if jobStopWords[w] {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > maxJobKeywords {
		order = order[:maxJobKeywords]
	}
	return order
}
