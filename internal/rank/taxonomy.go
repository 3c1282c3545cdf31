package rank

// Persona types.
const (
	PersonaResearcher = "researcher"
	PersonaStudent    = "student"
	PersonaAnalyst    = "analyst"
	PersonaInvestor   = "investor"
	PersonaEngineer   = "engineer"
	PersonaManager    = "manager"
	PersonaGeneral    = "general"
)

// Job types.
const (
	JobLiteratureReview  = "literature_review"
	JobExamPreparation   = "exam_preparation"
	JobFinancialAnalysis = "financial_analysis"
	JobTechnicalReview   = "technical_review"
	JobGeneralAnalysis   = "general_analysis"
)

// PersonaClass is one persona category with its domain vocabulary. The first
// three keywords are the classification triggers; the full list feeds
// relevance scoring.
type PersonaClass struct {
	Type     string
	Keywords []string
}

// Taxonomy is the immutable keyword and weight configuration behind
// persona/job profiling. It is built once at startup and passed into the
// profiler explicitly so tests can substitute alternate taxonomies.
type Taxonomy struct {
	// Personas are tried in order; the first match wins.
	Personas []PersonaClass

	// FallbackPersonas maps secondary trigger words to persona types,
	// checked in order when no primary class matches.
	FallbackPersonas []PersonaClass

	// JobClasses are tried in order; the first trigger substring wins.
	JobClasses []JobClass

	// JobWeights maps job types to per-topic importance weights.
	JobWeights map[string]map[string]float64
}

// JobClass is one job category with its trigger substrings.
type JobClass struct {
	Type     string
	Triggers []string
}

// DefaultTaxonomy returns the built-in persona/job taxonomy.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		Personas: []PersonaClass{
			{PersonaResearcher, []string{"research", "methodology", "findings", "literature", "study", "analysis", "experiment"}},
			{PersonaStudent, []string{"concept", "definition", "example", "summary", "key", "important", "chapter"}},
			{PersonaAnalyst, []string{"trend", "data", "performance", "metric", "revenue", "growth", "market"}},
			{PersonaInvestor, []string{"financial", "revenue", "profit", "growth", "risk", "investment", "return"}},
			{PersonaEngineer, []string{"technical", "implementation", "system", "design", "architecture", "specification"}},
			{PersonaManager, []string{"strategy", "planning", "decision", "team", "process", "outcome", "objective"}},
		},
		FallbackPersonas: []PersonaClass{
			{PersonaResearcher, []string{"phd", "research", "scientist"}},
			{PersonaStudent, []string{"student", "undergraduate", "graduate"}},
			{PersonaAnalyst, []string{"analyst", "investment", "financial"}},
		},
		JobClasses: []JobClass{
			{JobLiteratureReview, []string{"literature review", "review", "survey"}},
			{JobExamPreparation, []string{"exam", "study", "preparation", "learn"}},
			{JobFinancialAnalysis, []string{"financial", "revenue", "analyze"}},
			{JobTechnicalReview, []string{"technical", "implementation", "system"}},
		},
		JobWeights: map[string]map[string]float64{
			JobLiteratureReview:  {"methodology": 0.3, "results": 0.25, "discussion": 0.2, "conclusion": 0.15},
			JobExamPreparation:   {"definition": 0.3, "example": 0.25, "summary": 0.2, "exercise": 0.15},
			JobFinancialAnalysis: {"revenue": 0.3, "expenses": 0.2, "growth": 0.2, "forecast": 0.15},
			JobTechnicalReview:   {"specification": 0.3, "implementation": 0.25, "performance": 0.2},
		},
	}
}
