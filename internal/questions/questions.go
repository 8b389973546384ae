// Package questions turns analysis gaps, risks, and research discrepancies
// into prioritized due diligence questions.
package questions

import "time"

// Priority ranks a question by how much an unanswered one blocks a deal.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Category groups questions by subject area.
type Category string

const (
	CategoryFinancial   Category = "financial"
	CategoryTechnical   Category = "technical"
	CategoryTeam        Category = "team"
	CategoryMarket      Category = "market"
	CategoryLegal       Category = "legal"
	CategoryProduct     Category = "product"
	CategoryCompetitive Category = "competitive"
	CategoryOperational Category = "operational"
)

// Question is a single due diligence question, always tied to the data
// point that triggered it.
type Question struct {
	Question         string   `json:"question"`
	Category         Category `json:"category"`
	Priority         Priority `json:"priority"`
	TriggeredBy      string   `json:"triggered_by"`
	RiskCategory     string   `json:"risk_category,omitempty"`
	SuggestedSources []string `json:"suggested_sources"`
	Context          string   `json:"context,omitempty"`
}

// Set is the full question output, bucketed by priority.
type Set struct {
	Critical       []Question `json:"critical"`
	HighPriority   []Question `json:"high_priority"`
	MediumPriority []Question `json:"medium_priority"`
	LowPriority    []Question `json:"low_priority"`

	TotalCount  int       `json:"total_count"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Categorize buckets questions by priority. Unknown priorities land in
// the low bucket rather than being dropped.
func Categorize(list []Question) *Set {
	set := &Set{GeneratedAt: time.Now().UTC()}
	for _, q := range list {
		switch q.Priority {
		case PriorityCritical:
			set.Critical = append(set.Critical, q)
		case PriorityHigh:
			set.HighPriority = append(set.HighPriority, q)
		case PriorityMedium:
			set.MediumPriority = append(set.MediumPriority, q)
		default:
			set.LowPriority = append(set.LowPriority, q)
		}
	}
	set.TotalCount = len(list)
	return set
}
