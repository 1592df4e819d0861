package scoring

import (
	"sort"
	"strings"

	"dashboard-core/internal/models"
)

// MaxLeadScore caps the combined lead score.
const MaxLeadScore = 100

// leadStatusScores is the base score per pipeline stage. Stages absent
// from the table (e.g. lost) contribute nothing.
var leadStatusScores = map[models.LeadStatus]int{
	models.LeadStatusNew:         10,
	models.LeadStatusContacted:   20,
	models.LeadStatusQualified:   30,
	models.LeadStatusProposal:    40,
	models.LeadStatusNegotiation: 50,
	models.LeadStatusClosed:      60,
}

// LeadScore rates a lead from 0 to 100. The base comes from the
// pipeline stage; budget size, stated timeline and acquisition source
// each add an optional bonus. Missing optional fields contribute zero,
// so the function is total over any lead value.
func LeadScore(lead models.Lead) int {
	score := leadStatusScores[lead.Status]

	// Budget bands, highest first; first match wins.
	switch {
	case lead.Budget > 100000:
		score += 30
	case lead.Budget > 50000:
		score += 20
	case lead.Budget > 10000:
		score += 10
	}

	if lead.Timeline != "" {
		timeline := strings.ToLower(lead.Timeline)
		switch {
		case strings.Contains(timeline, "immediate") || strings.Contains(timeline, "urgent"):
			score += 20
		case strings.Contains(timeline, "month"):
			score += 15
		case strings.Contains(timeline, "quarter"):
			score += 10
		}
	}

	if lead.Source != "" {
		source := strings.ToLower(lead.Source)
		switch {
		case strings.Contains(source, "referral"):
			score += 15
		case strings.Contains(source, "website"):
			score += 10
		case strings.Contains(source, "social"):
			score += 5
		}
	}

	if score > MaxLeadScore {
		score = MaxLeadScore
	}
	return score
}

// SortLeadsByScore returns a new slice sorted by descending score.
// The sort is stable, so equal scores keep their input order.
func SortLeadsByScore(leads []models.Lead) []models.Lead {
	sorted := make([]models.Lead, len(leads))
	copy(sorted, leads)
	sort.SliceStable(sorted, func(i, j int) bool {
		return LeadScore(sorted[i]) > LeadScore(sorted[j])
	})
	return sorted
}

// LeadsByStatus returns the leads in the given pipeline stage,
// preserving input order.
func LeadsByStatus(leads []models.Lead, status models.LeadStatus) []models.Lead {
	var out []models.Lead
	for _, lead := range leads {
		if lead.Status == status {
			out = append(out, lead)
		}
	}
	return out
}

// LeadsByScoreRange returns leads whose score falls within [min, max]
// inclusive, preserving input order.
func LeadsByScoreRange(leads []models.Lead, min, max int) []models.Lead {
	var out []models.Lead
	for _, lead := range leads {
		if score := LeadScore(lead); score >= min && score <= max {
			out = append(out, lead)
		}
	}
	return out
}

// LeadConversionRate returns the percentage of leads that reached the
// closed stage. Empty input yields 0.
func LeadConversionRate(leads []models.Lead) float64 {
	if len(leads) == 0 {
		return 0
	}
	closed := 0
	for _, lead := range leads {
		if lead.Status == models.LeadStatusClosed {
			closed++
		}
	}
	return float64(closed) / float64(len(leads)) * 100
}

// AverageLeadScore returns the mean score across all leads, 0 when
// there are none.
func AverageLeadScore(leads []models.Lead) float64 {
	if len(leads) == 0 {
		return 0
	}
	total := 0
	for _, lead := range leads {
		total += LeadScore(lead)
	}
	return float64(total) / float64(len(leads))
}

// PipelineMetrics is a per-collection rollup used by the pipeline
// summary display.
type PipelineMetrics struct {
	Total          int                       `json:"total"`
	ByStatus       map[models.LeadStatus]int `json:"byStatus"`
	AverageScore   float64                   `json:"averageScore"`
	ConversionRate float64                   `json:"conversionRate"`
}

// LeadPipelineMetrics computes counts per stage plus average score and
// conversion rate over the whole collection.
func LeadPipelineMetrics(leads []models.Lead) PipelineMetrics {
	metrics := PipelineMetrics{
		Total:          len(leads),
		ByStatus:       make(map[models.LeadStatus]int),
		AverageScore:   AverageLeadScore(leads),
		ConversionRate: LeadConversionRate(leads),
	}
	for _, lead := range leads {
		metrics.ByStatus[lead.Status]++
	}
	return metrics
}
