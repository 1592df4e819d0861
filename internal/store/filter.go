package store

import (
	"strings"

	"dashboard-core/internal/models"
)

// Filters are pure predicate composition: every set criterion must
// pass (logical AND), an unset criterion always passes, and free-text
// search is a case-insensitive substring match OR-ed across the
// configured fields. Output preserves input order.

// matchesSearch reports whether the query is a case-insensitive
// substring of any of the fields. An empty query matches everything.
func matchesSearch(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	query = strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

// inDateRange checks an inclusive [from, to] range over ISO date
// strings; either bound may be empty. ISO dates compare correctly as
// strings.
func inDateRange(date, from, to string) bool {
	if from != "" && date < from {
		return false
	}
	if to != "" && date > to {
		return false
	}
	return true
}

// TaskFilter selects tasks. Search covers title, description and
// assignee.
type TaskFilter struct {
	Search   string
	Status   models.TaskStatus
	Priority models.TaskPriority
	DueFrom  string
	DueTo    string
}

func (f TaskFilter) Match(task models.Task) bool {
	if !matchesSearch(f.Search, task.Title, task.Description, task.AssignedTo) {
		return false
	}
	if f.Status != "" && task.Status != f.Status {
		return false
	}
	if f.Priority != "" && task.Priority != f.Priority {
		return false
	}
	return inDateRange(task.DueDate, f.DueFrom, f.DueTo)
}

// Apply returns the tasks matching the filter, in input order.
func (f TaskFilter) Apply(tasks []models.Task) []models.Task {
	var out []models.Task
	for _, task := range tasks {
		if f.Match(task) {
			out = append(out, task)
		}
	}
	return out
}

// Budget bucket labels used by the lead list UI.
const (
	BudgetBucketSmall  = "under-10k"
	BudgetBucketMedium = "10k-50k"
	BudgetBucketLarge  = "50k-100k"
	BudgetBucketMajor  = "over-100k"
)

func budgetInBucket(budget float64, bucket string) bool {
	switch bucket {
	case BudgetBucketSmall:
		return budget < 10000
	case BudgetBucketMedium:
		return budget >= 10000 && budget < 50000
	case BudgetBucketLarge:
		return budget >= 50000 && budget < 100000
	case BudgetBucketMajor:
		return budget >= 100000
	default:
		// Unknown labels never match; empty is handled by the caller.
		return false
	}
}

// LeadFilter selects leads. Search covers name, company and email.
// The probability range is inclusive and active only when MaxProbability
// is positive.
type LeadFilter struct {
	Search         string
	Status         models.LeadStatus
	BudgetBucket   string
	MinProbability int
	MaxProbability int
}

func (f LeadFilter) Match(lead models.Lead) bool {
	if !matchesSearch(f.Search, lead.Name, lead.Company, lead.Email) {
		return false
	}
	if f.Status != "" && lead.Status != f.Status {
		return false
	}
	if f.BudgetBucket != "" && !budgetInBucket(lead.Budget, f.BudgetBucket) {
		return false
	}
	if f.MaxProbability > 0 {
		if lead.Probability < f.MinProbability || lead.Probability > f.MaxProbability {
			return false
		}
	}
	return true
}

// Apply returns the leads matching the filter, in input order.
func (f LeadFilter) Apply(leads []models.Lead) []models.Lead {
	var out []models.Lead
	for _, lead := range leads {
		if f.Match(lead) {
			out = append(out, lead)
		}
	}
	return out
}

// TransactionFilter selects transactions. Search covers description,
// reference and category.
type TransactionFilter struct {
	Search   string
	Type     models.TransactionType
	Status   models.TransactionStatus
	DateFrom string
	DateTo   string
}

func (f TransactionFilter) Match(tx models.Transaction) bool {
	if !matchesSearch(f.Search, tx.Description, tx.Reference, tx.Category) {
		return false
	}
	if f.Type != "" && tx.Type != f.Type {
		return false
	}
	if f.Status != "" && tx.Status != f.Status {
		return false
	}
	return inDateRange(tx.Date, f.DateFrom, f.DateTo)
}

// Apply returns the transactions matching the filter, in input order.
func (f TransactionFilter) Apply(transactions []models.Transaction) []models.Transaction {
	var out []models.Transaction
	for _, tx := range transactions {
		if f.Match(tx) {
			out = append(out, tx)
		}
	}
	return out
}
