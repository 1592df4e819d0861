package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard-core/internal/models"
)

// ==========================
// Task Filter Tests
// ==========================

func TestTaskFilter(t *testing.T) {
	tasks := []models.Task{
		{ID: "1", Title: "Ship release", Description: "cut the tag", AssignedTo: "alice", Priority: models.TaskPriorityHigh, Status: models.TaskStatusTodo, DueDate: "2024-06-10"},
		{ID: "2", Title: "Review PR", Description: "backend changes", AssignedTo: "bob", Priority: models.TaskPriorityLow, Status: models.TaskStatusCompleted, DueDate: "2024-06-20"},
		{ID: "3", Title: "Fix login bug", Description: "session expires early", AssignedTo: "alice", Priority: models.TaskPriorityHigh, Status: models.TaskStatusInProgress, DueDate: "2024-07-01"},
	}

	tests := []struct {
		name     string
		filter   TaskFilter
		expected []string
	}{
		{
			name:     "empty filter matches everything",
			filter:   TaskFilter{},
			expected: []string{"1", "2", "3"},
		},
		{
			name:     "search matches title case insensitively",
			filter:   TaskFilter{Search: "RELEASE"},
			expected: []string{"1"},
		},
		{
			name:     "search matches description",
			filter:   TaskFilter{Search: "session"},
			expected: []string{"3"},
		},
		{
			name:     "search matches assignee",
			filter:   TaskFilter{Search: "alice"},
			expected: []string{"1", "3"},
		},
		{
			name:     "status criterion",
			filter:   TaskFilter{Status: models.TaskStatusCompleted},
			expected: []string{"2"},
		},
		{
			name:     "criteria combine with AND",
			filter:   TaskFilter{Search: "alice", Priority: models.TaskPriorityHigh, Status: models.TaskStatusTodo},
			expected: []string{"1"},
		},
		{
			name:     "due date range is inclusive",
			filter:   TaskFilter{DueFrom: "2024-06-10", DueTo: "2024-06-20"},
			expected: []string{"1", "2"},
		},
		{
			name:     "open-ended range",
			filter:   TaskFilter{DueFrom: "2024-06-15"},
			expected: []string{"2", "3"},
		},
		{
			name:     "no matches",
			filter:   TaskFilter{Search: "nonexistent"},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(tasks)
			var ids []string
			for _, task := range got {
				ids = append(ids, task.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

// ==========================
// Lead Filter Tests
// ==========================

func TestLeadFilter(t *testing.T) {
	leads := []models.Lead{
		{ID: "1", Name: "Acme Corp", Company: "Acme", Email: "sales@acme.io", Status: models.LeadStatusNew, Budget: 5000, Probability: 20},
		{ID: "2", Name: "Globex", Company: "Globex Inc", Email: "info@globex.com", Status: models.LeadStatusQualified, Budget: 75000, Probability: 60},
		{ID: "3", Name: "Initech", Company: "Initech", Email: "hello@initech.dev", Status: models.LeadStatusQualified, Budget: 250000, Probability: 90},
	}

	tests := []struct {
		name     string
		filter   LeadFilter
		expected []string
	}{
		{
			name:     "empty filter matches everything",
			filter:   LeadFilter{},
			expected: []string{"1", "2", "3"},
		},
		{
			name:     "search matches company",
			filter:   LeadFilter{Search: "globex"},
			expected: []string{"2"},
		},
		{
			name:     "budget bucket small",
			filter:   LeadFilter{BudgetBucket: BudgetBucketSmall},
			expected: []string{"1"},
		},
		{
			name:     "budget bucket large",
			filter:   LeadFilter{BudgetBucket: BudgetBucketLarge},
			expected: []string{"2"},
		},
		{
			name:     "budget bucket major",
			filter:   LeadFilter{BudgetBucket: BudgetBucketMajor},
			expected: []string{"3"},
		},
		{
			name:     "unknown bucket matches nothing",
			filter:   LeadFilter{BudgetBucket: "mystery"},
			expected: nil,
		},
		{
			name:     "probability range inclusive",
			filter:   LeadFilter{MinProbability: 20, MaxProbability: 60},
			expected: []string{"1", "2"},
		},
		{
			name:     "zero max leaves range inactive",
			filter:   LeadFilter{MinProbability: 50},
			expected: []string{"1", "2", "3"},
		},
		{
			name:     "status and range combine",
			filter:   LeadFilter{Status: models.LeadStatusQualified, MinProbability: 80, MaxProbability: 100},
			expected: []string{"3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(leads)
			var ids []string
			for _, lead := range got {
				ids = append(ids, lead.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

// ==========================
// Transaction Filter Tests
// ==========================

func TestTransactionFilter(t *testing.T) {
	transactions := []models.Transaction{
		{ID: "1", Type: models.TransactionIncome, Description: "Invoice 42", Reference: "INV-42", Category: "sales", Status: models.TransactionCompleted, Date: "2024-06-01"},
		{ID: "2", Type: models.TransactionExpense, Description: "Office chairs", Reference: "PO-9", Category: "office", Status: models.TransactionPending, Date: "2024-06-15"},
		{ID: "3", Type: models.TransactionExpense, Description: "Flight to client", Reference: "", Category: "travel", Status: models.TransactionCompleted, Date: "2024-07-02"},
	}

	tests := []struct {
		name     string
		filter   TransactionFilter
		expected []string
	}{
		{
			name:     "empty filter matches everything",
			filter:   TransactionFilter{},
			expected: []string{"1", "2", "3"},
		},
		{
			name:     "search matches reference",
			filter:   TransactionFilter{Search: "inv-42"},
			expected: []string{"1"},
		},
		{
			name:     "search matches category",
			filter:   TransactionFilter{Search: "travel"},
			expected: []string{"3"},
		},
		{
			name:     "type criterion",
			filter:   TransactionFilter{Type: models.TransactionExpense},
			expected: []string{"2", "3"},
		},
		{
			name:     "status criterion",
			filter:   TransactionFilter{Status: models.TransactionPending},
			expected: []string{"2"},
		},
		{
			name:     "date range",
			filter:   TransactionFilter{DateFrom: "2024-06-01", DateTo: "2024-06-30"},
			expected: []string{"1", "2"},
		},
		{
			name:     "type and date combine",
			filter:   TransactionFilter{Type: models.TransactionExpense, DateFrom: "2024-07-01"},
			expected: []string{"3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(transactions)
			var ids []string
			for _, tx := range got {
				ids = append(ids, tx.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestFilterPreservesInputOrder(t *testing.T) {
	tasks := []models.Task{
		{ID: "c", Title: "match"},
		{ID: "a", Title: "match"},
		{ID: "b", Title: "match"},
	}

	got := TaskFilter{Search: "match"}.Apply(tasks)

	require.Len(t, got, 3)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
	assert.Equal(t, "b", got[2].ID)
}
