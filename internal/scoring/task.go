package scoring

import (
	"sort"
	"time"

	"dashboard-core/internal/models"
)

var taskPriorityScores = map[models.TaskPriority]int{
	models.TaskPriorityHigh:   3,
	models.TaskPriorityMedium: 2,
	models.TaskPriorityLow:    1,
}

// taskStatusScores weights open work over finished work. Completed
// tasks score zero here; blocked tasks carry no status weight either
// since they cannot be acted on.
var taskStatusScores = map[models.TaskStatus]int{
	models.TaskStatusTodo:       3,
	models.TaskStatusInProgress: 2,
	models.TaskStatusCompleted:  0,
}

// TaskPriorityScore rates how urgently a task needs attention at the
// given reference time: declared priority plus workflow state plus a
// deadline-urgency bonus. There is no upper bound. An unparseable or
// empty due date contributes no urgency bonus.
func TaskPriorityScore(task models.Task, now time.Time) int {
	score := taskPriorityScores[task.Priority]
	score += taskStatusScores[task.Status]

	due, ok := ParseDate(task.DueDate)
	if !ok {
		return score
	}

	days := DaysUntil(now, due)
	switch {
	case IsOverdue(now, due):
		score += 5
	case days <= 1:
		score += 4
	case days <= 3:
		score += 3
	case days <= 7:
		score += 2
	}
	return score
}

// SortTasksByPriority returns a new slice sorted by descending
// priority score at the reference time. The sort is stable, so ties
// keep their input order and resorting is idempotent.
func SortTasksByPriority(tasks []models.Task, now time.Time) []models.Task {
	sorted := make([]models.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return TaskPriorityScore(sorted[i], now) > TaskPriorityScore(sorted[j], now)
	})
	return sorted
}

// TaskProgress returns the percentage of tasks completed, 0 when the
// collection is empty.
func TaskProgress(tasks []models.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, task := range tasks {
		if task.Status == models.TaskStatusCompleted {
			completed++
		}
	}
	return float64(completed) / float64(len(tasks)) * 100
}

// TasksByStatus filters tasks by workflow state, preserving order.
func TasksByStatus(tasks []models.Task, status models.TaskStatus) []models.Task {
	var out []models.Task
	for _, task := range tasks {
		if task.Status == status {
			out = append(out, task)
		}
	}
	return out
}

// TasksByPriority filters tasks by declared priority, preserving order.
func TasksByPriority(tasks []models.Task, priority models.TaskPriority) []models.Task {
	var out []models.Task
	for _, task := range tasks {
		if task.Priority == priority {
			out = append(out, task)
		}
	}
	return out
}

// TasksByAssignee filters tasks by assignee, preserving order.
func TasksByAssignee(tasks []models.Task, assignee string) []models.Task {
	var out []models.Task
	for _, task := range tasks {
		if task.AssignedTo == assignee {
			out = append(out, task)
		}
	}
	return out
}
