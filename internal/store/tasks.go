package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	stderrors "dashboard-core/internal/common/errors"
	"dashboard-core/internal/common/logger"
	"dashboard-core/internal/common/metrics"
	"dashboard-core/internal/models"
	"dashboard-core/internal/notify"
)

// TaskAPI is the remote surface the task slice fetches from and
// creates through. internal/api.TaskService satisfies it.
type TaskAPI interface {
	List(ctx context.Context) ([]models.Task, error)
	Create(ctx context.Context, task models.Task) (models.Task, error)
}

// TaskSlice owns the task collection. All access goes through the
// mutex; snapshot accessors return copies so callers can never mutate
// shared state in place.
type TaskSlice struct {
	mu      sync.Mutex
	tasks   []models.Task
	status  Status
	lastErr string
	gen     uint64

	api      TaskAPI
	logger   logger.Logger
	notifier notify.Notifier
}

func newTaskSlice(api TaskAPI, log logger.Logger, notifier notify.Notifier) *TaskSlice {
	return &TaskSlice{
		status:   StatusIdle,
		api:      api,
		logger:   log.WithFields(map[string]interface{}{"slice": "tasks"}),
		notifier: notifier,
	}
}

// Fetch replaces the collection with the remote state. It transitions
// Idle/Succeeded/Failed -> Loading immediately; on completion it
// applies the result only if no newer fetch has started since, so a
// stale response can never overwrite fresher state. A failed fetch
// keeps the previous collection and surfaces only the error message.
func (s *TaskSlice) Fetch(ctx context.Context) error {
	s.mu.Lock()
	if s.api == nil {
		s.mu.Unlock()
		return errNoAPI
	}
	s.gen++
	gen := s.gen
	s.status = StatusLoading
	s.lastErr = ""
	s.mu.Unlock()

	start := time.Now()
	tasks, err := s.api.List(ctx)
	metrics.FetchDuration.WithLabelValues("tasks").Observe(time.Since(start).Seconds())

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		metrics.FetchesDiscarded.WithLabelValues("tasks").Inc()
		s.logger.Debug("stale fetch result discarded", map[string]interface{}{"generation": gen})
		return nil
	}

	if err != nil {
		msg, code := fetchFailure(err)
		s.status = StatusFailed
		s.lastErr = msg
		metrics.FetchesFailed.WithLabelValues("tasks", string(code)).Inc()
		s.logger.Warn("task fetch failed", map[string]interface{}{
			"error":    msg,
			"category": stderrors.GetErrorCategory(code),
		})
		s.notifier.Error("Failed to fetch tasks")
		return err
	}

	s.tasks = tasks
	s.status = StatusSucceeded
	metrics.FetchesCompleted.WithLabelValues("tasks").Inc()
	s.logger.Info("tasks loaded", map[string]interface{}{"count": len(tasks)})
	return nil
}

// Create posts the task to the remote API and appends the returned
// record on success.
func (s *TaskSlice) Create(ctx context.Context, task models.Task) (models.Task, error) {
	if s.api == nil {
		return models.Task{}, errNoAPI
	}
	created, err := s.api.Create(ctx, task)
	if err != nil {
		s.notifier.Error("Failed to create task")
		return models.Task{}, err
	}
	s.Add(created)
	s.notifier.Success("Task created")
	return created, nil
}

// Set replaces the whole collection.
func (s *TaskSlice) Set(tasks []models.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append([]models.Task(nil), tasks...)
	metrics.MutationsApplied.WithLabelValues("tasks", "set").Inc()
}

// Add appends a task, assigning an id when the caller left it empty.
func (s *TaskSlice) Add(task models.Task) models.Task {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
	metrics.MutationsApplied.WithLabelValues("tasks", "add").Inc()
	return task
}

// Update replaces the task with the same id. Unknown ids are a no-op,
// matching the whole-record replace contract.
func (s *TaskSlice) Update(task models.Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == task.ID {
			s.tasks[i] = task
			metrics.MutationsApplied.WithLabelValues("tasks", "update").Inc()
			return true
		}
	}
	return false
}

// Remove deletes the task with the given id, reporting whether it
// existed.
func (s *TaskSlice) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			metrics.MutationsApplied.WithLabelValues("tasks", "remove").Inc()
			return true
		}
	}
	return false
}

// Tasks returns a copy of the collection.
func (s *TaskSlice) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Task(nil), s.tasks...)
}

// Status returns the fetch state and the last error message (empty
// unless Failed).
func (s *TaskSlice) Status() (Status, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.lastErr
}
