package api

import (
	"context"
	"encoding/json"
	"fmt"

	stderrors "dashboard-core/internal/common/errors"
	"dashboard-core/internal/models"
)

const taskEntity = "tasks"

// TaskService talks to the /tasks endpoints.
type TaskService struct {
	client *Client
	cache  *SnapshotCache
}

// NewTaskService builds a task service. cache may be nil.
func NewTaskService(client *Client, cache *SnapshotCache) *TaskService {
	return &TaskService{client: client, cache: cache}
}

// List fetches all tasks, consulting the snapshot cache first. The
// payload is schema-validated before use.
func (s *TaskService) List(ctx context.Context) ([]models.Task, error) {
	if data := s.cache.Get(ctx, taskEntity); data != nil {
		var tasks []models.Task
		if err := json.Unmarshal(data, &tasks); err == nil {
			return tasks, nil
		}
	}

	data, err := s.client.get(ctx, "/tasks")
	if err != nil {
		return nil, wrapFetchErr(taskEntity, err)
	}
	if err := validatePayload(taskListLoader, data); err != nil {
		return nil, stderrors.NewInvalidResponseError(taskEntity, err.Error())
	}

	var tasks []models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	s.cache.Set(ctx, taskEntity, data)
	return tasks, nil
}

// Create posts a new task and returns the server's record. Enum
// fields are checked before the request leaves the process.
func (s *TaskService) Create(ctx context.Context, task models.Task) (models.Task, error) {
	if !task.Priority.Valid() || !task.Status.Valid() {
		return models.Task{}, stderrors.NewValidationFailedError(
			fmt.Sprintf("task priority %q or status %q is not a known value", task.Priority, task.Status))
	}

	data, err := s.client.post(ctx, "/tasks", task)
	if err != nil {
		return models.Task{}, wrapCreateErr(taskEntity, err)
	}

	var created models.Task
	if err := json.Unmarshal(data, &created); err != nil {
		return models.Task{}, fmt.Errorf("decode created task: %w", err)
	}

	s.cache.Invalidate(ctx, taskEntity)
	return created, nil
}

// Update replaces a task record by id.
func (s *TaskService) Update(ctx context.Context, task models.Task) (models.Task, error) {
	data, err := s.client.put(ctx, "/tasks/"+task.ID, task)
	if err != nil {
		return models.Task{}, err
	}

	var updated models.Task
	if err := json.Unmarshal(data, &updated); err != nil {
		return models.Task{}, fmt.Errorf("decode updated task: %w", err)
	}

	s.cache.Invalidate(ctx, taskEntity)
	return updated, nil
}

// Delete removes a task record by id.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	if err := s.client.delete(ctx, "/tasks/"+id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, taskEntity)
	return nil
}
