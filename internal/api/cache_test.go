package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard-core/internal/common/config"
	"dashboard-core/internal/common/logger"
	"dashboard-core/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func newMiniredisCache(t *testing.T, ttl time.Duration) (*SnapshotCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewSnapshotCache(client, ttl, logger.NewTestLogger(t)), mr
}

// ==========================
// Snapshot Cache Tests
// ==========================

func TestSnapshotCache_RoundTrip(t *testing.T) {
	cache, _ := newMiniredisCache(t, time.Minute)
	ctx := context.Background()

	assert.Nil(t, cache.Get(ctx, "tasks"))

	payload := []byte(`[{"id":"1"}]`)
	cache.Set(ctx, "tasks", payload)
	assert.Equal(t, payload, cache.Get(ctx, "tasks"))

	// Entities are keyed independently.
	assert.Nil(t, cache.Get(ctx, "leads"))

	cache.Invalidate(ctx, "tasks")
	assert.Nil(t, cache.Get(ctx, "tasks"))
}

func TestSnapshotCache_TTLExpiry(t *testing.T) {
	cache, mr := newMiniredisCache(t, 30*time.Second)
	ctx := context.Background()

	cache.Set(ctx, "tasks", []byte(`[]`))
	require.NotNil(t, cache.Get(ctx, "tasks"))

	mr.FastForward(31 * time.Second)
	assert.Nil(t, cache.Get(ctx, "tasks"))
}

func TestSnapshotCache_NilSafe(t *testing.T) {
	var cache *SnapshotCache
	ctx := context.Background()

	assert.Nil(t, cache.Get(ctx, "tasks"))
	cache.Set(ctx, "tasks", []byte(`[]`))
	cache.Invalidate(ctx, "tasks")
}

func TestSnapshotCache_ReadErrorDegradesToMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectGet("snapshot:tasks").SetErr(errors.New("connection reset"))

	cache := NewSnapshotCache(client, time.Minute, logger.NewTestLogger(t))

	assert.Nil(t, cache.Get(context.Background(), "tasks"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Cache-Aside Integration Tests
// ==========================

func TestTaskService_ListUsesCache(t *testing.T) {
	tasks := []models.Task{
		{ID: "1", Title: "Cached task", Priority: models.TaskPriorityLow, Status: models.TaskStatusTodo},
	}
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(tasks))
	}))
	t.Cleanup(server.Close)

	client := NewClient(config.APIConfig{BaseURL: server.URL, Timeout: 2000}, logger.NewTestLogger(t))
	cache, _ := newMiniredisCache(t, time.Minute)
	service := NewTaskService(client, cache)
	ctx := context.Background()

	first, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Second list is served from the snapshot without touching the API.
	second, err := service.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), atomic.LoadInt64(&hits))
}

func TestTaskService_CreateInvalidatesCache(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/tasks", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			require.NoError(t, json.NewEncoder(w).Encode([]models.Task{
				{ID: "1", Title: "One", Priority: models.TaskPriorityLow, Status: models.TaskStatusTodo},
			}))
		case http.MethodPost:
			require.NoError(t, json.NewEncoder(w).Encode(models.Task{
				ID: "2", Title: "Two", Priority: models.TaskPriorityLow, Status: models.TaskStatusTodo,
			}))
		}
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewClient(config.APIConfig{BaseURL: server.URL, Timeout: 2000}, logger.NewTestLogger(t))
	cache, mr := newMiniredisCache(t, time.Minute)
	service := NewTaskService(client, cache)
	ctx := context.Background()

	_, err := service.List(ctx)
	require.NoError(t, err)
	require.True(t, mr.Exists("snapshot:tasks"))

	_, err = service.Create(ctx, models.Task{Title: "Two", Priority: models.TaskPriorityLow, Status: models.TaskStatusTodo})
	require.NoError(t, err)
	assert.False(t, mr.Exists("snapshot:tasks"))
}
