package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard-core/internal/common/config"
	stderrors "dashboard-core/internal/common/errors"
	"dashboard-core/internal/common/logger"
	"dashboard-core/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(config.APIConfig{
		BaseURL: server.URL,
		Token:   "test-token",
		Timeout: 2000,
	}, logger.NewTestLogger(t))
	return client, server
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

// ==========================
// Client Tests
// ==========================

func TestClient_AuthorizationHeader(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(t, w, http.StatusOK, []models.Task{})
	}))

	_, err := client.get(context.Background(), "/tasks")

	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
}

func TestClient_ErrorPayloadMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadGateway, map[string]string{"message": "upstream unavailable"})
	}))

	_, err := client.get(context.Background(), "/tasks")

	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "upstream unavailable", apiErr.Message)
}

func TestClient_ErrorWithoutPayload(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.get(context.Background(), "/tasks")

	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "500")
}

// ==========================
// Task Service Tests
// ==========================

func TestTaskService_List(t *testing.T) {
	tasks := []models.Task{
		{ID: "1", Title: "Ship it", Priority: models.TaskPriorityHigh, Status: models.TaskStatusTodo},
	}
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tasks", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		writeJSON(t, w, http.StatusOK, tasks)
	}))

	got, err := NewTaskService(client, nil).List(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ship it", got[0].Title)
}

func TestTaskService_ListRejectsInvalidPayload(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Unknown priority value.
		_, _ = w.Write([]byte(`[{"id": "1", "title": "bad", "priority": "critical", "status": "todo"}]`))
	}))

	_, err := NewTaskService(client, nil).List(context.Background())

	require.Error(t, err)
	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeInvalidResponse, stdErr.Code)
	assert.False(t, stdErr.Retryable)
}

func TestTaskService_ListWrapsTransportError(t *testing.T) {
	client := NewClient(config.APIConfig{
		BaseURL: "http://127.0.0.1:1", // nothing listens here
		Timeout: 500,
	}, logger.NewTestLogger(t))

	_, err := NewTaskService(client, nil).List(context.Background())

	require.Error(t, err)
	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, "FETCH", stderrors.GetErrorCategory(stdErr.Code))
	assert.True(t, stdErr.Retryable)
}

func TestTaskService_Create(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var task models.Task
		require.NoError(t, json.NewDecoder(r.Body).Decode(&task))
		task.ID = "42"
		writeJSON(t, w, http.StatusCreated, task)
	}))

	created, err := NewTaskService(client, nil).Create(context.Background(), models.Task{
		Title: "new", Priority: models.TaskPriorityMedium, Status: models.TaskStatusTodo,
	})

	require.NoError(t, err)
	assert.Equal(t, "42", created.ID)
	assert.Equal(t, "new", created.Title)
}

func TestTaskService_CreateRejectsUnknownEnums(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request must not reach the server")
	}))

	_, err := NewTaskService(client, nil).Create(context.Background(), models.Task{
		Title: "bad", Priority: "critical", Status: models.TaskStatusTodo,
	})

	require.Error(t, err)
	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeValidationFailed, stdErr.Code)
	assert.False(t, stdErr.Retryable)
}

func TestTaskService_Update(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/tasks/42", r.URL.Path)
		var task models.Task
		require.NoError(t, json.NewDecoder(r.Body).Decode(&task))
		writeJSON(t, w, http.StatusOK, task)
	}))

	updated, err := NewTaskService(client, nil).Update(context.Background(), models.Task{ID: "42", Title: "renamed"})

	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
}

func TestTaskService_Delete(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/tasks/42", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	assert.NoError(t, NewTaskService(client, nil).Delete(context.Background(), "42"))
}

// ==========================
// Lead and Transaction Service Tests
// ==========================

func TestLeadService_List(t *testing.T) {
	leads := []models.Lead{
		{ID: "1", Name: "Acme", Status: models.LeadStatusQualified, Probability: 60},
	}
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/leads", r.URL.Path)
		writeJSON(t, w, http.StatusOK, leads)
	}))

	got, err := NewLeadService(client, nil).List(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.LeadStatusQualified, got[0].Status)
}

func TestTransactionService_List(t *testing.T) {
	transactions := []models.Transaction{
		{ID: "1", Type: models.TransactionIncome, Amount: 100, Category: "sales", Status: models.TransactionCompleted, Date: "2024-06-01"},
	}
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transactions", r.URL.Path)
		writeJSON(t, w, http.StatusOK, transactions)
	}))

	got, err := NewTransactionService(client, nil).List(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 100.0, got[0].Amount, 0.001)
}

func TestTransactionService_ListRejectsNegativeAmount(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id": "1", "type": "income", "amount": -5, "category": "sales"}]`))
	}))

	_, err := NewTransactionService(client, nil).List(context.Background())

	require.Error(t, err)
	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeInvalidResponse, stdErr.Code)
}

func TestTransactionService_CreateRejectsNegativeAmount(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request must not reach the server")
	}))

	_, err := NewTransactionService(client, nil).Create(context.Background(), models.Transaction{
		Type: models.TransactionExpense, Status: models.TransactionPending, Amount: -10, Category: "office",
	})

	require.Error(t, err)
	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeValidationFailed, stdErr.Code)
}

// ==========================
// File Service Tests
// ==========================

func TestFileService_Upload(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "task", r.FormValue("entityType"))
		assert.Equal(t, "task-7", r.FormValue("entityId"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "notes.txt", header.Filename)

		writeJSON(t, w, http.StatusCreated, models.FileAttachment{
			ID:         "file-1",
			FileName:   header.Filename,
			EntityType: models.EntityTask,
			EntityID:   "task-7",
		})
	}))

	attachment, err := NewFileService(client).Upload(
		context.Background(), "notes.txt", strings.NewReader("hello"), models.EntityTask, "task-7")

	require.NoError(t, err)
	assert.Equal(t, "file-1", attachment.ID)
	assert.Equal(t, models.EntityTask, attachment.EntityType)
}

func TestFileService_ListByEntity(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/entity/lead/lead-3", r.URL.Path)
		writeJSON(t, w, http.StatusOK, []models.FileAttachment{{ID: "file-9"}})
	}))

	attachments, err := NewFileService(client).ListByEntity(context.Background(), models.EntityLead, "lead-3")

	require.NoError(t, err)
	require.Len(t, attachments, 1)
	assert.Equal(t, "file-9", attachments[0].ID)
}
