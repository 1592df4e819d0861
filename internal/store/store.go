package store

import (
	"errors"

	"dashboard-core/internal/api"
	stderrors "dashboard-core/internal/common/errors"
	"dashboard-core/internal/common/logger"
	"dashboard-core/internal/models"
	"dashboard-core/internal/notify"
)

var errNoAPI = errors.New("no remote API configured for slice")

// fetchFailure maps a failed fetch to the message stored in slice
// state and the error code used for metrics and log categorization.
// Server-reported messages are preferred over wrapper text.
func fetchFailure(err error) (string, stderrors.ErrorCode) {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message, stderrors.ErrCodeFetchFailed
	}
	var stdErr *stderrors.StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Message, stdErr.Code
	}
	return err.Error(), stderrors.ErrCodeFetchFailed
}

// Options configures a Store. Zero-value fields get safe defaults;
// slices without an API still support synchronous mutations but their
// fetch thunks error.
type Options struct {
	Logger   logger.Logger
	Notifier notify.Notifier
	Clock    Clock

	TaskAPI        TaskAPI
	LeadAPI        LeadAPI
	TransactionAPI TransactionAPI

	// OnTransactionsChanged receives a snapshot after every transaction
	// mutation and successful fetch.
	OnTransactionsChanged func([]models.Transaction)
}

// Store is the explicitly constructed state container: one slice per
// entity type, no package-level singleton. Pass the instance to
// whatever consumes it.
type Store struct {
	Tasks        *TaskSlice
	Leads        *LeadSlice
	Transactions *TransactionSlice
}

func New(opts Options) *Store {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	var notifier notify.Notifier = opts.Notifier
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	clock := opts.Clock
	if clock == nil {
		clock = SystemClock{}
	}

	return &Store{
		Tasks:        newTaskSlice(opts.TaskAPI, log, notifier),
		Leads:        newLeadSlice(opts.LeadAPI, log, notifier),
		Transactions: newTransactionSlice(opts.TransactionAPI, clock, log, notifier, opts.OnTransactionsChanged),
	}
}
