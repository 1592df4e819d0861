package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	stderrors "dashboard-core/internal/common/errors"
	"dashboard-core/internal/common/logger"
	"dashboard-core/internal/common/metrics"
	"dashboard-core/internal/finance"
	"dashboard-core/internal/models"
	"dashboard-core/internal/notify"
)

// TransactionAPI is the remote surface the transaction slice fetches
// from and creates through. internal/api.TransactionService satisfies
// it.
type TransactionAPI interface {
	List(ctx context.Context) ([]models.Transaction, error)
	Create(ctx context.Context, tx models.Transaction) (models.Transaction, error)
}

// TransactionSlice owns the transaction collection plus its embedded
// calendar-year summary. The summary is recomputed in full inside the
// same critical section as every mutation and successful fetch, so no
// caller can observe the collection and the summary disagreeing.
type TransactionSlice struct {
	mu           sync.Mutex
	transactions []models.Transaction
	summary      models.YearSummary
	status       Status
	lastErr      string
	gen          uint64

	api      TransactionAPI
	clock    Clock
	logger   logger.Logger
	notifier notify.Notifier

	// onChange receives a snapshot copy after every mutation, outside
	// the lock. Used for budget alerting.
	onChange func([]models.Transaction)
}

func newTransactionSlice(api TransactionAPI, clock Clock, log logger.Logger, notifier notify.Notifier, onChange func([]models.Transaction)) *TransactionSlice {
	return &TransactionSlice{
		status:   StatusIdle,
		summary:  models.EmptyYearSummary(),
		api:      api,
		clock:    clock,
		logger:   log.WithFields(map[string]interface{}{"slice": "transactions"}),
		notifier: notifier,
		onChange: onChange,
	}
}

// recomputeSummaryLocked must be called with the mutex held.
func (s *TransactionSlice) recomputeSummaryLocked() {
	s.summary = finance.YearSummary(s.transactions, s.clock.Now())
}

func (s *TransactionSlice) notifyChange() {
	if s.onChange != nil {
		s.onChange(s.Transactions())
	}
}

// Fetch replaces the collection with the remote state and recomputes
// the summary atomically with the replacement. Guarded by a generation
// token; a failed fetch keeps both the previous collection and the
// previous summary.
func (s *TransactionSlice) Fetch(ctx context.Context) error {
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
	transactions, err := s.api.List(ctx)
	metrics.FetchDuration.WithLabelValues("transactions").Observe(time.Since(start).Seconds())

	s.mu.Lock()

	if gen != s.gen {
		s.mu.Unlock()
		metrics.FetchesDiscarded.WithLabelValues("transactions").Inc()
		s.logger.Debug("stale fetch result discarded", map[string]interface{}{"generation": gen})
		return nil
	}

	if err != nil {
		msg, code := fetchFailure(err)
		s.status = StatusFailed
		s.lastErr = msg
		s.mu.Unlock()
		metrics.FetchesFailed.WithLabelValues("transactions", string(code)).Inc()
		s.logger.Warn("transaction fetch failed", map[string]interface{}{
			"error":    msg,
			"category": stderrors.GetErrorCategory(code),
		})
		s.notifier.Error("Failed to fetch transactions")
		return err
	}

	s.transactions = transactions
	s.recomputeSummaryLocked()
	s.status = StatusSucceeded
	s.mu.Unlock()

	metrics.FetchesCompleted.WithLabelValues("transactions").Inc()
	s.logger.Info("transactions loaded", map[string]interface{}{"count": len(transactions)})
	s.notifyChange()
	return nil
}

// Create posts the transaction to the remote API and appends the
// returned record on success.
func (s *TransactionSlice) Create(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	if s.api == nil {
		return models.Transaction{}, errNoAPI
	}
	created, err := s.api.Create(ctx, tx)
	if err != nil {
		s.notifier.Error("Failed to create transaction")
		return models.Transaction{}, err
	}
	s.Add(created)
	s.notifier.Success("Transaction created")
	return created, nil
}

// Set replaces the whole collection.
func (s *TransactionSlice) Set(transactions []models.Transaction) {
	s.mu.Lock()
	s.transactions = append([]models.Transaction(nil), transactions...)
	s.recomputeSummaryLocked()
	s.mu.Unlock()
	metrics.MutationsApplied.WithLabelValues("transactions", "set").Inc()
	s.notifyChange()
}

// Add appends a transaction, assigning an id when the caller left it
// empty.
func (s *TransactionSlice) Add(tx models.Transaction) models.Transaction {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	s.mu.Lock()
	s.transactions = append(s.transactions, tx)
	s.recomputeSummaryLocked()
	s.mu.Unlock()
	metrics.MutationsApplied.WithLabelValues("transactions", "add").Inc()
	s.notifyChange()
	return tx
}

// Update replaces the transaction with the same id; unknown ids are a
// no-op and leave the summary untouched.
func (s *TransactionSlice) Update(tx models.Transaction) bool {
	s.mu.Lock()
	for i := range s.transactions {
		if s.transactions[i].ID == tx.ID {
			s.transactions[i] = tx
			s.recomputeSummaryLocked()
			s.mu.Unlock()
			metrics.MutationsApplied.WithLabelValues("transactions", "update").Inc()
			s.notifyChange()
			return true
		}
	}
	s.mu.Unlock()
	return false
}

// Remove deletes the transaction with the given id, reporting whether
// it existed.
func (s *TransactionSlice) Remove(id string) bool {
	s.mu.Lock()
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			s.recomputeSummaryLocked()
			s.mu.Unlock()
			metrics.MutationsApplied.WithLabelValues("transactions", "remove").Inc()
			s.notifyChange()
			return true
		}
	}
	s.mu.Unlock()
	return false
}

// Transactions returns a copy of the collection.
func (s *TransactionSlice) Transactions() []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Transaction(nil), s.transactions...)
}

// Summary returns the embedded calendar-year summary as of the last
// mutation or successful fetch.
func (s *TransactionSlice) Summary() models.YearSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.summary
	out.MonthlyRevenue = append([]float64(nil), s.summary.MonthlyRevenue...)
	out.MonthlyExpenses = append([]float64(nil), s.summary.MonthlyExpenses...)
	return out
}

// Status returns the fetch state and the last error message.
func (s *TransactionSlice) Status() (Status, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.lastErr
}
