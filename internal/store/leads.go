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

// LeadAPI is the remote surface the lead slice fetches from and
// creates through. internal/api.LeadService satisfies it.
type LeadAPI interface {
	List(ctx context.Context) ([]models.Lead, error)
	Create(ctx context.Context, lead models.Lead) (models.Lead, error)
}

// LeadSlice owns the CRM lead collection.
type LeadSlice struct {
	mu      sync.Mutex
	leads   []models.Lead
	status  Status
	lastErr string
	gen     uint64

	api      LeadAPI
	logger   logger.Logger
	notifier notify.Notifier
}

func newLeadSlice(api LeadAPI, log logger.Logger, notifier notify.Notifier) *LeadSlice {
	return &LeadSlice{
		status:   StatusIdle,
		api:      api,
		logger:   log.WithFields(map[string]interface{}{"slice": "leads"}),
		notifier: notifier,
	}
}

// Fetch replaces the collection with the remote state, guarded by a
// generation token against stale responses. A failed fetch keeps the
// previous collection.
func (s *LeadSlice) Fetch(ctx context.Context) error {
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
	leads, err := s.api.List(ctx)
	metrics.FetchDuration.WithLabelValues("leads").Observe(time.Since(start).Seconds())

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		metrics.FetchesDiscarded.WithLabelValues("leads").Inc()
		s.logger.Debug("stale fetch result discarded", map[string]interface{}{"generation": gen})
		return nil
	}

	if err != nil {
		msg, code := fetchFailure(err)
		s.status = StatusFailed
		s.lastErr = msg
		metrics.FetchesFailed.WithLabelValues("leads", string(code)).Inc()
		s.logger.Warn("lead fetch failed", map[string]interface{}{
			"error":    msg,
			"category": stderrors.GetErrorCategory(code),
		})
		s.notifier.Error("Failed to fetch leads")
		return err
	}

	s.leads = leads
	s.status = StatusSucceeded
	metrics.FetchesCompleted.WithLabelValues("leads").Inc()
	s.logger.Info("leads loaded", map[string]interface{}{"count": len(leads)})
	return nil
}

// Create posts the lead to the remote API and appends the returned
// record on success.
func (s *LeadSlice) Create(ctx context.Context, lead models.Lead) (models.Lead, error) {
	if s.api == nil {
		return models.Lead{}, errNoAPI
	}
	created, err := s.api.Create(ctx, lead)
	if err != nil {
		s.notifier.Error("Failed to create lead")
		return models.Lead{}, err
	}
	s.Add(created)
	s.notifier.Success("Lead created")
	return created, nil
}

// Set replaces the whole collection.
func (s *LeadSlice) Set(leads []models.Lead) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads = append([]models.Lead(nil), leads...)
	metrics.MutationsApplied.WithLabelValues("leads", "set").Inc()
}

// Add appends a lead, assigning an id when the caller left it empty.
func (s *LeadSlice) Add(lead models.Lead) models.Lead {
	if lead.ID == "" {
		lead.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads = append(s.leads, lead)
	metrics.MutationsApplied.WithLabelValues("leads", "add").Inc()
	return lead
}

// Update replaces the lead with the same id; unknown ids are a no-op.
func (s *LeadSlice) Update(lead models.Lead) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.leads {
		if s.leads[i].ID == lead.ID {
			s.leads[i] = lead
			metrics.MutationsApplied.WithLabelValues("leads", "update").Inc()
			return true
		}
	}
	return false
}

// Remove deletes the lead with the given id, reporting whether it
// existed.
func (s *LeadSlice) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.leads {
		if s.leads[i].ID == id {
			s.leads = append(s.leads[:i], s.leads[i+1:]...)
			metrics.MutationsApplied.WithLabelValues("leads", "remove").Inc()
			return true
		}
	}
	return false
}

// Leads returns a copy of the collection.
func (s *LeadSlice) Leads() []models.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Lead(nil), s.leads...)
}

// Status returns the fetch state and the last error message.
func (s *LeadSlice) Status() (Status, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.lastErr
}
