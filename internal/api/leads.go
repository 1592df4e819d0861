package api

import (
	"context"
	"encoding/json"
	"fmt"

	stderrors "dashboard-core/internal/common/errors"
	"dashboard-core/internal/models"
)

const leadEntity = "leads"

// LeadService talks to the /leads endpoints.
type LeadService struct {
	client *Client
	cache  *SnapshotCache
}

// NewLeadService builds a lead service. cache may be nil.
func NewLeadService(client *Client, cache *SnapshotCache) *LeadService {
	return &LeadService{client: client, cache: cache}
}

// List fetches all leads, consulting the snapshot cache first. The
// payload is schema-validated before use.
func (s *LeadService) List(ctx context.Context) ([]models.Lead, error) {
	if data := s.cache.Get(ctx, leadEntity); data != nil {
		var leads []models.Lead
		if err := json.Unmarshal(data, &leads); err == nil {
			return leads, nil
		}
	}

	data, err := s.client.get(ctx, "/leads")
	if err != nil {
		return nil, wrapFetchErr(leadEntity, err)
	}
	if err := validatePayload(leadListLoader, data); err != nil {
		return nil, stderrors.NewInvalidResponseError(leadEntity, err.Error())
	}

	var leads []models.Lead
	if err := json.Unmarshal(data, &leads); err != nil {
		return nil, fmt.Errorf("decode leads: %w", err)
	}

	s.cache.Set(ctx, leadEntity, data)
	return leads, nil
}

// Create posts a new lead and returns the server's record. The
// pipeline stage is checked before the request leaves the process.
func (s *LeadService) Create(ctx context.Context, lead models.Lead) (models.Lead, error) {
	if !lead.Status.Valid() {
		return models.Lead{}, stderrors.NewValidationFailedError(
			fmt.Sprintf("lead status %q is not a known pipeline stage", lead.Status))
	}

	data, err := s.client.post(ctx, "/leads", lead)
	if err != nil {
		return models.Lead{}, wrapCreateErr(leadEntity, err)
	}

	var created models.Lead
	if err := json.Unmarshal(data, &created); err != nil {
		return models.Lead{}, fmt.Errorf("decode created lead: %w", err)
	}

	s.cache.Invalidate(ctx, leadEntity)
	return created, nil
}

// Update replaces a lead record by id.
func (s *LeadService) Update(ctx context.Context, lead models.Lead) (models.Lead, error) {
	data, err := s.client.put(ctx, "/leads/"+lead.ID, lead)
	if err != nil {
		return models.Lead{}, err
	}

	var updated models.Lead
	if err := json.Unmarshal(data, &updated); err != nil {
		return models.Lead{}, fmt.Errorf("decode updated lead: %w", err)
	}

	s.cache.Invalidate(ctx, leadEntity)
	return updated, nil
}

// Delete removes a lead record by id.
func (s *LeadService) Delete(ctx context.Context, id string) error {
	if err := s.client.delete(ctx, "/leads/"+id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, leadEntity)
	return nil
}
