package api

import (
	"context"
	"encoding/json"
	"fmt"

	stderrors "dashboard-core/internal/common/errors"
	"dashboard-core/internal/models"
)

const transactionEntity = "transactions"

// TransactionService talks to the /transactions endpoints.
type TransactionService struct {
	client *Client
	cache  *SnapshotCache
}

// NewTransactionService builds a transaction service. cache may be nil.
func NewTransactionService(client *Client, cache *SnapshotCache) *TransactionService {
	return &TransactionService{client: client, cache: cache}
}

// List fetches all transactions, consulting the snapshot cache first.
// The payload is schema-validated before use.
func (s *TransactionService) List(ctx context.Context) ([]models.Transaction, error) {
	if data := s.cache.Get(ctx, transactionEntity); data != nil {
		var transactions []models.Transaction
		if err := json.Unmarshal(data, &transactions); err == nil {
			return transactions, nil
		}
	}

	data, err := s.client.get(ctx, "/transactions")
	if err != nil {
		return nil, wrapFetchErr(transactionEntity, err)
	}
	if err := validatePayload(transactionListLoader, data); err != nil {
		return nil, stderrors.NewInvalidResponseError(transactionEntity, err.Error())
	}

	var transactions []models.Transaction
	if err := json.Unmarshal(data, &transactions); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}

	s.cache.Set(ctx, transactionEntity, data)
	return transactions, nil
}

// Create posts a new transaction and returns the server's record.
// Type, status and amount sign are checked before the request leaves
// the process.
func (s *TransactionService) Create(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	if !tx.Type.Valid() || !tx.Status.Valid() {
		return models.Transaction{}, stderrors.NewValidationFailedError(
			fmt.Sprintf("transaction type %q or status %q is not a known value", tx.Type, tx.Status))
	}
	if tx.Amount < 0 {
		return models.Transaction{}, stderrors.NewValidationFailedError(
			"transaction amount must be a non-negative magnitude")
	}

	data, err := s.client.post(ctx, "/transactions", tx)
	if err != nil {
		return models.Transaction{}, wrapCreateErr(transactionEntity, err)
	}

	var created models.Transaction
	if err := json.Unmarshal(data, &created); err != nil {
		return models.Transaction{}, fmt.Errorf("decode created transaction: %w", err)
	}

	s.cache.Invalidate(ctx, transactionEntity)
	return created, nil
}

// Update replaces a transaction record by id.
func (s *TransactionService) Update(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	data, err := s.client.put(ctx, "/transactions/"+tx.ID, tx)
	if err != nil {
		return models.Transaction{}, err
	}

	var updated models.Transaction
	if err := json.Unmarshal(data, &updated); err != nil {
		return models.Transaction{}, fmt.Errorf("decode updated transaction: %w", err)
	}

	s.cache.Invalidate(ctx, transactionEntity)
	return updated, nil
}

// Delete removes a transaction record by id.
func (s *TransactionService) Delete(ctx context.Context, id string) error {
	if err := s.client.delete(ctx, "/transactions/"+id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, transactionEntity)
	return nil
}
