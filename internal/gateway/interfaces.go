package gateway

import (
	"context"

	"tally/internal/models"
)

// TransactionGateway defines the remote operations for transactions.
type TransactionGateway interface {
	// GetAll fetches every transaction ordered by date descending.
	GetAll(ctx context.Context) ([]models.Transaction, error)
	// Create inserts the transaction and returns the stored row, including
	// the server-assigned id.
	Create(ctx context.Context, t models.Transaction) (models.Transaction, error)
	// Update applies a partial update to the row matching id and returns the
	// updated row. Fails when no row matches.
	Update(ctx context.Context, id string, patch models.TransactionPatch) (models.Transaction, error)
	// Delete removes the row matching id.
	Delete(ctx context.Context, id string) error
	// DeleteAll removes every transaction row.
	DeleteAll(ctx context.Context) error
}

// CategoryGateway defines the remote operations for categories.
type CategoryGateway interface {
	// GetAll fetches every category ordered by creation time ascending.
	GetAll(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, c models.Category) (models.Category, error)
	Update(ctx context.Context, id string, patch models.CategoryPatch) (models.Category, error)
	// Delete removes the row matching id, constrained to non-default rows.
	// Deleting a default category affects zero rows and raises no error; the
	// returned count lets callers observe the silent no-op.
	Delete(ctx context.Context, id string) (int64, error)
}
