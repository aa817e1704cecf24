package gateway

import (
	"context"
	"time"

	"gorm.io/gorm"

	apperrors "tally/internal/errors"
	"tally/internal/models"
)

// transactionGateway issues transaction CRUD calls against the row-store.
type transactionGateway struct {
	db *gorm.DB
}

// NewTransactionGateway creates a new TransactionGateway.
func NewTransactionGateway(db *gorm.DB) TransactionGateway {
	return &transactionGateway{db: db}
}

func (g *transactionGateway) GetAll(ctx context.Context) ([]models.Transaction, error) {
	var rows []transactionRow
	if err := g.db.WithContext(ctx).Order("date DESC").Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrFetchFailed, err)
	}

	transactions := make([]models.Transaction, 0, len(rows))
	for _, r := range rows {
		transactions = append(transactions, rowToTransaction(r))
	}
	return transactions, nil
}

func (g *transactionGateway) Create(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	row := transactionToRow(t)
	if err := g.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.Transaction{}, apperrors.Wrap(apperrors.ErrCreateFailed, err)
	}
	return rowToTransaction(row), nil
}

func (g *transactionGateway) Update(ctx context.Context, id string, patch models.TransactionPatch) (models.Transaction, error) {
	updates := transactionPatchColumns(patch)
	// The remote side refreshes updated_at on every update, whatever the patch.
	updates["updated_at"] = time.Now().UTC()

	res := g.db.WithContext(ctx).Model(&transactionRow{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return models.Transaction{}, apperrors.Wrap(apperrors.ErrUpdateFailed, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.Transaction{}, apperrors.WithMessage(apperrors.ErrUpdateFailed, "No transaction matched the given id")
	}

	var row transactionRow
	if err := g.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return models.Transaction{}, apperrors.Wrap(apperrors.ErrUpdateFailed, err)
	}
	return rowToTransaction(row), nil
}

func (g *transactionGateway) Delete(ctx context.Context, id string) error {
	if err := g.db.WithContext(ctx).Where("id = ?", id).Delete(&transactionRow{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrDeleteFailed, err)
	}
	return nil
}

// DeleteAll removes every row. Ids are never empty, so the not-equal filter
// is equivalent to unconditional deletion.
func (g *transactionGateway) DeleteAll(ctx context.Context) error {
	if err := g.db.WithContext(ctx).Where("id <> ?", "").Delete(&transactionRow{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrDeleteFailed, err)
	}
	return nil
}
