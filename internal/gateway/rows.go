// Package gateway is the translation layer between application entities and
// the remote row-store. Each operation is a single round trip: no retries,
// no batching, no multi-row transactions.
package gateway

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tally/internal/models"
	"tally/internal/uuid"
)

// transactionRow is the on-the-wire shape of a transaction.
type transactionRow struct {
	ID         string          `gorm:"type:uuid;primaryKey;column:id"`
	Amount     decimal.Decimal `gorm:"type:numeric;not null;column:amount"`
	CategoryID string          `gorm:"column:category_id"`
	Date       string          `gorm:"type:varchar(10);not null;column:date"`
	Note       string          `gorm:"column:note"`
	CreatedAt  time.Time       `gorm:"column:created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at"`
}

func (transactionRow) TableName() string { return "tally_transactions" }

// BeforeCreate assigns a server-side id; clients never generate row ids.
func (r *transactionRow) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New()
	}
	return nil
}

// categoryRow is the on-the-wire shape of a category.
type categoryRow struct {
	ID        string    `gorm:"type:uuid;primaryKey;column:id"`
	Name      string    `gorm:"not null;column:name"`
	Icon      string    `gorm:"column:icon"`
	Color     string    `gorm:"column:color"`
	Type      string    `gorm:"not null;column:type"`
	IsDefault bool      `gorm:"column:is_default"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (categoryRow) TableName() string { return "tally_categories" }

func (r *categoryRow) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New()
	}
	return nil
}

// RowModels returns the row types for schema migration in tests.
func RowModels() []interface{} {
	return []interface{}{&transactionRow{}, &categoryRow{}}
}

func rowToTransaction(r transactionRow) models.Transaction {
	return models.Transaction{
		ID:         r.ID,
		Amount:     r.Amount,
		CategoryID: r.CategoryID,
		Date:       r.Date,
		Note:       r.Note,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func transactionToRow(t models.Transaction) transactionRow {
	return transactionRow{
		ID:         t.ID,
		Amount:     t.Amount,
		CategoryID: t.CategoryID,
		Date:       t.Date,
		Note:       t.Note,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

func rowToCategory(r categoryRow) models.Category {
	return models.Category{
		ID:        r.ID,
		Name:      r.Name,
		Icon:      r.Icon,
		Color:     r.Color,
		Type:      models.CategoryType(r.Type),
		IsDefault: r.IsDefault,
		CreatedAt: r.CreatedAt,
	}
}

func categoryToRow(c models.Category) categoryRow {
	return categoryRow{
		ID:        c.ID,
		Name:      c.Name,
		Icon:      c.Icon,
		Color:     c.Color,
		Type:      string(c.Type),
		IsDefault: c.IsDefault,
		CreatedAt: c.CreatedAt,
	}
}

// transactionPatchColumns maps only the set fields of a patch to their column
// names, mirroring the partial-update wire contract: omitted fields are left
// unchanged server-side.
func transactionPatchColumns(p models.TransactionPatch) map[string]interface{} {
	updates := make(map[string]interface{})
	if p.Amount != nil {
		updates["amount"] = *p.Amount
	}
	if p.CategoryID != nil {
		updates["category_id"] = *p.CategoryID
	}
	if p.Date != nil {
		updates["date"] = *p.Date
	}
	if p.Note != nil {
		updates["note"] = *p.Note
	}
	return updates
}

func categoryPatchColumns(p models.CategoryPatch) map[string]interface{} {
	updates := make(map[string]interface{})
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Icon != nil {
		updates["icon"] = *p.Icon
	}
	if p.Color != nil {
		updates["color"] = *p.Color
	}
	if p.Type != nil {
		updates["type"] = string(*p.Type)
	}
	return updates
}
