package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single ledger entry. The sign of Amount encodes
// direction: positive is income, negative is expense.
type Transaction struct {
	ID         string          `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	CategoryID string          `json:"categoryId"`
	Date       string          `json:"date"` // YYYY-MM-DD, compared lexically
	Note       string          `json:"note"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// IsIncome reports whether the transaction is an income entry.
func (t Transaction) IsIncome() bool {
	return t.Amount.IsPositive()
}

// IsExpense reports whether the transaction is an expense entry.
func (t Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// TransactionDraft holds the caller-supplied fields for a new transaction.
// The ID and timestamps are assigned during creation.
type TransactionDraft struct {
	Amount     decimal.Decimal
	CategoryID string
	Date       string
	Note       string
}

// TransactionPatch describes a partial update. Nil fields are left unchanged.
type TransactionPatch struct {
	Amount     *decimal.Decimal
	CategoryID *string
	Date       *string
	Note       *string
}

// IsEmpty reports whether the patch carries no changes.
func (p TransactionPatch) IsEmpty() bool {
	return p.Amount == nil && p.CategoryID == nil && p.Date == nil && p.Note == nil
}
