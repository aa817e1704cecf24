package models

import "time"

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Category represents a transaction category. Default categories are seeded
// by the remote store and cannot be deleted.
type Category struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Icon      string       `json:"icon"`
	Color     string       `json:"color"`
	Type      CategoryType `json:"type"`
	IsDefault bool         `json:"isDefault"`
	CreatedAt time.Time    `json:"createdAt"`
}

// CategoryDraft holds the caller-supplied fields for a new category.
// New categories are never default.
type CategoryDraft struct {
	Name  string
	Icon  string
	Color string
	Type  CategoryType
}

// CategoryPatch describes a partial update. Nil fields are left unchanged.
// IsDefault is deliberately not patchable.
type CategoryPatch struct {
	Name  *string
	Icon  *string
	Color *string
	Type  *CategoryType
}

// IsEmpty reports whether the patch carries no changes.
func (p CategoryPatch) IsEmpty() bool {
	return p.Name == nil && p.Icon == nil && p.Color == nil && p.Type == nil
}
