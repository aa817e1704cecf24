package workbook

import (
	"context"
	"fmt"

	"tally/internal/models"
	"tally/internal/store"
)

// Summary reports the outcome of an import pass. Errors collects the per-row
// failures; a non-empty list does not mean the pass failed, only that those
// rows were skipped.
type Summary struct {
	TransactionsImported int      `json:"transactionsImported"`
	CategoriesImported   int      `json:"categoriesImported"`
	Errors               []string `json:"errors,omitempty"`
}

// Importer applies parsed workbook rows to the store. The pass is not
// transactional: every row is attempted, failures are collected, and a
// partial import plus the error list is the expected outcome for a partly
// bad workbook.
type Importer struct {
	store *store.Store
}

// NewImporter creates a new Importer.
func NewImporter(s *store.Store) *Importer {
	return &Importer{store: s}
}

// Run imports categories first so transactions can resolve the names they
// reference, including names created earlier in the same pass. Category
// names already present are skipped by exact match.
func (im *Importer) Run(ctx context.Context, parsed *Parsed) Summary {
	summary := Summary{Errors: append([]string(nil), parsed.Errors...)}

	known := make(map[string]models.Category)
	for _, c := range im.store.Snapshot().Categories {
		known[c.Name] = c
	}

	for _, row := range parsed.Categories {
		if _, exists := known[row.Name]; exists {
			continue
		}
		created, err := im.store.AddCategory(ctx, models.CategoryDraft{
			Name:  row.Name,
			Icon:  row.Icon,
			Color: row.Color,
			Type:  row.Type,
		})
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("category %q: %v", row.Name, err))
			continue
		}
		known[created.Name] = created
		summary.CategoriesImported++
	}

	for _, row := range parsed.Transactions {
		category, ok := known[row.CategoryName]
		if !ok {
			summary.Errors = append(summary.Errors, fmt.Sprintf("transaction on %s: unknown category %q, skipped", row.Date, row.CategoryName))
			continue
		}

		// Amounts are re-signed from the resolved category's type; whatever
		// sign the sheet carried, income imports positive and expense negative.
		amount := row.Amount.Abs()
		if category.Type == models.CategoryTypeExpense {
			amount = amount.Neg()
		}

		_, err := im.store.AddTransaction(ctx, models.TransactionDraft{
			Amount:     amount,
			CategoryID: category.ID,
			Date:       row.Date,
			Note:       row.Note,
		})
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("transaction on %s: %v", row.Date, err))
			continue
		}
		summary.TransactionsImported++
	}

	return summary
}
