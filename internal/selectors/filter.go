package selectors

import (
	"strings"

	"tally/internal/models"
)

// Filtered returns the transactions matching every active filter predicate.
// The type predicate resolves through the transaction's category; a
// transaction whose category no longer exists passes it vacuously.
func Filtered(transactions []models.Transaction, categories []models.Category, f models.SearchFilter) []models.Transaction {
	if f.IsZero() {
		return transactions
	}

	byID := CategoryMap(categories)
	keyword := strings.ToLower(f.Keyword)

	matched := make([]models.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if keyword != "" && !strings.Contains(strings.ToLower(t.Note), keyword) {
			continue
		}
		if f.CategoryID != "" && t.CategoryID != f.CategoryID {
			continue
		}
		if f.StartDate != "" && t.Date < f.StartDate {
			continue
		}
		if f.EndDate != "" && t.Date > f.EndDate {
			continue
		}
		if f.Type != "" {
			if c, ok := byID[t.CategoryID]; ok && c.Type != f.Type {
				continue
			}
		}
		matched = append(matched, t)
	}
	return matched
}

// ByDate returns the transactions recorded on the exact calendar date.
func ByDate(transactions []models.Transaction, date string) []models.Transaction {
	matched := make([]models.Transaction, 0)
	for _, t := range transactions {
		if t.Date == date {
			matched = append(matched, t)
		}
	}
	return matched
}

// BetweenDates returns the transactions within the inclusive span.
func BetweenDates(transactions []models.Transaction, span Span) []models.Transaction {
	matched := make([]models.Transaction, 0)
	for _, t := range transactions {
		if t.Date >= span.Start && t.Date <= span.End {
			matched = append(matched, t)
		}
	}
	return matched
}

// CategoryMap builds the id-to-category lookup. Rebuilt on every call.
func CategoryMap(categories []models.Category) map[string]models.Category {
	m := make(map[string]models.Category, len(categories))
	for _, c := range categories {
		m[c.ID] = c
	}
	return m
}
