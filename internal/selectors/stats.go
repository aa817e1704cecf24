package selectors

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	apperrors "tally/internal/errors"
	"tally/internal/models"
)

// CategoryStat is one category's expense total for ranking and pie views.
type CategoryStat struct {
	CategoryID    string          `json:"categoryId"`
	CategoryName  string          `json:"categoryName"`
	CategoryIcon  string          `json:"categoryIcon"`
	CategoryColor string          `json:"categoryColor"`
	Total         decimal.Decimal `json:"total"`
	Percentage    float64         `json:"percentage"`
}

// Statistics aggregates a transaction set.
type Statistics struct {
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpense     decimal.Decimal `json:"totalExpense"`
	Balance          decimal.Decimal `json:"balance"`
	ByCategory       []CategoryStat  `json:"byCategory"`
	TransactionCount int             `json:"transactionCount"`
}

// DailyStat is one calendar day's totals in a time series.
type DailyStat struct {
	Date    string          `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// Compute sums income (positive amounts) and expense (absolute value of
// negative amounts) over the given transactions, and ranks categories by
// their expense total. Categories with no expense are omitted.
func Compute(transactions []models.Transaction, categories []models.Category) Statistics {
	income := decimal.Zero
	expense := decimal.Zero
	perCategory := make(map[string]decimal.Decimal)

	for _, t := range transactions {
		if t.IsIncome() {
			income = income.Add(t.Amount)
			continue
		}
		if t.IsExpense() {
			abs := t.Amount.Abs()
			expense = expense.Add(abs)
			perCategory[t.CategoryID] = perCategory[t.CategoryID].Add(abs)
		}
	}

	byCategory := make([]CategoryStat, 0, len(perCategory))
	for _, c := range categories {
		total, ok := perCategory[c.ID]
		if !ok || total.IsZero() {
			continue
		}
		stat := CategoryStat{
			CategoryID:    c.ID,
			CategoryName:  c.Name,
			CategoryIcon:  c.Icon,
			CategoryColor: c.Color,
			Total:         total,
		}
		if expense.IsPositive() {
			pct, _ := total.Div(expense).Mul(decimal.NewFromInt(100)).Float64()
			stat.Percentage = pct
		}
		byCategory = append(byCategory, stat)
	}
	sort.Slice(byCategory, func(i, j int) bool {
		return byCategory[i].Total.GreaterThan(byCategory[j].Total)
	})

	return Statistics{
		TotalIncome:      income,
		TotalExpense:     expense,
		Balance:          income.Sub(expense),
		ByCategory:       byCategory,
		TransactionCount: len(transactions),
	}
}

// DailySeries produces one entry per calendar day of the inclusive span,
// with zero income and expense on days that have no transactions.
func DailySeries(transactions []models.Transaction, span Span) ([]DailyStat, error) {
	start, err := time.Parse(dateLayout, span.Start)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid start date: "+span.Start)
	}
	end, err := time.Parse(dateLayout, span.End)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid end date: "+span.End)
	}

	type daily struct{ income, expense decimal.Decimal }
	perDay := make(map[string]daily)
	for _, t := range transactions {
		d := perDay[t.Date]
		if t.IsIncome() {
			d.income = d.income.Add(t.Amount)
		} else if t.IsExpense() {
			d.expense = d.expense.Add(t.Amount.Abs())
		}
		perDay[t.Date] = d
	}

	var series []DailyStat
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := day.Format(dateLayout)
		d := perDay[date]
		series = append(series, DailyStat{
			Date:    date,
			Income:  d.income,
			Expense: d.expense,
			Balance: d.income.Sub(d.expense),
		})
	}
	return series, nil
}
