// Package seed holds the built-in category set. The remote store is seeded
// with these rows at migration time; Ensure covers stores that were
// provisioned without the seed migration.
package seed

import (
	"context"
	"time"

	"tally/internal/gateway"
	"tally/internal/models"
)

// Categories returns the default category set: eight expense categories and
// four income categories. IDs are stable slugs so transactions created
// against a seeded store survive re-seeding.
func Categories() []models.Category {
	now := time.Now().UTC()
	defs := []struct {
		id, name, icon, color string
		typ                   models.CategoryType
	}{
		{"food", "餐饮", "Utensils", "#FF6B9D", models.CategoryTypeExpense},
		{"shopping", "购物", "ShoppingBag", "#FFD93D", models.CategoryTypeExpense},
		{"transport", "交通", "Car", "#4ECDC4", models.CategoryTypeExpense},
		{"entertainment", "娱乐", "Gamepad2", "#A8E6CF", models.CategoryTypeExpense},
		{"housing", "住房", "Home", "#FFA726", models.CategoryTypeExpense},
		{"medical", "医疗", "Heart", "#66BB6A", models.CategoryTypeExpense},
		{"education", "教育", "Book", "#ff3d8a", models.CategoryTypeExpense},
		{"other-expense", "其他支出", "MoreHorizontal", "#a3a3a3", models.CategoryTypeExpense},
		{"salary", "工资", "DollarSign", "#66BB6A", models.CategoryTypeIncome},
		{"bonus", "奖金", "Gift", "#FFD93D", models.CategoryTypeIncome},
		{"investment", "投资", "TrendingUp", "#4ECDC4", models.CategoryTypeIncome},
		{"other-income", "其他收入", "Plus", "#A8E6CF", models.CategoryTypeIncome},
	}

	categories := make([]models.Category, 0, len(defs))
	for _, d := range defs {
		categories = append(categories, models.Category{
			ID:        d.id,
			Name:      d.name,
			Icon:      d.icon,
			Color:     d.color,
			Type:      d.typ,
			IsDefault: true,
			CreatedAt: now,
		})
	}
	return categories
}

// Ensure inserts the default set when the remote store holds no categories
// at all. A store with any categories, default or not, is left alone.
func Ensure(ctx context.Context, gw gateway.CategoryGateway) error {
	existing, err := gw.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, c := range Categories() {
		if _, err := gw.Create(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
