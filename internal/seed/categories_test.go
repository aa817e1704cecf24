package seed

import (
	"context"
	"regexp"
	"testing"

	"tally/internal/gateway"
	"tally/internal/models"
	"tally/internal/testutil"
)

var colorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func TestCategories(t *testing.T) {
	categories := Categories()

	if len(categories) != 12 {
		t.Fatalf("expected 12 default categories, got %d", len(categories))
	}

	var income, expense int
	seen := make(map[string]bool)
	for _, c := range categories {
		if !c.IsDefault {
			t.Errorf("category %s: expected IsDefault set", c.ID)
		}
		if seen[c.ID] {
			t.Errorf("duplicate category id %s", c.ID)
		}
		seen[c.ID] = true
		if !colorRe.MatchString(c.Color) {
			t.Errorf("category %s: invalid color %q", c.ID, c.Color)
		}
		if c.Name == "" || c.Icon == "" {
			t.Errorf("category %s: missing name or icon", c.ID)
		}
		switch c.Type {
		case models.CategoryTypeIncome:
			income++
		case models.CategoryTypeExpense:
			expense++
		default:
			t.Errorf("category %s: unknown type %q", c.ID, c.Type)
		}
	}

	if expense != 8 || income != 4 {
		t.Errorf("expected 8 expense and 4 income categories, got %d and %d", expense, income)
	}
}

func TestEnsure(t *testing.T) {
	t.Run("empty_store_backfilled", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		gw := gateway.NewCategoryGateway(db)

		testutil.AssertNoError(t, Ensure(context.Background(), gw))

		all, err := gw.GetAll(context.Background())
		testutil.AssertNoError(t, err)
		if len(all) != 12 {
			t.Errorf("expected 12 seeded categories, got %d", len(all))
		}
	})

	t.Run("populated_store_untouched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		gw := gateway.NewCategoryGateway(db)

		testutil.CreateTestCategory(t, gw, models.CategoryTypeExpense)

		testutil.AssertNoError(t, Ensure(context.Background(), gw))

		all, err := gw.GetAll(context.Background())
		testutil.AssertNoError(t, err)
		if len(all) != 1 {
			t.Errorf("expected the single existing category, got %d", len(all))
		}
	})
}
