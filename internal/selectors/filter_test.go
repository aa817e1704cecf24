package selectors

import (
	"testing"

	"github.com/shopspring/decimal"

	"tally/internal/models"
)

func fixtureCategories() []models.Category {
	return []models.Category{
		{ID: "food", Name: "餐饮", Type: models.CategoryTypeExpense},
		{ID: "salary", Name: "工资", Type: models.CategoryTypeIncome},
	}
}

func fixtureTransactions() []models.Transaction {
	return []models.Transaction{
		{ID: "t1", Amount: decimal.NewFromInt(-25), CategoryID: "food", Date: "2024-03-01", Note: "Lunch downtown"},
		{ID: "t2", Amount: decimal.NewFromInt(-40), CategoryID: "food", Date: "2024-03-10", Note: "groceries"},
		{ID: "t3", Amount: decimal.NewFromInt(3000), CategoryID: "salary", Date: "2024-03-05", Note: "March salary"},
		{ID: "t4", Amount: decimal.NewFromInt(-15), CategoryID: "ghost", Date: "2024-03-20", Note: "forgotten"},
	}
}

func idsOf(transactions []models.Transaction) []string {
	ids := make([]string, len(transactions))
	for i, t := range transactions {
		ids[i] = t.ID
	}
	return ids
}

func assertIDs(t *testing.T, got []models.Transaction, want ...string) {
	t.Helper()
	gotIDs := idsOf(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("expected ids %v, got %v", want, gotIDs)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("expected ids %v, got %v", want, gotIDs)
		}
	}
}

func TestFiltered(t *testing.T) {
	t.Run("zero_filter_returns_all", func(t *testing.T) {
		txs := fixtureTransactions()
		got := Filtered(txs, fixtureCategories(), models.SearchFilter{})
		if len(got) != len(txs) {
			t.Errorf("expected all %d transactions, got %d", len(txs), len(got))
		}
	})

	t.Run("keyword_case_insensitive", func(t *testing.T) {
		got := Filtered(fixtureTransactions(), fixtureCategories(), models.SearchFilter{Keyword: "LUNCH"})
		assertIDs(t, got, "t1")
	})

	t.Run("category", func(t *testing.T) {
		got := Filtered(fixtureTransactions(), fixtureCategories(), models.SearchFilter{CategoryID: "food"})
		assertIDs(t, got, "t1", "t2")
	})

	t.Run("date_range_only", func(t *testing.T) {
		got := Filtered(fixtureTransactions(), fixtureCategories(), models.SearchFilter{
			StartDate: "2024-03-05",
			EndDate:   "2024-03-10",
		})
		assertIDs(t, got, "t2", "t3")
	})

	t.Run("start_date_inclusive", func(t *testing.T) {
		got := Filtered(fixtureTransactions(), fixtureCategories(), models.SearchFilter{StartDate: "2024-03-20"})
		assertIDs(t, got, "t4")
	})

	t.Run("type_resolves_through_category", func(t *testing.T) {
		got := Filtered(fixtureTransactions(), fixtureCategories(), models.SearchFilter{Type: models.CategoryTypeIncome})
		// t4 references a missing category and passes the type predicate.
		assertIDs(t, got, "t3", "t4")
	})

	t.Run("predicates_combine_conjunctively", func(t *testing.T) {
		got := Filtered(fixtureTransactions(), fixtureCategories(), models.SearchFilter{
			CategoryID: "food",
			StartDate:  "2024-03-05",
		})
		assertIDs(t, got, "t2")
	})

	t.Run("no_match", func(t *testing.T) {
		got := Filtered(fixtureTransactions(), fixtureCategories(), models.SearchFilter{Keyword: "yacht"})
		if len(got) != 0 {
			t.Errorf("expected no matches, got %d", len(got))
		}
	})
}

func TestByDate(t *testing.T) {
	got := ByDate(fixtureTransactions(), "2024-03-05")
	assertIDs(t, got, "t3")

	if got := ByDate(fixtureTransactions(), "2024-04-01"); len(got) != 0 {
		t.Errorf("expected no transactions on 2024-04-01, got %d", len(got))
	}
}

func TestBetweenDates(t *testing.T) {
	got := BetweenDates(fixtureTransactions(), Span{Start: "2024-03-01", End: "2024-03-10"})
	assertIDs(t, got, "t1", "t2", "t3")
}

func TestCategoryMap(t *testing.T) {
	m := CategoryMap(fixtureCategories())
	if len(m) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(m))
	}
	if m["food"].Name != "餐饮" {
		t.Errorf("expected food category name 餐饮, got %s", m["food"].Name)
	}
}
