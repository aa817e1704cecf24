package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"tally/internal/gateway"
	"tally/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestCategory creates a custom category of the given type.
func CreateTestCategory(t *testing.T, gw gateway.CategoryGateway, categoryType models.CategoryType) models.Category {
	t.Helper()

	created, err := gw.Create(context.Background(), models.Category{
		Name:      fmt.Sprintf("Test Category %d", nextID()),
		Icon:      "Tag",
		Color:     "#666666",
		Type:      categoryType,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return created
}

// CreateTestDefaultCategory creates a seed-style category protected from
// deletion.
func CreateTestDefaultCategory(t *testing.T, gw gateway.CategoryGateway, categoryType models.CategoryType) models.Category {
	t.Helper()

	created, err := gw.Create(context.Background(), models.Category{
		Name:      fmt.Sprintf("Default Category %d", nextID()),
		Icon:      "Tag",
		Color:     "#666666",
		Type:      categoryType,
		IsDefault: true,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("failed to create test default category: %v", err)
	}
	return created
}

// CreateTestTransaction creates a transaction on the given date with the
// given signed amount.
func CreateTestTransaction(t *testing.T, gw gateway.TransactionGateway, categoryID, date string, amount decimal.Decimal) models.Transaction {
	t.Helper()

	now := time.Now().UTC()
	created, err := gw.Create(context.Background(), models.Transaction{
		Amount:     amount,
		CategoryID: categoryID,
		Date:       date,
		Note:       fmt.Sprintf("test transaction %d", nextID()),
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return created
}
