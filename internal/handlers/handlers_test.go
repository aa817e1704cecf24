package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"tally/internal/gateway"
	"tally/internal/models"
	"tally/internal/store"
	"tally/internal/testutil"
	"tally/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func setupRouter(t *testing.T, initialize bool) (*gin.Engine, *store.Store) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	s := store.New(
		gateway.NewTransactionGateway(db),
		gateway.NewCategoryGateway(db),
		store.WithSyncRevertDelays(10*time.Millisecond, 10*time.Millisecond),
	)
	if initialize {
		testutil.AssertNoError(t, s.Initialize(context.Background()))
	}

	transactionHandler := NewTransactionHandler(s)
	categoryHandler := NewCategoryHandler(s)
	statsHandler := NewStatsHandler(s)
	viewHandler := NewViewHandler(s)
	dataHandler := NewDataHandler(s)

	r := gin.New()
	r.GET("/state", viewHandler.GetState)
	r.PUT("/view/range", viewHandler.SetDateRange)
	r.GET("/transactions", transactionHandler.ListTransactions)
	r.POST("/transactions", transactionHandler.CreateTransaction)
	r.PUT("/transactions/:id", transactionHandler.UpdateTransaction)
	r.DELETE("/transactions/:id", transactionHandler.DeleteTransaction)
	r.GET("/categories", categoryHandler.ListCategories)
	r.POST("/categories", categoryHandler.CreateCategory)
	r.PUT("/categories/:id", categoryHandler.UpdateCategory)
	r.DELETE("/categories/:id", categoryHandler.DeleteCategory)
	r.GET("/statistics", statsHandler.GetStatistics)
	r.DELETE("/data", dataHandler.ClearAllData)
	return r, s
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	return result
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := parseBody(t, rec)
	errObj, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in body, got %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

func createCategory(t *testing.T, r *gin.Engine, name string, categoryType models.CategoryType) string {
	t.Helper()
	rec := doJSON(r, http.MethodPost, "/categories", gin.H{
		"name": name, "type": categoryType, "icon": "Tag", "color": "#666666",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("failed to create category: %d %s", rec.Code, rec.Body.String())
	}
	body := parseBody(t, rec)
	cat := body["category"].(map[string]interface{})
	return cat["id"].(string)
}

func TestCreateTransactionEndpoint(t *testing.T) {
	t.Run("expense_stored_negative", func(t *testing.T) {
		r, s := setupRouter(t, true)
		catID := createCategory(t, r, "餐饮", models.CategoryTypeExpense)

		rec := doJSON(r, http.MethodPost, "/transactions", gin.H{
			"type": "expense", "amount": "25.50", "categoryId": catID, "date": "2024-03-01", "note": "lunch",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		snap := s.Snapshot()
		if len(snap.Transactions) != 1 {
			t.Fatalf("expected 1 cached transaction, got %d", len(snap.Transactions))
		}
		if !snap.Transactions[0].Amount.Equal(decimal.NewFromFloat(-25.50)) {
			t.Errorf("expected stored amount -25.50, got %s", snap.Transactions[0].Amount)
		}
	})

	t.Run("income_stored_positive", func(t *testing.T) {
		r, s := setupRouter(t, true)
		catID := createCategory(t, r, "工资", models.CategoryTypeIncome)

		rec := doJSON(r, http.MethodPost, "/transactions", gin.H{
			"type": "income", "amount": "3000", "categoryId": catID, "date": "2024-03-05",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !s.Snapshot().Transactions[0].Amount.Equal(decimal.NewFromInt(3000)) {
			t.Errorf("expected stored amount 3000, got %s", s.Snapshot().Transactions[0].Amount)
		}
	})

	t.Run("zero_amount_rejected", func(t *testing.T) {
		r, _ := setupRouter(t, true)
		catID := createCategory(t, r, "餐饮", models.CategoryTypeExpense)

		rec := doJSON(r, http.MethodPost, "/transactions", gin.H{
			"type": "expense", "amount": "0", "categoryId": catID, "date": "2024-03-01",
		})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "ZERO_AMOUNT" {
			t.Errorf("expected ZERO_AMOUNT, got %s", code)
		}
	})

	t.Run("malformed_date_rejected", func(t *testing.T) {
		r, _ := setupRouter(t, true)
		catID := createCategory(t, r, "餐饮", models.CategoryTypeExpense)

		rec := doJSON(r, http.MethodPost, "/transactions", gin.H{
			"type": "expense", "amount": "10", "categoryId": catID, "date": "3/5/2024",
		})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("uninitialized_store_returns_503", func(t *testing.T) {
		r, _ := setupRouter(t, false)

		rec := doJSON(r, http.MethodPost, "/transactions", gin.H{
			"type": "expense", "amount": "10", "categoryId": "food", "date": "2024-03-01",
		})
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "NOT_INITIALIZED" {
			t.Errorf("expected NOT_INITIALIZED, got %s", code)
		}
	})
}

func TestListTransactionsEndpoint(t *testing.T) {
	r, _ := setupRouter(t, true)
	catID := createCategory(t, r, "餐饮", models.CategoryTypeExpense)

	for _, tx := range []gin.H{
		{"type": "expense", "amount": "10", "categoryId": catID, "date": "2024-03-01", "note": "breakfast"},
		{"type": "expense", "amount": "20", "categoryId": catID, "date": "2024-03-02", "note": "lunch"},
	} {
		if rec := doJSON(r, http.MethodPost, "/transactions", tx); rec.Code != http.StatusCreated {
			t.Fatalf("setup create failed: %d", rec.Code)
		}
	}

	t.Run("all", func(t *testing.T) {
		rec := doJSON(r, http.MethodGet, "/transactions", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := parseBody(t, rec)
		if n := len(body["transactions"].([]interface{})); n != 2 {
			t.Errorf("expected 2 transactions, got %d", n)
		}
	})

	t.Run("by_exact_date", func(t *testing.T) {
		rec := doJSON(r, http.MethodGet, "/transactions?date=2024-03-01", nil)
		body := parseBody(t, rec)
		txs := body["transactions"].([]interface{})
		if len(txs) != 1 {
			t.Fatalf("expected 1 transaction, got %d", len(txs))
		}
	})

	t.Run("by_keyword", func(t *testing.T) {
		rec := doJSON(r, http.MethodGet, "/transactions?keyword=LUNCH", nil)
		body := parseBody(t, rec)
		if n := len(body["transactions"].([]interface{})); n != 1 {
			t.Errorf("expected 1 keyword match, got %d", n)
		}
	})
}

func TestUpdateCategoryEndpoint(t *testing.T) {
	t.Run("partial_update", func(t *testing.T) {
		r, s := setupRouter(t, true)
		catID := createCategory(t, r, "旅行", models.CategoryTypeExpense)

		rec := doJSON(r, http.MethodPut, "/categories/"+catID, gin.H{"color": "#ABCDEF"})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got := s.Snapshot().Categories[0].Color; got != "#ABCDEF" {
			t.Errorf("expected updated color, got %s", got)
		}
	})

	t.Run("empty_body_rejected_for_existing_category", func(t *testing.T) {
		r, s := setupRouter(t, true)
		catID := createCategory(t, r, "旅行", models.CategoryTypeExpense)

		rec := doJSON(r, http.MethodPut, "/categories/"+catID, gin.H{})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for empty patch, got %d: %s", rec.Code, rec.Body.String())
		}
		if code := errorCode(t, rec); code != "INVALID_INPUT" {
			t.Errorf("expected INVALID_INPUT, got %s", code)
		}
		if got := s.Snapshot().Categories[0].Name; got != "旅行" {
			t.Errorf("expected category untouched, got %s", got)
		}
	})
}

func TestUpdateTransactionEndpoint(t *testing.T) {
	t.Run("empty_body_rejected", func(t *testing.T) {
		r, _ := setupRouter(t, true)
		catID := createCategory(t, r, "餐饮", models.CategoryTypeExpense)
		rec := doJSON(r, http.MethodPost, "/transactions", gin.H{
			"type": "expense", "amount": "10", "categoryId": catID, "date": "2024-03-01",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("setup create failed: %d", rec.Code)
		}
		body := parseBody(t, rec)
		txID := body["transaction"].(map[string]interface{})["id"].(string)

		rec = doJSON(r, http.MethodPut, "/transactions/"+txID, gin.H{})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for empty patch, got %d: %s", rec.Code, rec.Body.String())
		}
		if code := errorCode(t, rec); code != "INVALID_INPUT" {
			t.Errorf("expected INVALID_INPUT, got %s", code)
		}
	})

	t.Run("note_update", func(t *testing.T) {
		r, s := setupRouter(t, true)
		catID := createCategory(t, r, "餐饮", models.CategoryTypeExpense)
		rec := doJSON(r, http.MethodPost, "/transactions", gin.H{
			"type": "expense", "amount": "10", "categoryId": catID, "date": "2024-03-01", "note": "draft",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("setup create failed: %d", rec.Code)
		}
		body := parseBody(t, rec)
		txID := body["transaction"].(map[string]interface{})["id"].(string)

		rec = doJSON(r, http.MethodPut, "/transactions/"+txID, gin.H{"note": "final"})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got := s.Snapshot().Transactions[0].Note; got != "final" {
			t.Errorf("expected updated note, got %q", got)
		}
	})
}

func TestDeleteCategoryEndpoint(t *testing.T) {
	t.Run("custom_category", func(t *testing.T) {
		r, s := setupRouter(t, true)
		catID := createCategory(t, r, "旅行", models.CategoryTypeExpense)

		rec := doJSON(r, http.MethodDelete, "/categories/"+catID, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if n := len(s.Snapshot().Categories); n != 0 {
			t.Errorf("expected empty category cache, got %d", n)
		}
	})

	t.Run("default_category_conflict", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

		catGW := gateway.NewCategoryGateway(db)
		seeded := testutil.CreateTestDefaultCategory(t, catGW, models.CategoryTypeExpense)

		s := store.New(
			gateway.NewTransactionGateway(db),
			catGW,
			store.WithSyncRevertDelays(10*time.Millisecond, 10*time.Millisecond),
		)
		testutil.AssertNoError(t, s.Initialize(context.Background()))

		r := gin.New()
		r.DELETE("/categories/:id", NewCategoryHandler(s).DeleteCategory)

		rec := doJSON(r, http.MethodDelete, "/categories/"+seeded.ID, nil)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
		}
		if code := errorCode(t, rec); code != "DEFAULT_CATEGORY" {
			t.Errorf("expected DEFAULT_CATEGORY, got %s", code)
		}
	})
}

func TestStatisticsEndpoint(t *testing.T) {
	r, _ := setupRouter(t, true)
	expenseID := createCategory(t, r, "餐饮", models.CategoryTypeExpense)
	incomeID := createCategory(t, r, "工资", models.CategoryTypeIncome)

	for _, tx := range []gin.H{
		{"type": "expense", "amount": "400", "categoryId": expenseID, "date": "2024-03-01"},
		{"type": "income", "amount": "3000", "categoryId": incomeID, "date": "2024-03-05"},
		{"type": "expense", "amount": "50", "categoryId": expenseID, "date": "2024-04-01"},
	} {
		if rec := doJSON(r, http.MethodPost, "/transactions", tx); rec.Code != http.StatusCreated {
			t.Fatalf("setup create failed: %d", rec.Code)
		}
	}

	rec := doJSON(r, http.MethodGet, "/statistics?range=month&date=2024-03-15", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := parseBody(t, rec)
	stats := body["statistics"].(map[string]interface{})
	if got := stats["totalExpense"].(string); got != "400" {
		t.Errorf("expected total expense 400, got %s", got)
	}
	if got := stats["totalIncome"].(string); got != "3000" {
		t.Errorf("expected total income 3000, got %s", got)
	}
	if got := stats["balance"].(string); got != "2600" {
		t.Errorf("expected balance 2600, got %s", got)
	}

	// March has 31 days; the series is zero-filled across the month.
	daily := body["daily"].([]interface{})
	if len(daily) != 31 {
		t.Errorf("expected 31 daily entries, got %d", len(daily))
	}

	spanObj := body["range"].(map[string]interface{})
	if spanObj["start"] != "2024-03-01" || spanObj["end"] != "2024-03-31" {
		t.Errorf("unexpected span: %v", spanObj)
	}
}

func TestClearAllDataEndpoint(t *testing.T) {
	r, s := setupRouter(t, true)
	catID := createCategory(t, r, "餐饮", models.CategoryTypeExpense)
	if rec := doJSON(r, http.MethodPost, "/transactions", gin.H{
		"type": "expense", "amount": "10", "categoryId": catID, "date": "2024-03-01",
	}); rec.Code != http.StatusCreated {
		t.Fatalf("setup create failed: %d", rec.Code)
	}

	rec := doJSON(r, http.MethodDelete, "/data", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	snap := s.Snapshot()
	if len(snap.Transactions) != 0 {
		t.Errorf("expected transactions cleared, got %d", len(snap.Transactions))
	}
	if len(snap.Categories) != 1 {
		t.Errorf("expected categories kept, got %d", len(snap.Categories))
	}
}

func TestViewEndpoints(t *testing.T) {
	r, s := setupRouter(t, true)

	rec := doJSON(r, http.MethodPut, "/view/range", gin.H{"range": "week"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := s.Snapshot().DateRange; got != models.DateRangeWeek {
		t.Errorf("expected week range, got %s", got)
	}

	rec = doJSON(r, http.MethodPut, "/view/range", gin.H{"range": "decade"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown granularity, got %d", rec.Code)
	}

	rec = doJSON(r, http.MethodGet, "/state", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := parseBody(t, rec)
	if body["syncStatus"] == nil {
		t.Error("expected syncStatus in state payload")
	}
}
