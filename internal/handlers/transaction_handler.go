package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "tally/internal/errors"
	"tally/internal/models"
	"tally/internal/selectors"
	"tally/internal/store"
)

// TransactionHandler handles transaction-related requests
type TransactionHandler struct {
	store *store.Store
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(s *store.Store) *TransactionHandler {
	return &TransactionHandler{store: s}
}

// CreateTransactionRequest represents the request payload for creating a
// transaction. The amount is entered unsigned; the type decides the stored
// sign (income positive, expense negative).
type CreateTransactionRequest struct {
	Type       models.CategoryType `json:"type" binding:"required,category_type"`
	Amount     decimal.Decimal     `json:"amount"`
	CategoryID string              `json:"categoryId" binding:"required"`
	Date       string              `json:"date" binding:"required,ledger_date"`
	Note       string              `json:"note"`
}

// UpdateTransactionRequest represents the request payload for a partial
// update. Absent fields are left unchanged. When Type accompanies Amount the
// amount is re-signed; otherwise the amount is taken as already signed.
type UpdateTransactionRequest struct {
	Type       *models.CategoryType `json:"type" binding:"omitempty,category_type"`
	Amount     *decimal.Decimal     `json:"amount"`
	CategoryID *string              `json:"categoryId"`
	Date       *string              `json:"date" binding:"omitempty,ledger_date"`
	Note       *string              `json:"note"`
}

// signedAmount applies the sign convention to an entered amount.
func signedAmount(amount decimal.Decimal, t models.CategoryType) decimal.Decimal {
	if t == models.CategoryTypeExpense {
		return amount.Abs().Neg()
	}
	return amount.Abs()
}

// ListTransactions returns the cached transactions, filtered by any query
// parameters. With no parameters the store's persisted search filter applies.
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	if !requireInitialized(c, h.store) {
		return
	}
	snap := h.store.Snapshot()

	filter := models.SearchFilter{
		Keyword:    c.Query("keyword"),
		CategoryID: c.Query("categoryId"),
		StartDate:  c.Query("startDate"),
		EndDate:    c.Query("endDate"),
		Type:       models.CategoryType(c.Query("type")),
	}
	if filter.IsZero() {
		filter = snap.SearchFilter
	}

	if date := c.Query("date"); date != "" {
		c.JSON(http.StatusOK, gin.H{"transactions": selectors.ByDate(snap.Transactions, date)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": selectors.Filtered(snap.Transactions, snap.Categories, filter)})
}

// CreateTransaction records a new transaction.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	if !requireInitialized(c, h.store) {
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if req.Amount.IsZero() {
		respondWithError(c, apperrors.ErrZeroAmount)
		return
	}

	created, err := h.store.AddTransaction(c.Request.Context(), models.TransactionDraft{
		Amount:     signedAmount(req.Amount, req.Type),
		CategoryID: req.CategoryID,
		Date:       req.Date,
		Note:       req.Note,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": created})
}

// UpdateTransaction applies a partial update to a transaction.
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	if !requireInitialized(c, h.store) {
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	patch := models.TransactionPatch{
		CategoryID: req.CategoryID,
		Date:       req.Date,
		Note:       req.Note,
	}
	if req.Amount != nil {
		amount := *req.Amount
		if amount.IsZero() {
			respondWithError(c, apperrors.ErrZeroAmount)
			return
		}
		if req.Type != nil {
			amount = signedAmount(amount, *req.Type)
		}
		patch.Amount = &amount
	}

	updated, err := h.store.UpdateTransaction(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": updated})
}

// DeleteTransaction removes a transaction.
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	if !requireInitialized(c, h.store) {
		return
	}

	if err := h.store.DeleteTransaction(c.Request.Context(), c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}
