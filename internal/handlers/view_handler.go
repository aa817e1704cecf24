package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "tally/internal/errors"
	"tally/internal/models"
	"tally/internal/store"
)

// ViewHandler exposes the store's selection state: the current date, the
// statistics granularity, and the search filter.
type ViewHandler struct {
	store *store.Store
}

// NewViewHandler creates a new ViewHandler
func NewViewHandler(s *store.Store) *ViewHandler {
	return &ViewHandler{store: s}
}

// SetDateRequest carries a new current date.
type SetDateRequest struct {
	Date string `json:"date" binding:"required,ledger_date"`
}

// SetRangeRequest carries a new statistics granularity.
type SetRangeRequest struct {
	Range models.DateRange `json:"range" binding:"required,date_range"`
}

// SetFilterRequest carries new search filter criteria.
type SetFilterRequest struct {
	Keyword    string              `json:"keyword"`
	CategoryID string              `json:"categoryId"`
	StartDate  string              `json:"startDate" binding:"omitempty,ledger_date"`
	EndDate    string              `json:"endDate" binding:"omitempty,ledger_date"`
	Type       models.CategoryType `json:"type" binding:"omitempty,category_type"`
}

// GetState returns the full store snapshot.
func (h *ViewHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Snapshot())
}

// Reload retries the bootstrap fetch. Bootstrap failure is terminal for the
// session until this explicit retry succeeds.
func (h *ViewHandler) Reload(c *gin.Context) {
	h.store.ClearError()
	if err := h.store.Initialize(c.Request.Context()); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.store.Snapshot())
}

// SetCurrentDate replaces the selected calendar date.
func (h *ViewHandler) SetCurrentDate(c *gin.Context) {
	var req SetDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	h.store.SetCurrentDate(req.Date)
	c.JSON(http.StatusOK, gin.H{"currentDate": req.Date})
}

// SetDateRange replaces the statistics granularity.
func (h *ViewHandler) SetDateRange(c *gin.Context) {
	var req SetRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	h.store.SetDateRange(req.Range)
	c.JSON(http.StatusOK, gin.H{"dateRange": req.Range})
}

// SetSearchFilter replaces the search filter criteria.
func (h *ViewHandler) SetSearchFilter(c *gin.Context) {
	var req SetFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	filter := models.SearchFilter{
		Keyword:    req.Keyword,
		CategoryID: req.CategoryID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Type:       req.Type,
	}
	h.store.SetSearchFilter(filter)
	c.JSON(http.StatusOK, gin.H{"searchFilter": filter})
}

// ClearSearchFilter resets the search filter criteria.
func (h *ViewHandler) ClearSearchFilter(c *gin.Context) {
	h.store.ClearSearchFilter()
	c.JSON(http.StatusOK, gin.H{"searchFilter": models.SearchFilter{}})
}
