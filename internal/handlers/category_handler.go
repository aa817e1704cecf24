package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "tally/internal/errors"
	"tally/internal/models"
	"tally/internal/store"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	store *store.Store
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(s *store.Store) *CategoryHandler {
	return &CategoryHandler{store: s}
}

// CreateCategoryRequest represents the request payload for creating a category
type CreateCategoryRequest struct {
	Name  string              `json:"name" binding:"required"`
	Type  models.CategoryType `json:"type" binding:"required,category_type"`
	Icon  string              `json:"icon"`
	Color string              `json:"color" binding:"omitempty,hex_color"`
}

// UpdateCategoryRequest represents the request payload for updating a category
type UpdateCategoryRequest struct {
	Name  *string              `json:"name"`
	Type  *models.CategoryType `json:"type" binding:"omitempty,category_type"`
	Icon  *string              `json:"icon"`
	Color *string              `json:"color" binding:"omitempty,hex_color"`
}

// ListCategories returns the cached categories, optionally filtered by type.
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	if !requireInitialized(c, h.store) {
		return
	}
	categories := h.store.Snapshot().Categories

	if t := c.Query("type"); t != "" {
		filtered := make([]models.Category, 0, len(categories))
		for _, cat := range categories {
			if cat.Type == models.CategoryType(t) {
				filtered = append(filtered, cat)
			}
		}
		categories = filtered
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory creates a new custom category.
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	if !requireInitialized(c, h.store) {
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	created, err := h.store.AddCategory(c.Request.Context(), models.CategoryDraft{
		Name:  req.Name,
		Icon:  req.Icon,
		Color: req.Color,
		Type:  req.Type,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": created})
}

// UpdateCategory applies a partial update to a category.
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	if !requireInitialized(c, h.store) {
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	updated, err := h.store.UpdateCategory(c.Request.Context(), c.Param("id"), models.CategoryPatch{
		Name:  req.Name,
		Icon:  req.Icon,
		Color: req.Color,
		Type:  req.Type,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": updated})
}

// DeleteCategory removes a non-default category. Default categories are
// refused; transactions referencing the deleted category keep their dangling
// reference and render as unknown.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if !requireInitialized(c, h.store) {
		return
	}

	if err := h.store.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
