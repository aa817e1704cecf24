package gateway

import (
	"context"

	"gorm.io/gorm"

	apperrors "tally/internal/errors"
	"tally/internal/models"
)

// categoryGateway issues category CRUD calls against the row-store.
type categoryGateway struct {
	db *gorm.DB
}

// NewCategoryGateway creates a new CategoryGateway.
func NewCategoryGateway(db *gorm.DB) CategoryGateway {
	return &categoryGateway{db: db}
}

func (g *categoryGateway) GetAll(ctx context.Context) ([]models.Category, error) {
	var rows []categoryRow
	if err := g.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrFetchFailed, err)
	}

	categories := make([]models.Category, 0, len(rows))
	for _, r := range rows {
		categories = append(categories, rowToCategory(r))
	}
	return categories, nil
}

func (g *categoryGateway) Create(ctx context.Context, c models.Category) (models.Category, error) {
	row := categoryToRow(c)
	if err := g.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.Category{}, apperrors.Wrap(apperrors.ErrCreateFailed, err)
	}
	return rowToCategory(row), nil
}

func (g *categoryGateway) Update(ctx context.Context, id string, patch models.CategoryPatch) (models.Category, error) {
	updates := categoryPatchColumns(patch)

	res := g.db.WithContext(ctx).Model(&categoryRow{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return models.Category{}, apperrors.Wrap(apperrors.ErrUpdateFailed, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.Category{}, apperrors.WithMessage(apperrors.ErrUpdateFailed, "No category matched the given id")
	}

	var row categoryRow
	if err := g.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return models.Category{}, apperrors.Wrap(apperrors.ErrUpdateFailed, err)
	}
	return rowToCategory(row), nil
}

// Delete removes the matching non-default row. The is_default condition means
// a default category produces an affected count of zero instead of an error.
func (g *categoryGateway) Delete(ctx context.Context, id string) (int64, error) {
	res := g.db.WithContext(ctx).
		Where("id = ? AND is_default = ?", id, false).
		Delete(&categoryRow{})
	if res.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrDeleteFailed, res.Error)
	}
	return res.RowsAffected, nil
}
