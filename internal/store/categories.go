package store

import (
	"context"

	apperrors "tally/internal/errors"
	"tally/internal/logger"
	"tally/internal/models"
)

// AddCategory creates a non-default category remotely and appends the
// server-returned entity to the cache.
func (s *Store) AddCategory(ctx context.Context, draft models.CategoryDraft) (models.Category, error) {
	gen := s.beginSync()

	entity := models.Category{
		Name:      draft.Name,
		Icon:      draft.Icon,
		Color:     draft.Color,
		Type:      draft.Type,
		IsDefault: false,
		CreatedAt: s.now().UTC(),
	}

	created, err := s.categoriesGW.Create(ctx, entity)
	if err != nil {
		logger.Get().Errorw("add category failed", "error", err)
		s.completeSync(gen, true, nil)
		return models.Category{}, err
	}

	s.completeSync(gen, false, func() {
		s.categories = append(s.categories, created)
	})
	return created, nil
}

// UpdateCategory applies a partial update remotely and replaces the matching
// cached entry with the server-returned entity.
func (s *Store) UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) (models.Category, error) {
	// An empty patch maps to zero update columns, which the remote reports
	// as zero affected rows even for an existing id. Reject it up front.
	if patch.IsEmpty() {
		return models.Category{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "No fields to update")
	}

	gen := s.beginSync()

	updated, err := s.categoriesGW.Update(ctx, id, patch)
	if err != nil {
		logger.Get().Errorw("update category failed", "id", id, "error", err)
		s.completeSync(gen, true, nil)
		return models.Category{}, err
	}

	s.completeSync(gen, false, func() {
		for i := range s.categories {
			if s.categories[i].ID == id {
				s.categories[i] = updated
			}
		}
	})
	return updated, nil
}

// DeleteCategory deletes the category remotely. The remote delete is
// constrained to non-default rows, so it can silently affect zero rows; the
// store checks the affected count before touching the cache and refuses the
// delete instead of drifting from the remote state. With
// WithLenientCategoryDelete the historical behavior is kept: the cached entry
// is dropped regardless of the affected count.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	gen := s.beginSync()

	affected, err := s.categoriesGW.Delete(ctx, id)
	if err != nil {
		logger.Get().Errorw("delete category failed", "id", id, "error", err)
		s.completeSync(gen, true, nil)
		return err
	}

	if affected == 0 && !s.lenientDelete {
		refusal := s.deleteRefusal(id)
		logger.Get().Warnw("delete category affected no rows", "id", id, "code", refusal.Code)
		s.completeSync(gen, true, nil)
		return refusal
	}

	s.completeSync(gen, false, func() {
		kept := s.categories[:0]
		for _, c := range s.categories {
			if c.ID != id {
				kept = append(kept, c)
			}
		}
		s.categories = kept
	})
	return nil
}

// deleteRefusal distinguishes the two zero-row cases: a default category the
// remote guard protected, or an id that matches nothing at all.
func (s *Store) deleteRefusal(id string) *apperrors.AppError {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.ID == id {
			if c.IsDefault {
				return apperrors.ErrDefaultCategory
			}
			break
		}
	}
	return apperrors.ErrCategoryNotFound
}
