package store

import (
	"context"

	apperrors "tally/internal/errors"
	"tally/internal/logger"
	"tally/internal/models"
)

// AddTransaction stamps the draft's timestamps, creates it remotely, and
// appends the server-returned entity to the cache. On failure the cache is
// left unchanged and the gateway error is re-raised.
func (s *Store) AddTransaction(ctx context.Context, draft models.TransactionDraft) (models.Transaction, error) {
	gen := s.beginSync()

	now := s.now().UTC()
	entity := models.Transaction{
		Amount:     draft.Amount,
		CategoryID: draft.CategoryID,
		Date:       draft.Date,
		Note:       draft.Note,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.transactionsGW.Create(ctx, entity)
	if err != nil {
		logger.Get().Errorw("add transaction failed", "error", err)
		s.completeSync(gen, true, nil)
		return models.Transaction{}, err
	}

	s.completeSync(gen, false, func() {
		s.transactions = append(s.transactions, created)
	})
	return created, nil
}

// UpdateTransaction applies a partial update remotely and replaces the
// matching cached entry with the server-returned entity. When the id matches
// no cached entry the replacement is a no-op; the remote call still ran.
func (s *Store) UpdateTransaction(ctx context.Context, id string, patch models.TransactionPatch) (models.Transaction, error) {
	// An empty patch would reach the remote as an UPDATE with no columns;
	// reject it here before the sync machine engages.
	if patch.IsEmpty() {
		return models.Transaction{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "No fields to update")
	}

	gen := s.beginSync()

	updated, err := s.transactionsGW.Update(ctx, id, patch)
	if err != nil {
		logger.Get().Errorw("update transaction failed", "id", id, "error", err)
		s.completeSync(gen, true, nil)
		return models.Transaction{}, err
	}

	s.completeSync(gen, false, func() {
		for i := range s.transactions {
			if s.transactions[i].ID == id {
				s.transactions[i] = updated
			}
		}
	})
	return updated, nil
}

// DeleteTransaction deletes the transaction remotely, then drops it from the
// cache. A failed remote delete leaves the cache unchanged.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	gen := s.beginSync()

	if err := s.transactionsGW.Delete(ctx, id); err != nil {
		logger.Get().Errorw("delete transaction failed", "id", id, "error", err)
		s.completeSync(gen, true, nil)
		return err
	}

	s.completeSync(gen, false, func() {
		kept := s.transactions[:0]
		for _, t := range s.transactions {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		s.transactions = kept
	})
	return nil
}
