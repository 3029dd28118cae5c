package storage

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"skillcert/backend/engine"
	"skillcert/backend/models"
)

// AttemptStore is the GORM-backed engine.Ledger. Dense attempt numbering is
// enforced by the unique (user_id, attempt_number) index: the loser of a
// concurrent append gets engine.ErrLedgerConflict instead of a duplicate slot.
type AttemptStore struct {
	DB *gorm.DB
}

func NewAttemptStore(db *gorm.DB) *AttemptStore {
	return &AttemptStore{DB: db}
}

func (s *AttemptStore) Count(userID uint) (int, error) {
	var count int64
	err := s.DB.Model(&models.Attempt{}).Where("user_id = ?", userID).Count(&count).Error
	return int(count), err
}

func (s *AttemptStore) HasPassed(userID uint) (bool, error) {
	var count int64
	err := s.DB.Model(&models.Attempt{}).
		Where("user_id = ? AND passed = ?", userID, true).
		Count(&count).Error
	return count > 0, err
}

// History returns a user's attempts newest first. Attempt number breaks
// timestamp ties, so the order always matches the dense numbering.
func (s *AttemptStore) History(userID uint) ([]models.Attempt, error) {
	var attempts []models.Attempt
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC, attempt_number DESC").
		Find(&attempts).Error
	return attempts, err
}

func (s *AttemptStore) Append(attempt *models.Attempt) error {
	err := s.DB.Create(attempt).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: attempt %d for user %d already taken",
			engine.ErrLedgerConflict, attempt.AttemptNumber, attempt.UserID)
	}
	return err
}

// Reset wipes a user's whole history. Eligibility is re-verified inside the
// same transaction that deletes, closing the window between the gate's check
// and the wipe. The delete is unscoped: freed attempt numbers must actually
// free their unique slots, a soft delete would keep blocking them.
func (s *AttemptStore) Reset(userID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var passed int64
		if err := tx.Model(&models.Attempt{}).
			Where("user_id = ? AND passed = ?", userID, true).
			Count(&passed).Error; err != nil {
			return err
		}
		if passed > 0 {
			return engine.ErrAlreadyPassed
		}

		var total int64
		if err := tx.Model(&models.Attempt{}).
			Where("user_id = ?", userID).
			Count(&total).Error; err != nil {
			return err
		}
		if total < int64(engine.MaxAutomatedAttempts) {
			return engine.ErrNotYetEligible
		}

		return tx.Unscoped().Where("user_id = ?", userID).Delete(&models.Attempt{}).Error
	})
}
