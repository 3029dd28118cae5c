package storage

import (
	"fmt"

	"gorm.io/gorm"

	"skillcert/backend/engine"
	"skillcert/backend/models"
)

// QuestionStore is the GORM-backed engine.QuestionBank.
type QuestionStore struct {
	DB *gorm.DB
}

func NewQuestionStore(db *gorm.DB) *QuestionStore {
	return &QuestionStore{DB: db}
}

func (s *QuestionStore) PoolByRole(role string) ([]models.Question, error) {
	var pool []models.Question
	if err := s.DB.Where("role = ?", role).Find(&pool).Error; err != nil {
		return nil, err
	}
	return pool, nil
}

func (s *QuestionStore) AnswerKey(ids []uint) (map[uint]string, error) {
	key := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return key, nil
	}

	var questions []models.Question
	if err := s.DB.Select("id", "correct_option").Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, err
	}
	for _, q := range questions {
		key[q.ID] = q.CorrectOption
	}
	return key, nil
}

// translationColumns whitelists the columns the backfill may touch; the
// column name is interpolated into SQL, so it must never come from input.
var translationColumns = map[string]bool{
	"question_text_ur": true,
	"option_a_ur":      true,
	"option_b_ur":      true,
	"option_c_ur":      true,
	"option_d_ur":      true,
}

// SaveTranslations persists backfilled translations. Each write is
// conditional on the column still being empty, so two sessions racing to
// translate the same field cannot overwrite each other.
func (s *QuestionStore) SaveTranslations(questionID uint, updates []engine.FieldUpdate) error {
	for _, u := range updates {
		if !translationColumns[u.Column] {
			return fmt.Errorf("unknown translation column %q", u.Column)
		}

		condition := fmt.Sprintf("%s IS NULL OR %s = ''", u.Column, u.Column)
		err := s.DB.Model(&models.Question{}).
			Where("id = ?", questionID).
			Where(condition).
			Update(u.Column, u.Text).Error
		if err != nil {
			return err
		}
	}
	return nil
}
