package engine

import "skillcert/backend/models"

const (
	// SessionSize is the fixed number of questions per quiz session.
	SessionSize = 10

	// PassThreshold is the minimum score out of SessionSize that passes an
	// automated attempt.
	PassThreshold = 7

	// MaxAutomatedAttempts is how many attempts are scored automatically
	// before the physical-verification escalation kicks in.
	MaxAutomatedAttempts = 3
)

// Ledger is the append-only per-user attempt history. Append must reject a
// duplicate (user, attempt_number) slot with ErrLedgerConflict, and Reset must
// re-verify eligibility inside the same transaction that deletes the rows.
type Ledger interface {
	Count(userID uint) (int, error)
	HasPassed(userID uint) (bool, error)
	History(userID uint) ([]models.Attempt, error)
	Append(attempt *models.Attempt) error
	Reset(userID uint) error
}

// QuestionBank is the read side of the question store plus the single write
// path this engine has: persisting lazily produced translations.
type QuestionBank interface {
	PoolByRole(role string) ([]models.Question, error)
	AnswerKey(ids []uint) (map[uint]string, error)
	SaveTranslations(questionID uint, updates []FieldUpdate) error
}
