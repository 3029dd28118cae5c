package engine

import (
	"errors"
	"fmt"

	"skillcert/backend/models"
)

// State is where a user stands in the attempt progression, derived purely from
// the ledger tail: prior attempt count and whether any prior attempt passed.
type State int

const (
	// StateNormal covers attempts 1 and 2: plain threshold scoring.
	StateNormal State = iota
	// StateFinalAutomated is attempt 3, the last one scored automatically.
	// Failing it requires out-of-band physical verification to progress.
	StateFinalAutomated
	// StatePostEscalation is attempt 4+: reaching it means physical
	// verification was granted, so the attempt passes regardless of score.
	// The score is still recorded for audit.
	StatePostEscalation
	// StateBlocked means a prior attempt already passed. The submission is
	// still scored for feedback but the ledger is left untouched.
	StateBlocked
)

func StateFor(priorAttempts int, hasPriorPass bool) State {
	switch {
	case hasPriorPass:
		return StateBlocked
	case priorAttempts <= 1:
		return StateNormal
	case priorAttempts == 2:
		return StateFinalAutomated
	default:
		return StatePostEscalation
	}
}

// Result is the outcome of one submission.
type Result struct {
	Score         int
	Total         int
	Passed        bool
	AttemptNumber int
	Message       string
	CanRetry      bool

	// Recorded is false when no ledger entry was written (prior pass).
	Recorded bool
}

// ScoreAnswers counts submitted answers that match the answer key. Question
// ids absent from the key are ignored; the total stays the fixed session size
// either way.
func ScoreAnswers(answers map[uint]string, key map[uint]string) int {
	score := 0
	for questionID, selected := range answers {
		if correct, ok := key[questionID]; ok && selected == correct {
			score++
		}
	}
	return score
}

// Evaluate is the pure transition function: given a score and the ledger
// tail, it produces the outcome and the message shown to the user. It does
// not touch any storage.
func Evaluate(score, priorAttempts int, hasPriorPass bool) Result {
	result := Result{
		Score:         score,
		Total:         SessionSize,
		AttemptNumber: priorAttempts + 1,
		Recorded:      true,
	}

	switch StateFor(priorAttempts, hasPriorPass) {
	case StateBlocked:
		result.AttemptNumber = priorAttempts
		result.Passed = true
		result.Recorded = false
		result.Message = fmt.Sprintf("You have already passed the test. This submission scored %d/%d and was not recorded.", score, SessionSize)

	case StateNormal:
		if score >= PassThreshold {
			result.Passed = true
			result.Message = fmt.Sprintf("Congratulations! You passed with %d/%d", score, SessionSize)
		} else {
			result.Message = fmt.Sprintf("You scored %d/%d. You need at least %d to pass. You have %d attempt(s) remaining.",
				score, SessionSize, PassThreshold, MaxAutomatedAttempts-result.AttemptNumber)
		}

	case StateFinalAutomated:
		if score >= PassThreshold {
			result.Passed = true
			result.Message = fmt.Sprintf("Congratulations! You passed with %d/%d", score, SessionSize)
		} else {
			result.Message = fmt.Sprintf("You scored %d/%d. Physical assistance required for final verification.", score, SessionSize)
		}

	case StatePostEscalation:
		result.Passed = true
		result.Message = fmt.Sprintf("You have passed after physical verification with score %d/%d", score, SessionSize)
	}

	result.CanRetry = result.AttemptNumber < MaxAutomatedAttempts && !result.Passed
	return result
}

// maxAppendRetries bounds how often a submission re-reads the ledger after
// losing an attempt slot to a concurrent submission.
const maxAppendRetries = 3

// Evaluator scores submissions and appends the resulting attempt to the
// ledger. Attempt numbering stays dense under concurrency: the slot is claimed
// by the conflict-aware Append, and a lost race recomputes against the new
// ledger tail.
type Evaluator struct {
	bank   QuestionBank
	ledger Ledger
}

func NewEvaluator(bank QuestionBank, ledger Ledger) *Evaluator {
	return &Evaluator{bank: bank, ledger: ledger}
}

func (e *Evaluator) Submit(userID uint, answers map[uint]string) (Result, error) {
	ids := make([]uint, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}

	key, err := e.bank.AnswerKey(ids)
	if err != nil {
		return Result{}, err
	}
	score := ScoreAnswers(answers, key)

	for retry := 0; retry < maxAppendRetries; retry++ {
		priorAttempts, err := e.ledger.Count(userID)
		if err != nil {
			return Result{}, err
		}
		hasPriorPass, err := e.ledger.HasPassed(userID)
		if err != nil {
			return Result{}, err
		}

		result := Evaluate(score, priorAttempts, hasPriorPass)
		if !result.Recorded {
			return result, nil
		}

		attempt := &models.Attempt{
			UserID:        userID,
			Score:         score,
			AttemptNumber: result.AttemptNumber,
			Passed:        result.Passed,
		}
		err = e.ledger.Append(attempt)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, ErrLedgerConflict) {
			return Result{}, err
		}
		// Lost the slot; the next iteration lands on the new attempt number.
	}

	return Result{}, ErrLedgerConflict
}
