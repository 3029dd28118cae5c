package engine_test

import (
	"context"
	"fmt"

	"skillcert/backend/engine"
	"skillcert/backend/models"
)

// fakeLedger is an in-memory engine.Ledger. conflicts makes the next N
// Append calls fail with ErrLedgerConflict to simulate lost races.
type fakeLedger struct {
	attempts  []models.Attempt
	conflicts int
}

func (f *fakeLedger) Count(userID uint) (int, error) {
	n := 0
	for _, a := range f.attempts {
		if a.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeLedger) HasPassed(userID uint) (bool, error) {
	for _, a := range f.attempts {
		if a.UserID == userID && a.Passed {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLedger) History(userID uint) ([]models.Attempt, error) {
	var out []models.Attempt
	for i := len(f.attempts) - 1; i >= 0; i-- {
		if f.attempts[i].UserID == userID {
			out = append(out, f.attempts[i])
		}
	}
	return out, nil
}

func (f *fakeLedger) Append(attempt *models.Attempt) error {
	if f.conflicts > 0 {
		f.conflicts--
		return engine.ErrLedgerConflict
	}
	for _, a := range f.attempts {
		if a.UserID == attempt.UserID && a.AttemptNumber == attempt.AttemptNumber {
			return engine.ErrLedgerConflict
		}
	}
	f.attempts = append(f.attempts, *attempt)
	return nil
}

func (f *fakeLedger) Reset(userID uint) error {
	passed, _ := f.HasPassed(userID)
	if passed {
		return engine.ErrAlreadyPassed
	}
	count, _ := f.Count(userID)
	if count < engine.MaxAutomatedAttempts {
		return engine.ErrNotYetEligible
	}

	kept := f.attempts[:0]
	for _, a := range f.attempts {
		if a.UserID != userID {
			kept = append(kept, a)
		}
	}
	f.attempts = kept
	return nil
}

// fakeBank is an in-memory engine.QuestionBank.
type fakeBank struct {
	pools map[string][]models.Question
	key   map[uint]string
	saved map[uint][]engine.FieldUpdate
}

func newFakeBank() *fakeBank {
	return &fakeBank{
		pools: make(map[string][]models.Question),
		key:   make(map[uint]string),
		saved: make(map[uint][]engine.FieldUpdate),
	}
}

func (f *fakeBank) PoolByRole(role string) ([]models.Question, error) {
	return f.pools[role], nil
}

func (f *fakeBank) AnswerKey(ids []uint) (map[uint]string, error) {
	key := make(map[uint]string)
	for _, id := range ids {
		if correct, ok := f.key[id]; ok {
			key[id] = correct
		}
	}
	return key, nil
}

func (f *fakeBank) SaveTranslations(questionID uint, updates []engine.FieldUpdate) error {
	f.saved[questionID] = append(f.saved[questionID], updates...)
	return nil
}

func (f *fakeBank) addPool(role string, size int) {
	for i := 0; i < size; i++ {
		id := uint(len(f.key) + 1)
		q := models.Question{
			Role:          role,
			QuestionText:  fmt.Sprintf("%s question %d", role, i+1),
			OptionA:       "a",
			OptionB:       "b",
			OptionC:       "c",
			OptionD:       "d",
			CorrectOption: "A",
		}
		q.ID = id
		f.pools[role] = append(f.pools[role], q)
		f.key[id] = "A"
	}
}

// fakeTranslator counts upstream calls so tests can assert memoization.
type fakeTranslator struct {
	calls map[string]int
	fail  bool
}

func newFakeTranslator() *fakeTranslator {
	return &fakeTranslator{calls: make(map[string]int)}
}

func (f *fakeTranslator) Translate(_ context.Context, text, target string) (string, bool) {
	f.calls[text]++
	if f.fail {
		return "", false
	}
	return "[" + target + "] " + text, true
}
