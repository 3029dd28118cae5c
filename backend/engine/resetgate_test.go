package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillcert/backend/engine"
	"skillcert/backend/models"
)

func failedAttempts(userID uint, n int) []models.Attempt {
	attempts := make([]models.Attempt, 0, n)
	for i := 1; i <= n; i++ {
		attempts = append(attempts, models.Attempt{UserID: userID, Score: 3, AttemptNumber: i})
	}
	return attempts
}

func TestResetAfterThreeFailures(t *testing.T) {
	ledger := &fakeLedger{attempts: failedAttempts(1, 3)}
	gate := engine.NewResetGate(ledger)

	require.NoError(t, gate.AuthorizeReset(1))

	count, _ := ledger.Count(1)
	assert.Zero(t, count)

	// Next submission starts over at attempt 1.
	bank := newFakeBank()
	bank.addPool("Welder", 10)
	result, err := engine.NewEvaluator(bank, ledger).Submit(1, submitAnswers(bank, 2))
	require.NoError(t, err)
	assert.Equal(t, 1, result.AttemptNumber)
}

func TestResetDeniedAfterPass(t *testing.T) {
	attempts := failedAttempts(1, 2)
	attempts = append(attempts, models.Attempt{UserID: 1, Score: 8, AttemptNumber: 3, Passed: true})
	ledger := &fakeLedger{attempts: attempts}
	gate := engine.NewResetGate(ledger)

	err := gate.AuthorizeReset(1)
	assert.ErrorIs(t, err, engine.ErrAlreadyPassed)

	count, _ := ledger.Count(1)
	assert.Equal(t, 3, count, "denied reset must not delete anything")
}

func TestResetDeniedBeforeThreeAttempts(t *testing.T) {
	ledger := &fakeLedger{attempts: failedAttempts(1, 2)}
	gate := engine.NewResetGate(ledger)

	err := gate.AuthorizeReset(1)
	assert.ErrorIs(t, err, engine.ErrNotYetEligible)

	count, _ := ledger.Count(1)
	assert.Equal(t, 2, count)
}

func TestResetOnlyWipesThatUser(t *testing.T) {
	attempts := append(failedAttempts(1, 3), failedAttempts(2, 2)...)
	ledger := &fakeLedger{attempts: attempts}
	gate := engine.NewResetGate(ledger)

	require.NoError(t, gate.AuthorizeReset(1))

	count, _ := ledger.Count(2)
	assert.Equal(t, 2, count)
}
