package engine

// ResetGate authorizes the repayment-gated wipe of a user's attempt history.
// A reset is the only deletion path for attempts and always removes all of
// them; the ledger's Reset re-verifies eligibility inside the transaction that
// deletes, so the check here cannot go stale.
type ResetGate struct {
	ledger Ledger
}

func NewResetGate(ledger Ledger) *ResetGate {
	return &ResetGate{ledger: ledger}
}

func (g *ResetGate) AuthorizeReset(userID uint) error {
	hasPassed, err := g.ledger.HasPassed(userID)
	if err != nil {
		return err
	}
	if hasPassed {
		return ErrAlreadyPassed
	}

	count, err := g.ledger.Count(userID)
	if err != nil {
		return err
	}
	if count < MaxAutomatedAttempts {
		return ErrNotYetEligible
	}

	return g.ledger.Reset(userID)
}
