package engine

import "errors"

var (
	// ErrInsufficientPool means a role has fewer questions than a session needs.
	ErrInsufficientPool = errors.New("not enough questions available")

	// ErrLedgerConflict means two submissions raced for the same attempt slot.
	// The evaluator retries a bounded number of times before surfacing it.
	ErrLedgerConflict = errors.New("concurrent submission conflict")

	// Reset denial reasons.
	ErrAlreadyPassed  = errors.New("cannot reset attempts after passing the test")
	ErrNotYetEligible = errors.New("repayment not required yet")
)
