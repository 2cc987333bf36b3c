package services

import "errors"

// Lookup misses and ownership mismatches share one error so a caller
// cannot probe whether a record exists under another account.
var (
	ErrNotFound              = errors.New("record not found")
	ErrInvalidStatus         = errors.New("unknown status value")
	ErrInvalidTransition     = errors.New("transition not allowed from current status")
	ErrTerminalState         = errors.New("record is already in a terminal state")
	ErrFailureReasonRequired = errors.New("a failure reason is required for failed payments")
)
