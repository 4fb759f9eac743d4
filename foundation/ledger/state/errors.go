package state

import "errors"

// The set of business-rule errors surfaced by ledger operations. They are
// returned before any state is mutated.
var (
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrInvalidAmount       = errors.New("amount must be a positive number of units")
	ErrSameAccount         = errors.New("sender and recipient are the same account")
	ErrUnauthorized        = errors.New("acting account is not the designated payer")
	ErrInvalidRequestState = errors.New("money request is already resolved")
)
