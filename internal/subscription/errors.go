package subscription

import "errors"

// Sentinel errors for the subscription service layer. Storage and transport
// failures are wrapped with their cause so both the sentinel and the
// underlying error survive errors.Is/As at the boundary.
var (
	ErrTokenNotFound       = errors.New("subscription token not found")
	ErrSubscriberNotFound  = errors.New("subscriber not found")
	ErrRepositoryOperation = errors.New("repository operation failed")
	ErrEmailOperation      = errors.New("email operation failed")
	ErrUnexpected          = errors.New("unexpected failure")
)
