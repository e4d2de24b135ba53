package subscription

import (
	"context"
	"fmt"
)

// Executor dispatches commands to their handlers with the bound
// collaborators. It is stateless apart from immutable references and is safe
// to share across concurrent requests; the subscriber row lock taken inside
// ModifyByID is the only concurrency-control primitive in this package.
type Executor struct {
	subscribers SubscriberRepository
	tokens      SubscriptionTokenRepository
	notifier    EmailNotifier
}

// NewExecutor creates an executor with its collaborators bound. The caller
// (transport layer) depends only on Command and Execute, never on storage or
// transport-client types.
func NewExecutor(
	subscribers SubscriberRepository,
	tokens SubscriptionTokenRepository,
	notifier EmailNotifier,
) *Executor {
	return &Executor{
		subscribers: subscribers,
		tokens:      tokens,
		notifier:    notifier,
	}
}

// Execute routes cmd to the matching handler. The default branch is
// unreachable while Command remains sealed to this package.
func (e *Executor) Execute(ctx context.Context, cmd Command) error {
	switch c := cmd.(type) {
	case Subscribe:
		return e.subscribe(ctx, c)
	case ConfirmSubscription:
		return e.confirmSubscription(ctx, c)
	default:
		return fmt.Errorf("%w: unknown command %T", ErrUnexpected, cmd)
	}
}
