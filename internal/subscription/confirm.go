package subscription

import (
	"context"
	"fmt"

	"github.com/ignite/newsletter-service/internal/domain"
)

// confirmSubscription redeems a token and flips the referenced subscriber to
// confirmed. The repository applies the transition under an exclusive row
// lock, so two concurrent redemptions of the same token serialize: the
// second waiter re-applies Confirm to an already-confirmed row, a redundant
// but harmless write. Tokens stay valid after redemption.
func (e *Executor) confirmSubscription(ctx context.Context, cmd ConfirmSubscription) error {
	token, err := e.tokens.FindByToken(ctx, cmd.Token)
	if err != nil {
		return fmt.Errorf("find subscription token: %w", err)
	}
	if token == nil {
		return ErrTokenNotFound
	}

	err = e.subscribers.ModifyByID(ctx, token.SubscriberID(), func(sub domain.Subscriber) domain.Subscriber {
		sub.Confirm()
		return sub
	})
	if err != nil {
		return fmt.Errorf("confirm subscriber %s: %w", token.SubscriberID(), err)
	}
	return nil
}
