package subscription

import (
	"context"
	"fmt"

	"github.com/ignite/newsletter-service/internal/domain"
)

const confirmationSubject = "hello!"

// subscribe registers a new subscriber, persists a confirmation token and
// emails it out. There is no compensating transaction across the three side
// effects; each step fails with a distinct error so the resulting partial
// state is diagnosable:
//   - save subscriber fails: nothing persisted, system consistent
//   - save token fails: subscriber row exists with no token, can never confirm
//   - send fails: subscriber and token committed, but unreachable by email
func (e *Executor) subscribe(ctx context.Context, cmd Subscribe) error {
	sub, err := domain.NewSubscriber(cmd.Name, cmd.Email)
	if err != nil {
		return err
	}

	if err := e.subscribers.Save(ctx, sub); err != nil {
		return fmt.Errorf("save subscriber: %w", err)
	}

	token := domain.NewSubscriptionToken(sub.ID())
	if err := e.tokens.Save(ctx, token); err != nil {
		return fmt.Errorf("save subscription token: %w", err)
	}

	content := fmt.Sprintf("click this link: .. %s ..", token.Value())
	if err := e.notifier.Send(ctx, sub, confirmationSubject, content); err != nil {
		return fmt.Errorf("send confirmation email: %w", err)
	}
	return nil
}
