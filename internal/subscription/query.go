package subscription

import (
	"context"
	"fmt"

	"github.com/ignite/newsletter-service/internal/domain"
)

// Reader serves the query side: read-only projections over the subscriber
// store, kept separate from the command executor.
type Reader struct {
	subscribers SubscriberRepository
}

// NewReader creates a query reader over the given repository.
func NewReader(subscribers SubscriberRepository) *Reader {
	return &Reader{subscribers: subscribers}
}

// ConfirmedEmails returns the addresses of all confirmed subscribers.
func (r *Reader) ConfirmedEmails(ctx context.Context) ([]string, error) {
	subs, err := r.subscribers.FindByStatus(ctx, domain.StatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("find confirmed subscribers: %w", err)
	}
	emails := make([]string, 0, len(subs))
	for _, sub := range subs {
		emails = append(emails, sub.Email())
	}
	return emails, nil
}
