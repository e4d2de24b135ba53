package subscription

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignite/newsletter-service/internal/domain"
)

// SubscriberRepository defines the data access contract for subscribers.
// Implementations must be safe for concurrent use.
type SubscriberRepository interface {
	// Save inserts a new subscriber. Failures are reported as
	// ErrRepositoryOperation.
	Save(ctx context.Context, sub domain.Subscriber) error

	// FindByStatus returns all subscribers in the given status.
	FindByStatus(ctx context.Context, status domain.Status) ([]domain.Subscriber, error)

	// ModifyByID applies modify to a freshly loaded, exclusively locked copy
	// of the row inside one transaction: either the mutated row is durably
	// committed or the whole operation fails and no partial write is
	// observed. A missing row yields ErrSubscriberNotFound; any other
	// storage failure yields ErrRepositoryOperation.
	ModifyByID(ctx context.Context, id uuid.UUID, modify func(domain.Subscriber) domain.Subscriber) error
}

// SubscriptionTokenRepository defines the data access contract for
// subscription tokens.
type SubscriptionTokenRepository interface {
	// Save inserts a new token. Failures are reported as
	// ErrRepositoryOperation.
	Save(ctx context.Context, token domain.SubscriptionToken) error

	// FindByToken returns the token with the given value, or (nil, nil)
	// when no such token exists.
	FindByToken(ctx context.Context, value string) (*domain.SubscriptionToken, error)
}

// EmailNotifier sends a message to a subscriber over a bounded-time network
// call. Transport errors, timeouts and non-success responses are reported as
// ErrEmailOperation, never silently swallowed.
type EmailNotifier interface {
	Send(ctx context.Context, recipient domain.Subscriber, subject, content string) error
}
