package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ignite/newsletter-service/internal/domain"
	"github.com/ignite/newsletter-service/internal/subscription"
)

// SubscriptionTokenRepo implements subscription.SubscriptionTokenRepository.
type SubscriptionTokenRepo struct{ db *sql.DB }

// NewSubscriptionTokenRepo creates a Postgres-backed token repository.
func NewSubscriptionTokenRepo(db *sql.DB) *SubscriptionTokenRepo {
	return &SubscriptionTokenRepo{db: db}
}

func (r *SubscriptionTokenRepo) Save(ctx context.Context, token domain.SubscriptionToken) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO subscription_tokens (token, subscriber_id)
		VALUES ($1, $2)
	`, token.Value(), token.SubscriberID())
	if err != nil {
		return fmt.Errorf("insert subscription token: %w: %w", subscription.ErrRepositoryOperation, err)
	}
	return nil
}

func (r *SubscriptionTokenRepo) FindByToken(ctx context.Context, value string) (*domain.SubscriptionToken, error) {
	var (
		tokenValue   string
		subscriberID uuid.UUID
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT token, subscriber_id FROM subscription_tokens WHERE token = $1
	`, value).Scan(&tokenValue, &subscriberID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query subscription token: %w: %w", subscription.ErrRepositoryOperation, err)
	}
	token := domain.RehydrateSubscriptionToken(tokenValue, subscriberID)
	return &token, nil
}
