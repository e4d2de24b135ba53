// Package postgres implements the subscription repository contracts against
// PostgreSQL via database/sql.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ignite/newsletter-service/internal/domain"
	"github.com/ignite/newsletter-service/internal/subscription"
)

// SubscriberRepo implements subscription.SubscriberRepository.
type SubscriberRepo struct{ db *sql.DB }

// NewSubscriberRepo creates a Postgres-backed subscriber repository.
func NewSubscriberRepo(db *sql.DB) *SubscriberRepo { return &SubscriberRepo{db: db} }

func (r *SubscriberRepo) Save(ctx context.Context, sub domain.Subscriber) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO subscribers (id, name, email, subscribed_at, status)
		VALUES ($1, $2, $3, $4, $5)
	`, sub.ID(), sub.Name(), sub.Email(), sub.SubscribedAt(), string(sub.Status()))
	if err != nil {
		return fmt.Errorf("insert subscriber: %w: %w", subscription.ErrRepositoryOperation, err)
	}
	return nil
}

func (r *SubscriberRepo) FindByStatus(ctx context.Context, status domain.Status) ([]domain.Subscriber, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, subscribed_at, status
		FROM subscribers
		WHERE status = $1
		ORDER BY id
	`, string(status))
	if err != nil {
		return nil, fmt.Errorf("query subscribers by status: %w: %w", subscription.ErrRepositoryOperation, err)
	}
	defer rows.Close()

	var out []domain.Subscriber
	for rows.Next() {
		sub, err := scanSubscriber(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscribers: %w: %w", subscription.ErrRepositoryOperation, err)
	}
	return out, nil
}

// ModifyByID opens a transaction, reads the row under an exclusive lock,
// applies modify to the rehydrated aggregate, writes the result back and
// commits. A concurrent ModifyByID on the same id blocks on the row lock
// until this transaction commits or aborts; rows with different ids never
// contend.
func (r *SubscriberRepo) ModifyByID(ctx context.Context, id uuid.UUID, modify func(domain.Subscriber) domain.Subscriber) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w: %w", subscription.ErrRepositoryOperation, err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		SELECT id, name, email, subscribed_at, status
		FROM subscribers
		WHERE id = $1
		FOR UPDATE
	`, id)
	sub, err := scanSubscriber(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: id %s", subscription.ErrSubscriberNotFound, id)
	}
	if err != nil {
		return err
	}

	modified := modify(sub)

	_, err = tx.ExecContext(ctx, `
		UPDATE subscribers SET name = $1, email = $2, status = $3 WHERE id = $4
	`, modified.Name(), modified.Email(), string(modified.Status()), modified.ID())
	if err != nil {
		return fmt.Errorf("update subscriber: %w: %w", subscription.ErrRepositoryOperation, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w: %w", subscription.ErrRepositoryOperation, err)
	}
	return nil
}

// scanSubscriber rehydrates an aggregate from one row. The name and email
// columns were validated before they were written, so they take the trusted
// construction path inside RehydrateSubscriber.
func scanSubscriber(scan func(...any) error) (domain.Subscriber, error) {
	var (
		id           uuid.UUID
		name         string
		email        string
		subscribedAt time.Time
		status       string
	)
	if err := scan(&id, &name, &email, &subscribedAt, &status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Subscriber{}, err
		}
		return domain.Subscriber{}, fmt.Errorf("scan subscriber: %w: %w", subscription.ErrRepositoryOperation, err)
	}
	sub, err := domain.RehydrateSubscriber(id, name, email, subscribedAt, status)
	if err != nil {
		return domain.Subscriber{}, fmt.Errorf("rehydrate subscriber %s: %w", id, err)
	}
	return sub, nil
}
