package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/ignite/newsletter-service/internal/domain"
	"github.com/ignite/newsletter-service/internal/subscription"
)

func setupTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func subscriberColumns() []string {
	return []string{"id", "name", "email", "subscribed_at", "status"}
}

func TestSubscriberRepoSave(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSubscriberRepo(db)

	sub, err := domain.NewSubscriber("Jane Doe", "jane@example.com")
	if err != nil {
		t.Fatal(err)
	}

	mock.ExpectExec("INSERT INTO subscribers").
		WithArgs(sub.ID(), "Jane Doe", "jane@example.com", sub.SubscribedAt(), "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Save(context.Background(), sub); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSubscriberRepoSaveFailure(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSubscriberRepo(db)

	sub, _ := domain.NewSubscriber("Jane Doe", "jane@example.com")
	mock.ExpectExec("INSERT INTO subscribers").
		WillReturnError(fmt.Errorf("connection reset"))

	err := repo.Save(context.Background(), sub)
	if !errors.Is(err, subscription.ErrRepositoryOperation) {
		t.Fatalf("err = %v, want ErrRepositoryOperation", err)
	}
}

func TestSubscriberRepoFindByStatus(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSubscriberRepo(db)

	idA := uuid.Must(uuid.NewV7())
	idB := uuid.Must(uuid.NewV7())
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT id, name, email, subscribed_at, status\\s+FROM subscribers\\s+WHERE status = ").
		WithArgs("confirmed").
		WillReturnRows(sqlmock.NewRows(subscriberColumns()).
			AddRow(idA.String(), "Alpha", "alpha@example.com", now, "confirmed").
			AddRow(idB.String(), "Beta", "beta@example.com", now, "confirmed"))

	subs, err := repo.FindByStatus(context.Background(), domain.StatusConfirmed)
	if err != nil {
		t.Fatalf("FindByStatus: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("got %d subscribers, want 2", len(subs))
	}
	if subs[0].Email() != "alpha@example.com" || subs[0].Status() != domain.StatusConfirmed {
		t.Errorf("unexpected first subscriber: %s %s", subs[0].Email(), subs[0].Status())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSubscriberRepoFindByStatusCorruptedRow(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSubscriberRepo(db)

	mock.ExpectQuery("SELECT id, name, email, subscribed_at, status").
		WithArgs("confirmed").
		WillReturnRows(sqlmock.NewRows(subscriberColumns()).
			AddRow(uuid.Must(uuid.NewV7()).String(), "Alpha", "alpha@example.com", time.Now(), "banana"))

	_, err := repo.FindByStatus(context.Background(), domain.StatusConfirmed)
	if !errors.Is(err, domain.ErrInvalidAttribute) {
		t.Fatalf("err = %v, want ErrInvalidAttribute for corrupted status", err)
	}
}

// The confirm transition must be an exclusive-lock read-modify-write inside
// one transaction: BEGIN, SELECT ... FOR UPDATE, UPDATE, COMMIT.
func TestSubscriberRepoModifyByID(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSubscriberRepo(db)

	id := uuid.Must(uuid.NewV7())
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, name, email, subscribed_at, status\\s+FROM subscribers\\s+WHERE id = (.+)\\s+FOR UPDATE").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(subscriberColumns()).
			AddRow(id.String(), "Jane Doe", "jane@example.com", now, "pending"))
	mock.ExpectExec("UPDATE subscribers SET name = (.+), email = (.+), status = (.+) WHERE id = ").
		WithArgs("Jane Doe", "jane@example.com", "confirmed", id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ModifyByID(context.Background(), id, func(sub domain.Subscriber) domain.Subscriber {
		sub.Confirm()
		return sub
	})
	if err != nil {
		t.Fatalf("ModifyByID: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSubscriberRepoModifyByIDNotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSubscriberRepo(db)

	id := uuid.Must(uuid.NewV7())
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, name, email, subscribed_at, status").
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.ModifyByID(context.Background(), id, func(sub domain.Subscriber) domain.Subscriber { return sub })
	if !errors.Is(err, subscription.ErrSubscriberNotFound) {
		t.Fatalf("err = %v, want ErrSubscriberNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSubscriberRepoModifyByIDCommitFailure(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSubscriberRepo(db)

	id := uuid.Must(uuid.NewV7())
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, name, email, subscribed_at, status").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(subscriberColumns()).
			AddRow(id.String(), "Jane Doe", "jane@example.com", time.Now().UTC(), "pending"))
	mock.ExpectExec("UPDATE subscribers SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(fmt.Errorf("deadlock detected"))

	err := repo.ModifyByID(context.Background(), id, func(sub domain.Subscriber) domain.Subscriber {
		sub.Confirm()
		return sub
	})
	if !errors.Is(err, subscription.ErrRepositoryOperation) {
		t.Fatalf("err = %v, want ErrRepositoryOperation", err)
	}
}
