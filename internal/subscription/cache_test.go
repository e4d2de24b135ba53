package subscription_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/ignite/newsletter-service/internal/domain"
	"github.com/ignite/newsletter-service/internal/subscription"
)

func confirmFn(sub domain.Subscriber) domain.Subscriber {
	sub.Confirm()
	return sub
}

func setupCache(t *testing.T) (*subscription.CachedReader, *memSubscriberRepo, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	subs := newMemSubscriberRepo()
	reader := subscription.NewReader(subs)
	return subscription.NewCachedReader(reader, rdb, time.Minute), subs, mr
}

func TestCachedReaderReadThrough(t *testing.T) {
	cached, subs, mr := setupCache(t)
	exec := subscription.NewExecutor(subs, newMemTokenRepo(), &memNotifier{})
	ctx := context.Background()

	if err := exec.Execute(ctx, subscription.Subscribe{Name: "Jane", Email: "jane@example.com"}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	sub, _ := subs.byEmail("jane@example.com")
	if err := subs.ModifyByID(ctx, sub.ID(), confirmFn); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	emails, err := cached.ConfirmedEmails(ctx)
	if err != nil {
		t.Fatalf("ConfirmedEmails: %v", err)
	}
	if len(emails) != 1 || emails[0] != "jane@example.com" {
		t.Fatalf("emails = %v", emails)
	}

	// The projection is now cached; a second read must not hit the store.
	if !mr.Exists("newsletter:subscribers:confirmed") {
		t.Fatal("cache key was not populated")
	}
	subs.mu.Lock()
	delete(subs.subscribers, sub.ID())
	subs.mu.Unlock()

	emails, err = cached.ConfirmedEmails(ctx)
	if err != nil {
		t.Fatalf("cached ConfirmedEmails: %v", err)
	}
	if len(emails) != 1 {
		t.Fatalf("expected cached result, got %v", emails)
	}
}

func TestCachedReaderInvalidate(t *testing.T) {
	cached, subs, mr := setupCache(t)
	ctx := context.Background()

	if _, err := cached.ConfirmedEmails(ctx); err != nil {
		t.Fatalf("warm cache: %v", err)
	}
	if !mr.Exists("newsletter:subscribers:confirmed") {
		t.Fatal("cache key was not populated")
	}

	if err := cached.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if mr.Exists("newsletter:subscribers:confirmed") {
		t.Fatal("cache key should be gone after invalidation")
	}

	// Next read repopulates from the store.
	exec := subscription.NewExecutor(subs, newMemTokenRepo(), &memNotifier{})
	if err := exec.Execute(ctx, subscription.Subscribe{Name: "Jane", Email: "jane@example.com"}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	sub, _ := subs.byEmail("jane@example.com")
	if err := subs.ModifyByID(ctx, sub.ID(), confirmFn); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	emails, err := cached.ConfirmedEmails(ctx)
	if err != nil {
		t.Fatalf("ConfirmedEmails: %v", err)
	}
	if len(emails) != 1 {
		t.Fatalf("emails = %v", emails)
	}
}
