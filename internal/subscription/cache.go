package subscription

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ignite/newsletter-service/internal/pkg/logger"
)

const confirmedEmailsKey = "newsletter:subscribers:confirmed"

// CachedReader is a read-through Redis cache over a Reader. It only ever
// serves the query side; the command path never depends on Redis, so cache
// unavailability degrades to hitting the database, never to a failed
// confirmation.
type CachedReader struct {
	reader *Reader
	rdb    *redis.Client
	ttl    time.Duration
}

// NewCachedReader wraps reader with a Redis cache using the given TTL.
func NewCachedReader(reader *Reader, rdb *redis.Client, ttl time.Duration) *CachedReader {
	return &CachedReader{reader: reader, rdb: rdb, ttl: ttl}
}

// ConfirmedEmails serves from Redis when possible and falls back to the
// underlying reader, repopulating the cache on a miss.
func (c *CachedReader) ConfirmedEmails(ctx context.Context) ([]string, error) {
	cached, err := c.rdb.Get(ctx, confirmedEmailsKey).Result()
	if err == nil {
		var emails []string
		if jsonErr := json.Unmarshal([]byte(cached), &emails); jsonErr == nil {
			return emails, nil
		}
		// Unparseable cache entry: drop it and fall through to the source.
		c.rdb.Del(ctx, confirmedEmailsKey)
	} else if err != redis.Nil {
		logger.Warn("confirmed-subscribers cache read failed", "error", err.Error())
	}

	emails, err := c.reader.ConfirmedEmails(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(emails)
	if err != nil {
		return emails, nil
	}
	if err := c.rdb.Set(ctx, confirmedEmailsKey, data, c.ttl).Err(); err != nil {
		logger.Warn("confirmed-subscribers cache write failed", "error", err.Error())
	}
	return emails, nil
}

// Invalidate drops the cached projection. Called after a confirmation
// commits so the next listing reflects the new subscriber.
func (c *CachedReader) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, confirmedEmailsKey).Err(); err != nil {
		return fmt.Errorf("invalidate confirmed-subscribers cache: %w", err)
	}
	return nil
}
