package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyChecker guards quotation creation against duplicate
// submissions. Key format: idem:quotation:<key>; the value is the folio of
// the original quotation.
type IdempotencyChecker struct {
	client *redis.Client
}

// NewIdempotencyChecker creates an IdempotencyChecker wrapping the given client.
func NewIdempotencyChecker(client *redis.Client) *IdempotencyChecker {
	return &IdempotencyChecker{client: client}
}

// Seen reports whether this idempotency key has already been used.
func (c *IdempotencyChecker) Seen(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, c.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("idempotency check: %w", err)
	}
	return n > 0, nil
}

// Remember records the folio created under this key (expires after idempotencyTTL).
func (c *IdempotencyChecker) Remember(ctx context.Context, key, folio string) error {
	return c.client.Set(ctx, c.key(key), folio, idempotencyTTL).Err()
}

func (c *IdempotencyChecker) key(key string) string {
	return "idem:quotation:" + key
}
