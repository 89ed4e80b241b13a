package ports

import (
	"context"
	"time"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
)

// SessionRegistry is the server-side session store (Redis). Records expire
// with the session TTL; the drift watcher scans ActiveIDs on every tick.
type SessionRegistry interface {
	Put(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	ActiveIDs(ctx context.Context) ([]string, error)
	// Touch records request activity for the idle-expiry check.
	Touch(ctx context.Context, id string, at time.Time) error
	// Invalidate marks the session invalidated. For role drift,
	// correctedRole carries the authoritative role the cached value is
	// updated to; it is empty for account deletion.
	Invalidate(ctx context.Context, id string, reason domain.InvalidationReason, correctedRole string) error
}

// IdempotencyChecker is the fast-path duplicate-submission guard backed by
// Redis. The durable guard is the quotation's stored idempotency key.
type IdempotencyChecker interface {
	Seen(ctx context.Context, key string) (bool, error)
	Remember(ctx context.Context, key, folio string) error
}
