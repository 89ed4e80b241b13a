package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
)

const activeSessionsKey = "sessions:active"

// SessionRegistry stores one hash per session under session:<id>, plus a
// set of active ids the drift watcher scans. Hashes expire with the session
// TTL; stale ids left in the set are dropped lazily when a Get misses.
type SessionRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRegistry creates a SessionRegistry wrapping the given client.
func NewSessionRegistry(client *redis.Client, ttl time.Duration) *SessionRegistry {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionRegistry{client: client, ttl: ttl}
}

func (r *SessionRegistry) Put(ctx context.Context, s *domain.Session) error {
	key := sessionKey(s.ID)
	fields := map[string]interface{}{
		"email":         s.Email,
		"category":      s.Category,
		"role":          s.Role,
		"company":       s.CompanyID,
		"department":    s.Department,
		"state":         string(s.State),
		"reason":        string(s.Reason),
		"last_activity": s.LastActivity.Unix(),
		"created_at":    s.CreatedAt.Unix(),
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, r.ttl)
	pipe.SAdd(ctx, activeSessionsKey, s.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session put: %w", err)
	}
	return nil
}

func (r *SessionRegistry) Get(ctx context.Context, id string) (*domain.Session, error) {
	fields, err := r.client.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}
	if len(fields) == 0 {
		// Hash expired or never existed; drop the stale set member.
		_ = r.client.SRem(ctx, activeSessionsKey, id).Err()
		return nil, domain.ErrSessionNotFound
	}

	return &domain.Session{
		ID:           id,
		Email:        fields["email"],
		Category:     fields["category"],
		Role:         fields["role"],
		CompanyID:    fields["company"],
		Department:   fields["department"],
		State:        domain.SessionState(fields["state"]),
		Reason:       domain.InvalidationReason(fields["reason"]),
		LastActivity: unixField(fields["last_activity"]),
		CreatedAt:    unixField(fields["created_at"]),
	}, nil
}

func (r *SessionRegistry) Delete(ctx context.Context, id string) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, sessionKey(id))
	pipe.SRem(ctx, activeSessionsKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

func (r *SessionRegistry) ActiveIDs(ctx context.Context) ([]string, error) {
	ids, err := r.client.SMembers(ctx, activeSessionsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("session active ids: %w", err)
	}
	return ids, nil
}

func (r *SessionRegistry) Touch(ctx context.Context, id string, at time.Time) error {
	return r.client.HSet(ctx, sessionKey(id), "last_activity", at.Unix()).Err()
}

func (r *SessionRegistry) Invalidate(ctx context.Context, id string, reason domain.InvalidationReason, correctedRole string) error {
	fields := map[string]interface{}{
		"state":  string(domain.StateInvalidated),
		"reason": string(reason),
	}
	if correctedRole != "" {
		fields["role"] = correctedRole
	}
	if err := r.client.HSet(ctx, sessionKey(id), fields).Err(); err != nil {
		return fmt.Errorf("session invalidate: %w", err)
	}
	return nil
}

func sessionKey(id string) string {
	return "session:" + id
}

func unixField(s string) time.Time {
	ts, err := strconv.ParseInt(s, 10, 64)
	if err != nil || ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
