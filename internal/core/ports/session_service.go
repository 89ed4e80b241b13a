package ports

import (
	"context"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
)

// DriftReport summarises one drift scan.
type DriftReport struct {
	Scanned     int
	RoleChanged int
	Deleted     int
}

// SessionService owns the session registry lifecycle beyond login: request-
// time resolution (idle expiry + activity touch), the drift scan the watcher
// drives, and the refresh that recovers a role-drifted session.
type SessionService interface {
	// Resolve loads the session for a request. It enforces idle expiry
	// (deleting and reporting ErrSessionExpired when the idle window is
	// exceeded) and touches last-activity for sessions still in good
	// standing. Invalidated sessions are returned as-is for the caller to
	// act on.
	Resolve(ctx context.Context, id string) (*domain.Session, error)
	// Peek loads the session without touching activity or enforcing expiry.
	Peek(ctx context.Context, id string) (*domain.Session, error)
	// CheckDrift runs one drift scan over all watched sessions, comparing
	// each cached role against the authoritative user record.
	CheckDrift(ctx context.Context) (*DriftReport, error)
	// Refresh is the acknowledgment control for an invalidated session:
	// role_changed sessions return to Watching under the corrected role;
	// account_deleted sessions are torn down (ErrSessionNotFound).
	Refresh(ctx context.Context, id string) (*domain.Session, error)
}
