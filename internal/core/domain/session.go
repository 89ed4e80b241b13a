package domain

import (
	"errors"
	"time"
)

// SessionState is the drift detector's view of a session. A session with no
// registry record is idle (logged out or expired).
type SessionState string

const (
	StateWatching    SessionState = "watching"
	StateInvalidated SessionState = "invalidated"
)

// InvalidationReason explains why a session was invalidated.
type InvalidationReason string

const (
	ReasonRoleChanged    InvalidationReason = "role_changed"
	ReasonAccountDeleted InvalidationReason = "account_deleted"
)

var ErrSessionNotFound = errors.New("session not found")
var ErrSessionExpired = errors.New("session expired")

// Session is the server-side record backing one issued session cookie.
// Role holds the cached, namespace-local role the cookie was issued with;
// the drift watcher corrects it when the authoritative user record diverges.
type Session struct {
	ID           string             `json:"id"`
	Email        string             `json:"email"`
	Category     string             `json:"category"`
	Role         string             `json:"role"`
	CompanyID    string             `json:"company_id,omitempty"`
	Department   string             `json:"department,omitempty"`
	State        SessionState       `json:"state"`
	Reason       InvalidationReason `json:"reason,omitempty"`
	LastActivity time.Time          `json:"last_activity"`
	CreatedAt    time.Time          `json:"created_at"`
}

// Namespace returns the role namespace this session's cached role lives in.
func (s *Session) Namespace() string {
	if s.Category == CategoryExternal {
		return NamespaceExternal
	}
	return NamespaceInternal
}
