package ports

import (
	"context"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
)

// LoginResult carries the signed session token and the registered session.
type LoginResult struct {
	Token   string
	Session *domain.Session
	User    *domain.User
}

// AuthService handles credential verification and session issue/teardown.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	ChangePassword(ctx context.Context, email, current, next string) error
	// IssueToken signs a session cookie token for an existing session. Used
	// when a drifted session is refreshed under its corrected role.
	IssueToken(session *domain.Session) (string, error)
}
