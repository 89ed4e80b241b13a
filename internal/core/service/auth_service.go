package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
	"github.com/Themiya19/Quotation-System-sub001/internal/core/ports"
)

// AuthService implements login, logout and password changes. A successful
// login registers a Watching session in the registry and signs a session
// token carrying the cookie surface: email, category, role, company and
// department.
type AuthService struct {
	users     ports.UserRepository
	sessions  ports.SessionRegistry
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionRegistry, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, sessions: sessions, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	session := &domain.Session{
		ID:           newSessionID(),
		Email:        user.Email,
		Category:     user.Category,
		Role:         user.EffectiveRole(user.Category),
		CompanyID:    user.CompanyID,
		Department:   user.Department,
		State:        domain.StateWatching,
		LastActivity: now,
		CreatedAt:    now,
	}

	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("register session: %w", err)
	}

	token, err := s.IssueToken(session)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("email", user.Email).
		Str("category", user.Category).
		Str("role", session.Role).
		Msg("login")

	return &ports.LoginResult{Token: token, Session: session, User: user}, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

func (s *AuthService) ChangePassword(ctx context.Context, email, current, next string) error {
	if next == "" {
		return domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()

	return s.users.Update(ctx, user)
}

// IssueToken signs an HS256 token for the session. The claims mirror the
// cookie surface the UI reads; role and ext_role are populated by category.
func (s *AuthService) IssueToken(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid":      session.ID,
		"email":    session.Email,
		"category": session.Category,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}
	if session.Category == domain.CategoryExternal {
		claims["ext_role"] = session.Role
		claims["company"] = session.CompanyID
	} else {
		claims["role"] = session.Role
		claims["department"] = session.Department
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// newSessionID returns a random id in the format S-XXXXXXXXXXXXXXXX.
func newSessionID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("S-%016X", time.Now().UnixNano())
	}
	return fmt.Sprintf("S-%X", b)
}
