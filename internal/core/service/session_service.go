package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
	"github.com/Themiya19/Quotation-System-sub001/internal/core/ports"
)

// SessionService enforces idle expiry at request time and runs the drift
// scan the watcher drives. Authorization elsewhere trusts the role cached at
// login; the scan bounds how long a revoked or changed role can still be
// exercised to one polling interval.
type SessionService struct {
	sessions    ports.SessionRegistry
	users       ports.UserRepository
	idleTimeout time.Duration
	log         zerolog.Logger

	now func() time.Time
}

func NewSessionService(sessions ports.SessionRegistry, users ports.UserRepository, idleTimeout time.Duration, log zerolog.Logger) *SessionService {
	if idleTimeout <= 0 {
		idleTimeout = 30 * time.Minute
	}
	return &SessionService{
		sessions:    sessions,
		users:       users,
		idleTimeout: idleTimeout,
		log:         log,
		now:         time.Now,
	}
}

// Resolve loads a session for request handling. An idle session is deleted
// and reported expired; a session in good standing has its last-activity
// touched. Invalidated sessions are returned untouched for the middleware
// to act on.
func (s *SessionService) Resolve(ctx context.Context, id string) (*domain.Session, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if sess.State == domain.StateInvalidated {
		return sess, nil
	}

	now := s.now().UTC()
	if now.Sub(sess.LastActivity) > s.idleTimeout {
		if err := s.sessions.Delete(ctx, id); err != nil {
			s.log.Warn().Err(err).Str("session_id", id).Msg("failed to delete idle session")
		}
		s.log.Info().Str("session_id", id).Str("email", sess.Email).Msg("session expired idle")
		return nil, domain.ErrSessionExpired
	}

	if err := s.sessions.Touch(ctx, id, now); err != nil {
		s.log.Warn().Err(err).Str("session_id", id).Msg("failed to touch session activity")
	}
	return sess, nil
}

// Peek loads a session without touching activity or enforcing expiry.
func (s *SessionService) Peek(ctx context.Context, id string) (*domain.Session, error) {
	return s.sessions.Get(ctx, id)
}

// CheckDrift cross-checks every Watching session against the authoritative
// user store. A missing user record invalidates the session for account
// deletion; a differing role updates the cached role to the authoritative
// value and invalidates for role change. Store errors leave the session
// untouched (enforcement stays fail-closed at the permission evaluator).
func (s *SessionService) CheckDrift(ctx context.Context) (*ports.DriftReport, error) {
	ids, err := s.sessions.ActiveIDs(ctx)
	if err != nil {
		return nil, err
	}

	report := &ports.DriftReport{}
	for _, id := range ids {
		sess, err := s.sessions.Get(ctx, id)
		if err != nil {
			if !errors.Is(err, domain.ErrSessionNotFound) {
				s.log.Warn().Err(err).Str("session_id", id).Msg("drift scan: session fetch failed")
			}
			continue
		}
		if sess.State != domain.StateWatching {
			continue
		}
		report.Scanned++

		user, err := s.users.FindByEmail(ctx, sess.Email)
		if errors.Is(err, domain.ErrUserNotFound) {
			if err := s.sessions.Invalidate(ctx, id, domain.ReasonAccountDeleted, ""); err != nil {
				s.log.Warn().Err(err).Str("session_id", id).Msg("drift scan: invalidate failed")
				continue
			}
			report.Deleted++
			s.log.Info().Str("session_id", id).Str("email", sess.Email).Msg("session invalidated: account deleted")
			continue
		}
		if err != nil {
			s.log.Warn().Err(err).Str("email", sess.Email).Msg("drift scan: user fetch failed")
			continue
		}

		authoritative := user.EffectiveRole(sess.Category)
		if authoritative == sess.Role {
			continue
		}
		if err := s.sessions.Invalidate(ctx, id, domain.ReasonRoleChanged, authoritative); err != nil {
			s.log.Warn().Err(err).Str("session_id", id).Msg("drift scan: invalidate failed")
			continue
		}
		report.RoleChanged++
		s.log.Info().
			Str("session_id", id).
			Str("email", sess.Email).
			Str("cached_role", sess.Role).
			Str("authoritative_role", authoritative).
			Msg("session invalidated: role changed")
	}

	return report, nil
}

// Refresh acknowledges an invalidated session. Role-drifted sessions return
// to Watching under the corrected role already written by the scan; deleted
// accounts are torn down.
func (s *SessionService) Refresh(ctx context.Context, id string) (*domain.Session, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if sess.State != domain.StateInvalidated {
		return sess, nil
	}

	if sess.Reason == domain.ReasonAccountDeleted {
		if err := s.sessions.Delete(ctx, id); err != nil {
			s.log.Warn().Err(err).Str("session_id", id).Msg("failed to delete session")
		}
		return nil, domain.ErrSessionNotFound
	}

	sess.State = domain.StateWatching
	sess.Reason = ""
	sess.LastActivity = s.now().UTC()
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, err
	}
	s.log.Info().Str("session_id", id).Str("role", sess.Role).Msg("session refreshed under corrected role")
	return sess, nil
}
