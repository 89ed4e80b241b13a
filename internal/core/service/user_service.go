package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
	"github.com/Themiya19/Quotation-System-sub001/internal/core/ports"
)

// UserService implements administrative account management.
type UserService struct {
	users     ports.UserRepository
	companies ports.CompanyRepository
	log       zerolog.Logger
}

func NewUserService(users ports.UserRepository, companies ports.CompanyRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, companies: companies, log: log}
}

func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	if in.Email == "" || in.Name == "" || in.Password == "" {
		return nil, domain.ErrInvalidUser
	}

	user := &domain.User{
		Email:    in.Email,
		Name:     in.Name,
		Phone:    in.Phone,
		Category: in.Category,
	}

	switch in.Category {
	case domain.CategoryInternal:
		if in.Role == "" {
			return nil, domain.ErrInvalidUser
		}
		user.Role = in.Role
		user.Department = in.Department
	case domain.CategoryExternal:
		if in.CompanyID == "" {
			return nil, domain.ErrInvalidUser
		}
		if _, err := s.companies.FindByID(ctx, in.CompanyID); err != nil {
			return nil, err
		}
		user.CompanyID = in.CompanyID
		user.ExternalRole = domain.NormalizeExternalRole(in.ExternalRole)
		if user.ExternalRole == "" {
			user.ExternalRole = domain.RoleExternalClient
		}
	default:
		return nil, domain.ErrInvalidUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("email", created.Email).Str("category", created.Category).Msg("user created")
	return created, nil
}

func (s *UserService) Get(ctx context.Context, email string) (*domain.User, error) {
	return s.users.FindByEmail(ctx, email)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Update mutates an existing account. A role reassignment takes effect here
// immediately; live sessions catch up when the drift watcher next compares
// their cached role against this record.
func (s *UserService) Update(ctx context.Context, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Phone != "" {
		user.Phone = in.Phone
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	switch user.Category {
	case domain.CategoryInternal:
		if in.Role != "" {
			user.Role = in.Role
		}
		if in.Department != "" {
			user.Department = in.Department
		}
	case domain.CategoryExternal:
		if in.CompanyID != "" {
			if _, err := s.companies.FindByID(ctx, in.CompanyID); err != nil {
				return nil, err
			}
			user.CompanyID = in.CompanyID
		}
		if in.ExternalRole != "" {
			user.ExternalRole = domain.NormalizeExternalRole(in.ExternalRole)
		}
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info().Str("email", user.Email).Msg("user updated")
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, email string) error {
	if err := s.users.Delete(ctx, email); err != nil {
		return err
	}
	s.log.Info().Str("email", email).Msg("user deleted")
	return nil
}
