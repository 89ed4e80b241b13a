package ports

import (
	"context"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
)

// CreateUserInput carries all data needed to create a user account.
type CreateUserInput struct {
	Email        string
	Name         string
	Password     string
	Phone        string
	Category     string
	Role         string
	Department   string
	CompanyID    string
	ExternalRole string
}

// UpdateUserInput mutates an existing account. Password is optional; an
// empty value keeps the current hash. Role reassignment here is what the
// drift watcher later detects against live sessions.
type UpdateUserInput struct {
	Email        string
	Name         string
	Password     string
	Phone        string
	Role         string
	Department   string
	CompanyID    string
	ExternalRole string
}

// UserService manages user accounts (admin operations).
type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, email string) error
}

// CompanyService manages client companies.
type CompanyService interface {
	Create(ctx context.Context, company *domain.Company) (*domain.Company, error)
	Get(ctx context.Context, id string) (*domain.Company, error)
	List(ctx context.Context) ([]domain.Company, error)
	Update(ctx context.Context, company *domain.Company) (*domain.Company, error)
	Delete(ctx context.Context, id string) error
	SetLogo(ctx context.Context, id, path string) error
}
