package ports

import (
	"context"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
)

// CompanyRepository defines persistence for client companies.
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) (*domain.Company, error)
	FindByID(ctx context.Context, id string) (*domain.Company, error)
	List(ctx context.Context) ([]domain.Company, error)
	Update(ctx context.Context, company *domain.Company) error
	Delete(ctx context.Context, id string) error
}
