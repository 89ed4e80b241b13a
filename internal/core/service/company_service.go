package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
	"github.com/Themiya19/Quotation-System-sub001/internal/core/ports"
)

// CompanyService implements client-company management.
type CompanyService struct {
	companies ports.CompanyRepository
	users     ports.UserRepository
	log       zerolog.Logger
}

func NewCompanyService(companies ports.CompanyRepository, users ports.UserRepository, log zerolog.Logger) *CompanyService {
	return &CompanyService{companies: companies, users: users, log: log}
}

func (s *CompanyService) Create(ctx context.Context, company *domain.Company) (*domain.Company, error) {
	if company.Name == "" {
		return nil, domain.ErrInvalidCompany
	}
	now := time.Now().UTC()
	company.CreatedAt = now
	company.UpdatedAt = now

	created, err := s.companies.Create(ctx, company)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("company_id", created.ID).Str("name", created.Name).Msg("company created")
	return created, nil
}

func (s *CompanyService) Get(ctx context.Context, id string) (*domain.Company, error) {
	return s.companies.FindByID(ctx, id)
}

func (s *CompanyService) List(ctx context.Context) ([]domain.Company, error) {
	return s.companies.List(ctx)
}

func (s *CompanyService) Update(ctx context.Context, company *domain.Company) (*domain.Company, error) {
	existing, err := s.companies.FindByID(ctx, company.ID)
	if err != nil {
		return nil, err
	}

	if company.Name != "" {
		existing.Name = company.Name
	}
	if company.Address != "" {
		existing.Address = company.Address
	}
	if company.Email != "" {
		existing.Email = company.Email
	}
	if company.Phone != "" {
		existing.Phone = company.Phone
	}
	existing.UpdatedAt = time.Now().UTC()

	if err := s.companies.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes a company unless users still reference it.
func (s *CompanyService) Delete(ctx context.Context, id string) error {
	n, err := s.users.CountByCompany(ctx, id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	if n > 0 {
		return domain.ErrCompanyInUse
	}
	if err := s.companies.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("company_id", id).Msg("company deleted")
	return nil
}

func (s *CompanyService) SetLogo(ctx context.Context, id, path string) error {
	company, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return err
	}
	company.LogoPath = path
	company.UpdatedAt = time.Now().UTC()
	return s.companies.Update(ctx, company)
}
