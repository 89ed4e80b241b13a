package ports

import (
	"context"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
)

// RoleService manages role tables. Ids are derived from display names; the
// admin and ext_client defaults are protected from deletion.
type RoleService interface {
	List(ctx context.Context, namespace string) ([]domain.Role, error)
	Create(ctx context.Context, namespace, name, description string) (*domain.Role, error)
	Update(ctx context.Context, namespace, id, name, description string) (*domain.Role, error)
	Delete(ctx context.Context, namespace, id string) error
}

// FeatureService manages feature tables. Writes replace the whole namespace
// table; one malformed entry rejects the entire batch.
type FeatureService interface {
	List(ctx context.Context, namespace string) ([]domain.Feature, error)
	ReplaceAll(ctx context.Context, namespace string, features []domain.Feature) error
}
