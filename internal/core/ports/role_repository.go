package ports

import (
	"context"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
)

// RoleRepository stores role tables per namespace (internal / external).
//
// Writes are whole-collection replacements: callers read, modify and write
// back the full table. Concurrent writers race last-write-wins; there is no
// optimistic concurrency token.
type RoleRepository interface {
	List(ctx context.Context, namespace string) ([]domain.Role, error)
	ReplaceAll(ctx context.Context, namespace string, roles []domain.Role) error
	// EnsureDefaults seeds the namespace with its default roles when empty.
	EnsureDefaults(ctx context.Context, namespace string) error
}

// FeatureRepository stores feature tables per namespace, with the same
// whole-collection replace semantics as RoleRepository.
type FeatureRepository interface {
	List(ctx context.Context, namespace string) ([]domain.Feature, error)
	ReplaceAll(ctx context.Context, namespace string, features []domain.Feature) error
	EnsureDefaults(ctx context.Context, namespace string) error
}
