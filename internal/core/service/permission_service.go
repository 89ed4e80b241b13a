package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
	"github.com/Themiya19/Quotation-System-sub001/internal/core/ports"
)

// PermissionService is the table-driven authorization checker. Every check
// fetches the feature table from the store: the store is the single source
// of truth and results are never cached across checks.
//
// The evaluator is fail-closed. A missing feature, an empty role, or a store
// fetch error all resolve to deny; no error ever propagates past Can.
type PermissionService struct {
	features ports.FeatureRepository
	log      zerolog.Logger
}

func NewPermissionService(features ports.FeatureRepository, log zerolog.Logger) *PermissionService {
	return &PermissionService{features: features, log: log}
}

// Can reports whether role may invoke featureID in the given namespace.
func (s *PermissionService) Can(ctx context.Context, namespace, role, featureID string) bool {
	if role == "" || featureID == "" {
		return false
	}
	if namespace == domain.NamespaceExternal {
		role = domain.NormalizeExternalRole(role)
	}

	features, err := s.features.List(ctx, namespace)
	if err != nil {
		s.log.Warn().Err(err).
			Str("namespace", namespace).
			Str("feature", featureID).
			Msg("feature table fetch failed, denying")
		return false
	}

	for _, f := range features {
		if f.ID != featureID {
			continue
		}
		if namespace == domain.NamespaceExternal {
			for _, allowed := range f.AllowedRoles {
				if domain.NormalizeExternalRole(allowed) == role {
					return true
				}
			}
			return false
		}
		return f.Allows(role)
	}

	// Feature record absent: deny.
	return false
}

// CanViewRoles grants the role-administration view when either of the two
// underlying management features is allowed.
func (s *PermissionService) CanViewRoles(ctx context.Context, namespace, role string) bool {
	return s.Can(ctx, namespace, role, domain.FeatureManageRoles) ||
		s.Can(ctx, namespace, role, domain.FeatureManageFeatures)
}
