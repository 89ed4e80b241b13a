package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
	"github.com/Themiya19/Quotation-System-sub001/internal/core/ports"
)

// FeatureService manages feature tables. Writes replace the entire
// namespace table atomically from the caller's point of view: one malformed
// entry rejects the whole batch and nothing is written.
type FeatureService struct {
	features ports.FeatureRepository
	log      zerolog.Logger
}

func NewFeatureService(features ports.FeatureRepository, log zerolog.Logger) *FeatureService {
	return &FeatureService{features: features, log: log}
}

func (s *FeatureService) List(ctx context.Context, namespace string) ([]domain.Feature, error) {
	features, err := s.features.List(ctx, namespace)
	if err != nil {
		return nil, fmt.Errorf("list features: %w", err)
	}
	return features, nil
}

// ReplaceAll validates and writes the full feature table for a namespace.
// Every entry must carry id, name, description and a non-nil allowed-roles
// slice. External allow-lists are prefix-normalized before storage.
func (s *FeatureService) ReplaceAll(ctx context.Context, namespace string, features []domain.Feature) error {
	for i, f := range features {
		if f.ID == "" || f.Name == "" || f.Description == "" || f.AllowedRoles == nil {
			return fmt.Errorf("%w: entry %d", domain.ErrInvalidFeature, i)
		}
	}

	if namespace == domain.NamespaceExternal {
		for i := range features {
			for j, r := range features[i].AllowedRoles {
				features[i].AllowedRoles[j] = domain.NormalizeExternalRole(r)
			}
		}
	}

	if err := s.features.ReplaceAll(ctx, namespace, features); err != nil {
		return fmt.Errorf("replace features: %w", err)
	}

	s.log.Info().Str("namespace", namespace).Int("count", len(features)).Msg("feature table replaced")
	return nil
}
