package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
	"github.com/Themiya19/Quotation-System-sub001/internal/core/ports"
)

// RoleService manages role tables. All writes are whole-table read-modify-
// write against the repository: concurrent administrative edits race
// last-write-wins, an accepted limitation of the table model.
type RoleService struct {
	roles ports.RoleRepository
	log   zerolog.Logger
}

func NewRoleService(roles ports.RoleRepository, log zerolog.Logger) *RoleService {
	return &RoleService{roles: roles, log: log}
}

func (s *RoleService) List(ctx context.Context, namespace string) ([]domain.Role, error) {
	roles, err := s.roles.List(ctx, namespace)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	if namespace == domain.NamespaceExternal {
		for i := range roles {
			roles[i].ID = domain.NormalizeExternalRole(roles[i].ID)
		}
	}
	return roles, nil
}

// Create derives the role id from the display name (lower-cased, whitespace
// collapsed to underscores; external ids additionally prefixed with ext_)
// and appends the role to the namespace table.
func (s *RoleService) Create(ctx context.Context, namespace, name, description string) (*domain.Role, error) {
	if name == "" || description == "" {
		return nil, domain.ErrInvalidRole
	}

	id := domain.SlugID(name)
	if namespace == domain.NamespaceExternal {
		id = domain.NormalizeExternalRole(id)
	}

	roles, err := s.roles.List(ctx, namespace)
	if err != nil {
		return nil, fmt.Errorf("create role: %w", err)
	}
	for _, r := range roles {
		if r.ID == id {
			return nil, domain.ErrRoleExists
		}
	}

	role := domain.Role{ID: id, Name: name, Description: description}
	roles = append(roles, role)
	if err := s.roles.ReplaceAll(ctx, namespace, roles); err != nil {
		return nil, fmt.Errorf("create role: %w", err)
	}

	s.log.Info().Str("namespace", namespace).Str("role", id).Msg("role created")
	return &role, nil
}

func (s *RoleService) Update(ctx context.Context, namespace, id, name, description string) (*domain.Role, error) {
	if name == "" || description == "" {
		return nil, domain.ErrInvalidRole
	}
	if namespace == domain.NamespaceExternal {
		id = domain.NormalizeExternalRole(id)
	}

	roles, err := s.roles.List(ctx, namespace)
	if err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	for i, r := range roles {
		if r.ID == id {
			roles[i].Name = name
			roles[i].Description = description
			if err := s.roles.ReplaceAll(ctx, namespace, roles); err != nil {
				return nil, fmt.Errorf("update role: %w", err)
			}
			updated := roles[i]
			return &updated, nil
		}
	}
	return nil, domain.ErrRoleNotFound
}

// Delete removes a role. The admin and ext_client defaults are protected
// and always rejected.
func (s *RoleService) Delete(ctx context.Context, namespace, id string) error {
	if namespace == domain.NamespaceExternal {
		id = domain.NormalizeExternalRole(id)
	}
	if domain.IsProtectedRole(id) {
		return domain.ErrProtectedRole
	}

	roles, err := s.roles.List(ctx, namespace)
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	kept := roles[:0]
	found := false
	for _, r := range roles {
		if r.ID == id {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return domain.ErrRoleNotFound
	}

	if err := s.roles.ReplaceAll(ctx, namespace, kept); err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	s.log.Info().Str("namespace", namespace).Str("role", id).Msg("role deleted")
	return nil
}
