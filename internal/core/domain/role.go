package domain

import (
	"errors"
	"strings"
)

// Role namespaces. Internal and external role tables are independent;
// external role ids always carry the ext_ prefix.
const (
	NamespaceInternal = "internal"
	NamespaceExternal = "external"

	ExternalRolePrefix = "ext_"
)

// Protected default roles that can never be deleted.
const (
	RoleAdmin          = "admin"
	RoleExternalClient = "ext_client"
)

var ErrRoleNotFound = errors.New("role not found")
var ErrRoleExists = errors.New("role already exists")
var ErrProtectedRole = errors.New("role is protected and cannot be deleted")
var ErrInvalidRole = errors.New("invalid role")

// Role is a named category actors are grouped under.
type Role struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DefaultRoles returns the roles seeded into an empty namespace store.
func DefaultRoles(namespace string) []Role {
	if namespace == NamespaceExternal {
		return []Role{
			{ID: RoleExternalClient, Name: "Client", Description: "External client company user"},
		}
	}
	return []Role{
		{ID: RoleAdmin, Name: "Admin", Description: "Full administrative access"},
		{ID: "manager", Name: "Manager", Description: "Approves quotations"},
		{ID: "sales_engineer", Name: "Sales Engineer", Description: "Prepares technical quotations"},
		{ID: "sales", Name: "Sales", Description: "Prepares quotations"},
	}
}

// IsProtectedRole reports whether the role id is a non-deletable default.
func IsProtectedRole(id string) bool {
	return id == RoleAdmin || id == RoleExternalClient
}

// NormalizeExternalRole guarantees the ext_ prefix on a non-empty external
// role id. Stored data occasionally lacks the prefix; comparisons always
// happen on the normalized form.
func NormalizeExternalRole(id string) string {
	if id == "" || strings.HasPrefix(id, ExternalRolePrefix) {
		return id
	}
	return ExternalRolePrefix + id
}

// SlugID derives a role id from its display name: lower-cased, whitespace
// runs collapsed to single underscores.
func SlugID(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}
