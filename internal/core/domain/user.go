package domain

import (
	"errors"
	"time"
)

// User categories. Internal users are staff; external users belong to a
// client company and carry an ext_-prefixed role.
const (
	CategoryInternal = "internal"
	CategoryExternal = "external"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidUser = errors.New("invalid user")

// User models an account in the system. Email is the unique key.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone,omitempty"`
	Category     string    `json:"category"`
	Role         string    `json:"role,omitempty"`
	Department   string    `json:"department,omitempty"`
	CompanyID    string    `json:"company_id,omitempty"`
	ExternalRole string    `json:"external_role,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// EffectiveRole returns the authoritative role for the given category: the
// internal role id for internal users, the prefix-normalized external role
// for external users. Empty when the user holds no role in that category.
func (u *User) EffectiveRole(category string) string {
	switch category {
	case CategoryInternal:
		return u.Role
	case CategoryExternal:
		return NormalizeExternalRole(u.ExternalRole)
	}
	return ""
}
