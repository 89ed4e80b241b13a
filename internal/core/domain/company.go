package domain

import (
	"errors"
	"time"
)

var ErrCompanyNotFound = errors.New("company not found")
var ErrCompanyExists = errors.New("company already exists")
var ErrCompanyInUse = errors.New("company has registered users")
var ErrInvalidCompany = errors.New("invalid company")

// Company is an external client organisation quotations are issued to.
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	LogoPath  string    `json:"logo_path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
