package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
	"github.com/Themiya19/Quotation-System-sub001/internal/core/ports"
)

func TestUserService_CreateInternal(t *testing.T) {
	users := newStubUserRepo()
	svc := NewUserService(users, newStubCompanyRepo(), zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.CreateUserInput{
		Email:      "ann@corp.test",
		Name:       "Ann",
		Password:   "s3cret-pass",
		Category:   domain.CategoryInternal,
		Role:       "sales",
		Department: "EU",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Role != "sales" || created.Department != "EU" {
		t.Fatalf("unexpected internal fields: %+v", created)
	}
	if created.CompanyID != "" || created.ExternalRole != "" {
		t.Fatalf("internal user carries external fields: %+v", created)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("s3cret-pass")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestUserService_CreateInternalRequiresRole(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), newStubCompanyRepo(), zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Email:    "ann@corp.test",
		Name:     "Ann",
		Password: "s3cret-pass",
		Category: domain.CategoryInternal,
	})
	if !errors.Is(err, domain.ErrInvalidUser) {
		t.Fatalf("expected ErrInvalidUser, got %v", err)
	}
}

func TestUserService_CreateExternalDefaultsClientRole(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), newStubCompanyRepo("CMP-1"), zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.CreateUserInput{
		Email:     "buyer@client.test",
		Name:      "Buyer",
		Password:  "s3cret-pass",
		Category:  domain.CategoryExternal,
		CompanyID: "CMP-1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ExternalRole != domain.RoleExternalClient {
		t.Fatalf("external role = %q, want %q", created.ExternalRole, domain.RoleExternalClient)
	}
}

func TestUserService_CreateExternalUnknownCompany(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), newStubCompanyRepo(), zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Email:     "buyer@client.test",
		Name:      "Buyer",
		Password:  "s3cret-pass",
		Category:  domain.CategoryExternal,
		CompanyID: "CMP-404",
	})
	if !errors.Is(err, domain.ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}
}

func TestUserService_CreateDuplicateEmail(t *testing.T) {
	users := newStubUserRepo()
	svc := NewUserService(users, newStubCompanyRepo(), zerolog.Nop())

	in := ports.CreateUserInput{
		Email:    "ann@corp.test",
		Name:     "Ann",
		Password: "s3cret-pass",
		Category: domain.CategoryInternal,
		Role:     "sales",
	}
	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_UpdateReassignsRole(t *testing.T) {
	users := newStubUserRepo()
	users.byEmail["ann@corp.test"] = &domain.User{
		Email:    "ann@corp.test",
		Name:     "Ann",
		Category: domain.CategoryInternal,
		Role:     "sales",
	}
	svc := NewUserService(users, newStubCompanyRepo(), zerolog.Nop())

	updated, err := svc.Update(context.Background(), ports.UpdateUserInput{
		Email: "ann@corp.test",
		Role:  "manager",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Role != "manager" {
		t.Fatalf("role = %q, want manager", updated.Role)
	}
	if updated.Name != "Ann" {
		t.Fatalf("untouched field changed: name = %q", updated.Name)
	}
}

func TestUserService_UpdateIgnoresInternalFieldsOnExternal(t *testing.T) {
	users := newStubUserRepo()
	users.byEmail["buyer@client.test"] = &domain.User{
		Email:        "buyer@client.test",
		Name:         "Buyer",
		Category:     domain.CategoryExternal,
		CompanyID:    "CMP-1",
		ExternalRole: domain.RoleExternalClient,
	}
	svc := NewUserService(users, newStubCompanyRepo("CMP-1"), zerolog.Nop())

	updated, err := svc.Update(context.Background(), ports.UpdateUserInput{
		Email:        "buyer@client.test",
		Role:         "admin",
		ExternalRole: "procurement",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Role != "" {
		t.Fatalf("internal role set on external user: %q", updated.Role)
	}
	if updated.ExternalRole != "ext_procurement" {
		t.Fatalf("external role = %q, want ext_procurement", updated.ExternalRole)
	}
}

func TestUserService_DeleteMissing(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), newStubCompanyRepo(), zerolog.Nop())

	if err := svc.Delete(context.Background(), "ghost@corp.test"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
