package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
)

func TestCompanyService_CreateRequiresName(t *testing.T) {
	svc := NewCompanyService(newStubCompanyRepo(), newStubUserRepo(), zerolog.Nop())

	_, err := svc.Create(context.Background(), &domain.Company{})
	if !errors.Is(err, domain.ErrInvalidCompany) {
		t.Fatalf("expected ErrInvalidCompany, got %v", err)
	}
}

func TestCompanyService_UpdateMergesFields(t *testing.T) {
	companies := newStubCompanyRepo()
	companies.byID["CMP-1"] = &domain.Company{
		ID:      "CMP-1",
		Name:    "Acme",
		Address: "Old Street 1",
		Email:   "sales@acme.test",
	}
	svc := NewCompanyService(companies, newStubUserRepo(), zerolog.Nop())

	updated, err := svc.Update(context.Background(), &domain.Company{ID: "CMP-1", Address: "New Street 9"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Address != "New Street 9" {
		t.Fatalf("address = %q, want New Street 9", updated.Address)
	}
	if updated.Name != "Acme" || updated.Email != "sales@acme.test" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestCompanyService_DeleteBlockedByUsers(t *testing.T) {
	companies := newStubCompanyRepo("CMP-1")
	users := newStubUserRepo()
	users.byEmail["buyer@client.test"] = &domain.User{
		Email:     "buyer@client.test",
		Category:  domain.CategoryExternal,
		CompanyID: "CMP-1",
	}
	svc := NewCompanyService(companies, users, zerolog.Nop())

	if err := svc.Delete(context.Background(), "CMP-1"); !errors.Is(err, domain.ErrCompanyInUse) {
		t.Fatalf("expected ErrCompanyInUse, got %v", err)
	}
	if _, err := companies.FindByID(context.Background(), "CMP-1"); err != nil {
		t.Fatalf("company removed despite references: %v", err)
	}
}

func TestCompanyService_DeleteUnreferenced(t *testing.T) {
	companies := newStubCompanyRepo("CMP-2")
	svc := NewCompanyService(companies, newStubUserRepo(), zerolog.Nop())

	if err := svc.Delete(context.Background(), "CMP-2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := companies.FindByID(context.Background(), "CMP-2"); !errors.Is(err, domain.ErrCompanyNotFound) {
		t.Fatalf("expected company gone, got %v", err)
	}
}

func TestCompanyService_SetLogo(t *testing.T) {
	companies := newStubCompanyRepo("CMP-1")
	svc := NewCompanyService(companies, newStubUserRepo(), zerolog.Nop())

	if err := svc.SetLogo(context.Background(), "CMP-1", "logos/CMP-1.png"); err != nil {
		t.Fatalf("set logo: %v", err)
	}
	company, _ := companies.FindByID(context.Background(), "CMP-1")
	if company.LogoPath != "logos/CMP-1.png" {
		t.Fatalf("logo path = %q", company.LogoPath)
	}
}
