package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
)

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return string(h)
}

func TestAuthService_LoginRegistersSession(t *testing.T) {
	users := newStubUserRepo()
	registry := newStubSessionRegistry()
	users.byEmail["eng@acme.test"] = &domain.User{
		Email:        "eng@acme.test",
		PasswordHash: hashOf(t, "correct horse"),
		Category:     domain.CategoryInternal,
		Role:         "sales_engineer",
		Department:   "engineering",
	}

	svc := NewAuthService(users, registry, "test-secret", time.Hour, zerolog.Nop())
	result, err := svc.Login(context.Background(), "eng@acme.test", "correct horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if result.Session.State != domain.StateWatching {
		t.Fatalf("expected watching session, got %s", result.Session.State)
	}
	if result.Session.Role != "sales_engineer" {
		t.Fatalf("expected cached role sales_engineer, got %q", result.Session.Role)
	}
	if _, ok := registry.sessions[result.Session.ID]; !ok {
		t.Fatal("expected session registered")
	}

	// The token must carry the internal claim surface.
	parsed, err := jwt.Parse(result.Token, func(tk *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token parse: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["role"] != "sales_engineer" || claims["department"] != "engineering" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if _, ok := claims["ext_role"]; ok {
		t.Fatal("internal token must not carry ext_role")
	}
}

func TestAuthService_LoginExternalClaims(t *testing.T) {
	users := newStubUserRepo()
	registry := newStubSessionRegistry()
	users.byEmail["buyer@client.test"] = &domain.User{
		Email:        "buyer@client.test",
		PasswordHash: hashOf(t, "pw123456"),
		Category:     domain.CategoryExternal,
		ExternalRole: "client",
		CompanyID:    "CMP-1",
	}

	svc := NewAuthService(users, registry, "test-secret", time.Hour, zerolog.Nop())
	result, err := svc.Login(context.Background(), "buyer@client.test", "pw123456")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// The cached role is prefix-normalized at login.
	if result.Session.Role != "ext_client" {
		t.Fatalf("expected ext_client, got %q", result.Session.Role)
	}

	parsed, _ := jwt.Parse(result.Token, func(tk *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["ext_role"] != "ext_client" || claims["company"] != "CMP-1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	users := newStubUserRepo()
	users.byEmail["eng@acme.test"] = &domain.User{
		Email:        "eng@acme.test",
		PasswordHash: hashOf(t, "right"),
		Category:     domain.CategoryInternal,
		Role:         "sales",
	}

	svc := NewAuthService(users, newStubSessionRegistry(), "test-secret", time.Hour, zerolog.Nop())
	_, err := svc.Login(context.Background(), "eng@acme.test", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_LogoutRemovesSession(t *testing.T) {
	registry := newStubSessionRegistry()
	registry.Put(context.Background(), watchingSession("S-9", "eng@acme.test", "sales"))

	svc := NewAuthService(newStubUserRepo(), registry, "test-secret", time.Hour, zerolog.Nop())
	if err := svc.Logout(context.Background(), "S-9"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok := registry.sessions["S-9"]; ok {
		t.Fatal("expected session deleted")
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	users := newStubUserRepo()
	users.byEmail["eng@acme.test"] = &domain.User{
		Email:        "eng@acme.test",
		PasswordHash: hashOf(t, "old-password"),
		Category:     domain.CategoryInternal,
		Role:         "sales",
	}

	svc := NewAuthService(users, newStubSessionRegistry(), "test-secret", time.Hour, zerolog.Nop())

	if err := svc.ChangePassword(context.Background(), "eng@acme.test", "bad", "new-password"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if err := svc.ChangePassword(context.Background(), "eng@acme.test", "old-password", "new-password"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if users.updated == nil {
		t.Fatal("expected user updated")
	}
	if bcrypt.CompareHashAndPassword([]byte(users.updated.PasswordHash), []byte("new-password")) != nil {
		t.Fatal("expected new password hash stored")
	}
}
