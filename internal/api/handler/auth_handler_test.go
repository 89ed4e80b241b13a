package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Themiya19/Quotation-System-sub001/internal/api/middleware"
	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
	"github.com/Themiya19/Quotation-System-sub001/internal/core/ports"
)

type stubAuthService struct {
	loginFn          func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	logoutFn         func(ctx context.Context, sessionID string) error
	changePasswordFn func(ctx context.Context, email, current, next string) error
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, sessionID string) error {
	return s.logoutFn(ctx, sessionID)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, email, current, next string) error {
	return s.changePasswordFn(ctx, email, current, next)
}

func (s *stubAuthService) IssueToken(*domain.Session) (string, error) {
	return "token", nil
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			if email != "eng@acme.test" || password != "secret123" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return &ports.LoginResult{
				Token: "signed-token",
				Session: &domain.Session{
					ID:       "S-1",
					Category: domain.CategoryInternal,
					Role:     "sales_engineer",
					State:    domain.StateWatching,
				},
				User: &domain.User{Email: email, Category: domain.CategoryInternal, Role: "sales_engineer"},
			}, nil
		},
	}
	h := NewAuthHandler(stub, time.Hour)

	body := strings.NewReader(`{"email":"eng@acme.test","password":"secret123"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if !strings.Contains(rec.Header().Get("Set-Cookie"), middleware.SessionCookie+"=signed-token") {
		t.Fatalf("expected session cookie set, got %q", rec.Header().Get("Set-Cookie"))
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	session, ok := resp["session"].(map[string]any)
	if !ok {
		t.Fatal("expected session in response")
	}
	if session["id"] != "S-1" || session["role"] != "sales_engineer" {
		t.Fatalf("unexpected session payload: %+v", session)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, time.Hour)

	body := strings.NewReader(`{"email":"eng@acme.test","password":"wrong-pass"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Login(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_Login_RejectsInvalidPayload(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			t.Fatal("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, time.Hour)

	body := strings.NewReader(`{"email":"not-an-email","password":""}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Login(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newEcho()
	var loggedOut string
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, sessionID string) error {
			loggedOut = sessionID
			return nil
		},
	}
	h := NewAuthHandler(stub, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("session_id", "S-1")

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if loggedOut != "S-1" {
		t.Fatalf("expected logout of S-1, got %q", loggedOut)
	}
	if !strings.Contains(rec.Header().Get("Set-Cookie"), middleware.SessionCookie+"=;") {
		t.Fatal("expected cookie cleared")
	}
}

func TestAuthHandler_ChangePassword_RequiresMinLength(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		changePasswordFn: func(ctx context.Context, email, current, next string) error {
			t.Fatal("should not be called")
			return nil
		},
	}
	h := NewAuthHandler(stub, time.Hour)

	body := strings.NewReader(`{"current_password":"old","new_password":"short"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/password", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("email", "eng@acme.test")

	err := h.ChangePassword(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
