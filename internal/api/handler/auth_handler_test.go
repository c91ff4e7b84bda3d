package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/videotube/videotube-api/internal/api/middleware"
	"github.com/videotube/videotube-api/internal/core/domain"
	"github.com/videotube/videotube-api/internal/core/ports"
)

type stubAuthService struct {
	loginResult *ports.LoginResult
	loginErr    error
	refreshPair *ports.TokenPair
	refreshErr  error

	loggedOut     []string
	refreshedWith string
}

func (s *stubAuthService) Register(_ context.Context, _ ports.RegisterInput) (*domain.User, error) {
	return nil, nil
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (*ports.LoginResult, error) {
	return s.loginResult, s.loginErr
}

func (s *stubAuthService) Refresh(_ context.Context, token string) (*ports.TokenPair, error) {
	s.refreshedWith = token
	return s.refreshPair, s.refreshErr
}

func (s *stubAuthService) Logout(_ context.Context, userID string) error {
	s.loggedOut = append(s.loggedOut, userID)
	return nil
}

func (s *stubAuthService) ChangePassword(_ context.Context, _, _, _ string) error { return nil }

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	res := http.Response{Header: rec.Header()}
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthHandler_Login_SetsCookies(t *testing.T) {
	svc := &stubAuthService{loginResult: &ports.LoginResult{
		TokenPair: ports.TokenPair{AccessToken: "A1", RefreshToken: "R1"},
		User:      &domain.User{ID: "user-1", Username: "alice"},
	}}
	h := NewAuthHandler(svc)

	e := newEcho()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"alice","password":"secret123"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("login handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	for name, want := range map[string]string{
		middleware.AccessTokenCookie: "A1",
		refreshTokenCookie:           "R1",
	} {
		cookie := cookieByName(rec, name)
		if cookie == nil {
			t.Fatalf("cookie %s not set", name)
		}
		if cookie.Value != want {
			t.Fatalf("cookie %s = %q, want %q", name, cookie.Value, want)
		}
		if !cookie.HttpOnly || !cookie.Secure {
			t.Fatalf("cookie %s must be http-only and secure", name)
		}
	}

	body := rec.Body.String()
	if strings.Contains(body, "password_hash") || strings.Contains(body, "PasswordHash") {
		t.Fatalf("response leaks password hash: %s", body)
	}
}

func TestAuthHandler_Login_MissingPassword(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	e := newEcho()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"alice"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Login(c)
	if err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestAuthHandler_Refresh_ReadsCookieFirst(t *testing.T) {
	svc := &stubAuthService{refreshPair: &ports.TokenPair{AccessToken: "A2", RefreshToken: "R2"}}
	h := NewAuthHandler(svc)

	e := newEcho()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"refresh_token":"from-body"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.AddCookie(&http.Cookie{Name: refreshTokenCookie, Value: "from-cookie"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Refresh(c); err != nil {
		t.Fatalf("refresh handler error: %v", err)
	}
	if svc.refreshedWith != "from-cookie" {
		t.Fatalf("refresh used %q, want the cookie value", svc.refreshedWith)
	}
	if cookie := cookieByName(rec, refreshTokenCookie); cookie == nil || cookie.Value != "R2" {
		t.Fatalf("rotated refresh cookie not set: %+v", cookie)
	}
}

func TestAuthHandler_Refresh_BodyFallback(t *testing.T) {
	svc := &stubAuthService{refreshPair: &ports.TokenPair{AccessToken: "A2", RefreshToken: "R2"}}
	h := NewAuthHandler(svc)

	e := newEcho()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"refresh_token":"from-body"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Refresh(c); err != nil {
		t.Fatalf("refresh handler error: %v", err)
	}
	if svc.refreshedWith != "from-body" {
		t.Fatalf("refresh used %q, want the body value", svc.refreshedWith)
	}
}

func TestAuthHandler_Logout_ClearsCookies(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	e := newEcho()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.UserContextKey, &domain.User{ID: "user-1"})

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout handler error: %v", err)
	}
	if len(svc.loggedOut) != 1 || svc.loggedOut[0] != "user-1" {
		t.Fatalf("logout not forwarded: %v", svc.loggedOut)
	}

	for _, name := range []string{middleware.AccessTokenCookie, refreshTokenCookie} {
		cookie := cookieByName(rec, name)
		if cookie == nil {
			t.Fatalf("cookie %s not cleared", name)
		}
		if cookie.Value != "" {
			t.Fatalf("cookie %s still carries a value", name)
		}
	}
}

func TestAuthHandler_Logout_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	e := newEcho()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
