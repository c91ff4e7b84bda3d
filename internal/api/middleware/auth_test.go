package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/videotube/videotube-api/internal/core/domain"
	"github.com/videotube/videotube-api/internal/core/service"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) { return u, nil }
func (r *stubUserRepo) FindByUsernameOrEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (r *stubUserRepo) SetRefreshToken(_ context.Context, _ string, _ *string) error { return nil }
func (r *stubUserRepo) UpdatePasswordHash(_ context.Context, _, _ string) error      { return nil }
func (r *stubUserRepo) UpdateAccount(_ context.Context, _, _, _ string) (*domain.User, error) {
	return nil, nil
}
func (r *stubUserRepo) UpdateAvatar(_ context.Context, _, _ string) (*domain.User, error) {
	return nil, nil
}
func (r *stubUserRepo) UpdateCoverImage(_ context.Context, _, _ string) (*domain.User, error) {
	return nil, nil
}
func (r *stubUserRepo) AppendWatchHistory(_ context.Context, _, _ string) error { return nil }

const (
	testAccessSecret  = "access-secret"
	testRefreshSecret = "refresh-secret"
)

func authFixture(t *testing.T) (echo.MiddlewareFunc, *service.TokenService, *stubUserRepo) {
	t.Helper()
	tokens := service.NewTokenService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)
	repo := &stubUserRepo{users: map[string]*domain.User{
		"user-1": {
			ID:           "user-1",
			Username:     "alice",
			PasswordHash: "hashed",
			RefreshToken: "some-refresh-token",
		},
	}}
	return Auth(tokens, repo), tokens, repo
}

func runRequest(t *testing.T, mw echo.MiddlewareFunc, prepare func(*http.Request)) (*httptest.ResponseRecorder, *domain.User, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	prepare(req)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var attached *domain.User
	handler := mw(func(c echo.Context) error {
		attached, _ = c.Get(UserContextKey).(*domain.User)
		return c.NoContent(http.StatusOK)
	})
	return rec, attached, handler(c)
}

func TestAuth_BearerHeader(t *testing.T) {
	mw, tokens, _ := authFixture(t)
	token, _ := tokens.IssueAccess("user-1")

	rec, user, err := runRequest(t, mw, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if user == nil || user.Username != "alice" {
		t.Fatalf("identity not attached: %+v", user)
	}
	if user.PasswordHash != "" || user.RefreshToken != "" {
		t.Fatalf("sensitive fields leaked into request context: %+v", user)
	}
}

func TestAuth_CookieTakesPrecedence(t *testing.T) {
	mw, tokens, _ := authFixture(t)
	token, _ := tokens.IssueAccess("user-1")

	_, user, err := runRequest(t, mw, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token})
		req.Header.Set("Authorization", "Bearer not-a-token")
	})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if user == nil || user.ID != "user-1" {
		t.Fatalf("cookie token not used: %+v", user)
	}
}

func TestAuth_MissingToken(t *testing.T) {
	mw, _, _ := authFixture(t)

	_, _, err := runRequest(t, mw, func(*http.Request) {})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	mw, _, _ := authFixture(t)

	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testAccessSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	_, _, handlerErr := runRequest(t, mw, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+expired)
	})
	if !errors.Is(handlerErr, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", handlerErr)
	}
}

func TestAuth_DeletedUser(t *testing.T) {
	mw, tokens, repo := authFixture(t)
	token, _ := tokens.IssueAccess("user-1")
	delete(repo.users, "user-1")

	_, _, err := runRequest(t, mw, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for deleted user, got %v", err)
	}
}

func TestOptionalAuth_Anonymous(t *testing.T) {
	tokens := service.NewTokenService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)
	repo := &stubUserRepo{users: map[string]*domain.User{}}
	mw := OptionalAuth(tokens, repo)

	rec, user, err := runRequest(t, mw, func(*http.Request) {})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if user != nil {
		t.Fatalf("unexpected identity for anonymous request: %+v", user)
	}
}
