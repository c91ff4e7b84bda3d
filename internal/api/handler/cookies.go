package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/videotube/videotube-api/internal/api/middleware"
	"github.com/videotube/videotube-api/internal/core/ports"
)

const refreshTokenCookie = "refreshToken"

// setAuthCookies attaches both tokens as http-only secure cookies. No
// explicit max-age: the embedded expiry is the source of truth.
func setAuthCookies(c echo.Context, pair ports.TokenPair) {
	c.SetCookie(authCookie(middleware.AccessTokenCookie, pair.AccessToken, time.Time{}))
	c.SetCookie(authCookie(refreshTokenCookie, pair.RefreshToken, time.Time{}))
}

// clearAuthCookies expires both token cookies.
func clearAuthCookies(c echo.Context) {
	expired := time.Unix(0, 0)
	c.SetCookie(authCookie(middleware.AccessTokenCookie, "", expired))
	c.SetCookie(authCookie(refreshTokenCookie, "", expired))
}

func authCookie(name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}
