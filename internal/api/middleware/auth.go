package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/videotube/videotube-api/internal/core/domain"
	"github.com/videotube/videotube-api/internal/core/ports"
)

// AccessTokenCookie is the cookie holding the access token. It takes
// precedence over the Authorization header.
const AccessTokenCookie = "accessToken"

// UserContextKey is where the middleware stores the resolved identity.
const UserContextKey = "user"

// Auth verifies the bearer credential and resolves it to a user.
// Absent credential → 401 unauthorized. Bad signature, expiry, or a
// token pointing at a deleted user → 401 invalid token. On success the
// sanitized user (no password hash, no refresh token) is attached to
// the request context.
func Auth(tokens ports.TokenIssuer, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return domain.ErrUnauthorized
			}

			userID, err := tokens.VerifyAccess(token)
			if err != nil {
				return err
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				return domain.ErrInvalidToken
			}

			c.Set(UserContextKey, user.Sanitized())
			return next(c)
		}
	}
}

// OptionalAuth resolves the identity when a valid credential is present
// and continues anonymously otherwise. Used on routes like the channel
// profile, where the viewer's identity only refines the response.
func OptionalAuth(tokens ports.TokenIssuer, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return next(c)
			}
			userID, err := tokens.VerifyAccess(token)
			if err != nil {
				return next(c)
			}
			if user, err := users.FindByID(c.Request().Context(), userID); err == nil {
				c.Set(UserContextKey, user.Sanitized())
			}
			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
