package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/videotube/videotube-api/internal/api/middleware"
	"github.com/videotube/videotube-api/internal/core/domain"
)

// ctxUser extracts the identity injected by the Auth middleware. A
// missing or mistyped value means the middleware did not run on this
// route; reject rather than proceed anonymously.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.UserContextKey).(*domain.User)
	if user == nil || user.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// ctxUserID is ctxUser for handlers that only need the id. Returns ""
// when the request is anonymous (routes where auth is optional).
func ctxUserID(c echo.Context) string {
	user, _ := c.Get(middleware.UserContextKey).(*domain.User)
	if user == nil {
		return ""
	}
	return user.ID
}
