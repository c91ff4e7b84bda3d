package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/videotube/videotube-api/internal/core/domain"
	"github.com/videotube/videotube-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account from a multipart form: account
// fields plus a required avatar file and an optional cover image.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       multipart/form-data
// @Produce      json
// @Success      201  {object}  apiResponse
// @Failure      400  {object}  apiResponse
// @Failure      409  {object}  apiResponse
// @Router       /users/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	avatarPath, err := stageFile(c, "avatar")
	if err != nil {
		return err
	}
	coverPath, err := stageOptionalFile(c, "cover_image")
	if err != nil {
		return err
	}

	in := ports.RegisterInput{
		Username:       c.FormValue("username"),
		Email:          c.FormValue("email"),
		FullName:       c.FormValue("full_name"),
		Password:       c.FormValue("password"),
		AvatarPath:     avatarPath,
		CoverImagePath: coverPath,
	}

	user, err := h.authService.Register(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, user, "user created successfully")
}

// Login authenticates by username or email and opens a session: both
// tokens in the body plus http-only secure cookies.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  loginRequest  true  "Login credentials"
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  apiResponse
// @Failure      404  {object}  apiResponse
// @Router       /users/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrValidation)
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}

	usernameOrEmail := req.Username
	if usernameOrEmail == "" {
		usernameOrEmail = req.Email
	}

	result, err := h.authService.Login(c.Request().Context(), usernameOrEmail, req.Password)
	if err != nil {
		return err
	}

	setAuthCookies(c, result.TokenPair)
	return respond(c, http.StatusOK, loginResponse{
		User:         result.User,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}, "user logged in successfully")
}

// Refresh rotates the token pair. The incoming refresh token is read
// from the cookie first, then the request body.
//
// @Summary      Refresh the session tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  apiResponse
// @Router       /users/refresh-token [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	incoming := ""
	if cookie, err := c.Cookie(refreshTokenCookie); err == nil {
		incoming = cookie.Value
	}
	if incoming == "" {
		var req refreshRequest
		// Body is optional when the cookie is present; ignore bind noise.
		_ = c.Bind(&req)
		incoming = req.RefreshToken
	}

	pair, err := h.authService.Refresh(c.Request().Context(), incoming)
	if err != nil {
		return err
	}

	setAuthCookies(c, *pair)
	return respond(c, http.StatusOK, refreshResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "access token refreshed")
}

// Logout clears the stored refresh token and expires both cookies.
// Idempotent: a second logout is not an error.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  apiResponse
// @Router       /users/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), user.ID); err != nil {
		return err
	}

	clearAuthCookies(c)
	return respond(c, http.StatusOK, map[string]any{}, "user logged out successfully")
}

// ChangePassword verifies the old password and replaces the stored hash.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  changePasswordRequest  true  "Old and new password"
// @Success      200  {object}  apiResponse
// @Failure      400  {object}  apiResponse
// @Router       /users/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrValidation)
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}

	if err := h.authService.ChangePassword(c.Request().Context(), user.ID, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]any{}, "password changed successfully")
}

// CurrentUser returns the identity resolved by the Auth middleware.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  apiResponse
// @Router       /users/current-user [get]
func (h *AuthHandler) CurrentUser(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user, "current user fetched successfully")
}
