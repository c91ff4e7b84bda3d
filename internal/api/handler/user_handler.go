package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/videotube/videotube-api/internal/core/domain"
	"github.com/videotube/videotube-api/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateAccount replaces the mutable profile fields.
//
// @Summary      Update account details
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  updateAccountRequest  true  "New account details"
// @Success      200  {object}  apiResponse
// @Failure      400  {object}  apiResponse
// @Router       /users/update-account [patch]
func (h *UserHandler) UpdateAccount(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrValidation)
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}

	updated, err := h.userService.UpdateAccount(c.Request().Context(), user.ID, req.FullName, req.Email)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, updated, "account details updated successfully")
}

// UpdateAvatar swaps the avatar asset.
//
// @Summary      Update avatar
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Success      200  {object}  apiResponse
// @Router       /users/avatar [patch]
func (h *UserHandler) UpdateAvatar(c echo.Context) error {
	return h.updateImage(c, "avatar", h.userService.UpdateAvatar, "avatar updated successfully")
}

// UpdateCoverImage swaps the cover-image asset.
//
// @Summary      Update cover image
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Success      200  {object}  apiResponse
// @Router       /users/cover-image [patch]
func (h *UserHandler) UpdateCoverImage(c echo.Context) error {
	return h.updateImage(c, "cover_image", h.userService.UpdateCoverImage, "cover image updated successfully")
}

func (h *UserHandler) updateImage(
	c echo.Context,
	field string,
	update func(ctx context.Context, userID, path string) (*domain.User, error),
	message string,
) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	path, err := stageFile(c, field)
	if err != nil {
		return err
	}

	updated, err := update(c.Request().Context(), user.ID, path)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, updated, message)
}
