package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/videotube/videotube-api/internal/core/ports"
)

type ProfileHandler struct {
	profileService ports.ProfileService
}

func NewProfileHandler(profileService ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// ChannelProfile returns the derived channel view: whitelisted profile
// fields plus subscriber counts and whether the requester subscribes.
// Works for anonymous viewers too (is_subscribed is then false).
//
// @Summary      Channel profile
// @Tags         profiles
// @Produce      json
// @Param        username  path  string  true  "Channel username"
// @Success      200  {object}  apiResponse
// @Failure      404  {object}  apiResponse
// @Router       /users/c/{username} [get]
func (h *ProfileHandler) ChannelProfile(c echo.Context) error {
	profile, err := h.profileService.GetChannelProfile(
		c.Request().Context(),
		c.Param("username"),
		ctxUserID(c),
	)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, profile, "user channel fetched successfully")
}

// WatchHistory returns the requester's watch history in stored order,
// each video joined with its owner's reduced projection.
//
// @Summary      Watch history
// @Tags         profiles
// @Produce      json
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  apiResponse
// @Router       /users/watch-history [get]
func (h *ProfileHandler) WatchHistory(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	history, err := h.profileService.GetWatchHistory(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, history, "watch history fetched successfully")
}
