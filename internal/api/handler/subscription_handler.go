package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/videotube/videotube-api/internal/core/ports"
)

type SubscriptionHandler struct {
	subscriptionService ports.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService ports.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// Toggle subscribes the requester to the channel, or unsubscribes if
// already subscribed. The resulting state is returned.
//
// @Summary      Toggle subscription
// @Tags         subscriptions
// @Produce      json
// @Param        channelID  path  string  true  "Channel (user) id"
// @Success      200  {object}  apiResponse
// @Failure      404  {object}  apiResponse
// @Router       /subscriptions/c/{channelID} [post]
func (h *SubscriptionHandler) Toggle(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	subscribed, err := h.subscriptionService.Toggle(c.Request().Context(), user.ID, c.Param("channelID"))
	if err != nil {
		return err
	}

	message := "unsubscribed successfully"
	if subscribed {
		message = "subscribed successfully"
	}
	return respond(c, http.StatusOK, map[string]bool{"subscribed": subscribed}, message)
}
