package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/videotube/videotube-api/internal/core/ports"
)

type VideoHandler struct {
	videoService ports.VideoService
	dispatcher   ViewDispatcher
}

// ViewDispatcher is the async entry point for view events.
type ViewDispatcher interface {
	Enqueue(event ports.ViewEventInput)
}

func NewVideoHandler(videoService ports.VideoService, dispatcher ViewDispatcher) *VideoHandler {
	return &VideoHandler{videoService: videoService, dispatcher: dispatcher}
}

// Publish uploads a new video with its thumbnail.
//
// @Summary      Publish a video
// @Tags         videos
// @Accept       multipart/form-data
// @Produce      json
// @Success      201  {object}  apiResponse
// @Failure      400  {object}  apiResponse
// @Router       /videos [post]
func (h *VideoHandler) Publish(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	videoPath, err := stageFile(c, "video_file")
	if err != nil {
		return err
	}
	thumbPath, err := stageFile(c, "thumbnail")
	if err != nil {
		return err
	}

	duration, _ := strconv.ParseFloat(c.FormValue("duration_seconds"), 64)
	in := ports.PublishVideoInput{
		OwnerID:         user.ID,
		Title:           c.FormValue("title"),
		Description:     c.FormValue("description"),
		DurationSeconds: duration,
		VideoPath:       videoPath,
		ThumbnailPath:   thumbPath,
	}

	video, err := h.videoService.Publish(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, video, "video published successfully")
}

// Get returns a single video by id.
//
// @Summary      Get video
// @Tags         videos
// @Produce      json
// @Param        videoID  path  string  true  "Video id"
// @Success      200  {object}  apiResponse
// @Failure      404  {object}  apiResponse
// @Router       /videos/{videoID} [get]
func (h *VideoHandler) Get(c echo.Context) error {
	video, err := h.videoService.Get(c.Request().Context(), c.Param("videoID"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, video, "video fetched successfully")
}

// ListMine returns the requester's videos, newest first.
//
// @Summary      List own videos
// @Tags         videos
// @Produce      json
// @Success      200  {object}  apiResponse
// @Router       /videos [get]
func (h *VideoHandler) ListMine(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	videos, err := h.videoService.ListByOwner(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, videos, "videos fetched successfully")
}

// Delete removes an owned video and its assets.
//
// @Summary      Delete video
// @Tags         videos
// @Produce      json
// @Param        videoID  path  string  true  "Video id"
// @Success      200  {object}  apiResponse
// @Failure      404  {object}  apiResponse
// @Router       /videos/{videoID} [delete]
func (h *VideoHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.videoService.Delete(c.Request().Context(), c.Param("videoID"), user.ID); err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]any{}, "video deleted successfully")
}

// TogglePublish flips an owned video's publish state.
//
// @Summary      Toggle publish state
// @Tags         videos
// @Produce      json
// @Param        videoID  path  string  true  "Video id"
// @Success      200  {object}  apiResponse
// @Router       /videos/toggle/publish/{videoID} [patch]
func (h *VideoHandler) TogglePublish(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	video, err := h.videoService.TogglePublish(c.Request().Context(), c.Param("videoID"), user.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, video, "publish status toggled successfully")
}

// RecordView enqueues a view event for async processing: watch-history
// append and the view counter. Always 202; processing outcome is not
// part of the request.
//
// @Summary      Record a view
// @Tags         videos
// @Produce      json
// @Param        videoID  path  string  true  "Video id"
// @Success      202  {object}  apiResponse
// @Router       /videos/{videoID}/view [post]
func (h *VideoHandler) RecordView(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	h.dispatcher.Enqueue(ports.ViewEventInput{
		UserID:    user.ID,
		VideoID:   c.Param("videoID"),
		WatchedAt: time.Now().UTC(),
	})
	return respond(c, http.StatusAccepted, map[string]any{}, "view recorded")
}
