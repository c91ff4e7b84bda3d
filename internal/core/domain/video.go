package domain

import (
	"errors"
	"time"
)

var ErrVideoNotFound = errors.New("video not found")

// Video is a published (or draft) video document.
type Video struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"owner_id"`
	VideoFile       string    `json:"video_file"`
	Thumbnail       string    `json:"thumbnail"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DurationSeconds float64   `json:"duration_seconds"`
	Views           int64     `json:"views"`
	IsPublished     bool      `json:"is_published"`
	CreatedAt       time.Time `json:"created_at"`
}

// VideoOwner is the reduced owner projection embedded in derived views.
type VideoOwner struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Avatar   string `json:"avatar"`
}

// WatchedVideo is a watch-history entry: the full video record joined
// with its owner's reduced projection.
type WatchedVideo struct {
	Video
	Owner VideoOwner `json:"owner"`
}
