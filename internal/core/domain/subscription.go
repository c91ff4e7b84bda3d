package domain

import "time"

// Subscription is a directed edge: SubscriberID follows ChannelID.
// A channel is just a user viewed as the target of these edges.
type Subscription struct {
	ID           string    `json:"id"`
	SubscriberID string    `json:"subscriber_id"`
	ChannelID    string    `json:"channel_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// ChannelProfile is the derived channel view. Counts and the
// subscription flag are computed at read time from subscription edges,
// never stored as counters.
type ChannelProfile struct {
	Username                 string `json:"username"`
	FullName                 string `json:"full_name"`
	Email                    string `json:"email"`
	Avatar                   string `json:"avatar"`
	CoverImage               string `json:"cover_image,omitempty"`
	SubscriberCount          int64  `json:"subscriber_count"`
	ChannelSubscribedToCount int64  `json:"channel_subscribed_to_count"`
	IsSubscribed             bool   `json:"is_subscribed"`
}
