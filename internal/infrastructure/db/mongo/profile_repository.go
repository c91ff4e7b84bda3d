package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/videotube/videotube-api/internal/core/domain"
)

// ProfileRepository computes the derived views with aggregation
// pipelines over users, videos and subscriptions. Counts and joins are
// evaluated at read time; nothing here writes.
type ProfileRepository struct {
	users *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{users: db.Collection(usersCollection)}
}

type channelProfileDoc struct {
	Username                 string `bson:"username"`
	FullName                 string `bson:"full_name"`
	Email                    string `bson:"email"`
	Avatar                   string `bson:"avatar"`
	CoverImage               string `bson:"cover_image"`
	SubscriberCount          int64  `bson:"subscriber_count"`
	ChannelSubscribedToCount int64  `bson:"channel_subscribed_to_count"`
	IsSubscribed             bool   `bson:"is_subscribed"`
}

// ChannelProfile matches the channel by lowercase username, joins the
// subscription edges both ways and projects the whitelisted fields.
// Returns nil when no user matches; IsSubscribed is false for an empty
// or malformed viewer id.
func (r *ProfileRepository) ChannelProfile(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// Anonymous viewers get a constant false; a $cond over the
	// subscriber edges handles the rest.
	isSubscribed := bson.M{"$literal": false}
	if viewerOID, err := primitive.ObjectIDFromHex(viewerID); err == nil {
		isSubscribed = bson.M{"$cond": bson.M{
			"if":   bson.M{"$in": bson.A{viewerOID, "$subscribers.subscriber"}},
			"then": true,
			"else": false,
		}}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"username": username}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         subscriptionsCollection,
			"localField":   "_id",
			"foreignField": "channel",
			"as":           "subscribers",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         subscriptionsCollection,
			"localField":   "_id",
			"foreignField": "subscriber",
			"as":           "subscribed_to",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"subscriber_count":            bson.M{"$size": "$subscribers"},
			"channel_subscribed_to_count": bson.M{"$size": "$subscribed_to"},
			"is_subscribed":               isSubscribed,
		}}},
		{{Key: "$project", Value: bson.M{
			"username":                    1,
			"full_name":                   1,
			"subscriber_count":            1,
			"channel_subscribed_to_count": 1,
			"is_subscribed":               1,
			"avatar":                      1,
			"cover_image":                 1,
			"email":                       1,
		}}},
	}

	cursor, err := r.users.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("channel profile aggregate: %w", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, fmt.Errorf("channel profile cursor: %w", err)
		}
		return nil, nil
	}

	var doc channelProfileDoc
	if err := cursor.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode channel profile: %w", err)
	}

	return &domain.ChannelProfile{
		Username:                 doc.Username,
		FullName:                 doc.FullName,
		Email:                    doc.Email,
		Avatar:                   doc.Avatar,
		CoverImage:               doc.CoverImage,
		SubscriberCount:          doc.SubscriberCount,
		ChannelSubscribedToCount: doc.ChannelSubscribedToCount,
		IsSubscribed:             doc.IsSubscribed,
	}, nil
}

type watchedOwnerDoc struct {
	Username string `bson:"username"`
	FullName string `bson:"full_name"`
	Avatar   string `bson:"avatar"`
}

type watchedVideoDoc struct {
	videoDoc `bson:",inline"`
	OwnerDoc watchedOwnerDoc `bson:"owner_info"`
}

type watchHistoryDoc struct {
	WatchHistory []primitive.ObjectID `bson:"watch_history"`
	Videos       []watchedVideoDoc    `bson:"videos"`
}

// WatchHistory resolves the user's watch-history ids into full video
// records with each owner collapsed to its reduced projection. $lookup
// returns joined documents in store order, so the stored id list is
// projected alongside and used to restore the user's watch order.
func (r *ProfileRepository) WatchHistory(ctx context.Context, userID string) ([]domain.WatchedVideo, error) {
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": userOID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         videosCollection,
			"localField":   "watch_history",
			"foreignField": "_id",
			"as":           "videos",
			"pipeline": bson.A{
				bson.M{"$lookup": bson.M{
					"from":         usersCollection,
					"localField":   "owner",
					"foreignField": "_id",
					"as":           "owner_info",
					"pipeline": bson.A{
						bson.M{"$project": bson.M{
							"username":  1,
							"full_name": 1,
							"avatar":    1,
						}},
					},
				}},
				// Owner is a single user; collapse the lookup array.
				bson.M{"$addFields": bson.M{
					"owner_info": bson.M{"$first": "$owner_info"},
				}},
			},
		}}},
		{{Key: "$project", Value: bson.M{
			"watch_history": 1,
			"videos":        1,
		}}},
	}

	cursor, err := r.users.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("watch history aggregate: %w", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, fmt.Errorf("watch history cursor: %w", err)
		}
		return nil, domain.ErrUserNotFound
	}

	var doc watchHistoryDoc
	if err := cursor.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode watch history: %w", err)
	}

	return orderWatchHistory(doc), nil
}

// orderWatchHistory reorders the joined videos to match the user's
// stored watch-history id order.
func orderWatchHistory(doc watchHistoryDoc) []domain.WatchedVideo {
	byID := make(map[primitive.ObjectID]watchedVideoDoc, len(doc.Videos))
	for _, v := range doc.Videos {
		byID[v.ID] = v
	}

	history := make([]domain.WatchedVideo, 0, len(doc.WatchHistory))
	for _, id := range doc.WatchHistory {
		v, ok := byID[id]
		if !ok {
			// Video was deleted since it was watched.
			continue
		}
		history = append(history, domain.WatchedVideo{
			Video: v.toDomain(),
			Owner: domain.VideoOwner{
				Username: v.OwnerDoc.Username,
				FullName: v.OwnerDoc.FullName,
				Avatar:   v.OwnerDoc.Avatar,
			},
		})
	}
	return history
}
