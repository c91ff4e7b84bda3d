package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/videotube/videotube-api/internal/core/domain"
)

const subscriptionsCollection = "subscriptions"

type SubscriptionRepository struct {
	coll *mongo.Collection
}

func NewSubscriptionRepository(db *mongo.Database) *SubscriptionRepository {
	return &SubscriptionRepository{coll: db.Collection(subscriptionsCollection)}
}

type subscriptionDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Subscriber primitive.ObjectID `bson:"subscriber"`
	Channel    primitive.ObjectID `bson:"channel"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (r *SubscriptionRepository) Find(ctx context.Context, subscriberID, channelID string) (*domain.Subscription, error) {
	filter, err := edgeFilter(subscriberID, channelID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc subscriptionDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find subscription: %w", err)
	}
	return &domain.Subscription{
		ID:           doc.ID.Hex(),
		SubscriberID: doc.Subscriber.Hex(),
		ChannelID:    doc.Channel.Hex(),
		CreatedAt:    doc.CreatedAt,
	}, nil
}

func (r *SubscriptionRepository) Create(ctx context.Context, subscriberID, channelID string) error {
	subOID, err := primitive.ObjectIDFromHex(subscriberID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	chanOID, err := primitive.ObjectIDFromHex(channelID)
	if err != nil {
		return domain.ErrChannelNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = r.coll.InsertOne(ctx, subscriptionDoc{
		Subscriber: subOID,
		Channel:    chanOID,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		// A racing toggle already created the edge; the end state matches.
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

func (r *SubscriptionRepository) Delete(ctx context.Context, subscriberID, channelID string) error {
	filter, err := edgeFilter(subscriberID, channelID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique edge index plus the two lookup
// indexes the profile aggregation depends on.
func (r *SubscriptionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "subscriber", Value: 1}, {Key: "channel", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "channel", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func edgeFilter(subscriberID, channelID string) (bson.M, error) {
	subOID, err := primitive.ObjectIDFromHex(subscriberID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	chanOID, err := primitive.ObjectIDFromHex(channelID)
	if err != nil {
		return nil, domain.ErrChannelNotFound
	}
	return bson.M{"subscriber": subOID, "channel": chanOID}, nil
}
