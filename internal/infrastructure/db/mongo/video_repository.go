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

const videosCollection = "videos"

type VideoRepository struct {
	coll *mongo.Collection
}

func NewVideoRepository(db *mongo.Database) *VideoRepository {
	return &VideoRepository{coll: db.Collection(videosCollection)}
}

type videoDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Owner           primitive.ObjectID `bson:"owner"`
	VideoFile       string             `bson:"video_file"`
	Thumbnail       string             `bson:"thumbnail"`
	Title           string             `bson:"title"`
	Description     string             `bson:"description"`
	DurationSeconds float64            `bson:"duration_seconds"`
	Views           int64              `bson:"views"`
	IsPublished     bool               `bson:"is_published"`
	CreatedAt       time.Time          `bson:"created_at"`
}

func (d *videoDoc) toDomain() domain.Video {
	return domain.Video{
		ID:              d.ID.Hex(),
		OwnerID:         d.Owner.Hex(),
		VideoFile:       d.VideoFile,
		Thumbnail:       d.Thumbnail,
		Title:           d.Title,
		Description:     d.Description,
		DurationSeconds: d.DurationSeconds,
		Views:           d.Views,
		IsPublished:     d.IsPublished,
		CreatedAt:       d.CreatedAt,
	}
}

func (r *VideoRepository) Create(ctx context.Context, video *domain.Video) (*domain.Video, error) {
	ownerOID, err := primitive.ObjectIDFromHex(video.OwnerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := videoDoc{
		Owner:           ownerOID,
		VideoFile:       video.VideoFile,
		Thumbnail:       video.Thumbnail,
		Title:           video.Title,
		Description:     video.Description,
		DurationSeconds: video.DurationSeconds,
		IsPublished:     video.IsPublished,
		CreatedAt:       time.Now().UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert video: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	created := doc.toDomain()
	return &created, nil
}

func (r *VideoRepository) FindByID(ctx context.Context, id string) (*domain.Video, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrVideoNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc videoDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVideoNotFound
		}
		return nil, fmt.Errorf("find video: %w", err)
	}
	video := doc.toDomain()
	return &video, nil
}

func (r *VideoRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Video, error) {
	ownerOID, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"owner": ownerOID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer cursor.Close(ctx)

	var videos []domain.Video
	for cursor.Next(ctx) {
		var doc videoDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode video: %w", err)
		}
		videos = append(videos, doc.toDomain())
	}
	return videos, cursor.Err()
}

func (r *VideoRepository) SetPublished(ctx context.Context, id string, published bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrVideoNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"is_published": published}})
	if err != nil {
		return fmt.Errorf("set published: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrVideoNotFound
	}
	return nil
}

func (r *VideoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrVideoNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrVideoNotFound
	}
	return nil
}

func (r *VideoRepository) IncrementViews(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrVideoNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = r.coll.UpdateByID(ctx, oid, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

// EnsureIndexes creates the owner lookup index.
func (r *VideoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
