package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/livinglux/coliving-site/internal/notify"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FailedNotificationRepository persists undelivered notifications.
type FailedNotificationRepository struct {
	collection *mongo.Collection
}

func NewFailedNotificationRepository(db *mongo.Database, collection string) *FailedNotificationRepository {
	return &FailedNotificationRepository{collection: db.Collection(collection)}
}

func (r *FailedNotificationRepository) Save(ctx context.Context, f notify.FailedNotification) error {
	if _, err := r.collection.InsertOne(ctx, newFailedNotificationDocument(f)); err != nil {
		return fmt.Errorf("insert failed notification: %w", err)
	}
	return nil
}

// Pending returns the oldest pending failures first.
func (r *FailedNotificationRepository) Pending(ctx context.Context, limit int) ([]notify.FailedNotification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{"status": notify.StatusPending}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []FailedNotificationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]notify.FailedNotification, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toNotify())
	}
	return out, nil
}

func (r *FailedNotificationRepository) MarkDelivered(ctx context.Context, id string) error {
	return r.update(ctx, id, bson.M{
		"status":      notify.StatusDelivered,
		"lastTriedAt": time.Now().UTC(),
	})
}

func (r *FailedNotificationRepository) MarkFailed(ctx context.Context, id string, attempts int, cause error, abandon bool) error {
	status := notify.StatusPending
	if abandon {
		status = notify.StatusAbandoned
	}
	return r.update(ctx, id, bson.M{
		"status":      status,
		"attempts":    attempts,
		"error":       cause.Error(),
		"lastTriedAt": time.Now().UTC(),
	})
}

func (r *FailedNotificationRepository) update(ctx context.Context, id string, set bson.M) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid notification id %q: %w", id, err)
	}
	res, err := r.collection.UpdateByID(ctx, objectID, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
