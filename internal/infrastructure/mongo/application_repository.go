package mongo

import (
	"context"
	"fmt"
	"time"

	admindomain "github.com/livinglux/coliving-site/internal/admin/domain"
	"github.com/livinglux/coliving-site/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ApplicationRepository stores room applications in one flat collection.
type ApplicationRepository struct {
	collection   *mongo.Collection
	logger       *zap.Logger
	pollInterval time.Duration
}

// NewApplicationRepository binds the repository to collection in db.
// pollInterval drives change detection when change streams are unavailable.
func NewApplicationRepository(db *mongo.Database, collection string, logger *zap.Logger, pollInterval time.Duration) *ApplicationRepository {
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}
	return &ApplicationRepository{
		collection:   db.Collection(collection),
		logger:       logger,
		pollInterval: pollInterval,
	}
}

// Create writes app once. The server assigns createdAt, and the stored
// id and timestamp are copied back into app.
func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) error {
	doc := newApplicationDocument(app)

	update := bson.M{
		"$setOnInsert": doc,
		"$currentDate": bson.M{"createdAt": true},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored ApplicationDocument
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": doc.ID}, update, opts).Decode(&stored); err != nil {
		return fmt.Errorf("insert application: %w", err)
	}

	app.ID = stored.ID.Hex()
	app.CreatedAt = stored.CreatedAt
	return nil
}

// FindAll returns every application, newest first.
func (r *ApplicationRepository) FindAll(ctx context.Context) ([]admindomain.InboundApplication, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []ApplicationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	apps := make([]admindomain.InboundApplication, 0, len(docs))
	for _, doc := range docs {
		apps = append(apps, doc.toAdminDomain())
	}
	return apps, nil
}

// Changes signals every write to the collection. It prefers a change
// stream and falls back to polling the document count on deployments that
// do not support one (standalone servers).
func (r *ApplicationRepository) Changes(ctx context.Context) (<-chan struct{}, <-chan error) {
	changes := make(chan struct{}, 1)
	errs := make(chan error, 1)

	stream, err := r.collection.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		r.logger.Info("change stream unavailable, polling applications",
			zap.Duration("interval", r.pollInterval),
			zap.Error(err),
		)
		go r.poll(ctx, changes, errs)
		return changes, errs
	}

	go func() {
		defer close(changes)
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			signal(changes)
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			errs <- err
		}
	}()
	return changes, errs
}

func (r *ApplicationRepository) poll(ctx context.Context, changes chan<- struct{}, errs chan<- error) {
	defer close(changes)

	last, err := r.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		if ctx.Err() == nil {
			errs <- err
		}
		return
	}

	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := r.collection.CountDocuments(ctx, bson.D{})
			if err != nil {
				if ctx.Err() == nil {
					errs <- err
				}
				return
			}
			if count != last {
				last = count
				signal(changes)
			}
		}
	}
}

// signal coalesces bursts of writes into one pending notification.
func signal(ch chan<- struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
