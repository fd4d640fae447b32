// Command seed fills the application store with sample submissions so the
// admin review list has something to show locally.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/livinglux/coliving-site/internal/catalog"
	"github.com/livinglux/coliving-site/internal/config"
	mongodoc "github.com/livinglux/coliving-site/internal/infrastructure/mongo"
	"github.com/livinglux/coliving-site/internal/notify"
	"github.com/livinglux/coliving-site/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type seedOptions struct {
	applicationCount int
	undatedCount     int
	failedCount      int
	dropCollections  bool
	randomSeed       int64
}

var (
	firstNames  = []string{"Marie", "Luca", "Sofia", "Jonas", "Inès", "Tomasz", "Ana", "Pieter", "Chloé", "Mateo"}
	lastNames   = []string{"Schmit", "Rossi", "Müller", "Dupont", "Silva", "Kowalski", "Weber", "Janssens"}
	occupations = []string{"Financial analyst", "Software engineer", "Auditor", "Research assistant", "Compliance officer", "Data scientist"}
	employers   = []string{"PwC Luxembourg", "Amazon", "European Investment Bank", "University of Luxembourg", "BGL BNP Paribas", "Spotify"}
	durations   = []string{"6 months", "12 months", "18 months", "24 months"}
	messages    = []string{
		"",
		"I'm starting a new job in Kirchberg next month.",
		"Could I visit the room this weekend?\nThanks!",
		"Quiet, non-smoker, happy to share cooking.",
	}
)

func main() {
	opts := parseFlags()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if !cfg.StoreConfigured() {
		log.Fatal("MONGO_URI (or STORE_CONFIG) is required to seed")
	}

	content, err := catalog.Default()
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Store.URI))
	if err != nil {
		log.Fatalf("connect mongodb: %v", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(cfg.Store.Database)
	applications := db.Collection(cfg.ApplicationsCollection())
	failed := db.Collection(cfg.FailedNotificationCollection)

	if opts.dropCollections {
		for _, col := range []*mongo.Collection{applications, failed} {
			if err := col.Drop(ctx); err != nil {
				log.Printf("WARN: drop %s: %v", col.Name(), err)
			}
		}
	}

	if err := ensureIndexes(ctx, applications, failed); err != nil {
		log.Fatalf("create indexes: %v", err)
	}

	rng := rand.New(rand.NewSource(opts.randomSeed))
	apps := generateApplications(rng, content, opts.applicationCount, opts.undatedCount)
	if err := insertMany(ctx, applications, toAnySlice(apps)); err != nil {
		log.Fatalf("insert applications: %v", err)
	}

	failures := generateFailedNotifications(rng, apps, opts.failedCount)
	if err := insertMany(ctx, failed, toAnySlice(failures)); err != nil {
		log.Fatalf("insert failed notifications: %v", err)
	}

	log.Printf("seeded %d applications (%d undated) and %d failed notifications into %s.%s (seed=%d)",
		len(apps), opts.undatedCount, len(failures), cfg.Store.Database, applications.Name(), opts.randomSeed)
}

func parseFlags() seedOptions {
	var opts seedOptions
	flag.IntVar(&opts.applicationCount, "applications", 20, "number of applications to generate")
	flag.IntVar(&opts.undatedCount, "undated", 2, "how many of them have no createdAt")
	flag.IntVar(&opts.failedCount, "failed", 3, "number of pending failed notifications")
	flag.BoolVar(&opts.dropCollections, "drop", true, "drop existing collections first")
	flag.Int64Var(&opts.randomSeed, "seed", time.Now().UnixNano(), "random seed for reproducible data")
	flag.Parse()

	if opts.applicationCount < 0 {
		opts.applicationCount = 0
	}
	if opts.undatedCount > opts.applicationCount {
		opts.undatedCount = opts.applicationCount
	}
	if opts.failedCount > opts.applicationCount {
		opts.failedCount = opts.applicationCount
	}
	return opts
}

func ensureIndexes(ctx context.Context, applications, failed *mongo.Collection) error {
	if _, err := applications.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_application_created"),
		},
		{
			Keys:    bson.D{{Key: "propertyId", Value: 1}, {Key: "roomId", Value: 1}},
			Options: options.Index().SetName("idx_application_room"),
		},
	}); err != nil {
		return err
	}

	_, err := failed.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: 1}},
		Options: options.Index().SetName("idx_failed_status_created"),
	})
	return err
}

type roomRef struct {
	property catalog.Property
	room     catalog.Room
}

func availableRooms(c *catalog.Catalog) []roomRef {
	var refs []roomRef
	for _, p := range c.Properties {
		for _, r := range p.Rooms {
			if r.IsAvailable() {
				refs = append(refs, roomRef{property: p, room: r})
			}
		}
	}
	return refs
}

func generateApplications(rng *rand.Rand, c *catalog.Catalog, count, undated int) []mongodoc.ApplicationDocument {
	rooms := availableRooms(c)
	if len(rooms) == 0 {
		return nil
	}
	now := time.Now().UTC()
	docs := make([]mongodoc.ApplicationDocument, 0, count)

	for i := 0; i < count; i++ {
		ref := rooms[rng.Intn(len(rooms))]
		first := firstNames[rng.Intn(len(firstNames))]
		last := lastNames[rng.Intn(len(lastNames))]
		gross := 3500 + rng.Intn(60)*100
		moveIn := now.AddDate(0, 1+rng.Intn(4), 0)

		doc := mongodoc.ApplicationDocument{
			ID:           primitive.NewObjectID(),
			FullName:     first + " " + last,
			Email:        fmt.Sprintf("%s.%s@example.lu", slug(first), slug(last)),
			Phone:        fmt.Sprintf("+352 691 %03d %03d", rng.Intn(1000), rng.Intn(1000)),
			Occupation:   occupations[rng.Intn(len(occupations))],
			Employer:     employers[rng.Intn(len(employers))],
			ContractType: string(domain.ContractTypes[rng.Intn(len(domain.ContractTypes))]),
			GrossSalary:  fmt.Sprintf("%d", gross),
			NetSalary:    fmt.Sprintf("%d", gross*68/100),
			MoveInDate:   moveIn.Format("2006-01-02"),
			Duration:     durations[rng.Intn(len(durations))],
			Message:      messages[rng.Intn(len(messages))],
			PropertyID:   ref.property.ID,
			PropertyName: ref.property.Title,
			RoomID:       ref.room.ID,
			RoomName:     ref.room.Name,
		}
		if i >= undated {
			created := now.Add(-time.Duration(rng.Intn(30*24)) * time.Hour).Truncate(time.Second)
			doc.CreatedAt = &created
		}
		docs = append(docs, doc)
	}
	return docs
}

func generateFailedNotifications(rng *rand.Rand, apps []mongodoc.ApplicationDocument, count int) []mongodoc.FailedNotificationDocument {
	now := time.Now().UTC()
	channels := []string{notify.ChannelEmail, notify.ChannelTelegram}
	docs := make([]mongodoc.FailedNotificationDocument, 0, count)

	for i := 0; i < count && i < len(apps); i++ {
		app := apps[i]
		msg := notify.BuildApplicationMessage(notify.ApplicationMail{
			FullName:     app.FullName,
			Email:        app.Email,
			Phone:        app.Phone,
			Profession:   app.Occupation,
			MoveInDate:   app.MoveInDate,
			PropertyName: app.PropertyName,
			RoomName:     app.RoomName,
			Message:      app.Message,
		})
		created := now.Add(-time.Duration(1+rng.Intn(48)) * time.Hour)
		docs = append(docs, mongodoc.FailedNotificationDocument{
			ID:            primitive.NewObjectID(),
			Target:        "operator_notification",
			Channel:       channels[rng.Intn(len(channels))],
			ApplicationID: app.ID.Hex(),
			Payload: mongodoc.NotificationBody{
				Subject: msg.Subject,
				ReplyTo: msg.ReplyTo,
				HTML:    msg.HTML,
				Text:    msg.Text,
			},
			Error:       "dial tcp: i/o timeout",
			Attempts:    3,
			Status:      notify.StatusPending,
			CreatedAt:   created,
			LastTriedAt: created,
		})
	}
	return docs
}

func insertMany(ctx context.Context, col *mongo.Collection, docs []interface{}) error {
	if len(docs) == 0 {
		return nil
	}
	_, err := col.InsertMany(ctx, docs)
	return err
}

func toAnySlice[T any](in []T) []interface{} {
	out := make([]interface{}, len(in))
	for i := range in {
		out[i] = in[i]
	}
	return out
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(catalog.Fold(s)) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
