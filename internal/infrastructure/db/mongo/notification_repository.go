package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/societyhub/apartment-system/internal/core/domain"
)

const collectionNotifications = "visitor_notifications"

// NotificationRepository persists visitor notifications to an audit collection.
type NotificationRepository struct {
	col *mongo.Collection
	seq sequence
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{col: db.Collection(collectionNotifications), seq: newSequence(db, collectionNotifications)}
}

func (r *NotificationRepository) Insert(ctx context.Context, n *domain.VisitorNotification) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx)
	if err != nil {
		return err
	}
	n.ID = id

	doc := bson.M{
		"_id":          n.ID,
		"visitor_id":   n.VisitorID,
		"apartment_id": n.ApartmentID,
		"kind":         string(n.Kind),
		"actor_id":     n.ActorID,
		"created_at":   n.CreatedAt.UTC(),
		"processed_at": time.Now().UTC(),
	}
	_, err = r.col.InsertOne(ctx, doc)
	return err
}

func (r *NotificationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "visitor_id", Value: 1}, {Key: "created_at", Value: 1}}})
	return err
}
