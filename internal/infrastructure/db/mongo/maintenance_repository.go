package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/societyhub/apartment-system/internal/core/domain"
	"github.com/societyhub/apartment-system/internal/core/policy"
)

const collectionMaintenance = "maintenance_requests"

type MaintenanceRepository struct {
	col *mongo.Collection
	seq sequence
}

func NewMaintenanceRepository(db *mongo.Database) *MaintenanceRepository {
	return &MaintenanceRepository{col: db.Collection(collectionMaintenance), seq: newSequence(db, collectionMaintenance)}
}

func (r *MaintenanceRepository) Create(ctx context.Context, req *domain.MaintenanceRequest) (*domain.MaintenanceRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx)
	if err != nil {
		return nil, err
	}
	doc := *req
	doc.ID = id

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert maintenance request: %w", err)
	}
	return &doc, nil
}

func (r *MaintenanceRepository) FindByID(ctx context.Context, id int64) (*domain.MaintenanceRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m domain.MaintenanceRequest
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMaintenanceNotFound
		}
		return nil, fmt.Errorf("find maintenance request: %w", err)
	}
	return &m, nil
}

func (r *MaintenanceRepository) List(ctx context.Context, scope policy.MaintenanceScope) ([]*domain.MaintenanceRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if scope.TenantID != 0 {
		filter["tenant_id"] = scope.TenantID
	}

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list maintenance requests: %w", err)
	}
	defer cursor.Close(ctx)

	out := []*domain.MaintenanceRequest{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode maintenance requests: %w", err)
	}
	return out, nil
}

// UpdateStatus is a compare-and-swap on the stored status.
func (r *MaintenanceRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.MaintenanceStatus, at time.Time) (*domain.MaintenanceRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "status": string(from)}
	update := bson.M{"$set": bson.M{"status": string(to), "updated_at": at.UTC()}}

	var m domain.MaintenanceRequest
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, casMiss(ctx, r.col, id, domain.ErrMaintenanceNotFound)
		}
		return nil, fmt.Errorf("update maintenance request: %w", err)
	}
	return &m, nil
}

func (r *MaintenanceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "tenant_id", Value: 1}}})
	return err
}

// casMiss explains why a conditional update matched nothing: either the
// document is gone or its status moved on.
func casMiss(ctx context.Context, col *mongo.Collection, id int64, notFound error) error {
	n, err := col.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("check %s: %w", col.Name(), err)
	}
	if n == 0 {
		return notFound
	}
	return domain.ErrConflict
}
