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

const collectionVisitors = "visitors"

type VisitorRepository struct {
	col *mongo.Collection
	seq sequence
}

func NewVisitorRepository(db *mongo.Database) *VisitorRepository {
	return &VisitorRepository{col: db.Collection(collectionVisitors), seq: newSequence(db, collectionVisitors)}
}

func (r *VisitorRepository) Create(ctx context.Context, v *domain.Visitor) (*domain.Visitor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx)
	if err != nil {
		return nil, err
	}
	doc := *v
	doc.ID = id

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert visitor: %w", err)
	}
	return &doc, nil
}

func (r *VisitorRepository) FindByID(ctx context.Context, id int64) (*domain.Visitor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var v domain.Visitor
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVisitorNotFound
		}
		return nil, fmt.Errorf("find visitor: %w", err)
	}
	return &v, nil
}

func (r *VisitorRepository) List(ctx context.Context, scope policy.VisitorScope) ([]*domain.Visitor, error) {
	if scope.ByApartment && scope.ApartmentID == 0 {
		return []*domain.Visitor{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if scope.ByApartment {
		filter["apartment_id"] = scope.ApartmentID
	}

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "expected_at", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list visitors: %w", err)
	}
	defer cursor.Close(ctx)

	out := []*domain.Visitor{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode visitors: %w", err)
	}
	return out, nil
}

// Transition applies t as a single conditional update keyed on the prior status.
func (r *VisitorRepository) Transition(ctx context.Context, id int64, t domain.VisitorTransition) (*domain.Visitor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"status":           string(t.To),
		"pending_approval": t.PendingApproval,
	}
	if t.ApprovedBy != nil {
		set["approved_by"] = *t.ApprovedBy
	}
	if t.ActualEntryAt != nil {
		set["actual_entry_at"] = t.ActualEntryAt.UTC()
	}
	if t.ActualExitAt != nil {
		set["actual_exit_at"] = t.ActualExitAt.UTC()
	}

	var v domain.Visitor
	filter := bson.M{"_id": id, "status": string(t.From)}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.col.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, casMiss(ctx, r.col, id, domain.ErrVisitorNotFound)
		}
		return nil, fmt.Errorf("update visitor: %w", err)
	}
	return &v, nil
}

func (r *VisitorRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "apartment_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
