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

const collectionApartments = "apartments"

type ApartmentRepository struct {
	col *mongo.Collection
	seq sequence
}

func NewApartmentRepository(db *mongo.Database) *ApartmentRepository {
	return &ApartmentRepository{col: db.Collection(collectionApartments), seq: newSequence(db, collectionApartments)}
}

func (r *ApartmentRepository) Create(ctx context.Context, apt *domain.Apartment) (*domain.Apartment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx)
	if err != nil {
		return nil, err
	}
	doc := *apt
	doc.ID = id
	if doc.Amenities == nil {
		doc.Amenities = []string{}
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert apartment: %w", err)
	}
	return &doc, nil
}

func (r *ApartmentRepository) FindByID(ctx context.Context, id int64) (*domain.Apartment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Apartment
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrApartmentNotFound
		}
		return nil, fmt.Errorf("find apartment: %w", err)
	}
	return &a, nil
}

// List returns the apartments matching scope, ordered by id.
func (r *ApartmentRepository) List(ctx context.Context, scope policy.ApartmentScope) ([]*domain.Apartment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if scope.TenantID != 0 {
		filter["tenant_id"] = scope.TenantID
	}
	if scope.OwnerID != 0 {
		filter["owner_id"] = scope.OwnerID
	}

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list apartments: %w", err)
	}
	defer cursor.Close(ctx)

	out := []*domain.Apartment{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode apartments: %w", err)
	}
	return out, nil
}

func (r *ApartmentRepository) Update(ctx context.Context, id int64, patch domain.ApartmentPatch) (*domain.Apartment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := patchDocument(patch)
	if len(update) == 0 {
		return r.FindByID(ctx, id)
	}

	var a domain.Apartment
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrApartmentNotFound
		}
		return nil, fmt.Errorf("update apartment: %w", err)
	}
	return &a, nil
}

// EnsureIndexes creates the lookup indexes used by the visibility scopes.
func (r *ApartmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "tenant_id", Value: 1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// patchDocument builds the update for p. Cleared references are removed with
// $unset, matching how a nil reference is stored on insert.
func patchDocument(p domain.ApartmentPatch) bson.M {
	set := bson.M{}
	unset := bson.M{}
	if p.Number != nil {
		set["number"] = *p.Number
	}
	if p.Building != nil {
		set["building"] = *p.Building
	}
	if p.SocietyName != nil {
		set["society_name"] = *p.SocietyName
	}
	switch {
	case p.ClearTenant:
		unset["tenant_id"] = ""
	case p.TenantID != nil:
		set["tenant_id"] = *p.TenantID
	}
	switch {
	case p.ClearOwner:
		unset["owner_id"] = ""
	case p.OwnerID != nil:
		set["owner_id"] = *p.OwnerID
	}
	if p.Rent != nil {
		set["rent"] = *p.Rent
	}
	if p.Status != nil {
		set["status"] = string(*p.Status)
	}
	if p.Area != nil {
		set["area"] = *p.Area
	}
	if p.Amenities != nil {
		set["amenities"] = p.Amenities
	}
	if p.LastMaintenanceDate != nil {
		set["last_maintenance_date"] = p.LastMaintenanceDate.UTC()
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}
