package sqldb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/societyhub/apartment-system/internal/core/domain"
	"github.com/societyhub/apartment-system/internal/core/policy"
)

type ApartmentRepository struct {
	db *gorm.DB
}

func NewApartmentRepository(db *gorm.DB) *ApartmentRepository {
	return &ApartmentRepository{db: db}
}

func (r *ApartmentRepository) Create(ctx context.Context, apt *domain.Apartment) (*domain.Apartment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := apartmentFromDomain(apt)
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("insert apartment: %w", err)
	}
	return row.toDomain(), nil
}

func (r *ApartmentRepository) FindByID(ctx context.Context, id int64) (*domain.Apartment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var row apartmentRow
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if isNotFound(err) {
			return nil, domain.ErrApartmentNotFound
		}
		return nil, fmt.Errorf("find apartment: %w", err)
	}
	return row.toDomain(), nil
}

func (r *ApartmentRepository) List(ctx context.Context, scope policy.ApartmentScope) ([]*domain.Apartment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := r.db.WithContext(ctx).Model(&apartmentRow{})
	if scope.TenantID != 0 {
		q = q.Where("tenant_id = ?", scope.TenantID)
	}
	if scope.OwnerID != 0 {
		q = q.Where("owner_id = ?", scope.OwnerID)
	}

	var rows []apartmentRow
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list apartments: %w", err)
	}
	out := make([]*domain.Apartment, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

// Update applies patch inside a transaction so the read and the write see the
// same row.
func (r *ApartmentRepository) Update(ctx context.Context, id int64, patch domain.ApartmentPatch) (*domain.Apartment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var updated *domain.Apartment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row apartmentRow
		if err := tx.First(&row, id).Error; err != nil {
			if isNotFound(err) {
				return domain.ErrApartmentNotFound
			}
			return err
		}
		apt := row.toDomain()
		patch.Apply(apt)
		next := apartmentFromDomain(apt)
		if err := tx.Save(next).Error; err != nil {
			return err
		}
		updated = next.toDomain()
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrApartmentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update apartment: %w", err)
	}
	return updated, nil
}
