package sqldb

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/societyhub/apartment-system/internal/core/domain"
	"github.com/societyhub/apartment-system/internal/core/policy"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := &paymentRow{
		ApartmentID: p.ApartmentID,
		TenantID:    p.TenantID,
		Amount:      p.Amount,
		Date:        p.Date,
		Type:        string(p.Type),
		Method:      string(p.Method),
		Reference:   p.Reference,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}
	return row.toDomain(), nil
}

// List returns matching payments, most recent first.
func (r *PaymentRepository) List(ctx context.Context, scope policy.PaymentScope) ([]*domain.Payment, error) {
	if scope.ByApartment && len(scope.ApartmentIDs) == 0 {
		return []*domain.Payment{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := r.db.WithContext(ctx).Model(&paymentRow{})
	if scope.TenantID != 0 {
		q = q.Where("tenant_id = ?", scope.TenantID)
	}
	if scope.ByApartment {
		q = q.Where("apartment_id IN ?", scope.ApartmentIDs)
	}

	var rows []paymentRow
	if err := q.Order("date DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	out := make([]*domain.Payment, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}
