package sqldb

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/societyhub/apartment-system/internal/core/domain"
	"github.com/societyhub/apartment-system/internal/core/policy"
)

type VisitorRepository struct {
	db *gorm.DB
}

func NewVisitorRepository(db *gorm.DB) *VisitorRepository {
	return &VisitorRepository{db: db}
}

func (r *VisitorRepository) Create(ctx context.Context, v *domain.Visitor) (*domain.Visitor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := &visitorRow{
		Name:            v.Name,
		Purpose:         v.Purpose,
		ContactNumber:   v.ContactNumber,
		ApartmentID:     v.ApartmentID,
		ExpectedAt:      v.ExpectedAt,
		Status:          string(v.Status),
		PendingApproval: v.PendingApproval,
		ApprovedBy:      v.ApprovedBy,
		ActualEntryAt:   v.ActualEntryAt,
		ActualExitAt:    v.ActualExitAt,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("insert visitor: %w", err)
	}
	return row.toDomain(), nil
}

func (r *VisitorRepository) FindByID(ctx context.Context, id int64) (*domain.Visitor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.find(r.db.WithContext(ctx), id)
}

func (r *VisitorRepository) find(tx *gorm.DB, id int64) (*domain.Visitor, error) {
	var row visitorRow
	if err := tx.First(&row, id).Error; err != nil {
		if isNotFound(err) {
			return nil, domain.ErrVisitorNotFound
		}
		return nil, fmt.Errorf("find visitor: %w", err)
	}
	return row.toDomain(), nil
}

func (r *VisitorRepository) List(ctx context.Context, scope policy.VisitorScope) ([]*domain.Visitor, error) {
	if scope.ByApartment && scope.ApartmentID == 0 {
		return []*domain.Visitor{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := r.db.WithContext(ctx).Model(&visitorRow{})
	if scope.ByApartment {
		q = q.Where("apartment_id = ?", scope.ApartmentID)
	}

	var rows []visitorRow
	if err := q.Order("expected_at").Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list visitors: %w", err)
	}
	out := make([]*domain.Visitor, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

// Transition applies t as a single conditional update keyed on the prior status.
func (r *VisitorRepository) Transition(ctx context.Context, id int64, t domain.VisitorTransition) (*domain.Visitor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := map[string]interface{}{
		"status":           string(t.To),
		"pending_approval": t.PendingApproval,
	}
	if t.ApprovedBy != nil {
		set["approved_by"] = *t.ApprovedBy
	}
	if t.ActualEntryAt != nil {
		set["actual_entry_at"] = *t.ActualEntryAt
	}
	if t.ActualExitAt != nil {
		set["actual_exit_at"] = *t.ActualExitAt
	}

	tx := r.db.WithContext(ctx)
	result := tx.Model(&visitorRow{}).Where("id = ? AND status = ?", id, string(t.From)).Updates(set)
	if result.Error != nil {
		return nil, fmt.Errorf("update visitor: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, casMiss(tx, &visitorRow{}, id, domain.ErrVisitorNotFound)
	}
	return r.find(tx, id)
}
