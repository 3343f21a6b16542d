package sqldb

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/societyhub/apartment-system/internal/core/domain"
	"github.com/societyhub/apartment-system/internal/core/policy"
)

type MaintenanceRepository struct {
	db *gorm.DB
}

func NewMaintenanceRepository(db *gorm.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

func (r *MaintenanceRepository) Create(ctx context.Context, req *domain.MaintenanceRequest) (*domain.MaintenanceRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := &maintenanceRow{
		ApartmentID: req.ApartmentID,
		TenantID:    req.TenantID,
		Description: req.Description,
		Status:      string(req.Status),
		CreatedAt:   req.CreatedAt,
		UpdatedAt:   req.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("insert maintenance request: %w", err)
	}
	return row.toDomain(), nil
}

func (r *MaintenanceRepository) FindByID(ctx context.Context, id int64) (*domain.MaintenanceRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.find(r.db.WithContext(ctx), id)
}

func (r *MaintenanceRepository) find(tx *gorm.DB, id int64) (*domain.MaintenanceRequest, error) {
	var row maintenanceRow
	if err := tx.First(&row, id).Error; err != nil {
		if isNotFound(err) {
			return nil, domain.ErrMaintenanceNotFound
		}
		return nil, fmt.Errorf("find maintenance request: %w", err)
	}
	return row.toDomain(), nil
}

func (r *MaintenanceRepository) List(ctx context.Context, scope policy.MaintenanceScope) ([]*domain.MaintenanceRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := r.db.WithContext(ctx).Model(&maintenanceRow{})
	if scope.TenantID != 0 {
		q = q.Where("tenant_id = ?", scope.TenantID)
	}

	var rows []maintenanceRow
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list maintenance requests: %w", err)
	}
	out := make([]*domain.MaintenanceRequest, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

// UpdateStatus is a compare-and-swap on the stored status.
func (r *MaintenanceRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.MaintenanceStatus, at time.Time) (*domain.MaintenanceRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tx := r.db.WithContext(ctx)
	result := tx.Model(&maintenanceRow{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{"status": string(to), "updated_at": at})
	if result.Error != nil {
		return nil, fmt.Errorf("update maintenance request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, casMiss(tx, &maintenanceRow{}, id, domain.ErrMaintenanceNotFound)
	}
	return r.find(tx, id)
}
