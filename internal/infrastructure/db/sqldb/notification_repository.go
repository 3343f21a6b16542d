package sqldb

import (
	"context"

	"gorm.io/gorm"

	"github.com/societyhub/apartment-system/internal/core/domain"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Insert(ctx context.Context, n *domain.VisitorNotification) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := &notificationRow{
		VisitorID:   n.VisitorID,
		ApartmentID: n.ApartmentID,
		Kind:        string(n.Kind),
		ActorID:     n.ActorID,
		CreatedAt:   n.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	n.ID = row.ID
	return nil
}
