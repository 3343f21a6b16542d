package sqldb

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/societyhub/apartment-system/internal/core/domain"
)

type AnnouncementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

func (r *AnnouncementRepository) Create(ctx context.Context, a *domain.Announcement) (*domain.Announcement, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := &announcementRow{
		Title:     a.Title,
		Content:   a.Content,
		Important: a.Important,
		CreatedBy: a.CreatedBy,
		CreatedAt: a.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("insert announcement: %w", err)
	}
	return row.toDomain(), nil
}

func (r *AnnouncementRepository) List(ctx context.Context) ([]*domain.Announcement, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []announcementRow
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	out := make([]*domain.Announcement, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}
