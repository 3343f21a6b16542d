package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/societyhub/apartment-system/internal/core/domain"
	"github.com/societyhub/apartment-system/internal/core/ports"
)

type AnnouncementService struct {
	repo   ports.AnnouncementRepository
	logger zerolog.Logger
}

func NewAnnouncementService(repo ports.AnnouncementRepository, logger zerolog.Logger) *AnnouncementService {
	return &AnnouncementService{repo: repo, logger: logger}
}

func (s *AnnouncementService) Create(ctx context.Context, actor domain.Actor, in ports.CreateAnnouncementInput) (*domain.Announcement, error) {
	if !actor.Role.IsAdminGroup() {
		return nil, deny("announcement_create")
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", domain.ErrValidation)
	}

	created, err := s.repo.Create(ctx, &domain.Announcement{
		Title:     in.Title,
		Content:   in.Content,
		Important: in.Important,
		CreatedBy: actor.UserID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create announcement")
		return nil, err
	}
	s.logger.Info().Int64("announcement_id", created.ID).Bool("important", created.Important).Msg("announcement published")
	return created, nil
}

func (s *AnnouncementService) List(ctx context.Context) ([]*domain.Announcement, error) {
	return s.repo.List(ctx)
}
