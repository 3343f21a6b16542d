package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/societyhub/apartment-system/internal/core/domain"
	"github.com/societyhub/apartment-system/internal/core/ports"
	"github.com/societyhub/apartment-system/internal/metrics"
)

type notificationService struct {
	repo ports.NotificationRepository
	log  zerolog.Logger
}

// NewNotificationService returns a NotificationService that writes every
// notification to the audit trail.
func NewNotificationService(repo ports.NotificationRepository, log zerolog.Logger) ports.NotificationService {
	return &notificationService{repo: repo, log: log}
}

// Process persists a single visitor notification.
func (s *notificationService) Process(ctx context.Context, n domain.VisitorNotification) error {
	start := time.Now()
	defer func() {
		metrics.NotificationProcessingDuration.WithLabelValues(string(n.Kind)).Observe(time.Since(start).Seconds())
	}()

	if n.VisitorID == 0 || n.Kind == "" {
		metrics.NotificationsErrorsTotal.WithLabelValues("invalid").Inc()
		return fmt.Errorf("process notification: %w: visitor and kind are required", domain.ErrValidation)
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	if err := s.repo.Insert(ctx, &n); err != nil {
		metrics.NotificationsErrorsTotal.WithLabelValues("store").Inc()
		return fmt.Errorf("process notification: %w", err)
	}

	metrics.NotificationsProcessedTotal.WithLabelValues(string(n.Kind)).Inc()
	s.log.Info().
		Int64("visitor_id", n.VisitorID).
		Int64("apartment_id", n.ApartmentID).
		Str("kind", string(n.Kind)).
		Int64("actor_id", n.ActorID).
		Msg("residents notified")
	return nil
}
