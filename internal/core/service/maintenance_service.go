package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/societyhub/apartment-system/internal/core/domain"
	"github.com/societyhub/apartment-system/internal/core/policy"
	"github.com/societyhub/apartment-system/internal/core/ports"
	"github.com/societyhub/apartment-system/internal/metrics"
)

type MaintenanceService struct {
	repo       ports.MaintenanceRepository
	apartments ports.ApartmentRepository
	logger     zerolog.Logger
}

func NewMaintenanceService(repo ports.MaintenanceRepository, apartments ports.ApartmentRepository, logger zerolog.Logger) *MaintenanceService {
	return &MaintenanceService{repo: repo, apartments: apartments, logger: logger}
}

// Create opens a ticket for the actor. The status is always pending.
func (s *MaintenanceService) Create(ctx context.Context, actor domain.Actor, in ports.CreateMaintenanceInput) (*domain.MaintenanceRequest, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if _, err := s.apartments.FindByID(ctx, in.ApartmentID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.MaintenanceRequest{
		ApartmentID: in.ApartmentID,
		TenantID:    actor.UserID,
		Description: in.Description,
		Status:      domain.MaintenancePending,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create maintenance request")
		return nil, err
	}

	s.logger.Info().Int64("request_id", created.ID).Int64("apartment_id", in.ApartmentID).Msg("maintenance request created")
	return created, nil
}

func (s *MaintenanceService) List(ctx context.Context, actor domain.Actor) ([]*domain.MaintenanceRequest, error) {
	return s.repo.List(ctx, policy.MaintenanceRequests(actor))
}

// UpdateStatus moves request id to status. The role check runs before any read.
func (s *MaintenanceService) UpdateStatus(ctx context.Context, actor domain.Actor, id int64, status string) (*domain.MaintenanceRequest, error) {
	next, err := domain.ParseMaintenanceStatus(status)
	if err != nil {
		return nil, err
	}
	if next.RequiresManager() && !actor.Role.CanApproveMaintenance() {
		metrics.AuthorizationDeniedTotal.WithLabelValues("maintenance_update").Inc()
		return nil, fmt.Errorf("%w: only managers can update maintenance request status", domain.ErrForbidden)
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == next {
		return current, nil
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("update maintenance: %w (from %s to %s)", domain.ErrInvalidTransition, current.Status, next)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, current.Status, next, time.Now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.TransitionConflictsTotal.WithLabelValues("maintenance").Inc()
		}
		return nil, fmt.Errorf("update maintenance: %w", err)
	}

	metrics.MaintenanceTransitionsTotal.WithLabelValues(string(current.Status), string(next)).Inc()
	s.logger.Info().
		Int64("request_id", id).
		Str("from", string(current.Status)).
		Str("to", string(next)).
		Int64("actor_id", actor.UserID).
		Msg("maintenance status updated")
	return updated, nil
}
