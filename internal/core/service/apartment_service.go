package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/societyhub/apartment-system/internal/core/domain"
	"github.com/societyhub/apartment-system/internal/core/policy"
	"github.com/societyhub/apartment-system/internal/core/ports"
	"github.com/societyhub/apartment-system/internal/metrics"
)

type ApartmentService struct {
	repo   ports.ApartmentRepository
	logger zerolog.Logger
}

func NewApartmentService(repo ports.ApartmentRepository, logger zerolog.Logger) *ApartmentService {
	return &ApartmentService{repo: repo, logger: logger}
}

func (s *ApartmentService) ListResident(ctx context.Context, actor domain.Actor) ([]*domain.Apartment, error) {
	return s.repo.List(ctx, policy.ResidentApartments(actor))
}

func (s *ApartmentService) ListManaged(ctx context.Context, actor domain.Actor) ([]*domain.Apartment, error) {
	if !actor.Role.IsAdminGroup() {
		return nil, deny("apartment_list_all")
	}
	return s.repo.List(ctx, policy.ManagedApartments(actor))
}

func (s *ApartmentService) Create(ctx context.Context, actor domain.Actor, in ports.CreateApartmentInput) (*domain.Apartment, error) {
	if !actor.Role.IsAdminGroup() {
		return nil, deny("apartment_create")
	}
	if strings.TrimSpace(in.Number) == "" || strings.TrimSpace(in.Building) == "" || strings.TrimSpace(in.SocietyName) == "" {
		return nil, fmt.Errorf("%w: number, building and societyName are required", domain.ErrValidation)
	}
	if in.Rent < 0 || in.Area <= 0 {
		return nil, fmt.Errorf("%w: rent must not be negative and area must be positive", domain.ErrValidation)
	}

	status := domain.ApartmentVacant
	if in.Status != "" {
		st, err := domain.ParseApartmentStatus(in.Status)
		if err != nil {
			return nil, err
		}
		status = st
	}

	created, err := s.repo.Create(ctx, &domain.Apartment{
		Number:              in.Number,
		Building:            in.Building,
		SocietyName:         in.SocietyName,
		TenantID:            in.TenantID,
		OwnerID:             in.OwnerID,
		Rent:                in.Rent,
		Status:              status,
		Area:                in.Area,
		Amenities:           in.Amenities,
		LastMaintenanceDate: in.LastMaintenanceDate,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create apartment")
		return nil, err
	}

	s.logger.Info().Int64("apartment_id", created.ID).Int64("actor_id", actor.UserID).Msg("apartment created")
	return created, nil
}

// Update applies patch to apartment id. Owners may only patch apartments they own.
func (s *ApartmentService) Update(ctx context.Context, actor domain.Actor, id int64, patch domain.ApartmentPatch) (*domain.Apartment, error) {
	if !actor.Role.IsAdminGroup() {
		return nil, deny("apartment_update")
	}

	apt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanModifyApartment(actor, apt) {
		metrics.AuthorizationDeniedTotal.WithLabelValues("apartment_update").Inc()
		return nil, fmt.Errorf("%w: not authorized to modify this apartment", domain.ErrForbidden)
	}
	if patch.Empty() {
		return nil, fmt.Errorf("%w: no fields to update", domain.ErrValidation)
	}
	if patch.Rent != nil && *patch.Rent < 0 {
		return nil, fmt.Errorf("%w: rent must not be negative", domain.ErrValidation)
	}
	if patch.Area != nil && *patch.Area <= 0 {
		return nil, fmt.Errorf("%w: area must be positive", domain.ErrValidation)
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("apartment_id", id).Int64("actor_id", actor.UserID).Msg("apartment updated")
	return updated, nil
}

// deny counts and builds a role-check rejection.
func deny(operation string) error {
	metrics.AuthorizationDeniedTotal.WithLabelValues(operation).Inc()
	return fmt.Errorf("%w: %s requires a different role", domain.ErrForbidden, strings.ReplaceAll(operation, "_", " "))
}
