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

// ApprovalDedup remembers recent approval requests so residents are not
// notified twice for the same pending visitor.
type ApprovalDedup interface {
	IsDuplicate(ctx context.Context, visitorID int64) (bool, error)
	Mark(ctx context.Context, visitorID int64) error
}

// Notifier hands visitor notifications to the background dispatcher.
type Notifier interface {
	Enqueue(n domain.VisitorNotification)
}

type VisitorService struct {
	repo       ports.VisitorRepository
	apartments ports.ApartmentRepository
	dedup      ApprovalDedup
	notifier   Notifier
	now        func() time.Time
	logger     zerolog.Logger
}

func NewVisitorService(
	repo ports.VisitorRepository,
	apartments ports.ApartmentRepository,
	dedup ApprovalDedup,
	notifier Notifier,
	logger zerolog.Logger,
) *VisitorService {
	return &VisitorService{
		repo:       repo,
		apartments: apartments,
		dedup:      dedup,
		notifier:   notifier,
		now:        func() time.Time { return time.Now().UTC() },
		logger:     logger,
	}
}

// Create registers an expected visitor. New visitors are always upcoming.
func (s *VisitorService) Create(ctx context.Context, actor domain.Actor, in ports.CreateVisitorInput) (*domain.Visitor, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Purpose) == "" || strings.TrimSpace(in.ContactNumber) == "" {
		return nil, fmt.Errorf("%w: name, purpose and contactNumber are required", domain.ErrValidation)
	}
	if in.ExpectedAt.IsZero() {
		return nil, fmt.Errorf("%w: expectedAt is required", domain.ErrValidation)
	}
	if _, err := s.apartments.FindByID(ctx, in.ApartmentID); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Visitor{
		Name:          in.Name,
		Purpose:       in.Purpose,
		ContactNumber: in.ContactNumber,
		ApartmentID:   in.ApartmentID,
		ExpectedAt:    in.ExpectedAt.UTC(),
		Status:        domain.VisitorUpcoming,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create visitor")
		return nil, err
	}

	s.logger.Info().
		Int64("visitor_id", created.ID).
		Int64("apartment_id", created.ApartmentID).
		Int64("actor_id", actor.UserID).
		Msg("visitor registered")
	return created, nil
}

func (s *VisitorService) List(ctx context.Context, actor domain.Actor) ([]*domain.Visitor, error) {
	var tenanted []*domain.Apartment
	if actor.Role == domain.RoleTenant {
		apts, err := s.apartments.List(ctx, policy.ResidentApartments(actor))
		if err != nil {
			return nil, fmt.Errorf("list visitors: %w", err)
		}
		tenanted = apts
	}
	return s.repo.List(ctx, policy.Visitors(actor, tenanted))
}

// UpdateStatus sets a visitor's status directly. Moving a pending visitor to
// current or past is an approval or denial by a resident of its apartment.
func (s *VisitorService) UpdateStatus(ctx context.Context, actor domain.Actor, id int64, status string) (*domain.Visitor, error) {
	target, err := domain.ParseVisitorTarget(status)
	if err != nil {
		return nil, err
	}

	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var apt *domain.Apartment
	if v.Status == domain.VisitorPending && actor.Role != domain.RoleManager {
		apt, err = s.apartments.FindByID(ctx, v.ApartmentID)
		if err != nil && !errors.Is(err, domain.ErrApartmentNotFound) {
			return nil, err
		}
	}

	t, err := v.PlanStatusChange(actor, apt, target, s.now())
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			metrics.AuthorizationDeniedTotal.WithLabelValues("visitor_decide").Inc()
		}
		return nil, err
	}
	return s.transition(ctx, actor, v, t)
}

// CheckIn moves an upcoming visitor who reached the gate to pending.
func (s *VisitorService) CheckIn(ctx context.Context, actor domain.Actor, id int64) (*domain.Visitor, error) {
	if !actor.Role.CanGuardVisitors() {
		return nil, deny("visitor_check_in")
	}
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t, err := v.PlanCheckIn(actor)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, actor, v, t)
}

// RequestApproval flags a pending visitor and asks the residents to decide.
// A repeated request within the dedup window updates the flag but does not
// notify again.
func (s *VisitorService) RequestApproval(ctx context.Context, actor domain.Actor, id int64) (*domain.Visitor, error) {
	if !actor.Role.CanGuardVisitors() {
		return nil, deny("visitor_request_approval")
	}
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t, err := v.PlanApprovalRequest(actor)
	if err != nil {
		return nil, err
	}

	updated, err := s.transition(ctx, actor, v, t)
	if err != nil {
		return nil, err
	}

	dup, err := s.dedup.IsDuplicate(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Int64("visitor_id", id).Msg("dedup check failed, notifying anyway")
	} else if dup {
		metrics.NotificationsDedupTotal.WithLabelValues("hit").Inc()
		s.logger.Debug().Int64("visitor_id", id).Msg("approval already requested, notification skipped")
		return updated, nil
	}
	metrics.NotificationsDedupTotal.WithLabelValues("miss").Inc()
	if err := s.dedup.Mark(ctx, id); err != nil {
		s.logger.Warn().Err(err).Int64("visitor_id", id).Msg("failed to set dedup key")
	}

	s.enqueue(updated, domain.NotifyApprovalRequest, actor)
	return updated, nil
}

// Notify tells the residents of a visitor's apartment about the visitor. It
// does not change the visitor.
func (s *VisitorService) Notify(ctx context.Context, actor domain.Actor, id int64) error {
	if !actor.Role.CanGuardVisitors() {
		return deny("visitor_notify")
	}
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	s.enqueue(v, domain.NotifyResident, actor)
	return nil
}

func (s *VisitorService) transition(ctx context.Context, actor domain.Actor, v *domain.Visitor, t domain.VisitorTransition) (*domain.Visitor, error) {
	updated, err := s.repo.Transition(ctx, v.ID, t)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.TransitionConflictsTotal.WithLabelValues("visitor").Inc()
		}
		return nil, fmt.Errorf("update visitor: %w", err)
	}

	metrics.VisitorTransitionsTotal.WithLabelValues(string(t.From), string(t.To)).Inc()
	s.logger.Info().
		Int64("visitor_id", v.ID).
		Str("from", string(t.From)).
		Str("to", string(t.To)).
		Bool("pending_approval", t.PendingApproval).
		Int64("actor_id", actor.UserID).
		Msg("visitor status updated")
	return updated, nil
}

func (s *VisitorService) enqueue(v *domain.Visitor, kind domain.NotificationKind, actor domain.Actor) {
	s.notifier.Enqueue(domain.VisitorNotification{
		VisitorID:   v.ID,
		ApartmentID: v.ApartmentID,
		Kind:        kind,
		ActorID:     actor.UserID,
		CreatedAt:   s.now(),
	})
}
