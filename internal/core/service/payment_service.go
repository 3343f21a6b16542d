package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/societyhub/apartment-system/internal/core/domain"
	"github.com/societyhub/apartment-system/internal/core/policy"
	"github.com/societyhub/apartment-system/internal/core/ports"
	"github.com/societyhub/apartment-system/internal/metrics"
)

type PaymentService struct {
	repo       ports.PaymentRepository
	apartments ports.ApartmentRepository
	logger     zerolog.Logger
}

func NewPaymentService(repo ports.PaymentRepository, apartments ports.ApartmentRepository, logger zerolog.Logger) *PaymentService {
	return &PaymentService{repo: repo, apartments: apartments, logger: logger}
}

func (s *PaymentService) Create(ctx context.Context, actor domain.Actor, in ports.CreatePaymentInput) (*domain.Payment, error) {
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	typ, err := domain.ParsePaymentType(in.Type)
	if err != nil {
		return nil, err
	}

	tenantID := in.TenantID
	if tenantID == 0 {
		tenantID = actor.UserID
	}
	if !policy.CanRecordPaymentFor(actor, tenantID) {
		metrics.AuthorizationDeniedTotal.WithLabelValues("payment_create").Inc()
		return nil, fmt.Errorf("%w: cannot record a payment for another tenant", domain.ErrForbidden)
	}
	if _, err := s.apartments.FindByID(ctx, in.ApartmentID); err != nil {
		return nil, err
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	return s.record(ctx, &domain.Payment{
		ApartmentID: in.ApartmentID,
		TenantID:    tenantID,
		Amount:      in.Amount,
		Date:        date.UTC(),
		Type:        typ,
		Method:      domain.PaymentManual,
	})
}

// CaptureUPI simulates a UPI collection and books the resulting payment
// against the actor.
func (s *PaymentService) CaptureUPI(ctx context.Context, actor domain.Actor, in ports.UPIPaymentInput) (*domain.Payment, error) {
	upiID := strings.TrimSpace(in.UPIID)
	if upiID == "" || in.Amount <= 0 {
		return nil, fmt.Errorf("%w: upiId and a positive amount are required", domain.ErrValidation)
	}
	if !strings.Contains(upiID, "@") {
		return nil, fmt.Errorf("%w: malformed upiId %q", domain.ErrValidation, upiID)
	}

	typ := domain.PaymentRent
	if in.Type != "" {
		t, err := domain.ParsePaymentType(in.Type)
		if err != nil {
			return nil, err
		}
		typ = t
	}

	apartmentID := in.ApartmentID
	if apartmentID == 0 {
		apts, err := s.apartments.List(ctx, policy.ResidentApartments(actor))
		if err != nil {
			return nil, fmt.Errorf("capture upi: %w", err)
		}
		first := policy.FirstApartment(apts)
		if first == nil {
			return nil, fmt.Errorf("%w: apartmentId is required when you rent no apartment", domain.ErrValidation)
		}
		apartmentID = first.ID
	} else if _, err := s.apartments.FindByID(ctx, apartmentID); err != nil {
		return nil, err
	}

	p, err := s.record(ctx, &domain.Payment{
		ApartmentID: apartmentID,
		TenantID:    actor.UserID,
		Amount:      in.Amount,
		Date:        time.Now().UTC(),
		Type:        typ,
		Method:      domain.PaymentUPI,
		Reference:   uuid.NewString(),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Str("upi_id", upiID).Str("reference", p.Reference).Str("description", in.Description).Msg("upi capture simulated")
	return p, nil
}

// List returns the payments visible to actor. Owners see payments of the
// apartments they own.
func (s *PaymentService) List(ctx context.Context, actor domain.Actor) ([]*domain.Payment, error) {
	var owned []int64
	if policy.NeedsOwnedApartments(actor) {
		apts, err := s.apartments.List(ctx, policy.ApartmentScope{OwnerID: actor.UserID})
		if err != nil {
			return nil, fmt.Errorf("list payments: %w", err)
		}
		owned = policy.ApartmentIDs(apts)
	}
	return s.repo.List(ctx, policy.Payments(actor, owned))
}

func (s *PaymentService) record(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to record payment")
		return nil, err
	}
	metrics.PaymentsRecordedTotal.WithLabelValues(string(created.Type), string(created.Method)).Inc()
	s.logger.Info().
		Int64("payment_id", created.ID).
		Int64("apartment_id", created.ApartmentID).
		Int64("tenant_id", created.TenantID).
		Int64("amount", created.Amount).
		Str("method", string(created.Method)).
		Msg("payment recorded")
	return created, nil
}
