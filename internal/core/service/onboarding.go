package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/societyhub/apartment-system/internal/core/domain"
	"github.com/societyhub/apartment-system/internal/core/ports"
)

const demoSociety = "Demo Society"

// DemoOnboarding seeds sample records for new accounts so a fresh install has
// something to show. Tenants get an apartment with a ticket, a payment and an
// expected visitor; managers get a welcome announcement.
type DemoOnboarding struct {
	repos ports.Repositories
	now   func() time.Time
	log   zerolog.Logger
}

func NewDemoOnboarding(repos ports.Repositories, log zerolog.Logger) *DemoOnboarding {
	return &DemoOnboarding{repos: repos, now: func() time.Time { return time.Now().UTC() }, log: log}
}

func (d *DemoOnboarding) Onboard(ctx context.Context, user *domain.User) error {
	switch user.Role {
	case domain.RoleTenant:
		return d.seedTenant(ctx, user)
	case domain.RoleManager:
		return d.seedManager(ctx, user)
	}
	return nil
}

func (d *DemoOnboarding) seedTenant(ctx context.Context, user *domain.User) error {
	now := d.now()
	tenantID := user.ID

	apt, err := d.repos.Apartments.Create(ctx, &domain.Apartment{
		Number:      "101",
		Building:    "Block A",
		SocietyName: demoSociety,
		TenantID:    &tenantID,
		Rent:        1200,
		Status:      domain.ApartmentOccupied,
		Area:        1000,
		Amenities:   []string{"AC", "Parking"},
	})
	if err != nil {
		return fmt.Errorf("seed apartment: %w", err)
	}

	if _, err := d.repos.Maintenance.Create(ctx, &domain.MaintenanceRequest{
		ApartmentID: apt.ID,
		TenantID:    tenantID,
		Description: "AC needs servicing",
		Status:      domain.MaintenancePending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}); err != nil {
		return fmt.Errorf("seed maintenance request: %w", err)
	}

	if _, err := d.repos.Payments.Create(ctx, &domain.Payment{
		ApartmentID: apt.ID,
		TenantID:    tenantID,
		Amount:      1200,
		Date:        now,
		Type:        domain.PaymentRent,
		Method:      domain.PaymentManual,
	}); err != nil {
		return fmt.Errorf("seed payment: %w", err)
	}

	if _, err := d.repos.Visitors.Create(ctx, &domain.Visitor{
		Name:          "John Smith",
		Purpose:       "Friendly visit",
		ContactNumber: "555-0123",
		ApartmentID:   apt.ID,
		ExpectedAt:    now.Add(24 * time.Hour),
		Status:        domain.VisitorUpcoming,
		ApprovedBy:    &tenantID,
	}); err != nil {
		return fmt.Errorf("seed visitor: %w", err)
	}

	d.log.Debug().Int64("user_id", user.ID).Int64("apartment_id", apt.ID).Msg("demo tenant data seeded")
	return nil
}

func (d *DemoOnboarding) seedManager(ctx context.Context, user *domain.User) error {
	if _, err := d.repos.Announcements.Create(ctx, &domain.Announcement{
		Title:     "Welcome to the Community",
		Content:   "Please join us for the monthly community meeting this weekend.",
		Important: true,
		CreatedBy: user.ID,
		CreatedAt: d.now(),
	}); err != nil {
		return fmt.Errorf("seed announcement: %w", err)
	}
	d.log.Debug().Int64("user_id", user.ID).Msg("demo announcement seeded")
	return nil
}
