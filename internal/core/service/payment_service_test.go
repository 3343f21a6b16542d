package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/societyhub/apartment-system/internal/core/domain"
	"github.com/societyhub/apartment-system/internal/core/ports"
)

func newPaymentFixture() (*PaymentService, *stubPaymentRepo, *stubApartmentRepo) {
	apts := newStubApartmentRepo()
	apts.seed(&domain.Apartment{ID: 1, TenantID: int64p(10), OwnerID: int64p(20)})
	apts.seed(&domain.Apartment{ID: 2, TenantID: int64p(11), OwnerID: int64p(21)})
	repo := &stubPaymentRepo{}
	return NewPaymentService(repo, apts, zerolog.Nop()), repo, apts
}

func TestPaymentService_Create_DefaultsTenantToActor(t *testing.T) {
	svc, _, _ := newPaymentFixture()
	date := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	p, err := svc.Create(context.Background(), actor(10, domain.RoleTenant), ports.CreatePaymentInput{
		ApartmentID: 1, Amount: 1200, Date: date, Type: "rent",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.TenantID != 10 || p.Method != domain.PaymentManual || !p.Date.Equal(date) {
		t.Errorf("unexpected payment: %+v", p)
	}
}

func TestPaymentService_Create_TenantCannotPayForOthers(t *testing.T) {
	svc, repo, _ := newPaymentFixture()

	_, err := svc.Create(context.Background(), actor(10, domain.RoleTenant), ports.CreatePaymentInput{
		ApartmentID: 2, TenantID: 11, Amount: 100, Type: "rent",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(repo.payments) != 0 {
		t.Errorf("expected nothing recorded")
	}

	if _, err := svc.Create(context.Background(), actor(40, domain.RoleManager), ports.CreatePaymentInput{
		ApartmentID: 2, TenantID: 11, Amount: 100, Type: "maintenance",
	}); err != nil {
		t.Fatalf("manager should record for any tenant: %v", err)
	}
}

func TestPaymentService_Create_Validation(t *testing.T) {
	svc, _, _ := newPaymentFixture()
	a := actor(10, domain.RoleTenant)

	if _, err := svc.Create(context.Background(), a, ports.CreatePaymentInput{ApartmentID: 1, Amount: 0, Type: "rent"}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("zero amount: expected ErrValidation, got %v", err)
	}
	if _, err := svc.Create(context.Background(), a, ports.CreatePaymentInput{ApartmentID: 1, Amount: 10, Type: "deposit"}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("bad type: expected ErrValidation, got %v", err)
	}
	if _, err := svc.Create(context.Background(), a, ports.CreatePaymentInput{ApartmentID: 9, Amount: 10, Type: "rent"}); !errors.Is(err, domain.ErrApartmentNotFound) {
		t.Errorf("unknown apartment: expected ErrApartmentNotFound, got %v", err)
	}
}

func TestPaymentService_CaptureUPI(t *testing.T) {
	svc, repo, _ := newPaymentFixture()

	p, err := svc.CaptureUPI(context.Background(), actor(10, domain.RoleTenant), ports.UPIPaymentInput{UPIID: "alice@upi", Amount: 1200})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ApartmentID != 1 || p.TenantID != 10 {
		t.Errorf("unexpected attribution: %+v", p)
	}
	if p.Method != domain.PaymentUPI || p.Reference == "" || p.Type != domain.PaymentRent {
		t.Errorf("unexpected payment: %+v", p)
	}
	if len(repo.payments) != 1 {
		t.Errorf("expected one payment recorded")
	}
}

func TestPaymentService_CaptureUPI_Errors(t *testing.T) {
	svc, _, _ := newPaymentFixture()
	ctx := context.Background()

	if _, err := svc.CaptureUPI(ctx, actor(10, domain.RoleTenant), ports.UPIPaymentInput{Amount: 10}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("missing upiId: expected ErrValidation, got %v", err)
	}
	if _, err := svc.CaptureUPI(ctx, actor(10, domain.RoleTenant), ports.UPIPaymentInput{UPIID: "nodomain", Amount: 10}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("malformed upiId: expected ErrValidation, got %v", err)
	}
	if _, err := svc.CaptureUPI(ctx, actor(99, domain.RoleVisitor), ports.UPIPaymentInput{UPIID: "v@upi", Amount: 10}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("no apartment: expected ErrValidation, got %v", err)
	}
	if _, err := svc.CaptureUPI(ctx, actor(10, domain.RoleTenant), ports.UPIPaymentInput{UPIID: "a@upi", Amount: 10, ApartmentID: 9}); !errors.Is(err, domain.ErrApartmentNotFound) {
		t.Errorf("unknown apartment: expected ErrApartmentNotFound, got %v", err)
	}
}

func TestPaymentService_List_Scopes(t *testing.T) {
	svc, repo, _ := newPaymentFixture()
	repo.payments = []*domain.Payment{
		{ID: 1, ApartmentID: 1, TenantID: 10, Amount: 1},
		{ID: 2, ApartmentID: 2, TenantID: 11, Amount: 2},
	}

	cases := []struct {
		actor domain.Actor
		want  []int64
	}{
		{actor(10, domain.RoleTenant), []int64{1}},
		{actor(20, domain.RoleOwner), []int64{1}},
		{actor(22, domain.RoleOwner), nil},
		{actor(40, domain.RoleManager), []int64{1, 2}},
		{actor(30, domain.RoleSecurity), []int64{1, 2}},
		{actor(11, domain.RoleVisitor), []int64{2}},
	}
	for _, tc := range cases {
		got, err := svc.List(context.Background(), tc.actor)
		if err != nil {
			t.Fatalf("%+v: unexpected error: %v", tc.actor, err)
		}
		if len(got) != len(tc.want) {
			t.Errorf("%s %d: expected %v, got %d payments", tc.actor.Role, tc.actor.UserID, tc.want, len(got))
			continue
		}
		for i, id := range tc.want {
			if got[i].ID != id {
				t.Errorf("%s %d: expected %v, got id %d at %d", tc.actor.Role, tc.actor.UserID, tc.want, got[i].ID, i)
			}
		}
	}
}
