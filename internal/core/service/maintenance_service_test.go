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

func newMaintenanceFixture() (*MaintenanceService, *stubMaintenanceRepo) {
	apts := newStubApartmentRepo()
	apts.seed(&domain.Apartment{ID: 1, TenantID: int64p(10), OwnerID: int64p(20)})
	repo := newStubMaintenanceRepo()
	return NewMaintenanceService(repo, apts, zerolog.Nop()), repo
}

func seedRequest(repo *stubMaintenanceRepo, id int64, status domain.MaintenanceStatus) {
	repo.reqs[id] = &domain.MaintenanceRequest{ID: id, ApartmentID: 1, TenantID: 10, Description: "leak", Status: status}
	if id > repo.nextID {
		repo.nextID = id
	}
}

func TestMaintenanceService_Create_ForcesPendingAndActor(t *testing.T) {
	svc, _ := newMaintenanceFixture()

	req, err := svc.Create(context.Background(), actor(10, domain.RoleTenant), ports.CreateMaintenanceInput{ApartmentID: 1, Description: "Tap leaking"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Status != domain.MaintenancePending {
		t.Errorf("expected pending, got %s", req.Status)
	}
	if req.TenantID != 10 {
		t.Errorf("expected tenantId 10, got %d", req.TenantID)
	}
	if req.CreatedAt.IsZero() || req.UpdatedAt.IsZero() {
		t.Errorf("expected timestamps set")
	}
}

func TestMaintenanceService_Create_Errors(t *testing.T) {
	svc, _ := newMaintenanceFixture()

	if _, err := svc.Create(context.Background(), actor(10, domain.RoleTenant), ports.CreateMaintenanceInput{ApartmentID: 1}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
	if _, err := svc.Create(context.Background(), actor(10, domain.RoleTenant), ports.CreateMaintenanceInput{ApartmentID: 9, Description: "x"}); !errors.Is(err, domain.ErrApartmentNotFound) {
		t.Errorf("expected ErrApartmentNotFound, got %v", err)
	}
}

func TestMaintenanceService_ManagerCompletesInProgress(t *testing.T) {
	svc, repo := newMaintenanceFixture()
	seedRequest(repo, 7, domain.MaintenanceInProgress)

	req, err := svc.UpdateStatus(context.Background(), actor(40, domain.RoleManager), 7, "completed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Status != domain.MaintenanceCompleted {
		t.Errorf("expected completed, got %s", req.Status)
	}
	if req.UpdatedAt.IsZero() {
		t.Errorf("expected updatedAt refreshed")
	}
}

func TestMaintenanceService_NonManagerRejected_NoMutation(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleTenant, domain.RoleOwner, domain.RoleSecurity, domain.RoleVisitor} {
		svc, repo := newMaintenanceFixture()
		seedRequest(repo, 7, domain.MaintenanceInProgress)

		_, err := svc.UpdateStatus(context.Background(), actor(10, role), 7, "completed")
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("role %s: expected ErrForbidden, got %v", role, err)
		}
		if repo.reqs[7].Status != domain.MaintenanceInProgress || repo.updates != 0 {
			t.Errorf("role %s: request mutated", role)
		}
	}
}

func TestMaintenanceService_RoleCheckedBeforeRead(t *testing.T) {
	svc, _ := newMaintenanceFixture()

	_, err := svc.UpdateStatus(context.Background(), actor(10, domain.RoleTenant), 404, "in_progress")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for unknown id, got %v", err)
	}
}

func TestMaintenanceService_TenantMayReturnToPending(t *testing.T) {
	svc, repo := newMaintenanceFixture()
	seedRequest(repo, 7, domain.MaintenanceInProgress)

	req, err := svc.UpdateStatus(context.Background(), actor(10, domain.RoleTenant), 7, "pending")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Status != domain.MaintenancePending {
		t.Errorf("expected pending, got %s", req.Status)
	}
}

func TestMaintenanceService_TerminalStatesAreClosed(t *testing.T) {
	for _, from := range []domain.MaintenanceStatus{domain.MaintenanceCompleted, domain.MaintenanceDenied} {
		svc, repo := newMaintenanceFixture()
		seedRequest(repo, 7, from)

		_, err := svc.UpdateStatus(context.Background(), actor(40, domain.RoleManager), 7, "in_progress")
		if !errors.Is(err, domain.ErrInvalidTransition) {
			t.Errorf("from %s: expected ErrInvalidTransition, got %v", from, err)
		}
		if repo.reqs[7].Status != from {
			t.Errorf("from %s: request mutated", from)
		}
	}
}

func TestMaintenanceService_SameStatusIsNoop(t *testing.T) {
	svc, repo := newMaintenanceFixture()
	seedRequest(repo, 7, domain.MaintenanceCompleted)

	req, err := svc.UpdateStatus(context.Background(), actor(40, domain.RoleManager), 7, "completed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Status != domain.MaintenanceCompleted || repo.updates != 0 {
		t.Errorf("expected untouched request, updates=%d", repo.updates)
	}
}

func TestMaintenanceService_UnknownStatus(t *testing.T) {
	svc, _ := newMaintenanceFixture()
	if _, err := svc.UpdateStatus(context.Background(), actor(40, domain.RoleManager), 7, "closed"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestMaintenanceService_NotFound(t *testing.T) {
	svc, _ := newMaintenanceFixture()
	if _, err := svc.UpdateStatus(context.Background(), actor(40, domain.RoleManager), 404, "completed"); !errors.Is(err, domain.ErrMaintenanceNotFound) {
		t.Fatalf("expected ErrMaintenanceNotFound, got %v", err)
	}
}

func TestMaintenanceService_ConcurrentUpdate_Conflict(t *testing.T) {
	svc, repo := newMaintenanceFixture()
	seedRequest(repo, 7, domain.MaintenancePending)
	repo.beforeUpdate = func() {
		repo.reqs[7].Status = domain.MaintenanceDenied
		repo.beforeUpdate = nil
	}

	_, err := svc.UpdateStatus(context.Background(), actor(40, domain.RoleManager), 7, "completed")
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if repo.reqs[7].Status != domain.MaintenanceDenied {
		t.Errorf("losing write applied")
	}
}

func TestMaintenanceService_List_Scopes(t *testing.T) {
	svc, repo := newMaintenanceFixture()
	now := time.Now()
	repo.reqs[1] = &domain.MaintenanceRequest{ID: 1, TenantID: 10, CreatedAt: now}
	repo.reqs[2] = &domain.MaintenanceRequest{ID: 2, TenantID: 11, CreatedAt: now}

	got, err := svc.List(context.Background(), actor(10, domain.RoleTenant))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("tenant should see only own requests, got %+v", got)
	}

	// Owners are not scoped to the apartments they own.
	got, _ = svc.List(context.Background(), actor(20, domain.RoleOwner))
	if len(got) != 2 {
		t.Errorf("owner should see all requests, got %d", len(got))
	}
}
