package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/societyhub/apartment-system/internal/core/domain"
)

func TestNotificationService_Process_Persists(t *testing.T) {
	repo := &stubNotificationRepo{}
	svc := NewNotificationService(repo, zerolog.Nop())

	n := domain.VisitorNotification{VisitorID: 5, ApartmentID: 1, Kind: domain.NotifyResident, ActorID: 30, CreatedAt: time.Now()}
	if err := svc.Process(context.Background(), n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.inserted) != 1 || repo.inserted[0].VisitorID != 5 {
		t.Fatalf("expected notification stored, got %+v", repo.inserted)
	}
}

func TestNotificationService_Process_FillsTimestamp(t *testing.T) {
	repo := &stubNotificationRepo{}
	svc := NewNotificationService(repo, zerolog.Nop())

	if err := svc.Process(context.Background(), domain.VisitorNotification{VisitorID: 5, Kind: domain.NotifyApprovalRequest}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.inserted[0].CreatedAt.IsZero() {
		t.Errorf("expected createdAt filled")
	}
}

func TestNotificationService_Process_Invalid(t *testing.T) {
	repo := &stubNotificationRepo{}
	svc := NewNotificationService(repo, zerolog.Nop())

	if err := svc.Process(context.Background(), domain.VisitorNotification{Kind: domain.NotifyResident}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Errorf("invalid notification stored")
	}
}

func TestNotificationService_Process_StoreError(t *testing.T) {
	storeErr := errors.New("db down")
	repo := &stubNotificationRepo{insertErr: storeErr}
	svc := NewNotificationService(repo, zerolog.Nop())

	err := svc.Process(context.Background(), domain.VisitorNotification{VisitorID: 5, Kind: domain.NotifyResident})
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}
