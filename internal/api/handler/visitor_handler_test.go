package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/societyhub/apartment-system/internal/core/domain"
	"github.com/societyhub/apartment-system/internal/core/ports"
)

type stubVisitorService struct {
	createFn   func(ctx context.Context, actor domain.Actor, in ports.CreateVisitorInput) (*domain.Visitor, error)
	statusFn   func(ctx context.Context, actor domain.Actor, id int64, status string) (*domain.Visitor, error)
	checkInFn  func(ctx context.Context, actor domain.Actor, id int64) (*domain.Visitor, error)
	approvalFn func(ctx context.Context, actor domain.Actor, id int64) (*domain.Visitor, error)
	notifyFn   func(ctx context.Context, actor domain.Actor, id int64) error
}

func (s *stubVisitorService) Create(ctx context.Context, actor domain.Actor, in ports.CreateVisitorInput) (*domain.Visitor, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubVisitorService) List(ctx context.Context, actor domain.Actor) ([]*domain.Visitor, error) {
	return []*domain.Visitor{}, nil
}

func (s *stubVisitorService) UpdateStatus(ctx context.Context, actor domain.Actor, id int64, status string) (*domain.Visitor, error) {
	return s.statusFn(ctx, actor, id, status)
}

func (s *stubVisitorService) CheckIn(ctx context.Context, actor domain.Actor, id int64) (*domain.Visitor, error) {
	return s.checkInFn(ctx, actor, id)
}

func (s *stubVisitorService) RequestApproval(ctx context.Context, actor domain.Actor, id int64) (*domain.Visitor, error) {
	return s.approvalFn(ctx, actor, id)
}

func (s *stubVisitorService) Notify(ctx context.Context, actor domain.Actor, id int64) error {
	return s.notifyFn(ctx, actor, id)
}

func TestVisitorHandler_Create(t *testing.T) {
	e := newTestEcho()
	stub := &stubVisitorService{
		createFn: func(ctx context.Context, actor domain.Actor, in ports.CreateVisitorInput) (*domain.Visitor, error) {
			if in.ApartmentID != 4 || in.Name != "John" || in.ExpectedAt.IsZero() {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Visitor{ID: 1, Name: in.Name, ApartmentID: in.ApartmentID, Status: domain.VisitorUpcoming}, nil
		},
	}
	h := NewVisitorHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/visitors",
		`{"name":"John","purpose":"visit","contactNumber":"555","apartmentId":4,"expectedAt":"2026-01-02T10:00:00Z"}`), rec)
	withActor(c, 2, domain.RoleTenant)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestVisitorHandler_Create_MissingFields(t *testing.T) {
	e := newTestEcho()
	h := NewVisitorHandler(&stubVisitorService{})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/visitors", `{"name":"John"}`), rec)
	withActor(c, 2, domain.RoleTenant)

	err := h.Create(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestVisitorHandler_UpdateStatus_PassesThrough(t *testing.T) {
	e := newTestEcho()
	stub := &stubVisitorService{
		statusFn: func(ctx context.Context, actor domain.Actor, id int64, status string) (*domain.Visitor, error) {
			if id != 9 || status != "current" || actor.UserID != 3 || actor.Role != domain.RoleOwner {
				t.Fatalf("unexpected call: id=%d status=%s actor=%+v", id, status, actor)
			}
			now := time.Now()
			return &domain.Visitor{ID: id, Status: domain.VisitorCurrent, ApprovedBy: &actor.UserID, ActualEntryAt: &now}, nil
		},
	}
	h := NewVisitorHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPatch, "/", `{"status":"current"}`), rec)
	c.SetParamNames("id")
	c.SetParamValues("9")
	withActor(c, 3, domain.RoleOwner)

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var v domain.Visitor
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if v.Status != domain.VisitorCurrent || v.ApprovedBy == nil || *v.ApprovedBy != 3 {
		t.Fatalf("unexpected visitor: %+v", v)
	}
}

func TestVisitorHandler_UpdateStatus_BadID(t *testing.T) {
	e := newTestEcho()
	h := NewVisitorHandler(&stubVisitorService{})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPatch, "/", `{"status":"current"}`), rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	withActor(c, 3, domain.RoleOwner)

	err := h.UpdateStatus(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestVisitorHandler_RequestApproval_Envelope(t *testing.T) {
	e := newTestEcho()
	stub := &stubVisitorService{
		approvalFn: func(ctx context.Context, actor domain.Actor, id int64) (*domain.Visitor, error) {
			return &domain.Visitor{ID: id, Status: domain.VisitorPending, PendingApproval: true}, nil
		},
	}
	h := NewVisitorHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("5")
	withActor(c, 8, domain.RoleSecurity)

	if err := h.RequestApproval(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		Success bool           `json:"success"`
		Visitor domain.Visitor `json:"visitor"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || !resp.Visitor.PendingApproval || resp.Visitor.ID != 5 {
		t.Fatalf("unexpected response: %s", rec.Body.String())
	}
}

func TestVisitorHandler_Notify_Forbidden(t *testing.T) {
	e := newTestEcho()
	stub := &stubVisitorService{
		notifyFn: func(ctx context.Context, actor domain.Actor, id int64) error {
			return domain.ErrForbidden
		},
	}
	h := NewVisitorHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("5")
	withActor(c, 2, domain.RoleTenant)

	if err := h.Notify(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
