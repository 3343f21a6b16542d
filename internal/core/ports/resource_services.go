package ports

import (
	"context"
	"time"

	"github.com/societyhub/apartment-system/internal/core/domain"
)

// CreateApartmentInput carries a new apartment.
type CreateApartmentInput struct {
	Number              string
	Building            string
	SocietyName         string
	TenantID            *int64
	OwnerID             *int64
	Rent                int64
	Status              string // empty = vacant
	Area                int64
	Amenities           []string
	LastMaintenanceDate *time.Time
}

type ApartmentService interface {
	// ListResident returns the apartments the actor is tenant of.
	ListResident(ctx context.Context, actor domain.Actor) ([]*domain.Apartment, error)
	// ListManaged returns the admin view: owned apartments for owners, all otherwise.
	ListManaged(ctx context.Context, actor domain.Actor) ([]*domain.Apartment, error)
	Create(ctx context.Context, actor domain.Actor, in CreateApartmentInput) (*domain.Apartment, error)
	Update(ctx context.Context, actor domain.Actor, id int64, patch domain.ApartmentPatch) (*domain.Apartment, error)
}

// CreateMaintenanceInput carries a new maintenance request. The requester is
// always the actor and the initial status is always pending.
type CreateMaintenanceInput struct {
	ApartmentID int64
	Description string
}

type MaintenanceService interface {
	Create(ctx context.Context, actor domain.Actor, in CreateMaintenanceInput) (*domain.MaintenanceRequest, error)
	List(ctx context.Context, actor domain.Actor) ([]*domain.MaintenanceRequest, error)
	UpdateStatus(ctx context.Context, actor domain.Actor, id int64, status string) (*domain.MaintenanceRequest, error)
}

// CreatePaymentInput carries a manually recorded payment. TenantID 0 means
// the actor.
type CreatePaymentInput struct {
	ApartmentID int64
	TenantID    int64
	Amount      int64
	Date        time.Time
	Type        string
}

// UPIPaymentInput carries a simulated UPI capture. ApartmentID 0 means the
// actor's first tenanted apartment; an empty Type means rent.
type UPIPaymentInput struct {
	UPIID       string
	Amount      int64
	Description string
	ApartmentID int64
	Type        string
}

type PaymentService interface {
	Create(ctx context.Context, actor domain.Actor, in CreatePaymentInput) (*domain.Payment, error)
	CaptureUPI(ctx context.Context, actor domain.Actor, in UPIPaymentInput) (*domain.Payment, error)
	List(ctx context.Context, actor domain.Actor) ([]*domain.Payment, error)
}

// CreateVisitorInput carries a new visitor. There is no status field: new
// visitors are always upcoming.
type CreateVisitorInput struct {
	Name          string
	Purpose       string
	ContactNumber string
	ApartmentID   int64
	ExpectedAt    time.Time
}

type VisitorService interface {
	Create(ctx context.Context, actor domain.Actor, in CreateVisitorInput) (*domain.Visitor, error)
	List(ctx context.Context, actor domain.Actor) ([]*domain.Visitor, error)
	UpdateStatus(ctx context.Context, actor domain.Actor, id int64, status string) (*domain.Visitor, error)
	CheckIn(ctx context.Context, actor domain.Actor, id int64) (*domain.Visitor, error)
	RequestApproval(ctx context.Context, actor domain.Actor, id int64) (*domain.Visitor, error)
	Notify(ctx context.Context, actor domain.Actor, id int64) error
}

// CreateAnnouncementInput carries a new announcement; the author is the actor.
type CreateAnnouncementInput struct {
	Title     string
	Content   string
	Important bool
}

type AnnouncementService interface {
	Create(ctx context.Context, actor domain.Actor, in CreateAnnouncementInput) (*domain.Announcement, error)
	List(ctx context.Context) ([]*domain.Announcement, error)
}

// NotificationService records visitor notifications taken off the queue.
type NotificationService interface {
	Process(ctx context.Context, n domain.VisitorNotification) error
}
