package ports

import (
	"context"
	"time"

	"github.com/societyhub/apartment-system/internal/core/domain"
	"github.com/societyhub/apartment-system/internal/core/policy"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create assigns an id and stores user. Returns domain.ErrUserExists when
	// the username is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// ApartmentRepository defines persistence operations for apartments.
// List results are ordered by id.
type ApartmentRepository interface {
	Create(ctx context.Context, apt *domain.Apartment) (*domain.Apartment, error)
	FindByID(ctx context.Context, id int64) (*domain.Apartment, error)
	List(ctx context.Context, scope policy.ApartmentScope) ([]*domain.Apartment, error)
	Update(ctx context.Context, id int64, patch domain.ApartmentPatch) (*domain.Apartment, error)
}

// MaintenanceRepository defines persistence operations for maintenance requests.
type MaintenanceRepository interface {
	Create(ctx context.Context, req *domain.MaintenanceRequest) (*domain.MaintenanceRequest, error)
	FindByID(ctx context.Context, id int64) (*domain.MaintenanceRequest, error)
	List(ctx context.Context, scope policy.MaintenanceScope) ([]*domain.MaintenanceRequest, error)
	// UpdateStatus sets the status only while the stored status equals from.
	// Returns domain.ErrConflict when it does not and
	// domain.ErrMaintenanceNotFound when id does not exist.
	UpdateStatus(ctx context.Context, id int64, from, to domain.MaintenanceStatus, at time.Time) (*domain.MaintenanceRequest, error)
}

// PaymentRepository is append-only.
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	List(ctx context.Context, scope policy.PaymentScope) ([]*domain.Payment, error)
}

// VisitorRepository defines persistence operations for visitors.
type VisitorRepository interface {
	Create(ctx context.Context, v *domain.Visitor) (*domain.Visitor, error)
	FindByID(ctx context.Context, id int64) (*domain.Visitor, error)
	List(ctx context.Context, scope policy.VisitorScope) ([]*domain.Visitor, error)
	// Transition applies t only while the stored status equals t.From.
	// Returns domain.ErrConflict when it does not and
	// domain.ErrVisitorNotFound when id does not exist.
	Transition(ctx context.Context, id int64, t domain.VisitorTransition) (*domain.Visitor, error)
}

// AnnouncementRepository stores announcements; List is newest first.
type AnnouncementRepository interface {
	Create(ctx context.Context, a *domain.Announcement) (*domain.Announcement, error)
	List(ctx context.Context) ([]*domain.Announcement, error)
}

// NotificationRepository persists the visitor notification audit trail.
type NotificationRepository interface {
	Insert(ctx context.Context, n *domain.VisitorNotification) error
}

// SessionStore keeps login sessions with a TTL.
type SessionStore interface {
	Create(ctx context.Context, s *domain.Session) error
	// Get returns domain.ErrSessionNotFound for unknown or expired sessions.
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// Repositories bundles one storage backend's repositories.
type Repositories struct {
	Users         UserRepository
	Apartments    ApartmentRepository
	Maintenance   MaintenanceRepository
	Payments      PaymentRepository
	Visitors      VisitorRepository
	Announcements AnnouncementRepository
	Notifications NotificationRepository
}
