package sqldb

import (
	"time"

	"github.com/societyhub/apartment-system/internal/core/domain"
)

type userRow struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string `gorm:"size:200;not null"`
	Role         string `gorm:"size:20;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userRow) TableName() string { return "users" }

func (r *userRow) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		Name:         r.Name,
		Role:         domain.Role(r.Role),
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
}

type apartmentRow struct {
	ID                  int64    `gorm:"primaryKey;autoIncrement"`
	Number              string   `gorm:"size:20;not null"`
	Building            string   `gorm:"size:100;not null"`
	SocietyName         string   `gorm:"size:200;not null"`
	TenantID            *int64   `gorm:"index"`
	OwnerID             *int64   `gorm:"index"`
	Rent                int64    `gorm:"not null"`
	Status              string   `gorm:"size:20;not null"`
	Area                int64    `gorm:"not null"`
	Amenities           []string `gorm:"serializer:json"`
	LastMaintenanceDate *time.Time
}

func (apartmentRow) TableName() string { return "apartments" }

func apartmentFromDomain(a *domain.Apartment) *apartmentRow {
	amenities := a.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return &apartmentRow{
		ID:                  a.ID,
		Number:              a.Number,
		Building:            a.Building,
		SocietyName:         a.SocietyName,
		TenantID:            a.TenantID,
		OwnerID:             a.OwnerID,
		Rent:                a.Rent,
		Status:              string(a.Status),
		Area:                a.Area,
		Amenities:           amenities,
		LastMaintenanceDate: a.LastMaintenanceDate,
	}
}

func (r *apartmentRow) toDomain() *domain.Apartment {
	a := &domain.Apartment{
		ID:          r.ID,
		Number:      r.Number,
		Building:    r.Building,
		SocietyName: r.SocietyName,
		TenantID:    r.TenantID,
		OwnerID:     r.OwnerID,
		Rent:        r.Rent,
		Status:      domain.ApartmentStatus(r.Status),
		Area:        r.Area,
		Amenities:   r.Amenities,
	}
	if r.LastMaintenanceDate != nil {
		t := r.LastMaintenanceDate.UTC()
		a.LastMaintenanceDate = &t
	}
	if a.Amenities == nil {
		a.Amenities = []string{}
	}
	return a
}

type maintenanceRow struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	ApartmentID int64  `gorm:"index;not null"`
	TenantID    int64  `gorm:"index;not null"`
	Description string `gorm:"not null"`
	Status      string `gorm:"size:20;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (maintenanceRow) TableName() string { return "maintenance_requests" }

func (r *maintenanceRow) toDomain() *domain.MaintenanceRequest {
	return &domain.MaintenanceRequest{
		ID:          r.ID,
		ApartmentID: r.ApartmentID,
		TenantID:    r.TenantID,
		Description: r.Description,
		Status:      domain.MaintenanceStatus(r.Status),
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

type paymentRow struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	ApartmentID int64     `gorm:"index;not null"`
	TenantID    int64     `gorm:"index;not null"`
	Amount      int64     `gorm:"not null"`
	Date        time.Time `gorm:"not null"`
	Type        string    `gorm:"size:20;not null"`
	Method      string    `gorm:"size:20;not null"`
	Reference   string    `gorm:"size:64"`
}

func (paymentRow) TableName() string { return "payments" }

func (r *paymentRow) toDomain() *domain.Payment {
	return &domain.Payment{
		ID:          r.ID,
		ApartmentID: r.ApartmentID,
		TenantID:    r.TenantID,
		Amount:      r.Amount,
		Date:        r.Date.UTC(),
		Type:        domain.PaymentType(r.Type),
		Method:      domain.PaymentMethod(r.Method),
		Reference:   r.Reference,
	}
}

type visitorRow struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	Name            string    `gorm:"size:200;not null"`
	Purpose         string    `gorm:"not null"`
	ContactNumber   string    `gorm:"size:50;not null"`
	ApartmentID     int64     `gorm:"index;not null"`
	ExpectedAt      time.Time `gorm:"not null"`
	Status          string    `gorm:"size:20;index;not null"`
	PendingApproval bool      `gorm:"not null;default:false"`
	ApprovedBy      *int64
	ActualEntryAt   *time.Time
	ActualExitAt    *time.Time
}

func (visitorRow) TableName() string { return "visitors" }

func (r *visitorRow) toDomain() *domain.Visitor {
	return &domain.Visitor{
		ID:              r.ID,
		Name:            r.Name,
		Purpose:         r.Purpose,
		ContactNumber:   r.ContactNumber,
		ApartmentID:     r.ApartmentID,
		ExpectedAt:      r.ExpectedAt.UTC(),
		Status:          domain.VisitorStatus(r.Status),
		PendingApproval: r.PendingApproval,
		ApprovedBy:      r.ApprovedBy,
		ActualEntryAt:   utcPtr(r.ActualEntryAt),
		ActualExitAt:    utcPtr(r.ActualExitAt),
	}
}

type announcementRow struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Title     string `gorm:"size:200;not null"`
	Content   string `gorm:"not null"`
	Important bool   `gorm:"not null;default:false"`
	CreatedBy int64  `gorm:"not null"`
	CreatedAt time.Time
}

func (announcementRow) TableName() string { return "announcements" }

func (r *announcementRow) toDomain() *domain.Announcement {
	return &domain.Announcement{
		ID:        r.ID,
		Title:     r.Title,
		Content:   r.Content,
		Important: r.Important,
		CreatedBy: r.CreatedBy,
		CreatedAt: r.CreatedAt.UTC(),
	}
}

type notificationRow struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	VisitorID   int64  `gorm:"index;not null"`
	ApartmentID int64  `gorm:"not null"`
	Kind        string `gorm:"size:32;not null"`
	ActorID     int64  `gorm:"not null"`
	CreatedAt   time.Time
}

func (notificationRow) TableName() string { return "visitor_notifications" }

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
