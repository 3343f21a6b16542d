package handler

import (
	"encoding/json"
	"time"

	"github.com/societyhub/apartment-system/internal/core/domain"
)

// --- Auth ---

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"     validate:"required"`
	Role     string `json:"role"     validate:"required,oneof=tenant manager owner visitor security"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *domain.User `json:"user"`
}

// --- Apartments ---

type createApartmentRequest struct {
	Number              string     `json:"number"      validate:"required"`
	Building            string     `json:"building"    validate:"required"`
	SocietyName         string     `json:"societyName" validate:"required"`
	TenantID            *int64     `json:"tenantId"`
	OwnerID             *int64     `json:"ownerId"`
	Rent                int64      `json:"rent"        validate:"gte=0"`
	Status              string     `json:"status"      validate:"omitempty,oneof=vacant occupied"`
	Area                int64      `json:"area"        validate:"gt=0"`
	Amenities           []string   `json:"amenities"`
	LastMaintenanceDate *time.Time `json:"lastMaintenanceDate"`
}

// nullableID tells an absent key apart from an explicit null, which clears
// the reference.
type nullableID struct {
	Present bool
	Value   *int64
}

func (n *nullableID) UnmarshalJSON(b []byte) error {
	n.Present = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	var id int64
	if err := json.Unmarshal(b, &id); err != nil {
		return err
	}
	n.Value = &id
	return nil
}

// cleared reports an explicit null.
func (n nullableID) cleared() bool { return n.Present && n.Value == nil }

// updateApartmentRequest mirrors createApartmentRequest with every field optional.
type updateApartmentRequest struct {
	Number              *string    `json:"number"      validate:"omitempty,min=1"`
	Building            *string    `json:"building"    validate:"omitempty,min=1"`
	SocietyName         *string    `json:"societyName" validate:"omitempty,min=1"`
	TenantID            nullableID `json:"tenantId"`
	OwnerID             nullableID `json:"ownerId"`
	Rent                *int64     `json:"rent"        validate:"omitempty,gte=0"`
	Status              *string    `json:"status"      validate:"omitempty,oneof=vacant occupied"`
	Area                *int64     `json:"area"        validate:"omitempty,gt=0"`
	Amenities           []string   `json:"amenities"`
	LastMaintenanceDate *time.Time `json:"lastMaintenanceDate"`
}

// --- Maintenance ---

type createMaintenanceRequest struct {
	ApartmentID int64  `json:"apartmentId" validate:"required,gt=0"`
	Description string `json:"description" validate:"required"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

// --- Payments ---

type createPaymentRequest struct {
	ApartmentID int64     `json:"apartmentId" validate:"required,gt=0"`
	TenantID    int64     `json:"tenantId"    validate:"gte=0"`
	Amount      int64     `json:"amount"      validate:"required,gt=0"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type"        validate:"required,oneof=rent maintenance"`
}

type upiPaymentRequest struct {
	UPIID       string `json:"upiId"       validate:"required,upi"`
	Amount      int64  `json:"amount"      validate:"required,gt=0"`
	Description string `json:"description"`
	ApartmentID int64  `json:"apartmentId" validate:"gte=0"`
	Type        string `json:"type"        validate:"omitempty,oneof=rent maintenance"`
}

type upiPaymentResponse struct {
	Success bool            `json:"success"`
	Payment *domain.Payment `json:"payment"`
}

// --- Visitors ---

type createVisitorRequest struct {
	Name          string    `json:"name"          validate:"required"`
	Purpose       string    `json:"purpose"       validate:"required"`
	ContactNumber string    `json:"contactNumber" validate:"required"`
	ApartmentID   int64     `json:"apartmentId"   validate:"required,gt=0"`
	ExpectedAt    time.Time `json:"expectedAt"    validate:"required"`
}

type approvalResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Visitor *domain.Visitor `json:"visitor"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// --- Announcements ---

type createAnnouncementRequest struct {
	Title     string `json:"title"   validate:"required"`
	Content   string `json:"content" validate:"required"`
	Important bool   `json:"important"`
}

// ErrorResponse is the canonical error envelope for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}
