package domain

import (
	"fmt"
	"time"
)

// ApartmentStatus is a denormalized view of tenant assignment. It is not kept
// consistent with TenantID automatically; callers update both.
type ApartmentStatus string

const (
	ApartmentVacant   ApartmentStatus = "vacant"
	ApartmentOccupied ApartmentStatus = "occupied"
)

func ParseApartmentStatus(s string) (ApartmentStatus, error) {
	switch st := ApartmentStatus(s); st {
	case ApartmentVacant, ApartmentOccupied:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown apartment status %q", ErrValidation, s)
}

// Apartment is a unit identified by (building, number) within a society.
// TenantID and OwnerID are references, not ownership: the apartment outlives
// the people pointing at it.
type Apartment struct {
	ID                  int64           `json:"id" bson:"_id"`
	Number              string          `json:"number" bson:"number"`
	Building            string          `json:"building" bson:"building"`
	SocietyName         string          `json:"societyName" bson:"society_name"`
	TenantID            *int64          `json:"tenantId" bson:"tenant_id,omitempty"`
	OwnerID             *int64          `json:"ownerId" bson:"owner_id,omitempty"`
	Rent                int64           `json:"rent" bson:"rent"`
	Status              ApartmentStatus `json:"status" bson:"status"`
	Area                int64           `json:"area" bson:"area"`
	Amenities           []string        `json:"amenities" bson:"amenities"`
	LastMaintenanceDate *time.Time      `json:"lastMaintenanceDate" bson:"last_maintenance_date,omitempty"`
}

// Houses reports whether actor is the resident side of this apartment for
// visitor decisions: its tenant, its owner, or any manager. Managers match
// even when a is nil.
func (a *Apartment) Houses(actor Actor) bool {
	if actor.Role == RoleManager {
		return true
	}
	if a == nil {
		return false
	}
	switch actor.Role {
	case RoleTenant:
		return a.TenantID != nil && *a.TenantID == actor.UserID
	case RoleOwner:
		return a.OwnerID != nil && *a.OwnerID == actor.UserID
	}
	return false
}

// ApartmentPatch is a partial update. Nil fields are left untouched.
// ClearTenant and ClearOwner unassign the reference and win over the
// matching ID field.
type ApartmentPatch struct {
	Number              *string
	Building            *string
	SocietyName         *string
	TenantID            *int64
	OwnerID             *int64
	ClearTenant         bool
	ClearOwner          bool
	Rent                *int64
	Status              *ApartmentStatus
	Area                *int64
	Amenities           []string
	LastMaintenanceDate *time.Time
}

// Empty reports whether the patch changes nothing.
func (p ApartmentPatch) Empty() bool {
	return p.Number == nil && p.Building == nil && p.SocietyName == nil &&
		p.TenantID == nil && p.OwnerID == nil && !p.ClearTenant && !p.ClearOwner &&
		p.Rent == nil && p.Status == nil &&
		p.Area == nil && p.Amenities == nil && p.LastMaintenanceDate == nil
}

// Apply copies every set field of p onto a.
func (p ApartmentPatch) Apply(a *Apartment) {
	if p.Number != nil {
		a.Number = *p.Number
	}
	if p.Building != nil {
		a.Building = *p.Building
	}
	if p.SocietyName != nil {
		a.SocietyName = *p.SocietyName
	}
	switch {
	case p.ClearTenant:
		a.TenantID = nil
	case p.TenantID != nil:
		id := *p.TenantID
		a.TenantID = &id
	}
	switch {
	case p.ClearOwner:
		a.OwnerID = nil
	case p.OwnerID != nil:
		id := *p.OwnerID
		a.OwnerID = &id
	}
	if p.Rent != nil {
		a.Rent = *p.Rent
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.Area != nil {
		a.Area = *p.Area
	}
	if p.Amenities != nil {
		a.Amenities = append([]string(nil), p.Amenities...)
	}
	if p.LastMaintenanceDate != nil {
		t := *p.LastMaintenanceDate
		a.LastMaintenanceDate = &t
	}
}
