// Package policy is the read-side authorization of the service: for each
// resource it computes the subset an actor may see. Every function here is
// pure. Scopes are translated into queries by the repositories and expose a
// Matches predicate so the same rule can be checked in memory.
package policy

import (
	"sort"

	"github.com/societyhub/apartment-system/internal/core/domain"
)

// ApartmentScope restricts apartment reads. Zero fields are unrestricted.
type ApartmentScope struct {
	TenantID int64
	OwnerID  int64
}

func (s ApartmentScope) Matches(a *domain.Apartment) bool {
	if s.TenantID != 0 && (a.TenantID == nil || *a.TenantID != s.TenantID) {
		return false
	}
	if s.OwnerID != 0 && (a.OwnerID == nil || *a.OwnerID != s.OwnerID) {
		return false
	}
	return true
}

// MaintenanceScope restricts maintenance request reads.
type MaintenanceScope struct {
	TenantID int64
}

func (s MaintenanceScope) Matches(r *domain.MaintenanceRequest) bool {
	return s.TenantID == 0 || r.TenantID == s.TenantID
}

// PaymentScope restricts payment reads. When ByApartment is set only payments
// for ApartmentIDs match; an empty list then matches nothing.
type PaymentScope struct {
	TenantID     int64
	ByApartment  bool
	ApartmentIDs []int64
}

func (s PaymentScope) Matches(p *domain.Payment) bool {
	if s.TenantID != 0 && p.TenantID != s.TenantID {
		return false
	}
	if s.ByApartment {
		for _, id := range s.ApartmentIDs {
			if id == p.ApartmentID {
				return true
			}
		}
		return false
	}
	return true
}

// VisitorScope restricts visitor reads. When ByApartment is set only visitors
// of ApartmentID match; ApartmentID 0 then matches nothing.
type VisitorScope struct {
	ByApartment bool
	ApartmentID int64
}

func (s VisitorScope) Matches(v *domain.Visitor) bool {
	if !s.ByApartment {
		return true
	}
	return s.ApartmentID != 0 && v.ApartmentID == s.ApartmentID
}

// ResidentApartments is the scope of GET /api/apartments: the apartments the
// actor is tenant of, whatever their role. Owned-but-not-tenanted apartments
// never appear here.
func ResidentApartments(actor domain.Actor) ApartmentScope {
	return ApartmentScope{TenantID: actor.UserID}
}

// ManagedApartments is the scope of the admin apartment listing: owners see
// what they own, managers and security see everything.
func ManagedApartments(actor domain.Actor) ApartmentScope {
	if actor.Role == domain.RoleOwner {
		return ApartmentScope{OwnerID: actor.UserID}
	}
	return ApartmentScope{}
}

// MaintenanceRequests scopes tenants to their own tickets. Owners are not
// scoped to the apartments they own.
func MaintenanceRequests(actor domain.Actor) MaintenanceScope {
	if actor.Role == domain.RoleTenant {
		return MaintenanceScope{TenantID: actor.UserID}
	}
	return MaintenanceScope{}
}

// Payments scopes payment reads. owned lists the ids of the apartments the
// actor owns and is only consulted for owners.
func Payments(actor domain.Actor, owned []int64) PaymentScope {
	switch actor.Role {
	case domain.RoleManager, domain.RoleSecurity:
		return PaymentScope{}
	case domain.RoleOwner:
		return PaymentScope{ByApartment: true, ApartmentIDs: append([]int64{}, owned...)}
	default:
		return PaymentScope{TenantID: actor.UserID}
	}
}

// NeedsOwnedApartments reports whether Payments needs the owned apartment list.
func NeedsOwnedApartments(actor domain.Actor) bool {
	return actor.Role == domain.RoleOwner
}

// Visitors scopes tenants to the visitors of their first apartment only,
// ordered by id. A tenant without an apartment sees nothing. Every other role
// sees all visitors.
func Visitors(actor domain.Actor, tenanted []*domain.Apartment) VisitorScope {
	if actor.Role != domain.RoleTenant {
		return VisitorScope{}
	}
	first := FirstApartment(tenanted)
	if first == nil {
		return VisitorScope{ByApartment: true}
	}
	return VisitorScope{ByApartment: true, ApartmentID: first.ID}
}

// FirstApartment returns the apartment with the lowest id, or nil.
func FirstApartment(apts []*domain.Apartment) *domain.Apartment {
	if len(apts) == 0 {
		return nil
	}
	sorted := append([]*domain.Apartment(nil), apts...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return sorted[0]
}

// ApartmentIDs collects the ids of apts.
func ApartmentIDs(apts []*domain.Apartment) []int64 {
	ids := make([]int64, 0, len(apts))
	for _, a := range apts {
		ids = append(ids, a.ID)
	}
	return ids
}
