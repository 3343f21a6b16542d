package policy

import "github.com/societyhub/apartment-system/internal/core/domain"

// CanModifyApartment reports whether actor may patch apt: any admin-group
// role, except that an owner is limited to the apartments they own.
func CanModifyApartment(actor domain.Actor, apt *domain.Apartment) bool {
	if !actor.Role.IsAdminGroup() {
		return false
	}
	if actor.Role == domain.RoleOwner {
		return apt.OwnerID != nil && *apt.OwnerID == actor.UserID
	}
	return true
}

// CanRecordPaymentFor reports whether actor may record a payment made by
// tenantID. Tenants and visitors can only record their own.
func CanRecordPaymentFor(actor domain.Actor, tenantID int64) bool {
	switch actor.Role {
	case domain.RoleManager, domain.RoleOwner, domain.RoleSecurity:
		return true
	}
	return tenantID == actor.UserID
}
