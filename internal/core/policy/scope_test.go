package policy

import (
	"testing"

	"github.com/societyhub/apartment-system/internal/core/domain"
)

func id(v int64) *int64 { return &v }

func TestResidentApartments_ExcludesOwnedOnly(t *testing.T) {
	actor := domain.Actor{UserID: 10, Role: domain.RoleOwner}
	scope := ResidentApartments(actor)

	rented := &domain.Apartment{ID: 1, TenantID: id(10)}
	owned := &domain.Apartment{ID: 2, OwnerID: id(10)}
	if !scope.Matches(rented) {
		t.Errorf("rented apartment should match")
	}
	if scope.Matches(owned) {
		t.Errorf("owned-but-not-tenanted apartment must not match")
	}
}

func TestManagedApartments(t *testing.T) {
	owned := &domain.Apartment{ID: 1, OwnerID: id(20)}
	other := &domain.Apartment{ID: 2, OwnerID: id(21)}

	s := ManagedApartments(domain.Actor{UserID: 20, Role: domain.RoleOwner})
	if !s.Matches(owned) || s.Matches(other) {
		t.Errorf("owner scope wrong")
	}
	s = ManagedApartments(domain.Actor{UserID: 1, Role: domain.RoleManager})
	if !s.Matches(owned) || !s.Matches(other) {
		t.Errorf("manager scope should be unrestricted")
	}
}

func TestPayments(t *testing.T) {
	p := &domain.Payment{ApartmentID: 3, TenantID: 10}

	if !Payments(domain.Actor{UserID: 10, Role: domain.RoleTenant}, nil).Matches(p) {
		t.Errorf("tenant should see own payment")
	}
	if Payments(domain.Actor{UserID: 11, Role: domain.RoleTenant}, nil).Matches(p) {
		t.Errorf("tenant must not see others' payments")
	}
	if !Payments(domain.Actor{UserID: 20, Role: domain.RoleOwner}, []int64{3}).Matches(p) {
		t.Errorf("owner should see payments of owned apartments")
	}
	if Payments(domain.Actor{UserID: 20, Role: domain.RoleOwner}, nil).Matches(p) {
		t.Errorf("owner without apartments sees nothing")
	}
	if !Payments(domain.Actor{UserID: 1, Role: domain.RoleSecurity}, nil).Matches(p) {
		t.Errorf("security sees all")
	}
	if !NeedsOwnedApartments(domain.Actor{Role: domain.RoleOwner}) || NeedsOwnedApartments(domain.Actor{Role: domain.RoleTenant}) {
		t.Errorf("NeedsOwnedApartments wrong")
	}
}

func TestVisitors(t *testing.T) {
	tenant := domain.Actor{UserID: 10, Role: domain.RoleTenant}
	apts := []*domain.Apartment{{ID: 7}, {ID: 3}}

	s := Visitors(tenant, apts)
	if !s.Matches(&domain.Visitor{ApartmentID: 3}) || s.Matches(&domain.Visitor{ApartmentID: 7}) {
		t.Errorf("tenant should only see visitors of the lowest-id apartment")
	}

	s = Visitors(tenant, nil)
	if s.Matches(&domain.Visitor{ApartmentID: 3}) {
		t.Errorf("tenant without apartment sees nothing")
	}

	s = Visitors(domain.Actor{UserID: 1, Role: domain.RoleVisitor}, nil)
	if !s.Matches(&domain.Visitor{ApartmentID: 3}) {
		t.Errorf("non-tenants see everything")
	}
}

func TestMaintenanceRequests(t *testing.T) {
	r := &domain.MaintenanceRequest{TenantID: 10}
	if !MaintenanceRequests(domain.Actor{UserID: 10, Role: domain.RoleTenant}).Matches(r) {
		t.Errorf("tenant sees own request")
	}
	if MaintenanceRequests(domain.Actor{UserID: 11, Role: domain.RoleTenant}).Matches(r) {
		t.Errorf("tenant must not see other requests")
	}
	if !MaintenanceRequests(domain.Actor{UserID: 20, Role: domain.RoleOwner}).Matches(r) {
		t.Errorf("owner sees every request")
	}
}

func TestWritePolicies(t *testing.T) {
	apt := &domain.Apartment{OwnerID: id(20)}
	if !CanModifyApartment(domain.Actor{UserID: 20, Role: domain.RoleOwner}, apt) {
		t.Errorf("owner modifies own apartment")
	}
	if CanModifyApartment(domain.Actor{UserID: 21, Role: domain.RoleOwner}, apt) {
		t.Errorf("owner must not modify foreign apartment")
	}
	if !CanModifyApartment(domain.Actor{Role: domain.RoleSecurity}, apt) {
		t.Errorf("security modifies any apartment")
	}
	if CanModifyApartment(domain.Actor{Role: domain.RoleTenant}, apt) {
		t.Errorf("tenant cannot modify")
	}
	if !CanRecordPaymentFor(domain.Actor{UserID: 10, Role: domain.RoleTenant}, 10) || CanRecordPaymentFor(domain.Actor{UserID: 10, Role: domain.RoleTenant}, 11) {
		t.Errorf("CanRecordPaymentFor wrong for tenant")
	}
}
