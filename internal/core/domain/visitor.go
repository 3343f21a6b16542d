package domain

import (
	"fmt"
	"time"
)

// VisitorStatus represents the lifecycle state of a visitor.
type VisitorStatus string

const (
	VisitorUpcoming VisitorStatus = "upcoming"
	VisitorPending  VisitorStatus = "pending"
	VisitorCurrent  VisitorStatus = "current"
	VisitorPast     VisitorStatus = "past"
)

// ParseVisitorTarget validates the target of a generic status update. Only
// upcoming, current and past can be set directly; pending is reached through
// gate check-in.
func ParseVisitorTarget(s string) (VisitorStatus, error) {
	switch st := VisitorStatus(s); st {
	case VisitorUpcoming, VisitorCurrent, VisitorPast:
		return st, nil
	}
	return "", fmt.Errorf("%w: invalid visitor status %q", ErrValidation, s)
}

// Visitor is a guest expected at, or present in, one apartment.
//
// PendingApproval is only meaningful while Status is pending and is cleared
// by every transition away from pending.
type Visitor struct {
	ID              int64         `json:"id" bson:"_id"`
	Name            string        `json:"name" bson:"name"`
	Purpose         string        `json:"purpose" bson:"purpose"`
	ContactNumber   string        `json:"contactNumber" bson:"contact_number"`
	ApartmentID     int64         `json:"apartmentId" bson:"apartment_id"`
	ExpectedAt      time.Time     `json:"expectedAt" bson:"expected_at"`
	Status          VisitorStatus `json:"status" bson:"status"`
	PendingApproval bool          `json:"pendingApproval" bson:"pending_approval"`
	ApprovedBy      *int64        `json:"approvedBy" bson:"approved_by,omitempty"`
	ActualEntryAt   *time.Time    `json:"actualEntryAt" bson:"actual_entry_at,omitempty"`
	ActualExitAt    *time.Time    `json:"actualExitAt" bson:"actual_exit_at,omitempty"`
}

// VisitorTransition is a single conditional write: it applies only while the
// stored status still equals From. Nil pointers leave the stored value as is.
type VisitorTransition struct {
	From            VisitorStatus
	To              VisitorStatus
	PendingApproval bool
	ApprovedBy      *int64
	ActualEntryAt   *time.Time
	ActualExitAt    *time.Time
}

// IsDecision reports whether the transition approves or denies a pending visitor.
func (t VisitorTransition) IsDecision() bool {
	return t.From == VisitorPending && (t.To == VisitorCurrent || t.To == VisitorPast)
}

// PlanStatusChange validates a generic status update of v to target on behalf
// of actor. apt is the visitor's apartment, used to check that a deciding
// tenant or owner actually lives behind that door.
//
// Moving a pending visitor to current or past is a decision and requires a
// resident-side role; any other move is unguarded.
func (v *Visitor) PlanStatusChange(actor Actor, apt *Apartment, target VisitorStatus, now time.Time) (VisitorTransition, error) {
	switch target {
	case VisitorUpcoming, VisitorCurrent, VisitorPast:
	default:
		return VisitorTransition{}, fmt.Errorf("%w: invalid visitor status %q", ErrValidation, target)
	}

	t := VisitorTransition{From: v.Status, To: target}
	if t.IsDecision() {
		if !actor.Role.CanDecideVisitor() {
			return VisitorTransition{}, fmt.Errorf("%w: only owners, tenants or managers can approve or deny visitors", ErrForbidden)
		}
		if !apt.Houses(actor) {
			return VisitorTransition{}, fmt.Errorf("%w: visitor belongs to another apartment", ErrForbidden)
		}
		id := actor.UserID
		t.ApprovedBy = &id
	}

	switch target {
	case VisitorCurrent:
		t.ActualEntryAt = &now
	case VisitorPast:
		t.ActualExitAt = &now
	}
	return t, nil
}

// PlanCheckIn moves an upcoming visitor who arrived at the gate to pending.
func (v *Visitor) PlanCheckIn(actor Actor) (VisitorTransition, error) {
	if !actor.Role.CanGuardVisitors() {
		return VisitorTransition{}, fmt.Errorf("%w: only security personnel can check visitors in", ErrForbidden)
	}
	if v.Status != VisitorUpcoming {
		return VisitorTransition{}, fmt.Errorf("%w: cannot check in a %s visitor", ErrInvalidTransition, v.Status)
	}
	return VisitorTransition{From: VisitorUpcoming, To: VisitorPending}, nil
}

// PlanApprovalRequest flags a pending visitor as awaiting a resident decision.
// Re-flagging an already flagged visitor is allowed.
func (v *Visitor) PlanApprovalRequest(actor Actor) (VisitorTransition, error) {
	if !actor.Role.CanGuardVisitors() {
		return VisitorTransition{}, fmt.Errorf("%w: only security personnel can request approvals", ErrForbidden)
	}
	if v.Status != VisitorPending {
		return VisitorTransition{}, fmt.Errorf("%w: approval can only be requested for a pending visitor, not %s", ErrInvalidTransition, v.Status)
	}
	return VisitorTransition{From: VisitorPending, To: VisitorPending, PendingApproval: true}, nil
}

// Apply mutates v as the store would when t succeeds.
func (v *Visitor) Apply(t VisitorTransition) {
	v.Status = t.To
	v.PendingApproval = t.PendingApproval
	if t.ApprovedBy != nil {
		id := *t.ApprovedBy
		v.ApprovedBy = &id
	}
	if t.ActualEntryAt != nil {
		ts := *t.ActualEntryAt
		v.ActualEntryAt = &ts
	}
	if t.ActualExitAt != nil {
		ts := *t.ActualExitAt
		v.ActualExitAt = &ts
	}
}
