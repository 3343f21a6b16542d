package domain

import (
	"fmt"
	"time"
)

// MaintenanceStatus represents the lifecycle state of a maintenance request.
type MaintenanceStatus string

const (
	MaintenancePending    MaintenanceStatus = "pending"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
	MaintenanceDenied     MaintenanceStatus = "denied"
)

// maintenanceTransitions defines the allowed state machine transitions.
// Completed and denied are terminal.
var maintenanceTransitions = map[MaintenanceStatus][]MaintenanceStatus{
	MaintenancePending:    {MaintenanceInProgress, MaintenanceCompleted, MaintenanceDenied},
	MaintenanceInProgress: {MaintenancePending, MaintenanceCompleted, MaintenanceDenied},
}

func ParseMaintenanceStatus(s string) (MaintenanceStatus, error) {
	switch st := MaintenanceStatus(s); st {
	case MaintenancePending, MaintenanceInProgress, MaintenanceCompleted, MaintenanceDenied:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown maintenance status %q", ErrValidation, s)
}

// RequiresManager reports whether moving a request into s is reserved to
// roles that can approve maintenance.
func (s MaintenanceStatus) RequiresManager() bool {
	return s == MaintenanceInProgress || s == MaintenanceCompleted || s == MaintenanceDenied
}

func (s MaintenanceStatus) IsTerminal() bool {
	return s == MaintenanceCompleted || s == MaintenanceDenied
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s MaintenanceStatus) CanTransitionTo(next MaintenanceStatus) bool {
	for _, allowed := range maintenanceTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// MaintenanceRequest is a ticket raised by a tenant against one apartment.
type MaintenanceRequest struct {
	ID          int64             `json:"id" bson:"_id"`
	ApartmentID int64             `json:"apartmentId" bson:"apartment_id"`
	TenantID    int64             `json:"tenantId" bson:"tenant_id"`
	Description string            `json:"description" bson:"description"`
	Status      MaintenanceStatus `json:"status" bson:"status"`
	CreatedAt   time.Time         `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time         `json:"updatedAt" bson:"updated_at"`
}
