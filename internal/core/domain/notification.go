package domain

import "time"

type NotificationKind string

const (
	NotifyResident        NotificationKind = "resident_notified"
	NotifyApprovalRequest NotificationKind = "approval_requested"
)

// VisitorNotification records that security alerted the residents of an
// apartment about a visitor. Delivery itself is out of scope; the record is
// the audit trail.
type VisitorNotification struct {
	ID          int64            `json:"id" bson:"_id"`
	VisitorID   int64            `json:"visitorId" bson:"visitor_id"`
	ApartmentID int64            `json:"apartmentId" bson:"apartment_id"`
	Kind        NotificationKind `json:"kind" bson:"kind"`
	ActorID     int64            `json:"actorId" bson:"actor_id"`
	CreatedAt   time.Time        `json:"createdAt" bson:"created_at"`
}
