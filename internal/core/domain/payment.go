package domain

import (
	"fmt"
	"time"
)

type PaymentType string

const (
	PaymentRent        PaymentType = "rent"
	PaymentMaintenance PaymentType = "maintenance"
)

func ParsePaymentType(s string) (PaymentType, error) {
	switch t := PaymentType(s); t {
	case PaymentRent, PaymentMaintenance:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown payment type %q", ErrValidation, s)
}

// PaymentMethod records how the payment was captured.
type PaymentMethod string

const (
	PaymentManual PaymentMethod = "manual"
	PaymentUPI    PaymentMethod = "upi"
)

// Payment is an immutable ledger entry: created once, never updated.
type Payment struct {
	ID          int64         `json:"id" bson:"_id"`
	ApartmentID int64         `json:"apartmentId" bson:"apartment_id"`
	TenantID    int64         `json:"tenantId" bson:"tenant_id"`
	Amount      int64         `json:"amount" bson:"amount"`
	Date        time.Time     `json:"date" bson:"date"`
	Type        PaymentType   `json:"type" bson:"type"`
	Method      PaymentMethod `json:"method" bson:"method"`
	Reference   string        `json:"reference,omitempty" bson:"reference,omitempty"`
}
