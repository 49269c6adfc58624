package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

const (
	PaymentTypeRent        = "Rent"
	PaymentTypeDeposit     = "Deposit"
	PaymentTypeMaintenance = "Maintenance"
)

type Payment struct {
	ID                 uuid.UUID  `json:"id" db:"id"`
	LeaseID            uuid.UUID  `json:"lease_id" db:"lease_id"`
	TenantID           uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	Amount             float64    `json:"amount" db:"amount"`
	MpesaTransactionID *string    `json:"mpesa_transaction_id,omitempty" db:"mpesa_transaction_id"` // unique when present
	CheckoutRequestID  *string    `json:"checkout_request_id,omitempty" db:"checkout_request_id"`
	Status             string     `json:"status" db:"status"`
	PaymentType        string     `json:"payment_type" db:"payment_type"`
	PaymentDate        *time.Time `json:"payment_date,omitempty" db:"payment_date"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
}
