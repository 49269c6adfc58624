package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	LeaseStatusActive     = "active"
	LeaseStatusTerminated = "terminated"
	LeaseStatusExpired    = "expired"
)

// Lease links a tenant to a unit for a date range. Historical leases for a
// unit accumulate; at most one is active per unit at a time.
type Lease struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	PropertyID    uuid.UUID  `json:"property_id" db:"property_id"`
	UnitID        uuid.UUID  `json:"unit_id" db:"unit_id"`
	TenantID      uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	StartDate     time.Time  `json:"start_date" db:"start_date"`
	EndDate       *time.Time `json:"end_date,omitempty" db:"end_date"` // nil = open-ended
	RentAmount    float64    `json:"rent_amount" db:"rent_amount"`
	DepositAmount float64    `json:"deposit_amount" db:"deposit_amount"`
	Status        string     `json:"status" db:"status"`
	Terms         *string    `json:"terms,omitempty" db:"terms"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

// LeaseWithProperty carries the property title/location alongside a lease
// for tenant-facing responses.
type LeaseWithProperty struct {
	Lease
	PropertyTitle    string `json:"property_title" db:"property_title"`
	PropertyLocation string `json:"property_location" db:"property_location"`
}
