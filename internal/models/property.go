package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PropertyStatusPending  = "pending"
	PropertyStatusApproved = "approved"
	PropertyStatusRejected = "rejected"
)

const (
	UnitStatusAvailable   = "available"
	UnitStatusOccupied    = "occupied"
	UnitStatusMaintenance = "maintenance"
)

type Property struct {
	ID          uuid.UUID `json:"id" db:"id"`
	LandlordID  uuid.UUID `json:"landlord_id" db:"landlord_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Location    string    `json:"location" db:"location"`
	Amenities   []string  `json:"amenities" db:"amenities"`
	Images      []string  `json:"images" db:"images"`
	Status      string    `json:"status" db:"status"`
	Units       []*Unit   `json:"units,omitempty" db:"-"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Unit is a rentable unit belonging to a property. Invariants: the unit is
// occupied exactly when tenant_id is set and an active lease references it;
// invite_code is globally unique and immutable once set.
type Unit struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	PropertyID uuid.UUID  `json:"property_id" db:"property_id"`
	UnitNumber string     `json:"unit_number" db:"unit_number"`
	Type       string     `json:"type" db:"type"` // e.g. 1BHK, 2BHK, bedsitter
	RentAmount float64    `json:"rent_amount" db:"rent_amount"`
	Status     string     `json:"status" db:"status"`
	TenantID   *uuid.UUID `json:"tenant_id,omitempty" db:"tenant_id"`
	InviteCode *string    `json:"invite_code,omitempty" db:"invite_code"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

// PropertyStats is the admin dashboard summary.
type PropertyStats struct {
	TotalLandlords    int `json:"total_landlords"`
	TotalTenants      int `json:"total_tenants"`
	TotalProperties   int `json:"total_properties"`
	PendingProperties int `json:"pending_properties"`
}
