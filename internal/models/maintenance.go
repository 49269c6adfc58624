package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	MaintenanceStatusPending    = "pending"
	MaintenanceStatusInProgress = "in_progress"
	MaintenanceStatusResolved   = "resolved"
	MaintenanceStatusRejected   = "rejected"
)

const (
	PriorityLow       = "low"
	PriorityMedium    = "medium"
	PriorityHigh      = "high"
	PriorityEmergency = "emergency"
)

type MaintenanceRequest struct {
	ID          uuid.UUID `json:"id" db:"id"`
	TenantID    uuid.UUID `json:"tenant_id" db:"tenant_id"`
	PropertyID  uuid.UUID `json:"property_id" db:"property_id"`
	UnitID      uuid.UUID `json:"unit_id" db:"unit_id"`
	Issue       string    `json:"issue" db:"issue"`
	Description *string   `json:"description,omitempty" db:"description"`
	PhotoURL    *string   `json:"photo_url,omitempty" db:"photo_url"`
	Status      string    `json:"status" db:"status"`
	Priority    string    `json:"priority" db:"priority"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// MaintenanceRequestDetail joins tenant and property context for landlord
// queue views.
type MaintenanceRequestDetail struct {
	MaintenanceRequest
	TenantName    string `json:"tenant_name" db:"tenant_name"`
	TenantEmail   string `json:"tenant_email" db:"tenant_email"`
	TenantPhone   string `json:"tenant_phone" db:"tenant_phone"`
	PropertyTitle string `json:"property_title" db:"property_title"`
}
