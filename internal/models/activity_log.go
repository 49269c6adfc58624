package models

import (
	"time"

	"github.com/google/uuid"
)

// ActivityLog is the append-only audit trail. Write-only from the request
// path; no read surface beyond operational queries.
type ActivityLog struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Action    string    `json:"action" db:"action"`
	Details   string    `json:"details" db:"details"`
	IPAddress *string   `json:"ip_address,omitempty" db:"ip_address"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Action tags for activity logs
const (
	ActionRegister              = "REGISTER"
	ActionLogin                 = "LOGIN"
	ActionCreateUser            = "CREATE_USER"
	ActionUpdateUser            = "UPDATE_USER"
	ActionDeleteUser            = "DELETE_USER"
	ActionVerificationSubmitted = "VERIFICATION_SUBMITTED"
	ActionVerificationReviewed  = "VERIFICATION_REVIEWED"
	ActionCreateProperty        = "CREATE_PROPERTY"
	ActionUpdateProperty        = "UPDATE_PROPERTY"
	ActionDeleteProperty        = "DELETE_PROPERTY"
	ActionAssignTenant          = "ASSIGN_TENANT"
	ActionRedeemInvite          = "REDEEM_INVITE"
	ActionCreateRating          = "CREATE_RATING"
	ActionPaymentInitiated      = "PAYMENT_INITIATED"
	ActionMaintenanceRequest    = "MAINTENANCE_REQUEST"
)
