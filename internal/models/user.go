package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin    = "admin"
	RoleLandlord = "landlord"
	RoleTenant   = "tenant"
)

const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
	UserStatusPending  = "pending"
)

// Verification lifecycle for landlord/tenant identity documents.
const (
	VerificationUnsubmitted = "unsubmitted"
	VerificationPending     = "pending"
	VerificationVerified    = "verified"
	VerificationRejected    = "rejected"
)

type User struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	Name               string    `json:"name" db:"name"`
	Email              string    `json:"email" db:"email"`
	PasswordHash       string    `json:"-" db:"password_hash"` // Never serialize in JSON
	Role               string    `json:"role" db:"role"`
	Phone              string    `json:"phone" db:"phone"`
	Status             string    `json:"status" db:"status"`
	IsVerified         bool      `json:"is_verified" db:"is_verified"`
	VerificationDocs   []string  `json:"verification_docs" db:"verification_docs"`
	VerificationStatus string    `json:"verification_status" db:"verification_status"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}
