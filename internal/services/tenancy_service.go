package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"rentora/internal/caching"
	"rentora/internal/common"
	"rentora/internal/models"
	"rentora/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/gommon/random"
)

const (
	inviteCodeLength   = 8
	inviteCodeAttempts = 5
)

// AssignTenantRequest carries the landlord-supplied lease terms. Rent
// defaults to the unit's listed rent and deposit to zero when omitted.
type AssignTenantRequest struct {
	TenantEmail   string
	StartDate     time.Time
	EndDate       *time.Time
	RentAmount    *float64
	DepositAmount *float64
}

// Invite is the issued self-service join handle for a unit.
type Invite struct {
	InviteCode string `json:"invite_code"`
	InviteLink string `json:"invite_link"`
}

// TenancyService owns the lease/unit assignment workflow: unit occupancy,
// lease creation, invite issuance and redemption. The lease insert and the
// unit flip always commit or roll back together.
type TenancyService interface {
	AssignTenant(ctx context.Context, propertyID, unitID, callerID uuid.UUID, req *AssignTenantRequest) (*models.Lease, error)
	GenerateInvite(ctx context.Context, propertyID, unitID, callerID uuid.UUID) (*Invite, error)
	RedeemInvite(ctx context.Context, code string, callerID uuid.UUID, startDate time.Time) (*models.Lease, error)
}

type tenancyService struct {
	db             repositories.DB
	propertyRepo   repositories.PropertyRepository
	unitRepo       repositories.UnitRepository
	leaseRepo      repositories.LeaseRepository
	userRepo       repositories.UserRepository
	activityRepo   repositories.ActivityLogRepository
	cacheSvc       caching.CacheService
	notifier       NotificationService
	inviteLinkBase string
}

func NewTenancyService(db repositories.DB, propertyRepo repositories.PropertyRepository,
	unitRepo repositories.UnitRepository, leaseRepo repositories.LeaseRepository,
	userRepo repositories.UserRepository, activityRepo repositories.ActivityLogRepository,
	cacheSvc caching.CacheService, notifier NotificationService, inviteLinkBase string) TenancyService {
	return &tenancyService{
		db:             db,
		propertyRepo:   propertyRepo,
		unitRepo:       unitRepo,
		leaseRepo:      leaseRepo,
		userRepo:       userRepo,
		activityRepo:   activityRepo,
		cacheSvc:       cacheSvc,
		notifier:       notifier,
		inviteLinkBase: inviteLinkBase,
	}
}

func (s *tenancyService) AssignTenant(ctx context.Context, propertyID, unitID, callerID uuid.UUID, req *AssignTenantRequest) (*models.Lease, error) {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		if err == common.ErrNotFound {
			return nil, common.NotFound("Property")
		}
		return nil, err
	}

	if property.LandlordID != callerID {
		return nil, common.ErrNotAuthorized
	}

	tenant, err := s.userRepo.GetByEmailAndRole(ctx, req.TenantEmail, models.RoleTenant)
	if err != nil {
		if err == common.ErrNotFound {
			return nil, common.NotFound("Tenant")
		}
		return nil, err
	}

	unit, err := s.unitRepo.GetByID(ctx, propertyID, unitID)
	if err != nil {
		if err == common.ErrNotFound {
			return nil, common.NotFound("Unit")
		}
		return nil, err
	}

	lease, err := s.createLease(ctx, property, unit, tenant, req)
	if err != nil {
		return nil, err
	}

	s.audit(ctx, callerID, models.ActionAssignTenant,
		fmt.Sprintf("Assigned %s to Unit %s in %s", tenant.Email, unit.UnitNumber, property.Title))
	s.notifier.Notify(ctx, tenant, NotifyEmail, "Lease created",
		fmt.Sprintf("You have been assigned to unit %s at %s.", unit.UnitNumber, property.Title))

	return lease, nil
}

// createLease runs the one transactional boundary of the workflow: the
// conditional unit flip decides the winner when two requests race on the
// same unit, and the lease insert rides in the same transaction so a crash
// can never leave a lease pointing at an available unit.
func (s *tenancyService) createLease(ctx context.Context, property *models.Property, unit *models.Unit, tenant *models.User, req *AssignTenantRequest) (*models.Lease, error) {
	rentAmount := unit.RentAmount
	if req.RentAmount != nil && *req.RentAmount > 0 {
		rentAmount = *req.RentAmount
	}
	depositAmount := 0.0
	if req.DepositAmount != nil && *req.DepositAmount > 0 {
		depositAmount = *req.DepositAmount
	}

	lease := &models.Lease{
		ID:            uuid.New(),
		PropertyID:    property.ID,
		UnitID:        unit.ID,
		TenantID:      tenant.ID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		RentAmount:    rentAmount,
		DepositAmount: depositAmount,
		Status:        models.LeaseStatusActive,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	occupied, err := s.unitRepo.OccupyTx(ctx, tx, property.ID, unit.ID, tenant.ID)
	if err != nil {
		return nil, err
	}
	if !occupied {
		return nil, common.ErrUnitUnavailable
	}

	if err := s.leaseRepo.CreateTx(ctx, tx, lease); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if cacheErr := s.cacheSvc.DeleteProperty(ctx, property.ID); cacheErr != nil {
		log.Printf("Failed to invalidate cache for property %s: %v", property.ID.String(), cacheErr)
	}

	return lease, nil
}

// GenerateInvite is idempotent: a unit that already carries a code gets the
// same code back. Fresh codes retry on collision with the global unique
// index up to a bounded attempt count.
func (s *tenancyService) GenerateInvite(ctx context.Context, propertyID, unitID, callerID uuid.UUID) (*Invite, error) {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		if err == common.ErrNotFound {
			return nil, common.NotFound("Property")
		}
		return nil, err
	}

	if property.LandlordID != callerID {
		return nil, common.ErrNotAuthorized
	}

	unit, err := s.unitRepo.GetByID(ctx, propertyID, unitID)
	if err != nil {
		if err == common.ErrNotFound {
			return nil, common.NotFound("Unit")
		}
		return nil, err
	}

	if unit.InviteCode != nil {
		return s.invite(*unit.InviteCode), nil
	}

	for attempt := 0; attempt < inviteCodeAttempts; attempt++ {
		code := random.String(inviteCodeLength, random.Lowercase+random.Numeric)
		set, err := s.unitRepo.SetInviteCode(ctx, unit.ID, code)
		if err != nil {
			return nil, err
		}
		if set {
			return s.invite(code), nil
		}

		// Either another unit holds this code, or a concurrent generate won
		// the race and the unit already has one. Re-read to distinguish.
		unit, err = s.unitRepo.GetByID(ctx, propertyID, unitID)
		if err != nil {
			return nil, err
		}
		if unit.InviteCode != nil {
			return s.invite(*unit.InviteCode), nil
		}
	}

	return nil, common.ErrInviteExhausted
}

func (s *tenancyService) invite(code string) *Invite {
	return &Invite{
		InviteCode: code,
		InviteLink: fmt.Sprintf("%s/%s", s.inviteLinkBase, code),
	}
}

// RedeemInvite lets a tenant self-assign to the unit behind a code, using
// the unit's listed terms and the same transactional assignment.
func (s *tenancyService) RedeemInvite(ctx context.Context, code string, callerID uuid.UUID, startDate time.Time) (*models.Lease, error) {
	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		if err == common.ErrNotFound {
			return nil, common.NotFound("User")
		}
		return nil, err
	}
	if caller.Role != models.RoleTenant {
		return nil, common.ErrForbidden
	}

	unit, err := s.unitRepo.GetByInviteCode(ctx, code)
	if err != nil {
		if err == common.ErrNotFound {
			return nil, common.NotFound("Invite")
		}
		return nil, err
	}

	property, err := s.propertyRepo.GetByID(ctx, unit.PropertyID)
	if err != nil {
		return nil, err
	}

	lease, err := s.createLease(ctx, property, unit, caller, &AssignTenantRequest{
		TenantEmail: caller.Email,
		StartDate:   startDate,
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, callerID, models.ActionRedeemInvite,
		fmt.Sprintf("Joined Unit %s in %s via invite", unit.UnitNumber, property.Title))

	return lease, nil
}

func (s *tenancyService) audit(ctx context.Context, userID uuid.UUID, action, details string) {
	err := s.activityRepo.Create(ctx, &models.ActivityLog{
		UserID:  userID,
		Action:  action,
		Details: details,
	})
	if err != nil {
		log.Printf("Failed to write activity log (%s): %v", action, err)
	}
}
