package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"rentora/internal/caching"
	"rentora/internal/common"
	"rentora/internal/models"
	"rentora/internal/repositories"

	"github.com/google/uuid"
)

const propertyCacheTTL = 5 * time.Minute

// CreatePropertyRequest is the landlord listing submission. Listings always
// enter the approval queue as pending.
type CreatePropertyRequest struct {
	Title       string
	Description string
	Location    string
	Amenities   []string
	Images      []string
	Units       []*UnitInput
}

type UnitInput struct {
	UnitNumber string
	Type       string
	RentAmount float64
}

// UpdatePropertyRequest carries partial updates; nil fields are untouched.
type UpdatePropertyRequest struct {
	Title       *string
	Description *string
	Location    *string
	Amenities   []string
	Images      []string
}

type PropertyService interface {
	Create(ctx context.Context, landlordID uuid.UUID, req *CreatePropertyRequest) (*models.Property, error)
	GetByID(ctx context.Context, id, callerID uuid.UUID, callerRole string) (*models.Property, error)
	ListMine(ctx context.Context, landlordID uuid.UUID) ([]*models.Property, error)
	ListPending(ctx context.Context, limit, offset int) ([]*models.Property, error)
	ListAll(ctx context.Context, limit, offset int) ([]*models.Property, error)
	Update(ctx context.Context, id, callerID uuid.UUID, req *UpdatePropertyRequest) (*models.Property, error)
	UpdateStatus(ctx context.Context, id, adminID uuid.UUID, status string) (*models.Property, error)
	Delete(ctx context.Context, id, callerID uuid.UUID, callerRole string) error
	AddUnit(ctx context.Context, propertyID, callerID uuid.UUID, input *UnitInput) (*models.Unit, error)
	SetUnitStatus(ctx context.Context, propertyID, unitID, callerID uuid.UUID, status string) error
	Stats(ctx context.Context) (*models.PropertyStats, error)
}

type propertyService struct {
	db              repositories.DB
	propertyRepo    repositories.PropertyRepository
	unitRepo        repositories.UnitRepository
	leaseRepo       repositories.LeaseRepository
	ratingRepo      repositories.RatingRepository
	maintenanceRepo repositories.MaintenanceRepository
	userRepo        repositories.UserRepository
	activityRepo    repositories.ActivityLogRepository
	cacheSvc        caching.CacheService
}

func NewPropertyService(db repositories.DB, propertyRepo repositories.PropertyRepository,
	unitRepo repositories.UnitRepository, leaseRepo repositories.LeaseRepository,
	ratingRepo repositories.RatingRepository, maintenanceRepo repositories.MaintenanceRepository,
	userRepo repositories.UserRepository, activityRepo repositories.ActivityLogRepository,
	cacheSvc caching.CacheService) PropertyService {
	return &propertyService{
		db:              db,
		propertyRepo:    propertyRepo,
		unitRepo:        unitRepo,
		leaseRepo:       leaseRepo,
		ratingRepo:      ratingRepo,
		maintenanceRepo: maintenanceRepo,
		userRepo:        userRepo,
		activityRepo:    activityRepo,
		cacheSvc:        cacheSvc,
	}
}

func (s *propertyService) Create(ctx context.Context, landlordID uuid.UUID, req *CreatePropertyRequest) (*models.Property, error) {
	landlord, err := s.userRepo.GetByID(ctx, landlordID)
	if err != nil {
		return nil, err
	}
	if !landlord.IsVerified {
		return nil, fmt.Errorf("identity verification is required before listing properties: %w", common.ErrForbidden)
	}

	property := &models.Property{
		ID:          uuid.New(),
		LandlordID:  landlordID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Amenities:   req.Amenities,
		Images:      req.Images,
		Status:      models.PropertyStatusPending,
	}
	for _, input := range req.Units {
		property.Units = append(property.Units, &models.Unit{
			ID:         uuid.New(),
			PropertyID: property.ID,
			UnitNumber: input.UnitNumber,
			Type:       input.Type,
			RentAmount: input.RentAmount,
			Status:     models.UnitStatusAvailable,
		})
	}

	if err := s.propertyRepo.Create(ctx, property); err != nil {
		return nil, err
	}

	s.audit(ctx, landlordID, models.ActionCreateProperty, fmt.Sprintf("Created property %s", property.Title))
	return property, nil
}

func (s *propertyService) GetByID(ctx context.Context, id, callerID uuid.UUID, callerRole string) (*models.Property, error) {
	property, err := s.getCached(ctx, id)
	if err != nil {
		return nil, err
	}

	if property.LandlordID != callerID && callerRole != models.RoleAdmin {
		return nil, common.ErrNotAuthorized
	}
	return property, nil
}

func (s *propertyService) getCached(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	cached, err := s.cacheSvc.GetProperty(ctx, id)
	if err != nil {
		log.Printf("Property cache read failed for %s: %v", id.String(), err)
	} else if cached != nil {
		return cached, nil
	}

	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFound("Property")
		}
		return nil, err
	}

	if cacheErr := s.cacheSvc.SetProperty(ctx, property, propertyCacheTTL); cacheErr != nil {
		log.Printf("Property cache write failed for %s: %v", id.String(), cacheErr)
	}
	return property, nil
}

func (s *propertyService) ListMine(ctx context.Context, landlordID uuid.UUID) ([]*models.Property, error) {
	return s.propertyRepo.ListByLandlord(ctx, landlordID)
}

func (s *propertyService) ListPending(ctx context.Context, limit, offset int) ([]*models.Property, error) {
	return s.propertyRepo.ListByStatus(ctx, models.PropertyStatusPending, limit, offset)
}

func (s *propertyService) ListAll(ctx context.Context, limit, offset int) ([]*models.Property, error) {
	return s.propertyRepo.List(ctx, limit, offset)
}

func (s *propertyService) Update(ctx context.Context, id, callerID uuid.UUID, req *UpdatePropertyRequest) (*models.Property, error) {
	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFound("Property")
		}
		return nil, err
	}

	if property.LandlordID != callerID {
		return nil, common.ErrNotAuthorized
	}

	if req.Title != nil {
		property.Title = *req.Title
	}
	if req.Description != nil {
		property.Description = *req.Description
	}
	if req.Location != nil {
		property.Location = *req.Location
	}
	if req.Amenities != nil {
		property.Amenities = req.Amenities
	}
	if req.Images != nil {
		property.Images = req.Images
	}

	if err := s.propertyRepo.Update(ctx, property); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	s.audit(ctx, callerID, models.ActionUpdateProperty, fmt.Sprintf("Updated property %s", property.Title))
	return property, nil
}

// UpdateStatus is the admin approval transition. Only pending → approved and
// pending → rejected are allowed; there is no path back to pending.
func (s *propertyService) UpdateStatus(ctx context.Context, id, adminID uuid.UUID, status string) (*models.Property, error) {
	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFound("Property")
		}
		return nil, err
	}

	if property.Status != models.PropertyStatusPending {
		return nil, fmt.Errorf("property is not pending review: %w", common.ErrInvalidInput)
	}

	if err := s.propertyRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	property.Status = status

	s.invalidate(ctx, id)
	s.audit(ctx, adminID, models.ActionUpdateProperty,
		fmt.Sprintf("%s property %s", strings.ToUpper(status), property.Title))
	return property, nil
}

// Delete removes a property and everything hanging off it in one
// transaction: active leases are terminated and units freed, then ratings,
// maintenance requests, units and finally the property itself go.
func (s *propertyService) Delete(ctx context.Context, id, callerID uuid.UUID, callerRole string) error {
	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NotFound("Property")
		}
		return err
	}

	if property.LandlordID != callerID && callerRole != models.RoleAdmin {
		return common.ErrNotAuthorized
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := s.leaseRepo.TerminateByPropertyTx(ctx, tx, id); err != nil {
		return err
	}
	if err := s.ratingRepo.DeleteByPropertyTx(ctx, tx, id); err != nil {
		return err
	}
	if err := s.maintenanceRepo.DeleteByPropertyTx(ctx, tx, id); err != nil {
		return err
	}
	if err := s.unitRepo.DeleteByPropertyTx(ctx, tx, id); err != nil {
		return err
	}
	if err := s.propertyRepo.DeleteTx(ctx, tx, id); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	s.audit(ctx, callerID, models.ActionDeleteProperty, fmt.Sprintf("Deleted property %s", property.Title))
	return nil
}

func (s *propertyService) AddUnit(ctx context.Context, propertyID, callerID uuid.UUID, input *UnitInput) (*models.Unit, error) {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFound("Property")
		}
		return nil, err
	}

	if property.LandlordID != callerID {
		return nil, common.ErrNotAuthorized
	}

	unit := &models.Unit{
		ID:         uuid.New(),
		PropertyID: propertyID,
		UnitNumber: input.UnitNumber,
		Type:       input.Type,
		RentAmount: input.RentAmount,
		Status:     models.UnitStatusAvailable,
	}
	if err := s.unitRepo.Add(ctx, unit); err != nil {
		return nil, err
	}

	s.invalidate(ctx, propertyID)
	return unit, nil
}

// SetUnitStatus toggles a unit between available and maintenance. Occupied
// units are owned by the assignment workflow and cannot be flipped here.
func (s *propertyService) SetUnitStatus(ctx context.Context, propertyID, unitID, callerID uuid.UUID, status string) error {
	if status != models.UnitStatusAvailable && status != models.UnitStatusMaintenance {
		return fmt.Errorf("unit status must be 'available' or 'maintenance': %w", common.ErrInvalidInput)
	}

	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NotFound("Property")
		}
		return err
	}

	if property.LandlordID != callerID {
		return common.ErrNotAuthorized
	}

	unit, err := s.unitRepo.GetByID(ctx, propertyID, unitID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NotFound("Unit")
		}
		return err
	}
	if unit.Status == models.UnitStatusOccupied {
		return common.ErrUnitUnavailable
	}

	if err := s.unitRepo.UpdateStatus(ctx, propertyID, unitID, status); err != nil {
		return err
	}

	s.invalidate(ctx, propertyID)
	return nil
}

func (s *propertyService) Stats(ctx context.Context) (*models.PropertyStats, error) {
	stats := &models.PropertyStats{}
	var err error

	if stats.TotalLandlords, err = s.userRepo.CountByRole(ctx, models.RoleLandlord); err != nil {
		return nil, err
	}
	if stats.TotalTenants, err = s.userRepo.CountByRole(ctx, models.RoleTenant); err != nil {
		return nil, err
	}
	if stats.TotalProperties, err = s.propertyRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.PendingProperties, err = s.propertyRepo.CountByStatus(ctx, models.PropertyStatusPending); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *propertyService) invalidate(ctx context.Context, propertyID uuid.UUID) {
	if err := s.cacheSvc.DeleteProperty(ctx, propertyID); err != nil {
		log.Printf("Failed to invalidate cache for property %s: %v", propertyID.String(), err)
	}
}

func (s *propertyService) audit(ctx context.Context, userID uuid.UUID, action, details string) {
	err := s.activityRepo.Create(ctx, &models.ActivityLog{
		UserID:  userID,
		Action:  action,
		Details: details,
	})
	if err != nil {
		log.Printf("Failed to write activity log (%s): %v", action, err)
	}
}
