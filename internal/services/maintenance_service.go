package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"rentora/internal/common"
	"rentora/internal/models"
	"rentora/internal/repositories"

	"github.com/google/uuid"
)

type CreateMaintenanceRequest struct {
	Issue       string
	Description *string
	Priority    string
	PhotoURL    *string
}

type MaintenanceService interface {
	Create(ctx context.Context, tenantID uuid.UUID, req *CreateMaintenanceRequest) (*models.MaintenanceRequest, error)
	MyRequests(ctx context.Context, tenantID uuid.UUID) ([]*models.MaintenanceRequestDetail, error)
	LandlordRequests(ctx context.Context, landlordID uuid.UUID) ([]*models.MaintenanceRequestDetail, error)
	UpdateStatus(ctx context.Context, requestID, landlordID uuid.UUID, status string) error
}

type maintenanceService struct {
	maintenanceRepo repositories.MaintenanceRepository
	leaseRepo       repositories.LeaseRepository
	propertyRepo    repositories.PropertyRepository
	activityRepo    repositories.ActivityLogRepository
}

func NewMaintenanceService(maintenanceRepo repositories.MaintenanceRepository,
	leaseRepo repositories.LeaseRepository, propertyRepo repositories.PropertyRepository,
	activityRepo repositories.ActivityLogRepository) MaintenanceService {
	return &maintenanceService{
		maintenanceRepo: maintenanceRepo,
		leaseRepo:       leaseRepo,
		propertyRepo:    propertyRepo,
		activityRepo:    activityRepo,
	}
}

// Create files a request against the tenant's active lease. Tenants without
// an active lease have nothing to report against.
func (s *maintenanceService) Create(ctx context.Context, tenantID uuid.UUID, req *CreateMaintenanceRequest) (*models.MaintenanceRequest, error) {
	lease, err := s.leaseRepo.GetActiveByTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("no active lease found: %w", common.ErrForbidden)
		}
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	request := &models.MaintenanceRequest{
		ID:          uuid.New(),
		TenantID:    tenantID,
		PropertyID:  lease.PropertyID,
		UnitID:      lease.UnitID,
		Issue:       req.Issue,
		Description: req.Description,
		PhotoURL:    req.PhotoURL,
		Priority:    priority,
		Status:      models.MaintenanceStatusPending,
	}
	if err := s.maintenanceRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	s.audit(ctx, tenantID, models.ActionMaintenanceRequest,
		fmt.Sprintf("Filed maintenance request: %s", req.Issue))
	return request, nil
}

func (s *maintenanceService) MyRequests(ctx context.Context, tenantID uuid.UUID) ([]*models.MaintenanceRequestDetail, error) {
	return s.maintenanceRepo.ListByTenant(ctx, tenantID)
}

func (s *maintenanceService) LandlordRequests(ctx context.Context, landlordID uuid.UUID) ([]*models.MaintenanceRequestDetail, error) {
	return s.maintenanceRepo.ListByLandlord(ctx, landlordID)
}

func (s *maintenanceService) UpdateStatus(ctx context.Context, requestID, landlordID uuid.UUID, status string) error {
	request, err := s.maintenanceRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NotFound("Maintenance request")
		}
		return err
	}

	property, err := s.propertyRepo.GetByID(ctx, request.PropertyID)
	if err != nil {
		return err
	}
	if property.LandlordID != landlordID {
		return common.ErrNotAuthorized
	}

	if err := s.maintenanceRepo.UpdateStatus(ctx, requestID, status); err != nil {
		return err
	}

	s.audit(ctx, landlordID, models.ActionMaintenanceRequest,
		fmt.Sprintf("Maintenance request %s marked %s", requestID.String(), status))
	return nil
}

func (s *maintenanceService) audit(ctx context.Context, userID uuid.UUID, action, details string) {
	err := s.activityRepo.Create(ctx, &models.ActivityLog{
		UserID:  userID,
		Action:  action,
		Details: details,
	})
	if err != nil {
		log.Printf("Failed to write activity log (%s): %v", action, err)
	}
}
