package services

import (
	"context"
	"errors"
	"log"

	"rentora/internal/common"
	"rentora/internal/models"
	"rentora/internal/repositories"

	"github.com/google/uuid"
)

const expiredLeaseBatchSize = 100

type LeaseService interface {
	MyLease(ctx context.Context, tenantID uuid.UUID) (*models.LeaseWithProperty, error)
	MyLeases(ctx context.Context, tenantID uuid.UUID) ([]*models.LeaseWithProperty, error)
	// ExpireLeases sweeps leases whose end date has passed, marking each
	// expired and freeing its unit. Returns the number of leases expired.
	ExpireLeases(ctx context.Context) (int, error)
}

type leaseService struct {
	db        repositories.DB
	leaseRepo repositories.LeaseRepository
	unitRepo  repositories.UnitRepository
	userRepo  repositories.UserRepository
	notifier  NotificationService
}

func NewLeaseService(db repositories.DB, leaseRepo repositories.LeaseRepository,
	unitRepo repositories.UnitRepository, userRepo repositories.UserRepository,
	notifier NotificationService) LeaseService {
	return &leaseService{db: db, leaseRepo: leaseRepo, unitRepo: unitRepo, userRepo: userRepo, notifier: notifier}
}

// MyLease returns the tenant's active lease, or nil without error when the
// tenant has none. The handler serializes the nil as a JSON null body.
func (s *leaseService) MyLease(ctx context.Context, tenantID uuid.UUID) (*models.LeaseWithProperty, error) {
	lease, err := s.leaseRepo.GetActiveByTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return lease, nil
}

func (s *leaseService) MyLeases(ctx context.Context, tenantID uuid.UUID) ([]*models.LeaseWithProperty, error) {
	return s.leaseRepo.ListByTenant(ctx, tenantID)
}

func (s *leaseService) ExpireLeases(ctx context.Context) (int, error) {
	leases, err := s.leaseRepo.ListExpired(ctx, expiredLeaseBatchSize)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, lease := range leases {
		if err := s.expireOne(ctx, lease); err != nil {
			log.Printf("Failed to expire lease %s: %v", lease.ID.String(), err)
			continue
		}
		expired++

		if tenant, userErr := s.userRepo.GetByID(ctx, lease.TenantID); userErr == nil {
			s.notifier.Notify(ctx, tenant, NotifyEmail, "Lease Expired",
				"Your lease has ended. Please contact your landlord about renewal.")
		}
	}
	return expired, nil
}

func (s *leaseService) expireOne(ctx context.Context, lease *models.Lease) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := s.leaseRepo.ExpireTx(ctx, tx, lease.ID); err != nil {
		return err
	}
	if err := s.unitRepo.ReleaseTx(ctx, tx, lease.UnitID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
