package repositories

import (
	"context"
	"errors"

	"rentora/internal/common"
	"rentora/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type LeaseRepository interface {
	CreateTx(ctx context.Context, tx pgx.Tx, lease *models.Lease) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error)
	GetActiveByTenant(ctx context.Context, tenantID uuid.UUID) (*models.LeaseWithProperty, error)
	ExistsForTenantAndProperty(ctx context.Context, tenantID, propertyID uuid.UUID) (bool, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.LeaseWithProperty, error)
	TerminateByPropertyTx(ctx context.Context, tx pgx.Tx, propertyID uuid.UUID) error
	ListExpired(ctx context.Context, limit int) ([]*models.Lease, error)
	ExpireTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}

type leaseRepo struct {
	db DB
}

func NewLeaseRepository(db DB) LeaseRepository {
	return &leaseRepo{db: db}
}

const leaseColumns = `id, property_id, unit_id, tenant_id, start_date, end_date, rent_amount, deposit_amount, status, terms, created_at`

func (r *leaseRepo) CreateTx(ctx context.Context, tx pgx.Tx, lease *models.Lease) error {
	query := `
		INSERT INTO leases (id, property_id, unit_id, tenant_id, start_date, end_date, rent_amount, deposit_amount, status, terms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
	`
	_, err := tx.Exec(ctx, query, lease.ID, lease.PropertyID, lease.UnitID, lease.TenantID,
		lease.StartDate, lease.EndDate, lease.RentAmount, lease.DepositAmount, lease.Status, lease.Terms)
	return err
}

func scanLease(row pgx.Row) (*models.Lease, error) {
	lease := &models.Lease{}
	err := row.Scan(&lease.ID, &lease.PropertyID, &lease.UnitID, &lease.TenantID, &lease.StartDate,
		&lease.EndDate, &lease.RentAmount, &lease.DepositAmount, &lease.Status, &lease.Terms, &lease.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return lease, nil
}

func (r *leaseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error) {
	query := `SELECT ` + leaseColumns + ` FROM leases WHERE id = $1`
	return scanLease(r.db.QueryRow(ctx, query, id))
}

func (r *leaseRepo) GetActiveByTenant(ctx context.Context, tenantID uuid.UUID) (*models.LeaseWithProperty, error) {
	lease := &models.LeaseWithProperty{}
	query := `
		SELECT l.id, l.property_id, l.unit_id, l.tenant_id, l.start_date, l.end_date, l.rent_amount,
		       l.deposit_amount, l.status, l.terms, l.created_at, p.title, p.location
		FROM leases l
		JOIN properties p ON p.id = l.property_id
		WHERE l.tenant_id = $1 AND l.status = $2
		ORDER BY l.created_at DESC
		LIMIT 1
	`
	err := r.db.QueryRow(ctx, query, tenantID, models.LeaseStatusActive).Scan(
		&lease.ID, &lease.PropertyID, &lease.UnitID, &lease.TenantID, &lease.StartDate, &lease.EndDate,
		&lease.RentAmount, &lease.DepositAmount, &lease.Status, &lease.Terms, &lease.CreatedAt,
		&lease.PropertyTitle, &lease.PropertyLocation)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return lease, nil
}

// ExistsForTenantAndProperty reports whether the tenant has ever held a lease
// on the property, regardless of lease status. This is the rating gate.
func (r *leaseRepo) ExistsForTenantAndProperty(ctx context.Context, tenantID, propertyID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM leases WHERE tenant_id = $1 AND property_id = $2)`
	err := r.db.QueryRow(ctx, query, tenantID, propertyID).Scan(&exists)
	return exists, err
}

func (r *leaseRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.LeaseWithProperty, error) {
	query := `
		SELECT l.id, l.property_id, l.unit_id, l.tenant_id, l.start_date, l.end_date, l.rent_amount,
		       l.deposit_amount, l.status, l.terms, l.created_at, p.title, p.location
		FROM leases l
		JOIN properties p ON p.id = l.property_id
		WHERE l.tenant_id = $1
		ORDER BY l.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leases []*models.LeaseWithProperty
	for rows.Next() {
		lease := &models.LeaseWithProperty{}
		if err := rows.Scan(&lease.ID, &lease.PropertyID, &lease.UnitID, &lease.TenantID, &lease.StartDate,
			&lease.EndDate, &lease.RentAmount, &lease.DepositAmount, &lease.Status, &lease.Terms,
			&lease.CreatedAt, &lease.PropertyTitle, &lease.PropertyLocation); err != nil {
			return nil, err
		}
		leases = append(leases, lease)
	}
	return leases, rows.Err()
}

func (r *leaseRepo) TerminateByPropertyTx(ctx context.Context, tx pgx.Tx, propertyID uuid.UUID) error {
	query := `UPDATE leases SET status = $1 WHERE property_id = $2 AND status = $3`
	_, err := tx.Exec(ctx, query, models.LeaseStatusTerminated, propertyID, models.LeaseStatusActive)
	return err
}

// ListExpired returns active leases whose end date has passed, for the
// background sweep.
func (r *leaseRepo) ListExpired(ctx context.Context, limit int) ([]*models.Lease, error) {
	query := `
		SELECT ` + leaseColumns + `
		FROM leases
		WHERE status = $1 AND end_date IS NOT NULL AND end_date < NOW()
		ORDER BY end_date
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, models.LeaseStatusActive, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leases []*models.Lease
	for rows.Next() {
		lease := &models.Lease{}
		if err := rows.Scan(&lease.ID, &lease.PropertyID, &lease.UnitID, &lease.TenantID, &lease.StartDate,
			&lease.EndDate, &lease.RentAmount, &lease.DepositAmount, &lease.Status, &lease.Terms,
			&lease.CreatedAt); err != nil {
			return nil, err
		}
		leases = append(leases, lease)
	}
	return leases, rows.Err()
}

func (r *leaseRepo) ExpireTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	query := `UPDATE leases SET status = $1 WHERE id = $2 AND status = $3`
	_, err := tx.Exec(ctx, query, models.LeaseStatusExpired, id, models.LeaseStatusActive)
	return err
}
