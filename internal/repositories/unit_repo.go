package repositories

import (
	"context"
	"errors"

	"rentora/internal/common"
	"rentora/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UnitRepository interface {
	Add(ctx context.Context, unit *models.Unit) error
	GetByID(ctx context.Context, propertyID, id uuid.UUID) (*models.Unit, error)
	GetByInviteCode(ctx context.Context, code string) (*models.Unit, error)
	UpdateStatus(ctx context.Context, propertyID, id uuid.UUID, status string) error
	SetInviteCode(ctx context.Context, id uuid.UUID, code string) (bool, error)

	// OccupyTx conditionally flips an available unit to occupied inside the
	// assignment transaction. Returns false when the unit was not available,
	// which is how a concurrent-assignment loser finds out.
	OccupyTx(ctx context.Context, tx pgx.Tx, propertyID, id, tenantID uuid.UUID) (bool, error)

	ReleaseTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
	DeleteByPropertyTx(ctx context.Context, tx pgx.Tx, propertyID uuid.UUID) error
}

type unitRepo struct {
	db DB
}

func NewUnitRepository(db DB) UnitRepository {
	return &unitRepo{db: db}
}

const unitColumns = `id, property_id, unit_number, type, rent_amount, status, tenant_id, invite_code, created_at`

func insertUnit(ctx context.Context, q Querier, unit *models.Unit) error {
	query := `
		INSERT INTO units (id, property_id, unit_number, type, rent_amount, status, tenant_id, invite_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`
	_, err := q.Exec(ctx, query, unit.ID, unit.PropertyID, unit.UnitNumber, unit.Type,
		unit.RentAmount, unit.Status, unit.TenantID, unit.InviteCode)
	return err
}

func listUnits(ctx context.Context, q Querier, propertyID uuid.UUID) ([]*models.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE property_id = $1 ORDER BY unit_number`
	rows, err := q.Query(ctx, query, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []*models.Unit
	for rows.Next() {
		unit := &models.Unit{}
		if err := rows.Scan(&unit.ID, &unit.PropertyID, &unit.UnitNumber, &unit.Type, &unit.RentAmount,
			&unit.Status, &unit.TenantID, &unit.InviteCode, &unit.CreatedAt); err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	return units, rows.Err()
}

func (r *unitRepo) Add(ctx context.Context, unit *models.Unit) error {
	return insertUnit(ctx, r.db, unit)
}

func scanUnit(row pgx.Row) (*models.Unit, error) {
	unit := &models.Unit{}
	err := row.Scan(&unit.ID, &unit.PropertyID, &unit.UnitNumber, &unit.Type, &unit.RentAmount,
		&unit.Status, &unit.TenantID, &unit.InviteCode, &unit.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return unit, nil
}

func (r *unitRepo) GetByID(ctx context.Context, propertyID, id uuid.UUID) (*models.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE property_id = $1 AND id = $2`
	return scanUnit(r.db.QueryRow(ctx, query, propertyID, id))
}

func (r *unitRepo) GetByInviteCode(ctx context.Context, code string) (*models.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE invite_code = $1`
	return scanUnit(r.db.QueryRow(ctx, query, code))
}

func (r *unitRepo) UpdateStatus(ctx context.Context, propertyID, id uuid.UUID, status string) error {
	query := `UPDATE units SET status = $1 WHERE property_id = $2 AND id = $3`
	tag, err := r.db.Exec(ctx, query, status, propertyID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

// SetInviteCode persists a fresh invite code only when none exists yet, so a
// concurrent generate cannot overwrite a code already handed out. Returns
// false when the unit already carried a code or the code collided with
// another unit's.
func (r *unitRepo) SetInviteCode(ctx context.Context, id uuid.UUID, code string) (bool, error) {
	query := `UPDATE units SET invite_code = $1 WHERE id = $2 AND invite_code IS NULL`
	tag, err := r.db.Exec(ctx, query, code, id)
	if err != nil {
		if IsUniqueViolation(err) {
			return false, nil
		}
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *unitRepo) OccupyTx(ctx context.Context, tx pgx.Tx, propertyID, id, tenantID uuid.UUID) (bool, error) {
	query := `
		UPDATE units
		SET status = $1, tenant_id = $2
		WHERE property_id = $3 AND id = $4 AND status = $5
	`
	tag, err := tx.Exec(ctx, query, models.UnitStatusOccupied, tenantID, propertyID, id, models.UnitStatusAvailable)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// ReleaseTx frees a unit back to available and clears its tenant, used when
// a lease ends.
func (r *unitRepo) ReleaseTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	query := `UPDATE units SET status = $1, tenant_id = NULL WHERE id = $2`
	_, err := tx.Exec(ctx, query, models.UnitStatusAvailable, id)
	return err
}

func (r *unitRepo) DeleteByPropertyTx(ctx context.Context, tx pgx.Tx, propertyID uuid.UUID) error {
	_, err := tx.Exec(ctx, `DELETE FROM units WHERE property_id = $1`, propertyID)
	return err
}
