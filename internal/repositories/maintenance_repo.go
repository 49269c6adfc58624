package repositories

import (
	"context"
	"errors"

	"rentora/internal/common"
	"rentora/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type MaintenanceRepository interface {
	Create(ctx context.Context, request *models.MaintenanceRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MaintenanceRequest, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.MaintenanceRequestDetail, error)
	ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.MaintenanceRequestDetail, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	DeleteByPropertyTx(ctx context.Context, tx pgx.Tx, propertyID uuid.UUID) error
}

type maintenanceRepo struct {
	db DB
}

func NewMaintenanceRepository(db DB) MaintenanceRepository {
	return &maintenanceRepo{db: db}
}

func (r *maintenanceRepo) Create(ctx context.Context, request *models.MaintenanceRequest) error {
	query := `
		INSERT INTO maintenance_requests (id, tenant_id, property_id, unit_id, issue, description, photo_url, status, priority, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	`
	_, err := r.db.Exec(ctx, query, request.ID, request.TenantID, request.PropertyID, request.UnitID,
		request.Issue, request.Description, request.PhotoURL, request.Status, request.Priority)
	return err
}

func (r *maintenanceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.MaintenanceRequest, error) {
	request := &models.MaintenanceRequest{}
	query := `
		SELECT id, tenant_id, property_id, unit_id, issue, description, photo_url, status, priority, created_at
		FROM maintenance_requests
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&request.ID, &request.TenantID, &request.PropertyID,
		&request.UnitID, &request.Issue, &request.Description, &request.PhotoURL, &request.Status,
		&request.Priority, &request.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return request, nil
}

func (r *maintenanceRepo) listDetailed(ctx context.Context, where string, arg any) ([]*models.MaintenanceRequestDetail, error) {
	query := `
		SELECT m.id, m.tenant_id, m.property_id, m.unit_id, m.issue, m.description, m.photo_url,
		       m.status, m.priority, m.created_at, u.name, u.email, u.phone, p.title
		FROM maintenance_requests m
		JOIN users u ON u.id = m.tenant_id
		JOIN properties p ON p.id = m.property_id
	` + where + ` ORDER BY m.created_at DESC`
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*models.MaintenanceRequestDetail
	for rows.Next() {
		request := &models.MaintenanceRequestDetail{}
		if err := rows.Scan(&request.ID, &request.TenantID, &request.PropertyID, &request.UnitID,
			&request.Issue, &request.Description, &request.PhotoURL, &request.Status, &request.Priority,
			&request.CreatedAt, &request.TenantName, &request.TenantEmail, &request.TenantPhone,
			&request.PropertyTitle); err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

func (r *maintenanceRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.MaintenanceRequestDetail, error) {
	return r.listDetailed(ctx, ` WHERE m.tenant_id = $1`, tenantID)
}

func (r *maintenanceRepo) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.MaintenanceRequestDetail, error) {
	return r.listDetailed(ctx, ` WHERE p.landlord_id = $1`, landlordID)
}

func (r *maintenanceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.db.Exec(ctx, `UPDATE maintenance_requests SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *maintenanceRepo) DeleteByPropertyTx(ctx context.Context, tx pgx.Tx, propertyID uuid.UUID) error {
	_, err := tx.Exec(ctx, `DELETE FROM maintenance_requests WHERE property_id = $1`, propertyID)
	return err
}
