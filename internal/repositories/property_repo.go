package repositories

import (
	"context"
	"errors"

	"rentora/internal/common"
	"rentora/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PropertyRepository interface {
	Create(ctx context.Context, property *models.Property) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.Property, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*models.Property, error)
	List(ctx context.Context, limit, offset int) ([]*models.Property, error)
	Update(ctx context.Context, property *models.Property) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status string) (int, error)
	DeleteTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}

type propertyRepo struct {
	db DB
}

func NewPropertyRepository(db DB) PropertyRepository {
	return &propertyRepo{db: db}
}

func (r *propertyRepo) Create(ctx context.Context, property *models.Property) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO properties (id, landlord_id, title, description, location, amenities, images, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err = tx.Exec(ctx, query, property.ID, property.LandlordID, property.Title, property.Description,
		property.Location, property.Amenities, property.Images, property.Status)
	if err != nil {
		return err
	}

	for _, unit := range property.Units {
		if err := insertUnit(ctx, tx, unit); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *propertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	property := &models.Property{}
	query := `
		SELECT id, landlord_id, title, description, location, amenities, images, status, created_at, updated_at
		FROM properties
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&property.ID, &property.LandlordID, &property.Title,
		&property.Description, &property.Location, &property.Amenities, &property.Images,
		&property.Status, &property.CreatedAt, &property.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}

	units, err := listUnits(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	property.Units = units
	return property, nil
}

func (r *propertyRepo) listWhere(ctx context.Context, where string, args ...any) ([]*models.Property, error) {
	query := `
		SELECT id, landlord_id, title, description, location, amenities, images, status, created_at, updated_at
		FROM properties
	` + where
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []*models.Property
	for rows.Next() {
		property := &models.Property{}
		if err := rows.Scan(&property.ID, &property.LandlordID, &property.Title, &property.Description,
			&property.Location, &property.Amenities, &property.Images, &property.Status,
			&property.CreatedAt, &property.UpdatedAt); err != nil {
			return nil, err
		}
		properties = append(properties, property)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, property := range properties {
		units, err := listUnits(ctx, r.db, property.ID)
		if err != nil {
			return nil, err
		}
		property.Units = units
	}
	return properties, nil
}

func (r *propertyRepo) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.Property, error) {
	return r.listWhere(ctx, ` WHERE landlord_id = $1 ORDER BY created_at DESC`, landlordID)
}

func (r *propertyRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*models.Property, error) {
	return r.listWhere(ctx, ` WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, status, limit, offset)
}

func (r *propertyRepo) List(ctx context.Context, limit, offset int) ([]*models.Property, error) {
	return r.listWhere(ctx, ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *propertyRepo) Update(ctx context.Context, property *models.Property) error {
	query := `
		UPDATE properties
		SET title = $1, description = $2, location = $3, amenities = $4, images = $5, updated_at = NOW()
		WHERE id = $6
	`
	tag, err := r.db.Exec(ctx, query, property.Title, property.Description, property.Location,
		property.Amenities, property.Images, property.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *propertyRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.db.Exec(ctx, `UPDATE properties SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *propertyRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM properties`).Scan(&count)
	return count, err
}

func (r *propertyRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM properties WHERE status = $1`, status).Scan(&count)
	return count, err
}

// DeleteTx removes the property row inside the caller's cascade transaction;
// dependent rows must already be gone or terminated.
func (r *propertyRepo) DeleteTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}
