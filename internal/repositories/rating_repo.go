package repositories

import (
	"context"

	"rentora/internal/common"
	"rentora/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.RatingWithTenant, error)
	Summary(ctx context.Context, propertyID uuid.UUID) (*models.RatingSummary, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.RatingWithProperty, error)
	ListRateable(ctx context.Context, tenantID uuid.UUID) ([]*models.RateableProperty, error)
	DeleteByPropertyTx(ctx context.Context, tx pgx.Tx, propertyID uuid.UUID) error
}

type ratingRepo struct {
	db DB
}

func NewRatingRepository(db DB) RatingRepository {
	return &ratingRepo{db: db}
}

func (r *ratingRepo) Create(ctx context.Context, rating *models.Rating) error {
	query := `
		INSERT INTO ratings (id, property_id, tenant_id, rating, review, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := r.db.Exec(ctx, query, rating.ID, rating.PropertyID, rating.TenantID, rating.Rating, rating.Review)
	if IsUniqueViolation(err) {
		// The (property_id, tenant_id) unique index turns a double-submit
		// race into a clean conflict for the loser.
		return common.ErrDuplicateRating
	}
	return err
}

func (r *ratingRepo) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.RatingWithTenant, error) {
	query := `
		SELECT r.id, r.property_id, r.tenant_id, r.rating, r.review, r.created_at, u.name
		FROM ratings r
		JOIN users u ON u.id = r.tenant_id
		WHERE r.property_id = $1
		ORDER BY r.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []*models.RatingWithTenant
	for rows.Next() {
		rating := &models.RatingWithTenant{}
		if err := rows.Scan(&rating.ID, &rating.PropertyID, &rating.TenantID, &rating.Rating,
			&rating.Review, &rating.CreatedAt, &rating.TenantName); err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}
	return ratings, rows.Err()
}

// Summary computes the mean (one decimal) and count in the database.
// COALESCE keeps the zero-rating case at 0 rather than NULL.
func (r *ratingRepo) Summary(ctx context.Context, propertyID uuid.UUID) (*models.RatingSummary, error) {
	summary := &models.RatingSummary{}
	query := `
		SELECT COALESCE(ROUND(AVG(rating)::numeric, 1), 0), COUNT(*)
		FROM ratings
		WHERE property_id = $1
	`
	err := r.db.QueryRow(ctx, query, propertyID).Scan(&summary.AverageRating, &summary.TotalRatings)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (r *ratingRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.RatingWithProperty, error) {
	query := `
		SELECT r.id, r.property_id, r.tenant_id, r.rating, r.review, r.created_at, p.title, p.location
		FROM ratings r
		JOIN properties p ON p.id = r.property_id
		WHERE r.tenant_id = $1
		ORDER BY r.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []*models.RatingWithProperty
	for rows.Next() {
		rating := &models.RatingWithProperty{}
		if err := rows.Scan(&rating.ID, &rating.PropertyID, &rating.TenantID, &rating.Rating,
			&rating.Review, &rating.CreatedAt, &rating.PropertyTitle, &rating.PropertyLocation); err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}
	return ratings, rows.Err()
}

// ListRateable is the set difference: properties the tenant has ever leased
// minus properties the tenant has already rated.
func (r *ratingRepo) ListRateable(ctx context.Context, tenantID uuid.UUID) ([]*models.RateableProperty, error) {
	query := `
		SELECT DISTINCT p.id, p.title, p.location
		FROM leases l
		JOIN properties p ON p.id = l.property_id
		WHERE l.tenant_id = $1
		  AND NOT EXISTS (
			SELECT 1 FROM ratings r
			WHERE r.tenant_id = l.tenant_id AND r.property_id = l.property_id
		  )
		ORDER BY p.title
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []*models.RateableProperty
	for rows.Next() {
		property := &models.RateableProperty{}
		if err := rows.Scan(&property.PropertyID, &property.Title, &property.Location); err != nil {
			return nil, err
		}
		properties = append(properties, property)
	}
	return properties, rows.Err()
}

func (r *ratingRepo) DeleteByPropertyTx(ctx context.Context, tx pgx.Tx, propertyID uuid.UUID) error {
	_, err := tx.Exec(ctx, `DELETE FROM ratings WHERE property_id = $1`, propertyID)
	return err
}
