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
)

const ratingSummaryTTL = 10 * time.Minute

// PropertyRatings is the public rating listing for a property.
type PropertyRatings struct {
	Ratings       []*models.RatingWithTenant `json:"ratings"`
	AverageRating float64                    `json:"average_rating"`
	TotalRatings  int                        `json:"total_ratings"`
}

type RatingService interface {
	Create(ctx context.Context, tenantID, propertyID uuid.UUID, score int, review *string) (*models.Rating, error)
	PropertyRatings(ctx context.Context, propertyID uuid.UUID) (*PropertyRatings, error)
	MyRatings(ctx context.Context, tenantID uuid.UUID) ([]*models.RatingWithProperty, error)
	AvailableToRate(ctx context.Context, tenantID uuid.UUID) ([]*models.RateableProperty, error)
	RefreshSummary(ctx context.Context, propertyID uuid.UUID) error
}

type ratingService struct {
	ratingRepo   repositories.RatingRepository
	leaseRepo    repositories.LeaseRepository
	activityRepo repositories.ActivityLogRepository
	cacheSvc     caching.CacheService
}

func NewRatingService(ratingRepo repositories.RatingRepository, leaseRepo repositories.LeaseRepository,
	activityRepo repositories.ActivityLogRepository, cacheSvc caching.CacheService) RatingService {
	return &ratingService{
		ratingRepo:   ratingRepo,
		leaseRepo:    leaseRepo,
		activityRepo: activityRepo,
		cacheSvc:     cacheSvc,
	}
}

// Create records a rating for a property the tenant has leased. Any lease
// ever held qualifies, including terminated and expired ones. The unique
// index converts a duplicate into ErrDuplicateRating.
func (s *ratingService) Create(ctx context.Context, tenantID, propertyID uuid.UUID, score int, review *string) (*models.Rating, error) {
	hasLease, err := s.leaseRepo.ExistsForTenantAndProperty(ctx, tenantID, propertyID)
	if err != nil {
		return nil, err
	}
	if !hasLease {
		return nil, fmt.Errorf("you can only rate properties you have lived in: %w", common.ErrForbidden)
	}

	rating := &models.Rating{
		ID:         uuid.New(),
		PropertyID: propertyID,
		TenantID:   tenantID,
		Rating:     score,
		Review:     review,
	}

	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, err
	}

	if cacheErr := s.cacheSvc.DeleteRatingSummary(ctx, propertyID); cacheErr != nil {
		log.Printf("Failed to invalidate rating summary for property %s: %v", propertyID.String(), cacheErr)
	}

	logErr := s.activityRepo.Create(ctx, &models.ActivityLog{
		UserID:  tenantID,
		Action:  models.ActionCreateRating,
		Details: fmt.Sprintf("Rated property %s with %d stars", propertyID.String(), score),
	})
	if logErr != nil {
		log.Printf("Failed to write activity log (%s): %v", models.ActionCreateRating, logErr)
	}

	return rating, nil
}

func (s *ratingService) PropertyRatings(ctx context.Context, propertyID uuid.UUID) (*PropertyRatings, error) {
	ratings, err := s.ratingRepo.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	summary, err := s.summary(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	// Unrated properties serialize as an empty list, not null.
	if ratings == nil {
		ratings = []*models.RatingWithTenant{}
	}

	return &PropertyRatings{
		Ratings:       ratings,
		AverageRating: summary.AverageRating,
		TotalRatings:  summary.TotalRatings,
	}, nil
}

// summary serves the aggregate from Redis when warm and falls back to the
// database, repopulating the cache on a miss. Cache failures degrade to the
// database rather than failing the request.
func (s *ratingService) summary(ctx context.Context, propertyID uuid.UUID) (*models.RatingSummary, error) {
	cached, err := s.cacheSvc.GetRatingSummary(ctx, propertyID)
	if err != nil {
		log.Printf("Rating summary cache read failed for property %s: %v", propertyID.String(), err)
	} else if cached != nil {
		return cached, nil
	}

	summary, err := s.ratingRepo.Summary(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cacheSvc.SetRatingSummary(ctx, propertyID, summary, ratingSummaryTTL); cacheErr != nil {
		log.Printf("Rating summary cache write failed for property %s: %v", propertyID.String(), cacheErr)
	}

	return summary, nil
}

func (s *ratingService) MyRatings(ctx context.Context, tenantID uuid.UUID) ([]*models.RatingWithProperty, error) {
	return s.ratingRepo.ListByTenant(ctx, tenantID)
}

func (s *ratingService) AvailableToRate(ctx context.Context, tenantID uuid.UUID) ([]*models.RateableProperty, error) {
	return s.ratingRepo.ListRateable(ctx, tenantID)
}

// RefreshSummary recomputes and stores a property's rating aggregate, used
// by the background refresh job.
func (s *ratingService) RefreshSummary(ctx context.Context, propertyID uuid.UUID) error {
	summary, err := s.ratingRepo.Summary(ctx, propertyID)
	if err != nil {
		return err
	}
	return s.cacheSvc.SetRatingSummary(ctx, propertyID, summary, ratingSummaryTTL)
}
