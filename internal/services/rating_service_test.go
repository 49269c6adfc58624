package services

import (
	"context"
	"errors"
	"testing"

	"rentora/internal/common"
	"rentora/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RatingServiceTestSuite struct {
	suite.Suite
	ratingRepo   *MockRatingRepo
	leaseRepo    *MockLeaseRepo
	activityRepo *MockActivityLogRepo
	cacheSvc     *MockCacheService
	service      RatingService
	ctx          context.Context

	tenantID   uuid.UUID
	propertyID uuid.UUID
}

func (s *RatingServiceTestSuite) SetupTest() {
	s.ratingRepo = new(MockRatingRepo)
	s.leaseRepo = new(MockLeaseRepo)
	s.activityRepo = new(MockActivityLogRepo)
	s.cacheSvc = new(MockCacheService)
	s.service = NewRatingService(s.ratingRepo, s.leaseRepo, s.activityRepo, s.cacheSvc)
	s.ctx = context.Background()
	s.tenantID = uuid.New()
	s.propertyID = uuid.New()
}

func (s *RatingServiceTestSuite) TestCreateSuccess() {
	review := "Quiet building, responsive landlord"
	s.leaseRepo.On("ExistsForTenantAndProperty", s.ctx, s.tenantID, s.propertyID).Return(true, nil)
	s.ratingRepo.On("Create", s.ctx, mock.AnythingOfType("*models.Rating")).Return(nil)
	s.cacheSvc.On("DeleteRatingSummary", s.ctx, s.propertyID).Return(nil)
	s.activityRepo.On("Create", s.ctx, mock.AnythingOfType("*models.ActivityLog")).Return(nil)

	rating, err := s.service.Create(s.ctx, s.tenantID, s.propertyID, 4, &review)

	s.NoError(err)
	s.Require().NotNil(rating)
	s.Equal(4, rating.Rating)
	s.Equal(s.tenantID, rating.TenantID)
	s.Equal(s.propertyID, rating.PropertyID)
	s.Require().NotNil(rating.Review)
	s.Equal(review, *rating.Review)
	s.ratingRepo.AssertExpectations(s.T())
	s.cacheSvc.AssertExpectations(s.T())
}

func (s *RatingServiceTestSuite) TestCreateRequiresPriorLease() {
	s.leaseRepo.On("ExistsForTenantAndProperty", s.ctx, s.tenantID, s.propertyID).Return(false, nil)

	rating, err := s.service.Create(s.ctx, s.tenantID, s.propertyID, 5, nil)

	s.Nil(rating)
	s.ErrorIs(err, common.ErrForbidden)
	s.ratingRepo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *RatingServiceTestSuite) TestCreateDuplicate() {
	s.leaseRepo.On("ExistsForTenantAndProperty", s.ctx, s.tenantID, s.propertyID).Return(true, nil)
	s.ratingRepo.On("Create", s.ctx, mock.AnythingOfType("*models.Rating")).Return(common.ErrDuplicateRating)

	rating, err := s.service.Create(s.ctx, s.tenantID, s.propertyID, 3, nil)

	s.Nil(rating)
	s.ErrorIs(err, common.ErrDuplicateRating)
	s.cacheSvc.AssertNotCalled(s.T(), "DeleteRatingSummary", mock.Anything, mock.Anything)
}

func (s *RatingServiceTestSuite) TestPropertyRatingsCacheMiss() {
	ratings := []*models.RatingWithTenant{
		{Rating: models.Rating{ID: uuid.New(), PropertyID: s.propertyID, Rating: 5}, TenantName: "Amina"},
		{Rating: models.Rating{ID: uuid.New(), PropertyID: s.propertyID, Rating: 4}, TenantName: "Brian"},
	}
	summary := &models.RatingSummary{AverageRating: 4.5, TotalRatings: 2}

	s.ratingRepo.On("ListByProperty", s.ctx, s.propertyID).Return(ratings, nil)
	s.cacheSvc.On("GetRatingSummary", s.ctx, s.propertyID).Return(nil, nil)
	s.ratingRepo.On("Summary", s.ctx, s.propertyID).Return(summary, nil)
	s.cacheSvc.On("SetRatingSummary", s.ctx, s.propertyID, summary, ratingSummaryTTL).Return(nil)

	result, err := s.service.PropertyRatings(s.ctx, s.propertyID)

	s.NoError(err)
	s.Require().NotNil(result)
	s.Equal(4.5, result.AverageRating)
	s.Equal(2, result.TotalRatings)
	s.Len(result.Ratings, 2)
	s.cacheSvc.AssertExpectations(s.T())
}

func (s *RatingServiceTestSuite) TestPropertyRatingsCacheHit() {
	ratings := []*models.RatingWithTenant{}
	cached := &models.RatingSummary{AverageRating: 3.8, TotalRatings: 12}

	s.ratingRepo.On("ListByProperty", s.ctx, s.propertyID).Return(ratings, nil)
	s.cacheSvc.On("GetRatingSummary", s.ctx, s.propertyID).Return(cached, nil)

	result, err := s.service.PropertyRatings(s.ctx, s.propertyID)

	s.NoError(err)
	s.Equal(3.8, result.AverageRating)
	s.Equal(12, result.TotalRatings)
	s.ratingRepo.AssertNotCalled(s.T(), "Summary", mock.Anything, mock.Anything)
}

func (s *RatingServiceTestSuite) TestPropertyRatingsUnratedIsEmptyList() {
	summary := &models.RatingSummary{AverageRating: 0.0, TotalRatings: 0}

	s.ratingRepo.On("ListByProperty", s.ctx, s.propertyID).Return(nil, nil)
	s.cacheSvc.On("GetRatingSummary", s.ctx, s.propertyID).Return(nil, nil)
	s.ratingRepo.On("Summary", s.ctx, s.propertyID).Return(summary, nil)
	s.cacheSvc.On("SetRatingSummary", s.ctx, s.propertyID, summary, ratingSummaryTTL).Return(nil)

	result, err := s.service.PropertyRatings(s.ctx, s.propertyID)

	s.NoError(err)
	s.Require().NotNil(result)
	s.NotNil(result.Ratings)
	s.Empty(result.Ratings)
	s.Equal(0, result.TotalRatings)
}

func (s *RatingServiceTestSuite) TestPropertyRatingsCacheReadFailureFallsBack() {
	summary := &models.RatingSummary{AverageRating: 4.0, TotalRatings: 1}

	s.ratingRepo.On("ListByProperty", s.ctx, s.propertyID).Return([]*models.RatingWithTenant{}, nil)
	s.cacheSvc.On("GetRatingSummary", s.ctx, s.propertyID).Return(nil, errors.New("redis down"))
	s.ratingRepo.On("Summary", s.ctx, s.propertyID).Return(summary, nil)
	s.cacheSvc.On("SetRatingSummary", s.ctx, s.propertyID, summary, ratingSummaryTTL).Return(errors.New("redis down"))

	result, err := s.service.PropertyRatings(s.ctx, s.propertyID)

	s.NoError(err)
	s.Equal(4.0, result.AverageRating)
}

func (s *RatingServiceTestSuite) TestRefreshSummary() {
	summary := &models.RatingSummary{AverageRating: 4.2, TotalRatings: 9}
	s.ratingRepo.On("Summary", s.ctx, s.propertyID).Return(summary, nil)
	s.cacheSvc.On("SetRatingSummary", s.ctx, s.propertyID, summary, ratingSummaryTTL).Return(nil)

	err := s.service.RefreshSummary(s.ctx, s.propertyID)

	s.NoError(err)
	s.cacheSvc.AssertExpectations(s.T())
}

func TestRatingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RatingServiceTestSuite))
}
