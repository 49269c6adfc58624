package repositories

import (
	"context"
	"testing"
	"time"

	"rentora/internal/common"
	"rentora/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/suite"
)

type RatingRepoTestSuite struct {
	suite.Suite
	mock pgxmock.PgxPoolIface
	repo RatingRepository
	ctx  context.Context
}

func (s *RatingRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	s.Require().NoError(err)
	s.mock = mock
	s.repo = NewRatingRepository(mock)
	s.ctx = context.Background()
}

func (s *RatingRepoTestSuite) TearDownTest() {
	s.mock.Close()
}

func (s *RatingRepoTestSuite) TestCreateSuccess() {
	review := "Great location"
	rating := &models.Rating{
		ID:         uuid.New(),
		PropertyID: uuid.New(),
		TenantID:   uuid.New(),
		Rating:     5,
		Review:     &review,
	}
	s.mock.ExpectExec(`INSERT INTO ratings`).
		WithArgs(rating.ID, rating.PropertyID, rating.TenantID, rating.Rating, rating.Review).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.repo.Create(s.ctx, rating)

	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *RatingRepoTestSuite) TestCreateDuplicate() {
	rating := &models.Rating{
		ID:         uuid.New(),
		PropertyID: uuid.New(),
		TenantID:   uuid.New(),
		Rating:     4,
	}
	s.mock.ExpectExec(`INSERT INTO ratings`).
		WithArgs(rating.ID, rating.PropertyID, rating.TenantID, rating.Rating, rating.Review).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "ratings_property_id_tenant_id_key"})

	err := s.repo.Create(s.ctx, rating)

	s.ErrorIs(err, common.ErrDuplicateRating)
}

func (s *RatingRepoTestSuite) TestSummary() {
	propertyID := uuid.New()
	rows := pgxmock.NewRows([]string{"coalesce", "count"}).AddRow(4.3, 7)
	s.mock.ExpectQuery(`SELECT COALESCE`).WithArgs(propertyID).WillReturnRows(rows)

	summary, err := s.repo.Summary(s.ctx, propertyID)

	s.NoError(err)
	s.Require().NotNil(summary)
	s.Equal(4.3, summary.AverageRating)
	s.Equal(7, summary.TotalRatings)
}

func (s *RatingRepoTestSuite) TestSummaryNoRatings() {
	propertyID := uuid.New()
	rows := pgxmock.NewRows([]string{"coalesce", "count"}).AddRow(0.0, 0)
	s.mock.ExpectQuery(`SELECT COALESCE`).WithArgs(propertyID).WillReturnRows(rows)

	summary, err := s.repo.Summary(s.ctx, propertyID)

	s.NoError(err)
	s.Equal(0.0, summary.AverageRating)
	s.Equal(0, summary.TotalRatings)
}

func (s *RatingRepoTestSuite) TestListByProperty() {
	propertyID := uuid.New()
	tenantID := uuid.New()
	review := "Would lease again"
	rows := pgxmock.NewRows([]string{"id", "property_id", "tenant_id", "rating", "review", "created_at", "name"}).
		AddRow(uuid.New(), propertyID, tenantID, 5, &review, time.Now(), "Amina")
	s.mock.ExpectQuery(`SELECT r.id, r.property_id`).WithArgs(propertyID).WillReturnRows(rows)

	ratings, err := s.repo.ListByProperty(s.ctx, propertyID)

	s.NoError(err)
	s.Require().Len(ratings, 1)
	s.Equal(5, ratings[0].Rating.Rating)
	s.Equal("Amina", ratings[0].TenantName)
}

func (s *RatingRepoTestSuite) TestListRateableEmpty() {
	tenantID := uuid.New()
	rows := pgxmock.NewRows([]string{"id", "title", "location"})
	s.mock.ExpectQuery(`SELECT DISTINCT p.id`).WithArgs(tenantID).WillReturnRows(rows)

	properties, err := s.repo.ListRateable(s.ctx, tenantID)

	s.NoError(err)
	s.Empty(properties)
}

func TestRatingRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RatingRepoTestSuite))
}
