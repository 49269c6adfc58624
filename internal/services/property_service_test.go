package services

import (
	"context"
	"testing"

	"rentora/internal/common"
	"rentora/internal/models"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PropertyServiceTestSuite struct {
	suite.Suite
	db              pgxmock.PgxPoolIface
	propertyRepo    *MockPropertyRepo
	unitRepo        *MockUnitRepo
	leaseRepo       *MockLeaseRepo
	ratingRepo      *MockRatingRepo
	maintenanceRepo *MockMaintenanceRepo
	userRepo        *MockUserRepo
	activityRepo    *MockActivityLogRepo
	cacheSvc        *MockCacheService
	service         PropertyService
	ctx             context.Context

	landlordID uuid.UUID
	propertyID uuid.UUID
	property   *models.Property
}

func (s *PropertyServiceTestSuite) SetupTest() {
	db, err := pgxmock.NewPool()
	s.Require().NoError(err)
	s.db = db

	s.propertyRepo = new(MockPropertyRepo)
	s.unitRepo = new(MockUnitRepo)
	s.leaseRepo = new(MockLeaseRepo)
	s.ratingRepo = new(MockRatingRepo)
	s.maintenanceRepo = new(MockMaintenanceRepo)
	s.userRepo = new(MockUserRepo)
	s.activityRepo = new(MockActivityLogRepo)
	s.cacheSvc = new(MockCacheService)
	s.service = NewPropertyService(s.db, s.propertyRepo, s.unitRepo, s.leaseRepo,
		s.ratingRepo, s.maintenanceRepo, s.userRepo, s.activityRepo, s.cacheSvc)
	s.ctx = context.Background()

	s.landlordID = uuid.New()
	s.propertyID = uuid.New()
	s.property = &models.Property{
		ID:         s.propertyID,
		LandlordID: s.landlordID,
		Title:      "Sunset Apartments",
		Location:   "Nairobi",
		Status:     models.PropertyStatusApproved,
	}
}

func (s *PropertyServiceTestSuite) TearDownTest() {
	s.db.Close()
}

func (s *PropertyServiceTestSuite) TestCreateStartsPendingWithUnits() {
	s.userRepo.On("GetByID", s.ctx, s.landlordID).
		Return(&models.User{ID: s.landlordID, Role: models.RoleLandlord, IsVerified: true}, nil)
	s.propertyRepo.On("Create", s.ctx, mock.AnythingOfType("*models.Property")).Return(nil)
	s.activityRepo.On("Create", s.ctx, mock.Anything).Return(nil)

	property, err := s.service.Create(s.ctx, s.landlordID, &CreatePropertyRequest{
		Title:    "Sunset Apartments",
		Location: "Nairobi",
		Units: []*UnitInput{
			{UnitNumber: "A1", Type: "1-bedroom", RentAmount: 15000},
			{UnitNumber: "A2", Type: "2-bedroom", RentAmount: 25000},
		},
	})

	s.NoError(err)
	s.Require().NotNil(property)
	s.Equal(models.PropertyStatusPending, property.Status)
	s.Require().Len(property.Units, 2)
	s.Equal(models.UnitStatusAvailable, property.Units[0].Status)
	s.Equal(property.ID, property.Units[0].PropertyID)
}

func (s *PropertyServiceTestSuite) TestCreateRejectsUnverifiedLandlord() {
	s.userRepo.On("GetByID", s.ctx, s.landlordID).
		Return(&models.User{ID: s.landlordID, Role: models.RoleLandlord, IsVerified: false}, nil)

	property, err := s.service.Create(s.ctx, s.landlordID, &CreatePropertyRequest{
		Title:    "Sunset Apartments",
		Location: "Nairobi",
	})

	s.Nil(property)
	s.ErrorIs(err, common.ErrForbidden)
	s.propertyRepo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *PropertyServiceTestSuite) TestUpdateStatusApprovesPending() {
	s.property.Status = models.PropertyStatusPending
	s.propertyRepo.On("GetByID", s.ctx, s.propertyID).Return(s.property, nil)
	s.propertyRepo.On("UpdateStatus", s.ctx, s.propertyID, models.PropertyStatusApproved).Return(nil)
	s.cacheSvc.On("DeleteProperty", s.ctx, s.propertyID).Return(nil)
	s.activityRepo.On("Create", s.ctx, mock.Anything).Return(nil)

	adminID := uuid.New()
	property, err := s.service.UpdateStatus(s.ctx, s.propertyID, adminID, models.PropertyStatusApproved)

	s.NoError(err)
	s.Equal(models.PropertyStatusApproved, property.Status)
}

func (s *PropertyServiceTestSuite) TestUpdateStatusRejectsNonPending() {
	s.propertyRepo.On("GetByID", s.ctx, s.propertyID).Return(s.property, nil)

	adminID := uuid.New()
	property, err := s.service.UpdateStatus(s.ctx, s.propertyID, adminID, models.PropertyStatusRejected)

	s.Nil(property)
	s.ErrorIs(err, common.ErrInvalidInput)
	s.propertyRepo.AssertNotCalled(s.T(), "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func (s *PropertyServiceTestSuite) TestDeleteCascadesInOneTransaction() {
	s.propertyRepo.On("GetByID", s.ctx, s.propertyID).Return(s.property, nil)

	s.db.ExpectBegin()
	s.leaseRepo.On("TerminateByPropertyTx", s.ctx, mock.Anything, s.propertyID).Return(nil)
	s.ratingRepo.On("DeleteByPropertyTx", s.ctx, mock.Anything, s.propertyID).Return(nil)
	s.maintenanceRepo.On("DeleteByPropertyTx", s.ctx, mock.Anything, s.propertyID).Return(nil)
	s.unitRepo.On("DeleteByPropertyTx", s.ctx, mock.Anything, s.propertyID).Return(nil)
	s.propertyRepo.On("DeleteTx", s.ctx, mock.Anything, s.propertyID).Return(nil)
	s.db.ExpectCommit()
	s.db.ExpectRollback()

	s.cacheSvc.On("DeleteProperty", s.ctx, s.propertyID).Return(nil)
	s.activityRepo.On("Create", s.ctx, mock.Anything).Return(nil)

	err := s.service.Delete(s.ctx, s.propertyID, s.landlordID, models.RoleLandlord)

	s.NoError(err)
	s.NoError(s.db.ExpectationsWereMet())
	s.leaseRepo.AssertExpectations(s.T())
	s.propertyRepo.AssertExpectations(s.T())
}

func (s *PropertyServiceTestSuite) TestDeleteRollsBackOnFailure() {
	s.propertyRepo.On("GetByID", s.ctx, s.propertyID).Return(s.property, nil)

	s.db.ExpectBegin()
	s.leaseRepo.On("TerminateByPropertyTx", s.ctx, mock.Anything, s.propertyID).Return(nil)
	s.ratingRepo.On("DeleteByPropertyTx", s.ctx, mock.Anything, s.propertyID).Return(common.ErrNotFound)
	s.db.ExpectRollback()

	err := s.service.Delete(s.ctx, s.propertyID, s.landlordID, models.RoleLandlord)

	s.Error(err)
	s.propertyRepo.AssertNotCalled(s.T(), "DeleteTx", mock.Anything, mock.Anything, mock.Anything)
	s.NoError(s.db.ExpectationsWereMet())
}

func (s *PropertyServiceTestSuite) TestDeleteRequiresOwnerOrAdmin() {
	s.propertyRepo.On("GetByID", s.ctx, s.propertyID).Return(s.property, nil)

	err := s.service.Delete(s.ctx, s.propertyID, uuid.New(), models.RoleLandlord)

	s.ErrorIs(err, common.ErrNotAuthorized)
}

func (s *PropertyServiceTestSuite) TestDeleteAllowsAdmin() {
	s.propertyRepo.On("GetByID", s.ctx, s.propertyID).Return(s.property, nil)

	s.db.ExpectBegin()
	s.leaseRepo.On("TerminateByPropertyTx", s.ctx, mock.Anything, s.propertyID).Return(nil)
	s.ratingRepo.On("DeleteByPropertyTx", s.ctx, mock.Anything, s.propertyID).Return(nil)
	s.maintenanceRepo.On("DeleteByPropertyTx", s.ctx, mock.Anything, s.propertyID).Return(nil)
	s.unitRepo.On("DeleteByPropertyTx", s.ctx, mock.Anything, s.propertyID).Return(nil)
	s.propertyRepo.On("DeleteTx", s.ctx, mock.Anything, s.propertyID).Return(nil)
	s.db.ExpectCommit()
	s.db.ExpectRollback()

	s.cacheSvc.On("DeleteProperty", s.ctx, s.propertyID).Return(nil)
	s.activityRepo.On("Create", s.ctx, mock.Anything).Return(nil)

	err := s.service.Delete(s.ctx, s.propertyID, uuid.New(), models.RoleAdmin)

	s.NoError(err)
}

func (s *PropertyServiceTestSuite) TestSetUnitStatusRejectsOccupied() {
	unit := &models.Unit{
		ID:         uuid.New(),
		PropertyID: s.propertyID,
		UnitNumber: "A1",
		Status:     models.UnitStatusOccupied,
	}
	s.propertyRepo.On("GetByID", s.ctx, s.propertyID).Return(s.property, nil)
	s.unitRepo.On("GetByID", s.ctx, s.propertyID, unit.ID).Return(unit, nil)

	err := s.service.SetUnitStatus(s.ctx, s.propertyID, unit.ID, s.landlordID, models.UnitStatusMaintenance)

	s.ErrorIs(err, common.ErrUnitUnavailable)
	s.unitRepo.AssertNotCalled(s.T(), "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PropertyServiceTestSuite) TestSetUnitStatusRejectsOccupiedTarget() {
	err := s.service.SetUnitStatus(s.ctx, s.propertyID, uuid.New(), s.landlordID, models.UnitStatusOccupied)

	s.ErrorIs(err, common.ErrInvalidInput)
	s.propertyRepo.AssertNotCalled(s.T(), "GetByID", mock.Anything, mock.Anything)
}

func (s *PropertyServiceTestSuite) TestStats() {
	s.userRepo.On("CountByRole", s.ctx, models.RoleLandlord).Return(4, nil)
	s.userRepo.On("CountByRole", s.ctx, models.RoleTenant).Return(23, nil)
	s.propertyRepo.On("Count", s.ctx).Return(9, nil)
	s.propertyRepo.On("CountByStatus", s.ctx, models.PropertyStatusPending).Return(2, nil)

	stats, err := s.service.Stats(s.ctx)

	s.NoError(err)
	s.Require().NotNil(stats)
	s.Equal(4, stats.TotalLandlords)
	s.Equal(23, stats.TotalTenants)
	s.Equal(9, stats.TotalProperties)
	s.Equal(2, stats.PendingProperties)
}

func TestPropertyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PropertyServiceTestSuite))
}
