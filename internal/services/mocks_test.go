package services

import (
	"context"
	"time"

	"rentora/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type MockPropertyRepo struct {
	mock.Mock
}

func (m *MockPropertyRepo) Create(ctx context.Context, property *models.Property) error {
	return m.Called(ctx, property).Error(0)
}

func (m *MockPropertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *MockPropertyRepo) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.Property, error) {
	args := m.Called(ctx, landlordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Property), args.Error(1)
}

func (m *MockPropertyRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*models.Property, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Property), args.Error(1)
}

func (m *MockPropertyRepo) List(ctx context.Context, limit, offset int) ([]*models.Property, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Property), args.Error(1)
}

func (m *MockPropertyRepo) Update(ctx context.Context, property *models.Property) error {
	return m.Called(ctx, property).Error(0)
}

func (m *MockPropertyRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockPropertyRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockPropertyRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

func (m *MockPropertyRepo) DeleteTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	return m.Called(ctx, tx, id).Error(0)
}

type MockUnitRepo struct {
	mock.Mock
}

func (m *MockUnitRepo) Add(ctx context.Context, unit *models.Unit) error {
	return m.Called(ctx, unit).Error(0)
}

func (m *MockUnitRepo) GetByID(ctx context.Context, propertyID, id uuid.UUID) (*models.Unit, error) {
	args := m.Called(ctx, propertyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Unit), args.Error(1)
}

func (m *MockUnitRepo) GetByInviteCode(ctx context.Context, code string) (*models.Unit, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Unit), args.Error(1)
}

func (m *MockUnitRepo) UpdateStatus(ctx context.Context, propertyID, id uuid.UUID, status string) error {
	return m.Called(ctx, propertyID, id, status).Error(0)
}

func (m *MockUnitRepo) SetInviteCode(ctx context.Context, id uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, id, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockUnitRepo) OccupyTx(ctx context.Context, tx pgx.Tx, propertyID, id, tenantID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tx, propertyID, id, tenantID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUnitRepo) ReleaseTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	return m.Called(ctx, tx, id).Error(0)
}

func (m *MockUnitRepo) DeleteByPropertyTx(ctx context.Context, tx pgx.Tx, propertyID uuid.UUID) error {
	return m.Called(ctx, tx, propertyID).Error(0)
}

type MockLeaseRepo struct {
	mock.Mock
}

func (m *MockLeaseRepo) CreateTx(ctx context.Context, tx pgx.Tx, lease *models.Lease) error {
	return m.Called(ctx, tx, lease).Error(0)
}

func (m *MockLeaseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lease), args.Error(1)
}

func (m *MockLeaseRepo) GetActiveByTenant(ctx context.Context, tenantID uuid.UUID) (*models.LeaseWithProperty, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LeaseWithProperty), args.Error(1)
}

func (m *MockLeaseRepo) ExistsForTenantAndProperty(ctx context.Context, tenantID, propertyID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, propertyID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeaseRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.LeaseWithProperty, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LeaseWithProperty), args.Error(1)
}

func (m *MockLeaseRepo) TerminateByPropertyTx(ctx context.Context, tx pgx.Tx, propertyID uuid.UUID) error {
	return m.Called(ctx, tx, propertyID).Error(0)
}

func (m *MockLeaseRepo) ListExpired(ctx context.Context, limit int) ([]*models.Lease, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Lease), args.Error(1)
}

func (m *MockLeaseRepo) ExpireTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	return m.Called(ctx, tx, id).Error(0)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmailAndRole(ctx context.Context, email, role string) (*models.User, error) {
	args := m.Called(ctx, email, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepo) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepo) CountByRole(ctx context.Context, role string) (int, error) {
	args := m.Called(ctx, role)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepo) AppendVerificationDoc(ctx context.Context, id uuid.UUID, docURL string) error {
	return m.Called(ctx, id, docURL).Error(0)
}

func (m *MockUserRepo) SetVerification(ctx context.Context, id uuid.UUID, status string, verified bool) error {
	return m.Called(ctx, id, status, verified).Error(0)
}

type MockActivityLogRepo struct {
	mock.Mock
}

func (m *MockActivityLogRepo) Create(ctx context.Context, entry *models.ActivityLog) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockActivityLogRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.ActivityLog, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ActivityLog), args.Error(1)
}

type MockRatingRepo struct {
	mock.Mock
}

func (m *MockRatingRepo) Create(ctx context.Context, rating *models.Rating) error {
	return m.Called(ctx, rating).Error(0)
}

func (m *MockRatingRepo) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.RatingWithTenant, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RatingWithTenant), args.Error(1)
}

func (m *MockRatingRepo) Summary(ctx context.Context, propertyID uuid.UUID) (*models.RatingSummary, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RatingSummary), args.Error(1)
}

func (m *MockRatingRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.RatingWithProperty, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RatingWithProperty), args.Error(1)
}

func (m *MockRatingRepo) ListRateable(ctx context.Context, tenantID uuid.UUID) ([]*models.RateableProperty, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RateableProperty), args.Error(1)
}

func (m *MockRatingRepo) DeleteByPropertyTx(ctx context.Context, tx pgx.Tx, propertyID uuid.UUID) error {
	return m.Called(ctx, tx, propertyID).Error(0)
}

type MockMaintenanceRepo struct {
	mock.Mock
}

func (m *MockMaintenanceRepo) Create(ctx context.Context, request *models.MaintenanceRequest) error {
	return m.Called(ctx, request).Error(0)
}

func (m *MockMaintenanceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.MaintenanceRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MaintenanceRequest), args.Error(1)
}

func (m *MockMaintenanceRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.MaintenanceRequestDetail, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MaintenanceRequestDetail), args.Error(1)
}

func (m *MockMaintenanceRepo) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.MaintenanceRequestDetail, error) {
	args := m.Called(ctx, landlordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MaintenanceRequestDetail), args.Error(1)
}

func (m *MockMaintenanceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockMaintenanceRepo) DeleteByPropertyTx(ctx context.Context, tx pgx.Tx, propertyID uuid.UUID) error {
	return m.Called(ctx, tx, propertyID).Error(0)
}

type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *MockPaymentRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Payment, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

func (m *MockPaymentRepo) UpdateStatusByCheckoutID(ctx context.Context, checkoutRequestID, status string, receipt *string) error {
	return m.Called(ctx, checkoutRequestID, status, receipt).Error(0)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetProperty(ctx context.Context, propertyID uuid.UUID) (*models.Property, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *MockCacheService) SetProperty(ctx context.Context, property *models.Property, ttl time.Duration) error {
	return m.Called(ctx, property, ttl).Error(0)
}

func (m *MockCacheService) DeleteProperty(ctx context.Context, propertyID uuid.UUID) error {
	return m.Called(ctx, propertyID).Error(0)
}

func (m *MockCacheService) GetRatingSummary(ctx context.Context, propertyID uuid.UUID) (*models.RatingSummary, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RatingSummary), args.Error(1)
}

func (m *MockCacheService) SetRatingSummary(ctx context.Context, propertyID uuid.UUID, summary *models.RatingSummary, ttl time.Duration) error {
	return m.Called(ctx, propertyID, summary, ttl).Error(0)
}

func (m *MockCacheService) DeleteRatingSummary(ctx context.Context, propertyID uuid.UUID) error {
	return m.Called(ctx, propertyID).Error(0)
}

func (m *MockCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCacheService) GetString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCacheService) CountKeys(ctx context.Context, pattern string) (int, error) {
	args := m.Called(ctx, pattern)
	return args.Int(0), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, user *models.User, kind NotificationType, subject, message string) {
	m.Called(ctx, user, kind, subject, message)
}

func (m *MockNotifier) SendContactMessage(ctx context.Context, fromName, fromEmail, message string) {
	m.Called(ctx, fromName, fromEmail, message)
}

type MockDaraja struct {
	mock.Mock
}

func (m *MockDaraja) InitiateSTKPush(ctx context.Context, phoneNumber string, amount float64, accountRef string) (*STKPushResponse, error) {
	args := m.Called(ctx, phoneNumber, amount, accountRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*STKPushResponse), args.Error(1)
}

func (m *MockDaraja) ParseCallback(rawData []byte) (*STKCallbackResult, error) {
	args := m.Called(rawData)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*STKCallbackResult), args.Error(1)
}
