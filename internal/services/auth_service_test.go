package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"rentora/internal/common"
	"rentora/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceTestSuite struct {
	suite.Suite
	userRepo     *MockUserRepo
	activityRepo *MockActivityLogRepo
	cacheSvc     *MockCacheService
	service      AuthService
	ctx          context.Context
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.userRepo = new(MockUserRepo)
	s.activityRepo = new(MockActivityLogRepo)
	s.cacheSvc = new(MockCacheService)
	s.service = NewAuthService(s.userRepo, s.activityRepo, s.cacheSvc,
		"test-secret", 15*time.Minute, 7*24*time.Hour)
	s.ctx = context.Background()
}

func refreshTokenData(user *models.User, expiry time.Time) string {
	return fmt.Sprintf("%s:%s:%d", user.ID.String(), user.Role, expiry.Unix())
}

func (s *AuthServiceTestSuite) activeUser(password string) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	s.Require().NoError(err)
	return &models.User{
		ID:           uuid.New(),
		Name:         "Jane Wanjiru",
		Email:        "jane@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleLandlord,
		Status:       models.UserStatusActive,
	}
}

func (s *AuthServiceTestSuite) TestRegisterNormalizesEmail() {
	s.userRepo.On("Create", s.ctx, mock.AnythingOfType("*models.User")).Return(nil)
	s.activityRepo.On("Create", s.ctx, mock.Anything).Return(nil)

	user, err := s.service.Register(s.ctx, &RegisterRequest{
		Name:     "Jane Wanjiru",
		Email:    "  Jane@Example.COM ",
		Password: "supersecret",
		Role:     models.RoleLandlord,
	})

	s.NoError(err)
	s.Require().NotNil(user)
	s.Equal("jane@example.com", user.Email)
	s.Equal(models.UserStatusActive, user.Status)
	s.Equal(models.VerificationUnsubmitted, user.VerificationStatus)
	s.NotEqual("supersecret", user.PasswordHash)
}

func (s *AuthServiceTestSuite) TestRegisterDefaultsRoleToTenant() {
	s.userRepo.On("Create", s.ctx, mock.AnythingOfType("*models.User")).Return(nil)
	s.activityRepo.On("Create", s.ctx, mock.Anything).Return(nil)

	user, err := s.service.Register(s.ctx, &RegisterRequest{
		Name:     "Brian Otieno",
		Email:    "brian@example.com",
		Password: "supersecret",
	})

	s.NoError(err)
	s.Equal(models.RoleTenant, user.Role)
}

func (s *AuthServiceTestSuite) TestRegisterRejectsAdminRole() {
	user, err := s.service.Register(s.ctx, &RegisterRequest{
		Name:     "Sneaky",
		Email:    "admin@example.com",
		Password: "supersecret",
		Role:     models.RoleAdmin,
	})

	s.Nil(user)
	s.ErrorIs(err, common.ErrInvalidInput)
	s.userRepo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *AuthServiceTestSuite) TestLoginSuccess() {
	user := s.activeUser("supersecret")
	s.userRepo.On("GetByEmail", s.ctx, "jane@example.com").Return(user, nil)
	s.activityRepo.On("Create", s.ctx, mock.Anything).Return(nil)
	s.cacheSvc.On("SetString", s.ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string"),
		7*24*time.Hour).Return(nil)

	tokens, err := s.service.Login(s.ctx, "jane@example.com", "supersecret")

	s.NoError(err)
	s.Require().NotNil(tokens)
	s.NotEmpty(tokens.AccessToken)
	s.NotEmpty(tokens.RefreshToken)
	s.Equal("Bearer", tokens.TokenType)
	s.Equal(user.ID.String(), tokens.UserID)
	s.Equal(models.RoleLandlord, tokens.Role)

	claims, err := s.service.ValidateToken(s.ctx, tokens.AccessToken)
	s.NoError(err)
	s.Equal(user.ID.String(), claims.UserID)
	s.Equal(models.RoleLandlord, claims.Role)
}

func (s *AuthServiceTestSuite) TestLoginWrongPassword() {
	user := s.activeUser("supersecret")
	s.userRepo.On("GetByEmail", s.ctx, "jane@example.com").Return(user, nil)

	tokens, err := s.service.Login(s.ctx, "jane@example.com", "wrongpassword")

	s.Nil(tokens)
	s.ErrorIs(err, common.ErrInvalidPassword)
}

func (s *AuthServiceTestSuite) TestLoginUnknownEmailLooksLikeWrongPassword() {
	s.userRepo.On("GetByEmail", s.ctx, "nobody@example.com").Return(nil, common.ErrNotFound)

	tokens, err := s.service.Login(s.ctx, "nobody@example.com", "whatever")

	s.Nil(tokens)
	s.ErrorIs(err, common.ErrInvalidPassword)
}

func (s *AuthServiceTestSuite) TestLoginInactiveAccount() {
	user := s.activeUser("supersecret")
	user.Status = models.UserStatusInactive
	s.userRepo.On("GetByEmail", s.ctx, "jane@example.com").Return(user, nil)

	tokens, err := s.service.Login(s.ctx, "jane@example.com", "supersecret")

	s.Nil(tokens)
	s.ErrorIs(err, common.ErrForbidden)
}

func (s *AuthServiceTestSuite) TestRefreshTokenUnknown() {
	s.cacheSvc.On("GetString", s.ctx, mock.AnythingOfType("string")).Return("", common.ErrNotFound)

	tokens, err := s.service.RefreshToken(s.ctx, "bogus-refresh-token")

	s.Nil(tokens)
	s.ErrorIs(err, common.ErrNotAuthorized)
}

func (s *AuthServiceTestSuite) TestRefreshTokenRotates() {
	user := s.activeUser("supersecret")
	data := refreshTokenData(user, time.Now().Add(time.Hour))
	s.cacheSvc.On("GetString", s.ctx, mock.AnythingOfType("string")).Return(data, nil)
	s.userRepo.On("GetByID", s.ctx, user.ID).Return(user, nil)
	s.cacheSvc.On("Delete", s.ctx, mock.AnythingOfType("string")).Return(nil)
	s.cacheSvc.On("SetString", s.ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string"),
		7*24*time.Hour).Return(nil)

	tokens, err := s.service.RefreshToken(s.ctx, "valid-refresh-token")

	s.NoError(err)
	s.Require().NotNil(tokens)
	s.NotEmpty(tokens.AccessToken)
	s.cacheSvc.AssertCalled(s.T(), "Delete", s.ctx, mock.AnythingOfType("string"))
}

func (s *AuthServiceTestSuite) TestRefreshTokenExpired() {
	user := s.activeUser("supersecret")
	data := refreshTokenData(user, time.Now().Add(-time.Hour))
	s.cacheSvc.On("GetString", s.ctx, mock.AnythingOfType("string")).Return(data, nil)
	s.cacheSvc.On("Delete", s.ctx, mock.AnythingOfType("string")).Return(nil)

	tokens, err := s.service.RefreshToken(s.ctx, "stale-refresh-token")

	s.Nil(tokens)
	s.ErrorIs(err, common.ErrNotAuthorized)
}

func (s *AuthServiceTestSuite) TestCleanupReportsLiveSessionCount() {
	s.cacheSvc.On("CountKeys", s.ctx, "refresh_token:*").Return(3, nil)

	err := s.service.CleanupExpiredTokens(s.ctx)

	s.NoError(err)
	s.cacheSvc.AssertExpectations(s.T())
}

func (s *AuthServiceTestSuite) TestCleanupPropagatesScanFailure() {
	s.cacheSvc.On("CountKeys", s.ctx, "refresh_token:*").
		Return(0, errors.New("redis: connection refused"))

	err := s.service.CleanupExpiredTokens(s.ctx)

	s.Error(err)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
