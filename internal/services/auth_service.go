package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"rentora/internal/caching"
	"rentora/internal/common"
	"rentora/internal/models"
	"rentora/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and JWT token management
type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	ValidateToken(ctx context.Context, token string) (*TokenClaims, error)
	CleanupExpiredTokens(ctx context.Context) error
}

type RegisterRequest struct {
	Name     string
	Email    string
	Password string
	Role     string
	Phone    string
}

// TokenClaims represents JWT claims
type TokenClaims struct {
	UserID  string `json:"user_id"`
	Role    string `json:"role"`
	TokenID string `json:"token_id"`
	jwt.RegisteredClaims
}

type authService struct {
	userRepo     repositories.UserRepository
	activityRepo repositories.ActivityLogRepository
	cacheSvc     caching.CacheService
	jwtSecret    []byte
	tokenTTL     time.Duration
	refreshTTL   time.Duration
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo repositories.UserRepository, activityRepo repositories.ActivityLogRepository,
	cacheSvc caching.CacheService, jwtSecret string, tokenTTL, refreshTTL time.Duration) AuthService {
	return &authService{
		userRepo:     userRepo,
		activityRepo: activityRepo,
		cacheSvc:     cacheSvc,
		jwtSecret:    []byte(jwtSecret),
		tokenTTL:     tokenTTL,
		refreshTTL:   refreshTTL,
	}
}

// Register creates a landlord or tenant account. Admin accounts are seeded
// out of band and cannot be self-registered.
func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	if req.Role == "" {
		req.Role = models.RoleTenant
	}
	if req.Role != models.RoleLandlord && req.Role != models.RoleTenant {
		return nil, fmt.Errorf("role must be 'landlord' or 'tenant': %w", common.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := &models.User{
		ID:                 uuid.New(),
		Name:               req.Name,
		Email:              strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:       string(hash),
		Role:               req.Role,
		Phone:              req.Phone,
		Status:             models.UserStatusActive,
		VerificationStatus: models.VerificationUnsubmitted,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.audit(ctx, user.ID, models.ActionRegister, fmt.Sprintf("Registered as %s", user.Role))
	return user, nil
}

// Login verifies credentials and issues a token pair
func (s *authService) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidPassword
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrInvalidPassword
	}
	if user.Status != models.UserStatusActive {
		return nil, fmt.Errorf("account is %s: %w", user.Status, common.ErrForbidden)
	}

	s.audit(ctx, user.ID, models.ActionLogin, "Logged in")
	return s.generateTokens(ctx, user)
}

// generateTokens issues a signed access token plus an opaque refresh token
// stored hashed in the cache
func (s *authService) generateTokens(ctx context.Context, user *models.User) (*models.TokenResponse, error) {
	now := time.Now()
	tokenID := uuid.NewString()

	claims := TokenClaims{
		UserID:  user.ID.String(),
		Role:    user.Role,
		TokenID: tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "rentora-auth",
			Subject:   user.ID.String(),
			Audience:  jwt.ClaimStrings{"rentora-api"},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        tokenID,
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessTokenString, err := accessToken.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign JWT: %v", err)
	}

	refreshToken := s.generateSecureToken()
	refreshTokenHash, err := s.hashToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to hash refresh token: %v", err)
	}

	refreshTokenData := fmt.Sprintf("%s:%s:%d", user.ID.String(), user.Role, now.Add(s.refreshTTL).Unix())
	cacheKey := fmt.Sprintf("refresh_token:%s", refreshTokenHash)
	if err := s.cacheSvc.SetString(ctx, cacheKey, refreshTokenData, s.refreshTTL); err != nil {
		log.Printf("Failed to store refresh token: %v", err)
		// Continue - token generation succeeded
	}

	return &models.TokenResponse{
		AccessToken:  accessTokenString,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.tokenTTL.Seconds()),
		RefreshToken: refreshToken,
		UserID:       user.ID.String(),
		Role:         user.Role,
		IssuedAt:     now,
	}, nil
}

// RefreshToken rotates the refresh token and issues a new token pair
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	refreshTokenHash, err := s.hashToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to hash refresh token: %v", err)
	}

	cacheKey := fmt.Sprintf("refresh_token:%s", refreshTokenHash)
	tokenData, err := s.cacheSvc.GetString(ctx, cacheKey)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", common.ErrNotAuthorized)
	}

	parts := strings.Split(tokenData, ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid token data: %w", common.ErrNotAuthorized)
	}

	userIDStr, expiryStr := parts[0], parts[2]
	expiry, err := strconv.ParseInt(expiryStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid token expiry: %w", common.ErrNotAuthorized)
	}
	if time.Now().Unix() > expiry {
		s.cacheSvc.Delete(ctx, cacheKey)
		return nil, fmt.Errorf("refresh token expired: %w", common.ErrNotAuthorized)
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in token: %w", common.ErrNotAuthorized)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", common.ErrNotAuthorized)
	}
	if user.Status != models.UserStatusActive {
		s.cacheSvc.Delete(ctx, cacheKey)
		return nil, fmt.Errorf("account is %s: %w", user.Status, common.ErrForbidden)
	}

	// Rotate: the old refresh token is single use
	s.cacheSvc.Delete(ctx, cacheKey)

	return s.generateTokens(ctx, user)
}

// Logout revokes the refresh token
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	refreshTokenHash, err := s.hashToken(refreshToken)
	if err != nil {
		return fmt.Errorf("failed to hash refresh token: %v", err)
	}
	return s.cacheSvc.Delete(ctx, fmt.Sprintf("refresh_token:%s", refreshTokenHash))
}

// ValidateToken validates a JWT access token
func (s *authService) ValidateToken(ctx context.Context, token string) (*TokenClaims, error) {
	jwtToken, err := jwt.ParseWithClaims(token, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %v", err)
	}

	if claims, ok := jwtToken.Claims.(*TokenClaims); ok && jwtToken.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token claims")
}

// CleanupExpiredTokens reports the number of refresh tokens still live in
// Redis. TTLs handle the actual expiry, so the scheduled sweep is an
// observability pass over the session keyspace rather than a deleter.
func (s *authService) CleanupExpiredTokens(ctx context.Context) error {
	live, err := s.cacheSvc.CountKeys(ctx, "refresh_token:*")
	if err != nil {
		return fmt.Errorf("failed to scan refresh tokens: %w", err)
	}
	log.Printf("Refresh token sweep: %d live sessions, expired entries removed by TTL", live)
	return nil
}

func (s *authService) audit(ctx context.Context, userID uuid.UUID, action, details string) {
	err := s.activityRepo.Create(ctx, &models.ActivityLog{
		UserID:  userID,
		Action:  action,
		Details: details,
	})
	if err != nil {
		log.Printf("Failed to write activity log (%s): %v", action, err)
	}
}

// generateSecureToken generates a cryptographically secure random token
func (s *authService) generateSecureToken() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)
	return base64.URLEncoding.EncodeToString(bytes)
}

// hashToken creates a SHA-256 hash of the token for secure storage
func (s *authService) hashToken(token string) (string, error) {
	hasher := sha256.New()
	_, err := hasher.Write([]byte(token))
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
