package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"rentora/internal/common"
	"rentora/internal/models"
	"rentora/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const verificationDocExpiry = 15 * time.Minute

type UpdateProfileRequest struct {
	Name  *string
	Phone *string
}

type UserService interface {
	Me(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*models.User, error)
	SubmitVerificationDoc(ctx context.Context, userID uuid.UUID, filename, contentType string, reader io.Reader, size int64) (string, error)
	VerificationDocURL(ctx context.Context, objectName string) (string, error)

	// Admin operations
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
	CreateUser(ctx context.Context, adminID uuid.UUID, req *AdminCreateUserRequest) (*models.User, error)
	UpdateUser(ctx context.Context, adminID, userID uuid.UUID, req *AdminUpdateUserRequest) (*models.User, error)
	ReviewVerification(ctx context.Context, adminID, userID uuid.UUID, approve bool) error
	SetStatus(ctx context.Context, adminID, userID uuid.UUID, status string) error
	DeleteUser(ctx context.Context, adminID, userID uuid.UUID) error
}

type AdminCreateUserRequest struct {
	Name     string
	Email    string
	Password string
	Role     string
	Phone    string
}

// AdminUpdateUserRequest carries partial updates; a non-nil Password is
// rehashed.
type AdminUpdateUserRequest struct {
	Name     *string
	Phone    *string
	Role     *string
	Password *string
}

type userService struct {
	userRepo     repositories.UserRepository
	activityRepo repositories.ActivityLogRepository
	storage      StorageService
	bucket       string
	notifier     NotificationService
}

func NewUserService(userRepo repositories.UserRepository, activityRepo repositories.ActivityLogRepository,
	storage StorageService, bucket string, notifier NotificationService) UserService {
	return &userService{
		userRepo:     userRepo,
		activityRepo: activityRepo,
		storage:      storage,
		bucket:       bucket,
		notifier:     notifier,
	}
}

func (s *userService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFound("User")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*models.User, error) {
	user, err := s.Me(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.audit(ctx, userID, models.ActionUpdateUser, "Updated profile")
	return user, nil
}

// SubmitVerificationDoc stores an identity document and moves the user's
// verification to pending review. Returns the stored object name.
func (s *userService) SubmitVerificationDoc(ctx context.Context, userID uuid.UUID, filename, contentType string, reader io.Reader, size int64) (string, error) {
	objectName := fmt.Sprintf("verification/%s/%s_%s", userID.String(), uuid.NewString()[:8], filename)
	if err := s.storage.Upload(ctx, s.bucket, objectName, contentType, reader, size); err != nil {
		return "", fmt.Errorf("failed to store document: %w", err)
	}

	if err := s.userRepo.AppendVerificationDoc(ctx, userID, objectName); err != nil {
		return "", err
	}

	s.audit(ctx, userID, models.ActionVerificationSubmitted, fmt.Sprintf("Submitted verification document %s", filename))
	return objectName, nil
}

func (s *userService) VerificationDocURL(ctx context.Context, objectName string) (string, error) {
	return s.storage.GetPresignedURL(s.bucket, objectName, verificationDocExpiry)
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// CreateUser lets an admin provision an account in any role, already active.
func (s *userService) CreateUser(ctx context.Context, adminID uuid.UUID, req *AdminCreateUserRequest) (*models.User, error) {
	if req.Role != models.RoleAdmin && req.Role != models.RoleLandlord && req.Role != models.RoleTenant {
		return nil, fmt.Errorf("unknown role %q: %w", req.Role, common.ErrInvalidInput)
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

	s.audit(ctx, adminID, models.ActionCreateUser, fmt.Sprintf("Created %s account for %s", user.Role, user.Email))
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, adminID, userID uuid.UUID, req *AdminUpdateUserRequest) (*models.User, error) {
	user, err := s.Me(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Role != nil {
		if *req.Role != models.RoleAdmin && *req.Role != models.RoleLandlord && *req.Role != models.RoleTenant {
			return nil, fmt.Errorf("unknown role %q: %w", *req.Role, common.ErrInvalidInput)
		}
		user.Role = *req.Role
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %v", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.audit(ctx, adminID, models.ActionUpdateUser, fmt.Sprintf("Updated account %s", user.Email))
	return user, nil
}

func (s *userService) ReviewVerification(ctx context.Context, adminID, userID uuid.UUID, approve bool) error {
	user, err := s.Me(ctx, userID)
	if err != nil {
		return err
	}

	status := models.VerificationRejected
	if approve {
		status = models.VerificationVerified
	}
	if err := s.userRepo.SetVerification(ctx, userID, status, approve); err != nil {
		return err
	}

	s.audit(ctx, adminID, models.ActionVerificationReviewed,
		fmt.Sprintf("Verification for %s marked %s", user.Email, status))
	s.notifier.Notify(ctx, user, NotifyEmail, "Verification Update",
		fmt.Sprintf("Your identity verification has been %s.", status))
	return nil
}

func (s *userService) SetStatus(ctx context.Context, adminID, userID uuid.UUID, status string) error {
	user, err := s.Me(ctx, userID)
	if err != nil {
		return err
	}

	user.Status = status
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.audit(ctx, adminID, models.ActionUpdateUser, fmt.Sprintf("Set %s status to %s", user.Email, status))
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, adminID, userID uuid.UUID) error {
	user, err := s.Me(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role == models.RoleAdmin {
		return common.ErrForbidden
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	s.audit(ctx, adminID, models.ActionDeleteUser, fmt.Sprintf("Deleted user %s", user.Email))
	return nil
}

func (s *userService) audit(ctx context.Context, userID uuid.UUID, action, details string) {
	err := s.activityRepo.Create(ctx, &models.ActivityLog{
		UserID:  userID,
		Action:  action,
		Details: details,
	})
	if err != nil {
		log.Printf("Failed to write activity log (%s): %v", action, err)
	}
}
