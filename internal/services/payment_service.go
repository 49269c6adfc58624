package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"rentora/internal/common"
	"rentora/internal/models"
	"rentora/internal/repositories"

	"github.com/google/uuid"
)

type PayRentRequest struct {
	Amount      float64
	PhoneNumber string
	PaymentType string
}

type PaymentService interface {
	PayRent(ctx context.Context, tenantID uuid.UUID, req *PayRentRequest) (*models.Payment, error)
	MyPayments(ctx context.Context, tenantID uuid.UUID) ([]*models.Payment, error)
	HandleCallback(ctx context.Context, rawBody []byte) error
}

type paymentService struct {
	paymentRepo  repositories.PaymentRepository
	leaseRepo    repositories.LeaseRepository
	userRepo     repositories.UserRepository
	activityRepo repositories.ActivityLogRepository
	daraja       DarajaService
	notifier     NotificationService
}

func NewPaymentService(paymentRepo repositories.PaymentRepository, leaseRepo repositories.LeaseRepository,
	userRepo repositories.UserRepository, activityRepo repositories.ActivityLogRepository,
	daraja DarajaService, notifier NotificationService) PaymentService {
	return &paymentService{
		paymentRepo:  paymentRepo,
		leaseRepo:    leaseRepo,
		userRepo:     userRepo,
		activityRepo: activityRepo,
		daraja:       daraja,
		notifier:     notifier,
	}
}

// PayRent initiates an STK push against the tenant's active lease. The
// amount defaults to the lease rent when not given. The payment record is
// written completed with a synthesized receipt; the callback handler
// reconciles the real receipt when Daraja reports back.
func (s *paymentService) PayRent(ctx context.Context, tenantID uuid.UUID, req *PayRentRequest) (*models.Payment, error) {
	lease, err := s.leaseRepo.GetActiveByTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFound("Active lease")
		}
		return nil, err
	}

	amount := req.Amount
	if amount <= 0 {
		amount = lease.RentAmount
	}
	paymentType := req.PaymentType
	if paymentType == "" {
		paymentType = models.PaymentTypeRent
	}

	phone := NormalizePhoneNumber(req.PhoneNumber)
	stk, err := s.daraja.InitiateSTKPush(ctx, phone, amount, lease.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to initiate payment: %w", err)
	}

	now := time.Now()
	receipt := fmt.Sprintf("MPESA_%d", now.UnixMilli())
	payment := &models.Payment{
		ID:                 uuid.New(),
		LeaseID:            lease.ID,
		TenantID:           tenantID,
		Amount:             amount,
		MpesaTransactionID: &receipt,
		CheckoutRequestID:  &stk.CheckoutRequestID,
		Status:             models.PaymentStatusCompleted,
		PaymentType:        paymentType,
		PaymentDate:        &now,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.audit(ctx, tenantID, models.ActionPaymentInitiated,
		fmt.Sprintf("Initiated %s payment of %.2f for lease %s", paymentType, amount, lease.ID.String()))

	if tenant, userErr := s.userRepo.GetByID(ctx, tenantID); userErr == nil {
		s.notifier.Notify(ctx, tenant, NotifySMS, "Payment Received",
			fmt.Sprintf("Your %s payment of KES %.2f has been received. Receipt: %s", paymentType, amount, receipt))
	}

	return payment, nil
}

func (s *paymentService) MyPayments(ctx context.Context, tenantID uuid.UUID) ([]*models.Payment, error) {
	return s.paymentRepo.ListByTenant(ctx, tenantID)
}

// HandleCallback reconciles the Daraja STK result against the stored
// payment. Callbacks for unknown checkout IDs are logged and dropped so
// Daraja does not keep retrying.
func (s *paymentService) HandleCallback(ctx context.Context, rawBody []byte) error {
	result, err := s.daraja.ParseCallback(rawBody)
	if err != nil {
		return fmt.Errorf("invalid payment callback: %w", err)
	}

	status := models.PaymentStatusCompleted
	var receipt *string
	if result.ResultCode != 0 {
		status = models.PaymentStatusFailed
	} else if result.MpesaReceipt != "" {
		receipt = &result.MpesaReceipt
	}

	if err := s.paymentRepo.UpdateStatusByCheckoutID(ctx, result.CheckoutRequestID, status, receipt); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			log.Printf("Payment callback for unknown checkout %s ignored", result.CheckoutRequestID)
			return nil
		}
		return err
	}
	return nil
}

func (s *paymentService) audit(ctx context.Context, userID uuid.UUID, action, details string) {
	err := s.activityRepo.Create(ctx, &models.ActivityLog{
		UserID:  userID,
		Action:  action,
		Details: details,
	})
	if err != nil {
		log.Printf("Failed to write activity log (%s): %v", action, err)
	}
}
