package repositories

import (
	"context"

	"rentora/internal/common"
	"rentora/internal/models"

	"github.com/google/uuid"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Payment, error)
	UpdateStatusByCheckoutID(ctx context.Context, checkoutRequestID, status string, receipt *string) error
}

type paymentRepo struct {
	db DB
}

func NewPaymentRepository(db DB) PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (id, lease_id, tenant_id, amount, mpesa_transaction_id, checkout_request_id, status, payment_type, payment_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	`
	_, err := r.db.Exec(ctx, query, payment.ID, payment.LeaseID, payment.TenantID, payment.Amount,
		payment.MpesaTransactionID, payment.CheckoutRequestID, payment.Status, payment.PaymentType, payment.PaymentDate)
	return err
}

func (r *paymentRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Payment, error) {
	query := `
		SELECT id, lease_id, tenant_id, amount, mpesa_transaction_id, checkout_request_id, status, payment_type, payment_date, created_at
		FROM payments
		WHERE tenant_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment := &models.Payment{}
		if err := rows.Scan(&payment.ID, &payment.LeaseID, &payment.TenantID, &payment.Amount,
			&payment.MpesaTransactionID, &payment.CheckoutRequestID, &payment.Status,
			&payment.PaymentType, &payment.PaymentDate, &payment.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

// UpdateStatusByCheckoutID applies a provider confirmation to the payment it
// tracks. The receipt is only recorded on completion.
func (r *paymentRepo) UpdateStatusByCheckoutID(ctx context.Context, checkoutRequestID, status string, receipt *string) error {
	query := `
		UPDATE payments
		SET status = $1, mpesa_transaction_id = COALESCE($2, mpesa_transaction_id), payment_date = NOW()
		WHERE checkout_request_id = $3
	`
	tag, err := r.db.Exec(ctx, query, status, receipt, checkoutRequestID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}
