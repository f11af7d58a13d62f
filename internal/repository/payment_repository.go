package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"backoffice-service/internal/models"
	"backoffice-service/pkg/utils"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// PaymentRepository reads and settles installments. New installments are
// only ever written by the billing transaction on PolicyRepository.
type PaymentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	GetByPolicyID(ctx context.Context, policyID uuid.UUID) ([]models.Payment, error)
	// LatestForPolicy returns the payment with the most recent issue date.
	LatestForPolicy(ctx context.Context, policyID uuid.UUID) (*models.Payment, error)
	MarkPaid(ctx context.Context, id uuid.UUID) error
}

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.GetContext(ctx, &payment, `SELECT * FROM pagamento WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment by id: %w", err)
	}
	return &payment, nil
}

func (r *paymentRepository) GetByPolicyID(ctx context.Context, policyID uuid.UUID) ([]models.Payment, error) {
	var payments []models.Payment
	query := `SELECT * FROM pagamento WHERE policy_id = $1 ORDER BY issue_date DESC`
	if err := r.db.SelectContext(ctx, &payments, query, policyID); err != nil {
		return nil, fmt.Errorf("failed to get payments by policy: %w", err)
	}
	return payments, nil
}

func (r *paymentRepository) LatestForPolicy(ctx context.Context, policyID uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	query := `SELECT * FROM pagamento WHERE policy_id = $1 ORDER BY issue_date DESC LIMIT 1`

	if err := r.db.GetContext(ctx, &payment, query, policyID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get latest payment for policy: %w", err)
	}
	return &payment, nil
}

func (r *paymentRepository) MarkPaid(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE pagamento SET paid_date = NOW() WHERE id = $1`
	if err := utils.ExecWithCheck(ctx, r.db, query, utils.ExecUpdate, id); err != nil {
		return fmt.Errorf("failed to mark payment paid: %w", err)
	}
	return nil
}
