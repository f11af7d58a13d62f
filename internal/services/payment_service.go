package services

import (
	"context"
	"errors"

	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"
	"backoffice-service/pkg/utils"

	"github.com/google/uuid"
)

// PaymentService exposes the payment history and the settle operation the
// billing run later inspects.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	policyRepo  repository.PolicyRepository
}

func NewPaymentService(paymentRepo repository.PaymentRepository, policyRepo repository.PolicyRepository) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		policyRepo:  policyRepo,
	}
}

func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	return s.paymentRepo.GetByID(ctx, id)
}

func (s *PaymentService) GetPolicyPayments(ctx context.Context, policyID uuid.UUID) ([]models.Payment, error) {
	if _, err := s.policyRepo.GetByID(ctx, policyID); err != nil {
		return nil, err
	}
	return s.paymentRepo.GetByPolicyID(ctx, policyID)
}

// SettlePayment stamps the payment's paid date, clearing the unpaid
// sentinel so the next billing run rolls the policy forward.
func (s *PaymentService) SettlePayment(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !payment.Unpaid() {
		return payment, nil
	}

	if err := s.paymentRepo.MarkPaid(ctx, id); err != nil {
		if errors.Is(err, utils.ErrNoRowsAffected) {
			return nil, models.ErrSaveFailed
		}
		return nil, err
	}
	return s.paymentRepo.GetByID(ctx, id)
}
