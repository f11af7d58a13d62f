package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"

	"github.com/google/uuid"
)

// BillingNotifier receives the outcome of each billing decision after the
// batch has committed. Implementations must not block the run.
type BillingNotifier interface {
	PolicyCancelled(ctx context.Context, policy models.Policy)
	PaymentIssued(ctx context.Context, policy models.Policy, payment models.Payment)
}

// BillingStats tracks what the recurring billing run has done so far.
type BillingStats struct {
	PoliciesProcessed int64
	PaymentsIssued    int64
	PoliciesCancelled int64
	LastRun           time.Time
	mu                sync.RWMutex
}

// BillingService advances every past-due issued policy once per run: paid
// policies roll into a new billing cycle, unpaid ones are cancelled. All
// mutations of one run commit in a single transaction.
type BillingService struct {
	policyRepo  repository.PolicyRepository
	paymentRepo repository.PaymentRepository
	notifier    BillingNotifier
	now         func() time.Time
	stats       *BillingStats
}

func NewBillingService(policyRepo repository.PolicyRepository, paymentRepo repository.PaymentRepository, notifier BillingNotifier) *BillingService {
	return &BillingService{
		policyRepo:  policyRepo,
		paymentRepo: paymentRepo,
		notifier:    notifier,
		now:         time.Now,
		stats:       &BillingStats{},
	}
}

type billingOutcome struct {
	policy    models.Policy
	payment   *models.Payment
	cancelled bool
}

// Run executes one billing cycle. Due policies whose latest payment still
// carries the unpaid sentinel are cancelled; the rest get a fresh unpaid
// installment and a validity of one plan cycle counted from the run date.
func (s *BillingService) Run(ctx context.Context) error {
	today := s.today()

	due, err := s.policyRepo.DuePolicies(ctx, today)
	if err != nil {
		return fmt.Errorf("billing run: %w", err)
	}
	if len(due) == 0 {
		slog.Info("billing run found no due policies")
		return nil
	}

	outcomes := make([]billingOutcome, 0, len(due))
	for _, policy := range due {
		latest, err := s.paymentRepo.LatestForPolicy(ctx, policy.ID)
		if err != nil && !errors.Is(err, models.ErrPaymentNotFound) {
			return fmt.Errorf("billing run: latest payment for policy %s: %w", policy.ID, err)
		}
		outcomes = append(outcomes, s.decide(policy, latest, today))
	}

	policies := make([]models.Policy, 0, len(outcomes))
	payments := make([]models.Payment, 0, len(outcomes))
	for _, outcome := range outcomes {
		policies = append(policies, outcome.policy)
		if outcome.payment != nil {
			payments = append(payments, *outcome.payment)
		}
	}

	// One commit for the whole batch; a failure anywhere rolls everything
	// back so the next run sees the same due set.
	if err := s.policyRepo.ApplyBillingRun(ctx, policies, payments); err != nil {
		return fmt.Errorf("billing run: %w", err)
	}

	cancelled, issued := 0, 0
	for _, outcome := range outcomes {
		if outcome.cancelled {
			cancelled++
			if s.notifier != nil {
				s.notifier.PolicyCancelled(ctx, outcome.policy)
			}
			continue
		}
		issued++
		if s.notifier != nil {
			s.notifier.PaymentIssued(ctx, outcome.policy, *outcome.payment)
		}
	}

	s.updateStats(len(outcomes), issued, cancelled)
	slog.Info("billing run completed", "processed", len(outcomes), "issued", issued, "cancelled", cancelled)
	return nil
}

// decide computes the mutation for a single due policy without touching the
// store. A missing payment history counts as unpaid.
func (s *BillingService) decide(policy models.Policy, latest *models.Payment, today time.Time) billingOutcome {
	if latest == nil || latest.Unpaid() {
		policy.Active = false
		policy.SimulationState = models.SimulationCancelled
		return billingOutcome{policy: policy, cancelled: true}
	}

	payment := models.Payment{
		ID:        uuid.New(),
		Method:    models.PaymentMethodCard,
		IssueDate: today,
		PaidDate:  models.UnpaidSentinel,
		Amount:    s.installmentAmount(policy),
		PolicyID:  policy.ID,
	}

	// The new cycle starts on the run date, not on the lapsed expiry, so a
	// policy that sat in arrears for weeks is not immediately due again.
	if months := policy.InstallmentPlan.ValidityMonths(); months > 0 {
		validUntil := today.AddDate(0, months, 0)
		policy.ValidUntil = &validUntil
	}
	policy.Active = true

	return billingOutcome{policy: policy, payment: &payment}
}

func (s *BillingService) installmentAmount(policy models.Policy) float64 {
	perYear := policy.InstallmentPlan.PaymentsPerYear()
	if perYear == 0 {
		return models.FallbackInstallmentAmount
	}

	premium := 0.0
	if policy.Premium != nil {
		premium = *policy.Premium
	}
	return premium / float64(perYear)
}

func (s *BillingService) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *BillingService) updateStats(processed, issued, cancelled int) {
	s.stats.mu.Lock()
	defer s.stats.mu.Unlock()
	s.stats.PoliciesProcessed += int64(processed)
	s.stats.PaymentsIssued += int64(issued)
	s.stats.PoliciesCancelled += int64(cancelled)
	s.stats.LastRun = s.now()
}

func (s *BillingService) Stats() BillingStats {
	s.stats.mu.RLock()
	defer s.stats.mu.RUnlock()
	return BillingStats{
		PoliciesProcessed: s.stats.PoliciesProcessed,
		PaymentsIssued:    s.stats.PaymentsIssued,
		PoliciesCancelled: s.stats.PoliciesCancelled,
		LastRun:           s.stats.LastRun,
	}
}
