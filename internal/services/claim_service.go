package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"
	"backoffice-service/pkg/utils"

	"github.com/google/uuid"
)

// ClaimService drives the claim resolution workflow: evidence submissions
// pull a claim back to Aguardar Validação, an assessment report resolves it.
type ClaimService struct {
	claimRepo  repository.ClaimRepository
	policyRepo repository.PolicyRepository
	now        func() time.Time
}

func NewClaimService(claimRepo repository.ClaimRepository, policyRepo repository.PolicyRepository) *ClaimService {
	return &ClaimService{
		claimRepo:  claimRepo,
		policyRepo: policyRepo,
		now:        time.Now,
	}
}

func newClaim(draft models.ClaimDraft) *models.Claim {
	valid := false
	deferred := false
	return &models.Claim{
		ID:          uuid.New(),
		Description: draft.Description,
		State:       models.ClaimAwaitingValidation,
		ClaimDate:   draft.ClaimDate,
		Valid:       &valid,
		Deferred:    &deferred,
	}
}

func (s *ClaimService) GetClaim(ctx context.Context, id uuid.UUID) (*models.Claim, error) {
	return s.claimRepo.GetByID(ctx, id)
}

func (s *ClaimService) GetClaims(ctx context.Context, limit, offset int) ([]models.Claim, error) {
	return s.claimRepo.GetAll(ctx, limit, offset)
}

func (s *ClaimService) CreatePersonalClaim(ctx context.Context, req models.CreatePersonalClaimRequest) (*models.PersonalClaim, error) {
	if req.Claim.ClaimDate.After(s.now()) {
		return nil, fmt.Errorf("%w: claim date is in the future", models.ErrDateNotAccepted)
	}
	if _, err := s.policyRepo.GetPersonalByID(ctx, req.PersonalPolicyID); err != nil {
		return nil, err
	}

	claim := newClaim(req.Claim)
	link := &models.PersonalClaim{
		ID:               uuid.New(),
		ClaimID:          claim.ID,
		PersonalPolicyID: req.PersonalPolicyID,
	}
	if err := s.claimRepo.CreatePersonalClaim(ctx, claim, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *ClaimService) CreateVehicleClaim(ctx context.Context, req models.CreateVehicleClaimRequest) (*models.VehicleClaim, error) {
	if req.Claim.ClaimDate.After(s.now()) {
		return nil, fmt.Errorf("%w: claim date is in the future", models.ErrDateNotAccepted)
	}
	if _, err := s.policyRepo.GetVehicleByID(ctx, req.VehiclePolicyID); err != nil {
		return nil, err
	}

	claim := newClaim(req.Claim)
	link := &models.VehicleClaim{
		ID:              uuid.New(),
		ClaimID:         claim.ID,
		VehiclePolicyID: req.VehiclePolicyID,
	}
	if err := s.claimRepo.CreateVehicleClaim(ctx, claim, link); err != nil {
		return nil, err
	}
	return link, nil
}

// SubmitEvidence attaches evidence and forces the claim back to
// Aguardar Validação, even when it had already been resolved. Historical
// behavior kept on purpose.
func (s *ClaimService) SubmitEvidence(ctx context.Context, claimID uuid.UUID, req models.SubmitEvidenceRequest) (*models.Evidence, error) {
	if _, err := s.claimRepo.GetByID(ctx, claimID); err != nil {
		return nil, err
	}

	evidence := &models.Evidence{
		ID:      uuid.New(),
		Content: req.Content,
		Date:    req.Date,
		ClaimID: claimID,
	}
	if err := s.claimRepo.AddEvidence(ctx, evidence, models.ClaimAwaitingValidation); err != nil {
		return nil, err
	}
	return evidence, nil
}

// SubmitAssessmentReport resolves the claim: state Resultado Emitido,
// valid=true and deferred mirroring the report's upheld flag.
func (s *ClaimService) SubmitAssessmentReport(ctx context.Context, claimID uuid.UUID, req models.SubmitAssessmentReportRequest) (*models.AssessmentReport, error) {
	claim, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}

	report := &models.AssessmentReport{
		ID:      uuid.New(),
		Content: req.Content,
		Date:    req.Date,
		Upheld:  req.Upheld,
		ClaimID: claimID,
	}

	valid := true
	deferred := req.Upheld
	claim.State = models.ClaimResultIssued
	claim.Valid = &valid
	claim.Deferred = &deferred

	if err := s.claimRepo.AddAssessmentReport(ctx, report, claim); err != nil {
		return nil, err
	}
	return report, nil
}

// GetPersonalPolicyClaims lists the claims filed against one personal policy.
func (s *ClaimService) GetPersonalPolicyClaims(ctx context.Context, personalPolicyID uuid.UUID) ([]models.PersonalClaim, error) {
	if _, err := s.policyRepo.GetPersonalByID(ctx, personalPolicyID); err != nil {
		return nil, err
	}
	return s.claimRepo.GetPersonalClaimsByPolicyID(ctx, personalPolicyID)
}

// GetVehiclePolicyClaims lists the claims filed against one vehicle policy.
func (s *ClaimService) GetVehiclePolicyClaims(ctx context.Context, vehiclePolicyID uuid.UUID) ([]models.VehicleClaim, error) {
	if _, err := s.policyRepo.GetVehicleByID(ctx, vehiclePolicyID); err != nil {
		return nil, err
	}
	return s.claimRepo.GetVehicleClaimsByPolicyID(ctx, vehiclePolicyID)
}

func (s *ClaimService) GetEvidence(ctx context.Context, claimID uuid.UUID) ([]models.Evidence, error) {
	return s.claimRepo.GetEvidenceByClaimID(ctx, claimID)
}

func (s *ClaimService) GetReports(ctx context.Context, claimID uuid.UUID) ([]models.AssessmentReport, error) {
	return s.claimRepo.GetReportsByClaimID(ctx, claimID)
}

// UpdateClaim merges the supplied fields and recomputes the state from the
// (valid, deferred) pair. The reimbursement check deliberately runs after
// the state-driven reset so it only fires on a caller-supplied positive
// reimbursement combined with a non-upheld outcome.
func (s *ClaimService) UpdateClaim(ctx context.Context, claimID uuid.UUID, incoming models.UpdateClaimRequest) (*models.Claim, error) {
	current, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}

	if incoming.Description != nil {
		current.Description = *incoming.Description
	}
	if incoming.Reimbursement != nil {
		current.Reimbursement = incoming.Reimbursement
	}
	if incoming.Valid != nil {
		current.Valid = incoming.Valid
	}
	if incoming.Deferred != nil {
		current.Deferred = incoming.Deferred
	}

	valid := current.Valid != nil && *current.Valid
	deferred := current.Deferred != nil && *current.Deferred

	zero := 0.0
	switch {
	case !valid && !deferred:
		current.State = models.ClaimAwaitingValidation
		current.Reimbursement = &zero
	case valid && deferred:
		current.State = models.ClaimResultIssued
	case valid && !deferred:
		current.State = models.ClaimReported
		current.Reimbursement = &zero
	default: // !valid && deferred
		current.State = models.ClaimResultIssued
		current.Reimbursement = &zero
	}

	if incoming.Reimbursement != nil && *incoming.Reimbursement > 0 && !(valid && deferred) {
		return nil, fmt.Errorf("%w: reimbursement %.2f with valid=%t deferred=%t",
			models.ErrReimbursementNotAllowed, *incoming.Reimbursement, valid, deferred)
	}

	if err := s.claimRepo.Update(ctx, current); err != nil {
		if errors.Is(err, utils.ErrNoRowsAffected) {
			return nil, models.ErrSaveFailed
		}
		return nil, err
	}
	return current, nil
}
