package services

import (
	"context"
	"errors"
	"fmt"

	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"
	"backoffice-service/pkg/utils"

	"github.com/google/uuid"
)

// PolicyService owns the policy lifecycle: creation of the three
// specializations, state-gated updates and the coverage/product consistency
// rules.
type PolicyService struct {
	policyRepo   repository.PolicyRepository
	productRepo  repository.ProductRepository
	coverageRepo repository.CoverageRepository
	agentRepo    repository.AgentRepository
	diseaseRepo  repository.DiseaseRepository
	clientRepo   repository.ClientRepository
}

func NewPolicyService(
	policyRepo repository.PolicyRepository,
	productRepo repository.ProductRepository,
	coverageRepo repository.CoverageRepository,
	agentRepo repository.AgentRepository,
	diseaseRepo repository.DiseaseRepository,
	clientRepo repository.ClientRepository,
) *PolicyService {
	return &PolicyService{
		policyRepo:   policyRepo,
		productRepo:  productRepo,
		coverageRepo: coverageRepo,
		agentRepo:    agentRepo,
		diseaseRepo:  diseaseRepo,
		clientRepo:   clientRepo,
	}
}

// buildPolicy validates a draft against the given product category and
// returns the policy row and its coverage links, ready to persist. All
// validation happens before anything is written so a bad coverage rejects
// the whole creation.
func (s *PolicyService) buildPolicy(ctx context.Context, draft models.PolicyDraft, category models.ProductCategory) (*models.Policy, []models.CoverageLink, error) {
	if !draft.SimulationState.IsCreatable() {
		return nil, nil, fmt.Errorf("%w: simulation state %q", models.ErrInvalidField, draft.SimulationState)
	}
	if draft.ValidUntil != nil {
		return nil, nil, fmt.Errorf("%w: valid_until must not be set at creation", models.ErrInvalidField)
	}
	if !draft.InstallmentPlan.IsValid() {
		return nil, nil, fmt.Errorf("%w: installment plan %q", models.ErrInvalidField, draft.InstallmentPlan)
	}

	product, err := s.productRepo.GetByID(ctx, draft.ProductID)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			return nil, nil, fmt.Errorf("%w: product %s does not exist", models.ErrInvalidProduct, draft.ProductID)
		}
		return nil, nil, err
	}
	if !product.Active {
		return nil, nil, fmt.Errorf("%w: product %s is inactive", models.ErrInvalidProduct, product.ID)
	}
	if product.Category != category {
		return nil, nil, fmt.Errorf("%w: product category %q does not match %q", models.ErrInvalidProduct, product.Category, category)
	}

	if draft.AgentID != nil {
		if _, err := s.agentRepo.GetByID(ctx, *draft.AgentID); err != nil {
			if errors.Is(err, models.ErrAgentNotFound) {
				return nil, nil, fmt.Errorf("%w: agent %s does not exist", models.ErrInvalidAgent, *draft.AgentID)
			}
			return nil, nil, err
		}
	}

	policy := &models.Policy{
		ID:              uuid.New(),
		Active:          false,
		Premium:         draft.Premium,
		ValidUntil:      nil,
		InstallmentPlan: draft.InstallmentPlan,
		SimulationState: draft.SimulationState,
		AgentID:         draft.AgentID,
		ProductID:       draft.ProductID,
	}

	links := make([]models.CoverageLink, 0, len(draft.CoverageIDs))
	for _, coverageID := range draft.CoverageIDs {
		coverage, err := s.coverageRepo.GetByID(ctx, coverageID)
		if err != nil {
			if errors.Is(err, models.ErrCoverageNotFound) {
				return nil, nil, fmt.Errorf("%w: coverage %s does not exist", models.ErrInvalidCoverage, coverageID)
			}
			return nil, nil, err
		}
		if coverage.ProductID != draft.ProductID {
			return nil, nil, fmt.Errorf("%w: coverage %s belongs to product %s", models.ErrInvalidCoverage, coverage.ID, coverage.ProductID)
		}
		links = append(links, models.CoverageLink{
			ID:         uuid.New(),
			CoverageID: coverageID,
			PolicyID:   policy.ID,
		})
	}

	return policy, links, nil
}

func (s *PolicyService) CreatePersonalPolicy(ctx context.Context, req models.CreatePersonalPolicyRequest) (*models.PersonalPolicy, error) {
	if req.InsuredAmount == nil {
		return nil, fmt.Errorf("%w: insured_amount is required", models.ErrInvalidField)
	}

	policy, links, err := s.buildPolicy(ctx, req.Policy, models.CategoryPersonal)
	if err != nil {
		return nil, err
	}

	spec := &models.PersonalPolicy{
		ID:            uuid.New(),
		PolicyID:      policy.ID,
		ClientID:      req.ClientID,
		InsuredAmount: req.InsuredAmount,
	}
	if err := s.policyRepo.CreatePersonal(ctx, policy, links, spec); err != nil {
		return nil, err
	}
	return spec, nil
}

func (s *PolicyService) CreateHealthPolicy(ctx context.Context, req models.CreateHealthPolicyRequest) (*models.HealthPolicy, error) {
	if req.ClinicalDataID != nil {
		if _, err := s.diseaseRepo.GetClinicalDataByID(ctx, *req.ClinicalDataID); err != nil {
			return nil, err
		}
	}

	policy, links, err := s.buildPolicy(ctx, req.Policy, models.CategoryHealth)
	if err != nil {
		return nil, err
	}

	spec := &models.HealthPolicy{
		ID:             uuid.New(),
		PolicyID:       policy.ID,
		ClientID:       req.ClientID,
		ClinicalDataID: req.ClinicalDataID,
	}
	if err := s.policyRepo.CreateHealth(ctx, policy, links, spec); err != nil {
		return nil, err
	}
	return spec, nil
}

func (s *PolicyService) CreateVehiclePolicy(ctx context.Context, req models.CreateVehiclePolicyRequest) (*models.VehiclePolicy, error) {
	if req.AccidentCount == nil {
		return nil, fmt.Errorf("%w: accident_count is required", models.ErrInvalidField)
	}
	if req.LicenseDate == nil {
		return nil, fmt.Errorf("%w: license_date is required", models.ErrInvalidField)
	}

	policy, links, err := s.buildPolicy(ctx, req.Policy, models.CategoryVehicle)
	if err != nil {
		return nil, err
	}

	spec := &models.VehiclePolicy{
		ID:            uuid.New(),
		PolicyID:      policy.ID,
		ClientID:      req.ClientID,
		VehicleID:     req.VehicleID,
		AccidentCount: req.AccidentCount,
		LicenseDate:   req.LicenseDate,
	}
	if err := s.policyRepo.CreateVehicle(ctx, policy, links, spec); err != nil {
		return nil, err
	}
	return spec, nil
}

func (s *PolicyService) GetPolicy(ctx context.Context, id uuid.UUID) (*models.Policy, error) {
	return s.policyRepo.GetByID(ctx, id)
}

func (s *PolicyService) GetPolicies(ctx context.Context, limit, offset int) ([]models.Policy, error) {
	return s.policyRepo.GetAll(ctx, limit, offset)
}

func (s *PolicyService) GetCoverageLinks(ctx context.Context, policyID uuid.UUID) ([]models.CoverageLink, error) {
	return s.policyRepo.GetCoverageLinks(ctx, policyID)
}

func (s *PolicyService) GetPersonalPolicy(ctx context.Context, id uuid.UUID) (*models.PersonalPolicy, error) {
	return s.policyRepo.GetPersonalByID(ctx, id)
}

// GetClientPersonalPolicies lists the personal policies held by one client.
func (s *PolicyService) GetClientPersonalPolicies(ctx context.Context, clientID uuid.UUID) ([]models.PersonalPolicy, error) {
	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		return nil, err
	}
	return s.policyRepo.GetPersonalByClientID(ctx, clientID)
}

func (s *PolicyService) GetHealthPolicy(ctx context.Context, id uuid.UUID) (*models.HealthPolicy, error) {
	return s.policyRepo.GetHealthByID(ctx, id)
}

func (s *PolicyService) GetVehiclePolicy(ctx context.Context, id uuid.UUID) (*models.VehiclePolicy, error) {
	return s.policyRepo.GetVehicleByID(ctx, id)
}

// CanUpdate reports whether the policy is still inside its mutable lifecycle
// window.
func (s *PolicyService) CanUpdate(ctx context.Context, policyID uuid.UUID) (bool, error) {
	policy, err := s.policyRepo.GetByID(ctx, policyID)
	if err != nil {
		return false, err
	}
	return policy.CanUpdate(), nil
}

func (s *PolicyService) UpdatePolicy(ctx context.Context, policyID uuid.UUID, incoming models.UpdatePolicyRequest) (*models.Policy, error) {
	current, err := s.policyRepo.GetByID(ctx, policyID)
	if err != nil {
		return nil, err
	}

	if !current.CanUpdate() {
		return nil, fmt.Errorf("%w: policy %s is active or issued", models.ErrInvalidUpdate, current.ID)
	}
	if !incoming.SimulationState.IsCreatable() {
		return nil, fmt.Errorf("%w: simulation state %q", models.ErrInvalidField, incoming.SimulationState)
	}
	if incoming.ValidUntil != nil {
		return nil, fmt.Errorf("%w: valid_until cannot be set directly", models.ErrInvalidField)
	}
	if !incoming.InstallmentPlan.IsValid() {
		return nil, fmt.Errorf("%w: installment plan %q", models.ErrInvalidField, incoming.InstallmentPlan)
	}
	if incoming.ProductID != current.ProductID {
		return nil, fmt.Errorf("%w: product cannot be changed after creation", models.ErrInvalidProduct)
	}

	// An assigned agent is immutable; an unassigned policy must be given a
	// valid agent on update.
	if current.AgentID != nil {
		if incoming.AgentID == nil || *incoming.AgentID != *current.AgentID {
			return nil, fmt.Errorf("%w: agent cannot be reassigned", models.ErrInvalidAgent)
		}
	} else {
		if incoming.AgentID == nil {
			return nil, fmt.Errorf("%w: agent is required", models.ErrInvalidAgent)
		}
		if _, err := s.agentRepo.GetByID(ctx, *incoming.AgentID); err != nil {
			if errors.Is(err, models.ErrAgentNotFound) {
				return nil, fmt.Errorf("%w: agent %s does not exist", models.ErrInvalidAgent, *incoming.AgentID)
			}
			return nil, err
		}
		current.AgentID = incoming.AgentID
	}

	current.Premium = incoming.Premium
	current.InstallmentPlan = incoming.InstallmentPlan
	current.SimulationState = incoming.SimulationState

	if err := s.policyRepo.Update(ctx, current); err != nil {
		if errors.Is(err, utils.ErrNoRowsAffected) {
			return nil, models.ErrSaveFailed
		}
		return nil, err
	}
	return current, nil
}

func (s *PolicyService) UpdatePersonalPolicy(ctx context.Context, specID uuid.UUID, incoming models.UpdatePersonalPolicyRequest) (*models.PersonalPolicy, error) {
	current, err := s.policyRepo.GetPersonalByID(ctx, specID)
	if err != nil {
		return nil, err
	}

	if incoming.ClientID != current.ClientID {
		return nil, fmt.Errorf("%w: insured client cannot be changed", models.ErrInvalidClient)
	}

	parent, err := s.policyRepo.GetByID(ctx, current.PolicyID)
	if err != nil {
		return nil, err
	}
	if !parent.CanUpdate() {
		return nil, fmt.Errorf("%w: parent policy %s is active or issued", models.ErrPermissionDenied, parent.ID)
	}

	current.InsuredAmount = incoming.InsuredAmount
	if err := s.policyRepo.UpdatePersonal(ctx, current); err != nil {
		if errors.Is(err, utils.ErrNoRowsAffected) {
			return nil, models.ErrSaveFailed
		}
		return nil, err
	}
	return current, nil
}

func (s *PolicyService) UpdateVehiclePolicy(ctx context.Context, specID uuid.UUID, incoming models.UpdateVehiclePolicyRequest) (*models.VehiclePolicy, error) {
	current, err := s.policyRepo.GetVehicleByID(ctx, specID)
	if err != nil {
		return nil, err
	}

	if incoming.ClientID != current.ClientID {
		return nil, fmt.Errorf("%w: insured client cannot be changed", models.ErrInvalidClient)
	}
	if incoming.VehicleID != current.VehicleID {
		return nil, fmt.Errorf("%w: insured vehicle cannot be changed", models.ErrInvalidVehicle)
	}

	parent, err := s.policyRepo.GetByID(ctx, current.PolicyID)
	if err != nil {
		return nil, err
	}
	if !parent.CanUpdate() {
		return nil, fmt.Errorf("%w: parent policy %s is active or issued", models.ErrPermissionDenied, parent.ID)
	}

	current.AccidentCount = incoming.AccidentCount
	current.LicenseDate = incoming.LicenseDate
	if err := s.policyRepo.UpdateVehicle(ctx, current); err != nil {
		if errors.Is(err, utils.ErrNoRowsAffected) {
			return nil, models.ErrSaveFailed
		}
		return nil, err
	}
	return current, nil
}
