package services

import (
	"context"
	"testing"
	"time"

	"backoffice-service/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

type policyFixture struct {
	service      *PolicyService
	policyRepo   *fakePolicyRepo
	productRepo  *fakeProductRepo
	coverageRepo *fakeCoverageRepo
	agentRepo    *fakeAgentRepo
	diseaseRepo  *fakeDiseaseRepo
	clientRepo   *fakeClientRepo

	product  *models.Product
	coverage *models.Coverage
	agent    *models.Agent
}

func newPolicyFixture(category models.ProductCategory) *policyFixture {
	policyRepo := newFakePolicyRepo()
	productRepo := newFakeProductRepo()
	coverageRepo := newFakeCoverageRepo()
	agentRepo := newFakeAgentRepo()
	diseaseRepo := newFakeDiseaseRepo()
	clientRepo := newFakeClientRepo()

	product := &models.Product{ID: uuid.New(), Name: "Base", Category: category, Active: true}
	productRepo.products[product.ID] = product

	coverage := &models.Coverage{ID: uuid.New(), Description: "Base cover", ProductID: product.ID}
	coverageRepo.coverages[coverage.ID] = coverage

	agent := &models.Agent{ID: uuid.New(), PersonID: uuid.New()}
	agentRepo.agents[agent.ID] = agent

	return &policyFixture{
		service:      NewPolicyService(policyRepo, productRepo, coverageRepo, agentRepo, diseaseRepo, clientRepo),
		policyRepo:   policyRepo,
		productRepo:  productRepo,
		coverageRepo: coverageRepo,
		agentRepo:    agentRepo,
		diseaseRepo:  diseaseRepo,
		clientRepo:   clientRepo,
		product:      product,
		coverage:     coverage,
		agent:        agent,
	}
}

func (f *policyFixture) draft() models.PolicyDraft {
	premium := 1200.0
	return models.PolicyDraft{
		Premium:         &premium,
		InstallmentPlan: models.InstallmentMonthly,
		SimulationState: models.SimulationNotValidated,
		AgentID:         &f.agent.ID,
		ProductID:       f.product.ID,
		CoverageIDs:     []uuid.UUID{f.coverage.ID},
	}
}

func (f *policyFixture) personalRequest() models.CreatePersonalPolicyRequest {
	amount := 50000.0
	return models.CreatePersonalPolicyRequest{
		Policy:        f.draft(),
		ClientID:      uuid.New(),
		InsuredAmount: &amount,
	}
}

// ============================================================================
// CREATION
// ============================================================================

func TestCreatePersonalPolicy_Success(t *testing.T) {
	f := newPolicyFixture(models.CategoryPersonal)

	spec, err := f.service.CreatePersonalPolicy(context.Background(), f.personalRequest())
	require.NoError(t, err)

	policy, err := f.policyRepo.GetByID(context.Background(), spec.PolicyID)
	require.NoError(t, err)
	assert.False(t, policy.Active, "new policies start inactive")
	assert.Nil(t, policy.ValidUntil, "validity is only set by billing")
	assert.Equal(t, models.SimulationNotValidated, policy.SimulationState)

	links, err := f.policyRepo.GetCoverageLinks(context.Background(), spec.PolicyID)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, f.coverage.ID, links[0].CoverageID)
}

func TestCreatePolicy_RejectsBadSimulationState(t *testing.T) {
	tests := []struct {
		name  string
		state models.SimulationState
	}{
		{"cancelled is billing-only", models.SimulationCancelled},
		{"unknown literal", models.SimulationState("Pendente")},
		{"empty", models.SimulationState("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPolicyFixture(models.CategoryPersonal)
			req := f.personalRequest()
			req.Policy.SimulationState = tt.state

			_, err := f.service.CreatePersonalPolicy(context.Background(), req)
			assert.ErrorIs(t, err, models.ErrInvalidField)
			assert.Empty(t, f.policyRepo.policies)
		})
	}
}

func TestCreatePolicy_RejectsPresetValidUntil(t *testing.T) {
	f := newPolicyFixture(models.CategoryPersonal)
	req := f.personalRequest()
	until := time.Now().AddDate(1, 0, 0)
	req.Policy.ValidUntil = &until

	_, err := f.service.CreatePersonalPolicy(context.Background(), req)
	assert.ErrorIs(t, err, models.ErrInvalidField)
}

func TestCreatePolicy_RejectsUnknownPlan(t *testing.T) {
	f := newPolicyFixture(models.CategoryPersonal)
	req := f.personalRequest()
	req.Policy.InstallmentPlan = models.InstallmentPlan("Semanal")

	_, err := f.service.CreatePersonalPolicy(context.Background(), req)
	assert.ErrorIs(t, err, models.ErrInvalidField)
}

func TestCreatePolicy_ProductChecks(t *testing.T) {
	t.Run("missing product", func(t *testing.T) {
		f := newPolicyFixture(models.CategoryPersonal)
		req := f.personalRequest()
		req.Policy.ProductID = uuid.New()
		req.Policy.CoverageIDs = nil

		_, err := f.service.CreatePersonalPolicy(context.Background(), req)
		assert.ErrorIs(t, err, models.ErrInvalidProduct)
	})

	t.Run("inactive product", func(t *testing.T) {
		f := newPolicyFixture(models.CategoryPersonal)
		f.product.Active = false

		_, err := f.service.CreatePersonalPolicy(context.Background(), f.personalRequest())
		assert.ErrorIs(t, err, models.ErrInvalidProduct)
	})

	t.Run("category mismatch", func(t *testing.T) {
		f := newPolicyFixture(models.CategoryVehicle)

		_, err := f.service.CreatePersonalPolicy(context.Background(), f.personalRequest())
		assert.ErrorIs(t, err, models.ErrInvalidProduct)
	})
}

func TestCreatePolicy_ForeignCoverageRejectsWholeCreation(t *testing.T) {
	f := newPolicyFixture(models.CategoryPersonal)

	foreign := &models.Coverage{ID: uuid.New(), Description: "Other", ProductID: uuid.New()}
	f.coverageRepo.coverages[foreign.ID] = foreign

	req := f.personalRequest()
	req.Policy.CoverageIDs = []uuid.UUID{f.coverage.ID, foreign.ID}

	_, err := f.service.CreatePersonalPolicy(context.Background(), req)
	assert.ErrorIs(t, err, models.ErrInvalidCoverage)

	// No policy and no partial coverage links may survive the rejection.
	assert.Empty(t, f.policyRepo.policies)
	assert.Empty(t, f.policyRepo.links)
	assert.Empty(t, f.policyRepo.personals)
}

func TestCreatePolicy_UnknownAgent(t *testing.T) {
	f := newPolicyFixture(models.CategoryPersonal)
	req := f.personalRequest()
	ghost := uuid.New()
	req.Policy.AgentID = &ghost

	_, err := f.service.CreatePersonalPolicy(context.Background(), req)
	assert.ErrorIs(t, err, models.ErrInvalidAgent)
}

func TestCreatePersonalPolicy_RequiresInsuredAmount(t *testing.T) {
	f := newPolicyFixture(models.CategoryPersonal)
	req := f.personalRequest()
	req.InsuredAmount = nil

	_, err := f.service.CreatePersonalPolicy(context.Background(), req)
	assert.ErrorIs(t, err, models.ErrInvalidField)
}

func TestCreateVehiclePolicy_RequiresDrivingHistory(t *testing.T) {
	f := newPolicyFixture(models.CategoryVehicle)
	licenseDate := time.Now().AddDate(-10, 0, 0)
	accidents := 1

	base := models.CreateVehiclePolicyRequest{
		Policy:        f.draft(),
		ClientID:      uuid.New(),
		VehicleID:     uuid.New(),
		AccidentCount: &accidents,
		LicenseDate:   &licenseDate,
	}

	req := base
	req.AccidentCount = nil
	_, err := f.service.CreateVehiclePolicy(context.Background(), req)
	assert.ErrorIs(t, err, models.ErrInvalidField)

	req = base
	req.LicenseDate = nil
	_, err = f.service.CreateVehiclePolicy(context.Background(), req)
	assert.ErrorIs(t, err, models.ErrInvalidField)

	_, err = f.service.CreateVehiclePolicy(context.Background(), base)
	assert.NoError(t, err)
}

func TestCreateHealthPolicy_ValidatesClinicalData(t *testing.T) {
	f := newPolicyFixture(models.CategoryHealth)

	ghost := uuid.New()
	req := models.CreateHealthPolicyRequest{
		Policy:         f.draft(),
		ClientID:       uuid.New(),
		ClinicalDataID: &ghost,
	}
	_, err := f.service.CreateHealthPolicy(context.Background(), req)
	assert.ErrorIs(t, err, models.ErrClinicalDataNotFound)

	data := &models.ClinicalData{ID: uuid.New(), ClientID: req.ClientID}
	f.diseaseRepo.clinicalData[data.ID] = data
	req.ClinicalDataID = &data.ID

	_, err = f.service.CreateHealthPolicy(context.Background(), req)
	assert.NoError(t, err)
}

// ============================================================================
// LISTING
// ============================================================================

func TestGetClientPersonalPolicies(t *testing.T) {
	f := newPolicyFixture(models.CategoryPersonal)

	client := &models.Client{ID: uuid.New(), PersonID: uuid.New()}
	f.clientRepo.clients[client.ID] = client

	req := f.personalRequest()
	req.ClientID = client.ID
	spec, err := f.service.CreatePersonalPolicy(context.Background(), req)
	require.NoError(t, err)

	policies, err := f.service.GetClientPersonalPolicies(context.Background(), client.ID)
	require.NoError(t, err)
	require.Len(t, policies, 1)
	assert.Equal(t, spec.ID, policies[0].ID)

	_, err = f.service.GetClientPersonalPolicies(context.Background(), uuid.New())
	assert.ErrorIs(t, err, models.ErrClientNotFound)
}

// ============================================================================
// UPDATES
// ============================================================================

func (f *policyFixture) seedPolicy(mutate func(*models.Policy)) *models.Policy {
	premium := 1200.0
	policy := &models.Policy{
		ID:              uuid.New(),
		Active:          false,
		Premium:         &premium,
		InstallmentPlan: models.InstallmentMonthly,
		SimulationState: models.SimulationValidated,
		AgentID:         &f.agent.ID,
		ProductID:       f.product.ID,
	}
	if mutate != nil {
		mutate(policy)
	}
	f.policyRepo.policies[policy.ID] = policy
	return policy
}

func (f *policyFixture) updateRequest(policy *models.Policy) models.UpdatePolicyRequest {
	return models.UpdatePolicyRequest{
		Premium:         policy.Premium,
		InstallmentPlan: policy.InstallmentPlan,
		SimulationState: policy.SimulationState,
		AgentID:         policy.AgentID,
		ProductID:       policy.ProductID,
	}
}

func TestUpdatePolicy_LifecycleGate(t *testing.T) {
	t.Run("active policy is frozen", func(t *testing.T) {
		f := newPolicyFixture(models.CategoryPersonal)
		policy := f.seedPolicy(func(p *models.Policy) { p.Active = true })

		_, err := f.service.UpdatePolicy(context.Background(), policy.ID, f.updateRequest(policy))
		assert.ErrorIs(t, err, models.ErrInvalidUpdate)
	})

	t.Run("issued policy is frozen", func(t *testing.T) {
		f := newPolicyFixture(models.CategoryPersonal)
		policy := f.seedPolicy(func(p *models.Policy) {
			p.SimulationState = models.SimulationPaymentIssued
		})

		_, err := f.service.UpdatePolicy(context.Background(), policy.ID, f.updateRequest(policy))
		assert.ErrorIs(t, err, models.ErrInvalidUpdate)
	})

	t.Run("inactive unissued policy updates", func(t *testing.T) {
		f := newPolicyFixture(models.CategoryPersonal)
		policy := f.seedPolicy(nil)

		req := f.updateRequest(policy)
		req.SimulationState = models.SimulationApproved
		updated, err := f.service.UpdatePolicy(context.Background(), policy.ID, req)
		require.NoError(t, err)
		assert.Equal(t, models.SimulationApproved, updated.SimulationState)
	})
}

func TestUpdatePolicy_AgentRules(t *testing.T) {
	t.Run("assigned agent cannot change", func(t *testing.T) {
		f := newPolicyFixture(models.CategoryPersonal)
		policy := f.seedPolicy(nil)

		other := &models.Agent{ID: uuid.New(), PersonID: uuid.New()}
		f.agentRepo.agents[other.ID] = other

		req := f.updateRequest(policy)
		req.AgentID = &other.ID
		_, err := f.service.UpdatePolicy(context.Background(), policy.ID, req)
		assert.ErrorIs(t, err, models.ErrInvalidAgent)
	})

	t.Run("unassigned policy requires an agent", func(t *testing.T) {
		f := newPolicyFixture(models.CategoryPersonal)
		policy := f.seedPolicy(func(p *models.Policy) { p.AgentID = nil })

		req := f.updateRequest(policy)
		req.AgentID = nil
		_, err := f.service.UpdatePolicy(context.Background(), policy.ID, req)
		assert.ErrorIs(t, err, models.ErrInvalidAgent)
	})

	t.Run("unassigned policy accepts a valid agent", func(t *testing.T) {
		f := newPolicyFixture(models.CategoryPersonal)
		policy := f.seedPolicy(func(p *models.Policy) { p.AgentID = nil })

		req := f.updateRequest(policy)
		req.AgentID = &f.agent.ID
		updated, err := f.service.UpdatePolicy(context.Background(), policy.ID, req)
		require.NoError(t, err)
		require.NotNil(t, updated.AgentID)
		assert.Equal(t, f.agent.ID, *updated.AgentID)
	})
}

func TestUpdatePolicy_ProductIsImmutable(t *testing.T) {
	f := newPolicyFixture(models.CategoryPersonal)
	policy := f.seedPolicy(nil)

	req := f.updateRequest(policy)
	req.ProductID = uuid.New()
	_, err := f.service.UpdatePolicy(context.Background(), policy.ID, req)
	assert.ErrorIs(t, err, models.ErrInvalidProduct)
}

func TestUpdatePersonalPolicy_Rules(t *testing.T) {
	f := newPolicyFixture(models.CategoryPersonal)

	spec, err := f.service.CreatePersonalPolicy(context.Background(), f.personalRequest())
	require.NoError(t, err)

	amount := 75000.0

	t.Run("client cannot change", func(t *testing.T) {
		_, err := f.service.UpdatePersonalPolicy(context.Background(), spec.ID, models.UpdatePersonalPolicyRequest{
			ClientID:      uuid.New(),
			InsuredAmount: &amount,
		})
		assert.ErrorIs(t, err, models.ErrInvalidClient)
	})

	t.Run("amount updates while parent is mutable", func(t *testing.T) {
		updated, err := f.service.UpdatePersonalPolicy(context.Background(), spec.ID, models.UpdatePersonalPolicyRequest{
			ClientID:      spec.ClientID,
			InsuredAmount: &amount,
		})
		require.NoError(t, err)
		assert.Equal(t, amount, *updated.InsuredAmount)
	})

	t.Run("frozen parent denies the specialization too", func(t *testing.T) {
		parent := f.policyRepo.policies[spec.PolicyID]
		parent.Active = true

		_, err := f.service.UpdatePersonalPolicy(context.Background(), spec.ID, models.UpdatePersonalPolicyRequest{
			ClientID:      spec.ClientID,
			InsuredAmount: &amount,
		})
		assert.ErrorIs(t, err, models.ErrPermissionDenied)
	})
}

func TestUpdateVehiclePolicy_VehicleImmutable(t *testing.T) {
	f := newPolicyFixture(models.CategoryVehicle)
	licenseDate := time.Now().AddDate(-5, 0, 0)
	accidents := 0

	spec, err := f.service.CreateVehiclePolicy(context.Background(), models.CreateVehiclePolicyRequest{
		Policy:        f.draft(),
		ClientID:      uuid.New(),
		VehicleID:     uuid.New(),
		AccidentCount: &accidents,
		LicenseDate:   &licenseDate,
	})
	require.NoError(t, err)

	_, err = f.service.UpdateVehiclePolicy(context.Background(), spec.ID, models.UpdateVehiclePolicyRequest{
		ClientID:      spec.ClientID,
		VehicleID:     uuid.New(),
		AccidentCount: &accidents,
		LicenseDate:   &licenseDate,
	})
	assert.ErrorIs(t, err, models.ErrInvalidVehicle)
}
