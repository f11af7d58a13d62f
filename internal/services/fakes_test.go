package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"backoffice-service/internal/models"
	"backoffice-service/pkg/utils"

	"github.com/google/uuid"
)

// ============================================================================
// IN-MEMORY REPOSITORY FAKES
// ============================================================================

type fakeProductRepo struct {
	products map[uuid.UUID]*models.Product
	policies map[uuid.UUID]int // product id -> referencing policy count
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products: make(map[uuid.UUID]*models.Product),
		policies: make(map[uuid.UUID]int),
	}
}

func (f *fakeProductRepo) Create(_ context.Context, product *models.Product) error {
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	copied := *product
	return &copied, nil
}

func (f *fakeProductRepo) GetAll(_ context.Context) ([]models.Product, error) {
	out := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProductRepo) GetByCategory(_ context.Context, category models.ProductCategory) ([]models.Product, error) {
	var out []models.Product
	for _, p := range f.products {
		if p.Category == category && p.Active {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	product, ok := f.products[id]
	if !ok {
		return models.ErrProductNotFound
	}
	product.Active = active
	return nil
}

func (f *fakeProductRepo) CountPolicies(_ context.Context, productID uuid.UUID) (int, error) {
	return f.policies[productID], nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.products, id)
	return nil
}

type fakeCoverageRepo struct {
	coverages map[uuid.UUID]*models.Coverage
}

func newFakeCoverageRepo() *fakeCoverageRepo {
	return &fakeCoverageRepo{coverages: make(map[uuid.UUID]*models.Coverage)}
}

func (f *fakeCoverageRepo) Create(_ context.Context, coverage *models.Coverage) error {
	f.coverages[coverage.ID] = coverage
	return nil
}

func (f *fakeCoverageRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Coverage, error) {
	coverage, ok := f.coverages[id]
	if !ok {
		return nil, models.ErrCoverageNotFound
	}
	copied := *coverage
	return &copied, nil
}

func (f *fakeCoverageRepo) GetByProductID(_ context.Context, productID uuid.UUID) ([]models.Coverage, error) {
	var out []models.Coverage
	for _, c := range f.coverages {
		if c.ProductID == productID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCoverageRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.coverages, id)
	return nil
}

type fakeAgentRepo struct {
	agents map[uuid.UUID]*models.Agent
}

func newFakeAgentRepo() *fakeAgentRepo {
	return &fakeAgentRepo{agents: make(map[uuid.UUID]*models.Agent)}
}

func (f *fakeAgentRepo) Create(_ context.Context, agent *models.Agent) error {
	f.agents[agent.ID] = agent
	return nil
}

func (f *fakeAgentRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Agent, error) {
	agent, ok := f.agents[id]
	if !ok {
		return nil, models.ErrAgentNotFound
	}
	copied := *agent
	return &copied, nil
}

func (f *fakeAgentRepo) GetByTeamID(_ context.Context, teamID uuid.UUID) ([]models.Agent, error) {
	var out []models.Agent
	for _, a := range f.agents {
		if a.TeamID != nil && *a.TeamID == teamID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAgentRepo) GetAll(_ context.Context, _, _ int) ([]models.Agent, error) {
	out := make([]models.Agent, 0, len(f.agents))
	for _, a := range f.agents {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAgentRepo) AssignTeam(_ context.Context, agentID, teamID uuid.UUID) error {
	agent, ok := f.agents[agentID]
	if !ok {
		return models.ErrAgentNotFound
	}
	agent.TeamID = &teamID
	return nil
}

type fakeDiseaseRepo struct {
	diseases     map[uuid.UUID]*models.Disease
	clinicalData map[uuid.UUID]*models.ClinicalData
	links        map[uuid.UUID][]uuid.UUID // clinical data id -> disease ids
}

func newFakeDiseaseRepo() *fakeDiseaseRepo {
	return &fakeDiseaseRepo{
		diseases:     make(map[uuid.UUID]*models.Disease),
		clinicalData: make(map[uuid.UUID]*models.ClinicalData),
		links:        make(map[uuid.UUID][]uuid.UUID),
	}
}

func (f *fakeDiseaseRepo) Create(_ context.Context, disease *models.Disease) error {
	f.diseases[disease.ID] = disease
	return nil
}

func (f *fakeDiseaseRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Disease, error) {
	disease, ok := f.diseases[id]
	if !ok {
		return nil, models.ErrDiseaseNotFound
	}
	copied := *disease
	return &copied, nil
}

func (f *fakeDiseaseRepo) GetAll(_ context.Context) ([]models.Disease, error) {
	out := make([]models.Disease, 0, len(f.diseases))
	for _, d := range f.diseases {
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeDiseaseRepo) CreateClinicalData(_ context.Context, data *models.ClinicalData, diseaseIDs []uuid.UUID) error {
	f.clinicalData[data.ID] = data
	f.links[data.ID] = diseaseIDs
	return nil
}

func (f *fakeDiseaseRepo) GetClinicalDataByID(_ context.Context, id uuid.UUID) (*models.ClinicalData, error) {
	data, ok := f.clinicalData[id]
	if !ok {
		return nil, models.ErrClinicalDataNotFound
	}
	copied := *data
	return &copied, nil
}

func (f *fakeDiseaseRepo) GetClinicalDataByClientID(_ context.Context, clientID uuid.UUID) (*models.ClinicalData, error) {
	for _, data := range f.clinicalData {
		if data.ClientID == clientID {
			copied := *data
			return &copied, nil
		}
	}
	return nil, models.ErrClinicalDataNotFound
}

func (f *fakeDiseaseRepo) GetDiseasesForClinicalData(_ context.Context, clinicalDataID uuid.UUID) ([]models.Disease, error) {
	var out []models.Disease
	for _, diseaseID := range f.links[clinicalDataID] {
		if d, ok := f.diseases[diseaseID]; ok {
			out = append(out, *d)
		}
	}
	return out, nil
}

type fakePolicyRepo struct {
	policies  map[uuid.UUID]*models.Policy
	links     map[uuid.UUID][]models.CoverageLink
	personals map[uuid.UUID]*models.PersonalPolicy
	healths   map[uuid.UUID]*models.HealthPolicy
	vehicles  map[uuid.UUID]*models.VehiclePolicy

	appliedPayments []models.Payment
	applyErr        error
}

func newFakePolicyRepo() *fakePolicyRepo {
	return &fakePolicyRepo{
		policies:  make(map[uuid.UUID]*models.Policy),
		links:     make(map[uuid.UUID][]models.CoverageLink),
		personals: make(map[uuid.UUID]*models.PersonalPolicy),
		healths:   make(map[uuid.UUID]*models.HealthPolicy),
		vehicles:  make(map[uuid.UUID]*models.VehiclePolicy),
	}
}

func (f *fakePolicyRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Policy, error) {
	policy, ok := f.policies[id]
	if !ok {
		return nil, models.ErrPolicyNotFound
	}
	copied := *policy
	return &copied, nil
}

func (f *fakePolicyRepo) GetAll(_ context.Context, _, _ int) ([]models.Policy, error) {
	out := make([]models.Policy, 0, len(f.policies))
	for _, p := range f.policies {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePolicyRepo) Update(_ context.Context, policy *models.Policy) error {
	if _, ok := f.policies[policy.ID]; !ok {
		return models.ErrPolicyNotFound
	}
	copied := *policy
	f.policies[policy.ID] = &copied
	return nil
}

func (f *fakePolicyRepo) GetCoverageLinks(_ context.Context, policyID uuid.UUID) ([]models.CoverageLink, error) {
	return f.links[policyID], nil
}

func (f *fakePolicyRepo) CreatePersonal(_ context.Context, policy *models.Policy, links []models.CoverageLink, spec *models.PersonalPolicy) error {
	f.policies[policy.ID] = policy
	f.links[policy.ID] = links
	f.personals[spec.ID] = spec
	return nil
}

func (f *fakePolicyRepo) CreateHealth(_ context.Context, policy *models.Policy, links []models.CoverageLink, spec *models.HealthPolicy) error {
	f.policies[policy.ID] = policy
	f.links[policy.ID] = links
	f.healths[spec.ID] = spec
	return nil
}

func (f *fakePolicyRepo) CreateVehicle(_ context.Context, policy *models.Policy, links []models.CoverageLink, spec *models.VehiclePolicy) error {
	f.policies[policy.ID] = policy
	f.links[policy.ID] = links
	f.vehicles[spec.ID] = spec
	return nil
}

func (f *fakePolicyRepo) GetPersonalByID(_ context.Context, id uuid.UUID) (*models.PersonalPolicy, error) {
	spec, ok := f.personals[id]
	if !ok {
		return nil, models.ErrPolicyNotFound
	}
	copied := *spec
	return &copied, nil
}

func (f *fakePolicyRepo) GetHealthByID(_ context.Context, id uuid.UUID) (*models.HealthPolicy, error) {
	spec, ok := f.healths[id]
	if !ok {
		return nil, models.ErrPolicyNotFound
	}
	copied := *spec
	return &copied, nil
}

func (f *fakePolicyRepo) GetVehicleByID(_ context.Context, id uuid.UUID) (*models.VehiclePolicy, error) {
	spec, ok := f.vehicles[id]
	if !ok {
		return nil, models.ErrPolicyNotFound
	}
	copied := *spec
	return &copied, nil
}

func (f *fakePolicyRepo) GetPersonalByClientID(_ context.Context, clientID uuid.UUID) ([]models.PersonalPolicy, error) {
	var out []models.PersonalPolicy
	for _, spec := range f.personals {
		if spec.ClientID == clientID {
			out = append(out, *spec)
		}
	}
	return out, nil
}

func (f *fakePolicyRepo) UpdatePersonal(_ context.Context, spec *models.PersonalPolicy) error {
	if _, ok := f.personals[spec.ID]; !ok {
		return models.ErrPolicyNotFound
	}
	copied := *spec
	f.personals[spec.ID] = &copied
	return nil
}

func (f *fakePolicyRepo) UpdateVehicle(_ context.Context, spec *models.VehiclePolicy) error {
	if _, ok := f.vehicles[spec.ID]; !ok {
		return models.ErrPolicyNotFound
	}
	copied := *spec
	f.vehicles[spec.ID] = &copied
	return nil
}

func (f *fakePolicyRepo) DuePolicies(_ context.Context, asOf time.Time) ([]models.Policy, error) {
	var out []models.Policy
	for _, p := range f.policies {
		if p.SimulationState == models.SimulationPaymentIssued && p.ValidUntil != nil && p.ValidUntil.Before(asOf) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (f *fakePolicyRepo) ApplyBillingRun(_ context.Context, policies []models.Policy, payments []models.Payment) error {
	if f.applyErr != nil {
		return f.applyErr
	}
	for i := range policies {
		copied := policies[i]
		f.policies[copied.ID] = &copied
	}
	f.appliedPayments = append(f.appliedPayments, payments...)
	return nil
}

type fakePaymentRepo struct {
	payments map[uuid.UUID]*models.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[uuid.UUID]*models.Payment)}
}

func (f *fakePaymentRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Payment, error) {
	payment, ok := f.payments[id]
	if !ok {
		return nil, models.ErrPaymentNotFound
	}
	copied := *payment
	return &copied, nil
}

func (f *fakePaymentRepo) GetByPolicyID(_ context.Context, policyID uuid.UUID) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range f.payments {
		if p.PolicyID == policyID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) LatestForPolicy(_ context.Context, policyID uuid.UUID) (*models.Payment, error) {
	var latest *models.Payment
	for _, p := range f.payments {
		if p.PolicyID != policyID {
			continue
		}
		if latest == nil || p.IssueDate.After(latest.IssueDate) {
			latest = p
		}
	}
	if latest == nil {
		return nil, models.ErrPaymentNotFound
	}
	copied := *latest
	return &copied, nil
}

func (f *fakePaymentRepo) MarkPaid(_ context.Context, id uuid.UUID) error {
	payment, ok := f.payments[id]
	if !ok {
		return models.ErrPaymentNotFound
	}
	payment.PaidDate = time.Now()
	return nil
}

type fakeClaimRepo struct {
	claims    map[uuid.UUID]*models.Claim
	evidence  map[uuid.UUID][]models.Evidence
	reports   map[uuid.UUID][]models.AssessmentReport
	personals map[uuid.UUID]*models.PersonalClaim
	vehicles  map[uuid.UUID]*models.VehicleClaim
}

func newFakeClaimRepo() *fakeClaimRepo {
	return &fakeClaimRepo{
		claims:    make(map[uuid.UUID]*models.Claim),
		evidence:  make(map[uuid.UUID][]models.Evidence),
		reports:   make(map[uuid.UUID][]models.AssessmentReport),
		personals: make(map[uuid.UUID]*models.PersonalClaim),
		vehicles:  make(map[uuid.UUID]*models.VehicleClaim),
	}
}

func (f *fakeClaimRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Claim, error) {
	claim, ok := f.claims[id]
	if !ok {
		return nil, models.ErrClaimNotFound
	}
	copied := *claim
	return &copied, nil
}

func (f *fakeClaimRepo) GetAll(_ context.Context, _, _ int) ([]models.Claim, error) {
	out := make([]models.Claim, 0, len(f.claims))
	for _, c := range f.claims {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeClaimRepo) Update(_ context.Context, claim *models.Claim) error {
	if _, ok := f.claims[claim.ID]; !ok {
		return models.ErrClaimNotFound
	}
	copied := *claim
	f.claims[claim.ID] = &copied
	return nil
}

func (f *fakeClaimRepo) AddEvidence(_ context.Context, evidence *models.Evidence, newState models.ClaimState) error {
	claim, ok := f.claims[evidence.ClaimID]
	if !ok {
		return models.ErrClaimNotFound
	}
	f.evidence[evidence.ClaimID] = append(f.evidence[evidence.ClaimID], *evidence)
	claim.State = newState
	return nil
}

func (f *fakeClaimRepo) AddAssessmentReport(_ context.Context, report *models.AssessmentReport, claim *models.Claim) error {
	if _, ok := f.claims[claim.ID]; !ok {
		return models.ErrClaimNotFound
	}
	f.reports[report.ClaimID] = append(f.reports[report.ClaimID], *report)
	copied := *claim
	f.claims[claim.ID] = &copied
	return nil
}

func (f *fakeClaimRepo) GetEvidenceByClaimID(_ context.Context, claimID uuid.UUID) ([]models.Evidence, error) {
	return f.evidence[claimID], nil
}

func (f *fakeClaimRepo) GetReportsByClaimID(_ context.Context, claimID uuid.UUID) ([]models.AssessmentReport, error) {
	return f.reports[claimID], nil
}

func (f *fakeClaimRepo) CreatePersonalClaim(_ context.Context, claim *models.Claim, link *models.PersonalClaim) error {
	f.claims[claim.ID] = claim
	f.personals[link.ID] = link
	return nil
}

func (f *fakeClaimRepo) CreateVehicleClaim(_ context.Context, claim *models.Claim, link *models.VehicleClaim) error {
	f.claims[claim.ID] = claim
	f.vehicles[link.ID] = link
	return nil
}

func (f *fakeClaimRepo) GetPersonalClaimsByPolicyID(_ context.Context, personalPolicyID uuid.UUID) ([]models.PersonalClaim, error) {
	var out []models.PersonalClaim
	for _, link := range f.personals {
		if link.PersonalPolicyID == personalPolicyID {
			out = append(out, *link)
		}
	}
	return out, nil
}

func (f *fakeClaimRepo) GetVehicleClaimsByPolicyID(_ context.Context, vehiclePolicyID uuid.UUID) ([]models.VehicleClaim, error) {
	var out []models.VehicleClaim
	for _, link := range f.vehicles {
		if link.VehiclePolicyID == vehiclePolicyID {
			out = append(out, *link)
		}
	}
	return out, nil
}

type fakePersonRepo struct {
	persons map[uuid.UUID]*models.Person
}

func newFakePersonRepo() *fakePersonRepo {
	return &fakePersonRepo{persons: make(map[uuid.UUID]*models.Person)}
}

func (f *fakePersonRepo) Create(_ context.Context, person *models.Person) error {
	f.persons[person.ID] = person
	return nil
}

func (f *fakePersonRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Person, error) {
	person, ok := f.persons[id]
	if !ok {
		return nil, models.ErrPersonNotFound
	}
	copied := *person
	return &copied, nil
}

func (f *fakePersonRepo) GetByNIF(_ context.Context, nif string) (*models.Person, error) {
	for _, person := range f.persons {
		if person.NIF == nif {
			copied := *person
			return &copied, nil
		}
	}
	return nil, models.ErrPersonNotFound
}

func (f *fakePersonRepo) GetAll(_ context.Context, _, _ int) ([]models.Person, error) {
	out := make([]models.Person, 0, len(f.persons))
	for _, p := range f.persons {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePersonRepo) Update(_ context.Context, person *models.Person) error {
	if _, ok := f.persons[person.ID]; !ok {
		return models.ErrPersonNotFound
	}
	copied := *person
	f.persons[person.ID] = &copied
	return nil
}

func (f *fakePersonRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.persons[id]; !ok {
		return utils.ErrNoRowsAffected
	}
	delete(f.persons, id)
	return nil
}

type fakeTeamRepo struct {
	teams map[uuid.UUID]*models.Team
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[uuid.UUID]*models.Team)}
}

func (f *fakeTeamRepo) Create(_ context.Context, team *models.Team) error {
	f.teams[team.ID] = team
	return nil
}

func (f *fakeTeamRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Team, error) {
	team, ok := f.teams[id]
	if !ok {
		return nil, models.ErrTeamNotFound
	}
	copied := *team
	return &copied, nil
}

func (f *fakeTeamRepo) GetAll(_ context.Context) ([]models.Team, error) {
	out := make([]models.Team, 0, len(f.teams))
	for _, t := range f.teams {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTeamRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.teams[id]; !ok {
		return utils.ErrNoRowsAffected
	}
	delete(f.teams, id)
	return nil
}

type fakeManagerRepo struct {
	managers map[uuid.UUID]*models.Manager
	persons  *fakePersonRepo
	users    *fakeUserRepo
}

func newFakeManagerRepo(persons *fakePersonRepo, users *fakeUserRepo) *fakeManagerRepo {
	return &fakeManagerRepo{
		managers: make(map[uuid.UUID]*models.Manager),
		persons:  persons,
		users:    users,
	}
}

func (f *fakeManagerRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Manager, error) {
	manager, ok := f.managers[id]
	if !ok {
		return nil, models.ErrManagerNotFound
	}
	copied := *manager
	return &copied, nil
}

func (f *fakeManagerRepo) GetByTeamID(_ context.Context, teamID uuid.UUID) (*models.Manager, error) {
	for _, manager := range f.managers {
		if manager.TeamID == teamID {
			copied := *manager
			return &copied, nil
		}
	}
	return nil, models.ErrManagerNotFound
}

func (f *fakeManagerRepo) CreateGraph(ctx context.Context, person *models.Person, user *models.User, manager *models.Manager) error {
	if err := f.persons.Create(ctx, person); err != nil {
		return err
	}
	// The graph insert stores the pre-hashed password as given.
	copied := *user
	f.users.users[user.ID] = &copied
	f.managers[manager.ID] = manager
	return nil
}

type fakeClientRepo struct {
	clients map[uuid.UUID]*models.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[uuid.UUID]*models.Client)}
}

func (f *fakeClientRepo) Create(_ context.Context, client *models.Client) error {
	f.clients[client.ID] = client
	return nil
}

func (f *fakeClientRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Client, error) {
	client, ok := f.clients[id]
	if !ok {
		return nil, models.ErrClientNotFound
	}
	copied := *client
	return &copied, nil
}

func (f *fakeClientRepo) GetByPersonID(_ context.Context, personID uuid.UUID) (*models.Client, error) {
	for _, client := range f.clients {
		if client.PersonID == personID {
			copied := *client
			return &copied, nil
		}
	}
	return nil, models.ErrClientNotFound
}

func (f *fakeClientRepo) GetAll(_ context.Context, _, _ int) ([]models.Client, error) {
	out := make([]models.Client, 0, len(f.clients))
	for _, c := range f.clients {
		out = append(out, *c)
	}
	return out, nil
}

type fakeVehicleRepo struct {
	categories map[uuid.UUID]*models.VehicleCategory
	vehicles   map[uuid.UUID]*models.Vehicle
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{
		categories: make(map[uuid.UUID]*models.VehicleCategory),
		vehicles:   make(map[uuid.UUID]*models.Vehicle),
	}
}

func (f *fakeVehicleRepo) CreateCategory(_ context.Context, category *models.VehicleCategory) error {
	f.categories[category.ID] = category
	return nil
}

func (f *fakeVehicleRepo) GetCategoryByID(_ context.Context, id uuid.UUID) (*models.VehicleCategory, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, models.ErrCategoryNotFound
	}
	copied := *category
	return &copied, nil
}

func (f *fakeVehicleRepo) GetAllCategories(_ context.Context) ([]models.VehicleCategory, error) {
	out := make([]models.VehicleCategory, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeVehicleRepo) Create(_ context.Context, vehicle *models.Vehicle) error {
	f.vehicles[vehicle.ID] = vehicle
	return nil
}

func (f *fakeVehicleRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Vehicle, error) {
	vehicle, ok := f.vehicles[id]
	if !ok {
		return nil, models.ErrVehicleNotFound
	}
	copied := *vehicle
	return &copied, nil
}

func (f *fakeVehicleRepo) GetByClientID(_ context.Context, clientID uuid.UUID) ([]models.Vehicle, error) {
	var out []models.Vehicle
	for _, v := range f.vehicles {
		if v.ClientID == clientID {
			out = append(out, *v)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	copied := *user
	copied.PasswordHash = "hash:" + user.PasswordHash
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, userID uuid.UUID, newPassword string) error {
	user, ok := f.users[userID]
	if !ok {
		return models.ErrUserNotFound
	}
	user.PasswordHash = "hash:" + newPassword
	return nil
}

func (f *fakeUserRepo) Deactivate(_ context.Context, userID uuid.UUID) error {
	user, ok := f.users[userID]
	if !ok {
		return models.ErrUserNotFound
	}
	user.Active = false
	return nil
}

func (f *fakeUserRepo) CheckPasswordHash(password, hash string) bool {
	return "hash:"+password == hash
}

func (f *fakeUserRepo) HashPassword(password string) (string, error) {
	return "hash:" + password, nil
}

type fakeSessionRepo struct {
	sessions map[string]*models.UserSession
	ttl      time.Duration
	now      func() time.Time
}

func newFakeSessionRepo(ttl time.Duration, now func() time.Time) *fakeSessionRepo {
	return &fakeSessionRepo{
		sessions: make(map[string]*models.UserSession),
		ttl:      ttl,
		now:      now,
	}
}

func (f *fakeSessionRepo) CreateSession(_ context.Context, session *models.UserSession) error {
	session.ExpiresAt = f.now().Add(f.ttl)
	session.IsActive = true
	copied := *session
	f.sessions[session.ID] = &copied
	return nil
}

func (f *fakeSessionRepo) GetSession(_ context.Context, sessionID string) (*models.UserSession, error) {
	session, ok := f.sessions[sessionID]
	if !ok {
		return nil, models.ErrSessionInvalid
	}
	copied := *session
	return &copied, nil
}

func (f *fakeSessionRepo) DeleteSession(_ context.Context, sessionID string) error {
	delete(f.sessions, sessionID)
	return nil
}

func (f *fakeSessionRepo) DeleteUserSessions(_ context.Context, userID string) error {
	for id, session := range f.sessions {
		if session.UserID == userID {
			delete(f.sessions, id)
		}
	}
	return nil
}

func (f *fakeSessionRepo) GetUserSessions(_ context.Context, userID string) ([]*models.UserSession, error) {
	var out []*models.UserSession
	for _, session := range f.sessions {
		if session.UserID == userID {
			copied := *session
			out = append(out, &copied)
		}
	}
	return out, nil
}

// fakeNotifier records billing notifications for assertions.
type fakeNotifier struct {
	mu        sync.Mutex
	cancelled []uuid.UUID
	issued    []uuid.UUID
}

func (f *fakeNotifier) PolicyCancelled(_ context.Context, policy models.Policy) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, policy.ID)
}

func (f *fakeNotifier) PaymentIssued(_ context.Context, policy models.Policy, _ models.Payment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.issued = append(f.issued, policy.ID)
}
