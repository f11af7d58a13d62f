package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"backoffice-service/internal/models"
	"backoffice-service/pkg/utils"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type PolicyRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Policy, error)
	GetAll(ctx context.Context, limit, offset int) ([]models.Policy, error)
	Update(ctx context.Context, policy *models.Policy) error
	GetCoverageLinks(ctx context.Context, policyID uuid.UUID) ([]models.CoverageLink, error)

	// Specialization creates persist the policy, its coverage links and the
	// specialization row in a single transaction; a failure anywhere leaves
	// no partial rows behind.
	CreatePersonal(ctx context.Context, policy *models.Policy, links []models.CoverageLink, spec *models.PersonalPolicy) error
	CreateHealth(ctx context.Context, policy *models.Policy, links []models.CoverageLink, spec *models.HealthPolicy) error
	CreateVehicle(ctx context.Context, policy *models.Policy, links []models.CoverageLink, spec *models.VehiclePolicy) error

	GetPersonalByID(ctx context.Context, id uuid.UUID) (*models.PersonalPolicy, error)
	GetHealthByID(ctx context.Context, id uuid.UUID) (*models.HealthPolicy, error)
	GetVehicleByID(ctx context.Context, id uuid.UUID) (*models.VehiclePolicy, error)
	GetPersonalByClientID(ctx context.Context, clientID uuid.UUID) ([]models.PersonalPolicy, error)
	UpdatePersonal(ctx context.Context, spec *models.PersonalPolicy) error
	UpdateVehicle(ctx context.Context, spec *models.VehiclePolicy) error

	// DuePolicies returns policies in Pagamento Emitido whose validity lapsed
	// before asOf.
	DuePolicies(ctx context.Context, asOf time.Time) ([]models.Policy, error)
	// ApplyBillingRun commits one billing batch atomically: every policy
	// mutation and every synthesized payment, or nothing.
	ApplyBillingRun(ctx context.Context, policies []models.Policy, payments []models.Payment) error
}

type policyRepository struct {
	db *sqlx.DB
}

func NewPolicyRepository(db *sqlx.DB) PolicyRepository {
	return &policyRepository{db: db}
}

const policyColumns = `id, active, premium, valid_until, installment_plan, simulation_state, agent_id, product_id, created_at, updated_at`

func (r *policyRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Policy, error) {
	var policy models.Policy
	query := `SELECT ` + policyColumns + ` FROM apolice WHERE id = $1`

	if err := r.db.GetContext(ctx, &policy, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrPolicyNotFound
		}
		return nil, fmt.Errorf("failed to get policy by id: %w", err)
	}
	return &policy, nil
}

func (r *policyRepository) GetAll(ctx context.Context, limit, offset int) ([]models.Policy, error) {
	var policies []models.Policy
	query := `SELECT ` + policyColumns + ` FROM apolice ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	if err := r.db.SelectContext(ctx, &policies, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to get policies: %w", err)
	}
	return policies, nil
}

func (r *policyRepository) Update(ctx context.Context, policy *models.Policy) error {
	query := `
		UPDATE apolice
		SET premium = $1, installment_plan = $2, simulation_state = $3, agent_id = $4, updated_at = $5
		WHERE id = $6
	`

	err := utils.ExecWithCheck(ctx, r.db, query, utils.ExecUpdate,
		policy.Premium, policy.InstallmentPlan, policy.SimulationState, policy.AgentID, time.Now(), policy.ID)
	if err != nil {
		return fmt.Errorf("failed to update policy: %w", err)
	}
	return nil
}

func (r *policyRepository) GetCoverageLinks(ctx context.Context, policyID uuid.UUID) ([]models.CoverageLink, error) {
	var links []models.CoverageLink
	query := `SELECT id, coverage_id, policy_id FROM cobertura_has_apolice WHERE policy_id = $1`

	if err := r.db.SelectContext(ctx, &links, query, policyID); err != nil {
		return nil, fmt.Errorf("failed to get coverage links: %w", err)
	}
	return links, nil
}

func (r *policyRepository) createPolicyTx(ctx context.Context, tx *sqlx.Tx, policy *models.Policy, links []models.CoverageLink) error {
	now := time.Now()
	policy.CreatedAt = now
	policy.UpdatedAt = now

	query := `
		INSERT INTO apolice (id, active, premium, valid_until, installment_plan, simulation_state, agent_id, product_id, created_at, updated_at)
		VALUES (:id, :active, :premium, :valid_until, :installment_plan, :simulation_state, :agent_id, :product_id, :created_at, :updated_at)
	`
	if _, err := tx.NamedExecContext(ctx, query, policy); err != nil {
		return fmt.Errorf("failed to create policy: %w", err)
	}

	linkQuery := `INSERT INTO cobertura_has_apolice (id, coverage_id, policy_id) VALUES ($1, $2, $3)`
	for _, link := range links {
		if _, err := tx.ExecContext(ctx, linkQuery, link.ID, link.CoverageID, link.PolicyID); err != nil {
			return fmt.Errorf("failed to create coverage link: %w", err)
		}
	}
	return nil
}

func (r *policyRepository) CreatePersonal(ctx context.Context, policy *models.Policy, links []models.CoverageLink, spec *models.PersonalPolicy) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := r.createPolicyTx(ctx, tx, policy, links); err != nil {
		return err
	}

	query := `INSERT INTO apolice_pessoal (id, policy_id, client_id, insured_amount) VALUES (:id, :policy_id, :client_id, :insured_amount)`
	if _, err := tx.NamedExecContext(ctx, query, spec); err != nil {
		return fmt.Errorf("failed to create personal policy: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit personal policy: %w", err)
	}
	return nil
}

func (r *policyRepository) CreateHealth(ctx context.Context, policy *models.Policy, links []models.CoverageLink, spec *models.HealthPolicy) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := r.createPolicyTx(ctx, tx, policy, links); err != nil {
		return err
	}

	query := `INSERT INTO apolice_saude (id, policy_id, client_id, clinical_data_id) VALUES (:id, :policy_id, :client_id, :clinical_data_id)`
	if _, err := tx.NamedExecContext(ctx, query, spec); err != nil {
		return fmt.Errorf("failed to create health policy: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit health policy: %w", err)
	}
	return nil
}

func (r *policyRepository) CreateVehicle(ctx context.Context, policy *models.Policy, links []models.CoverageLink, spec *models.VehiclePolicy) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := r.createPolicyTx(ctx, tx, policy, links); err != nil {
		return err
	}

	query := `
		INSERT INTO apolice_veiculo (id, policy_id, client_id, vehicle_id, accident_count, license_date)
		VALUES (:id, :policy_id, :client_id, :vehicle_id, :accident_count, :license_date)
	`
	if _, err := tx.NamedExecContext(ctx, query, spec); err != nil {
		return fmt.Errorf("failed to create vehicle policy: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit vehicle policy: %w", err)
	}
	return nil
}

func (r *policyRepository) GetPersonalByID(ctx context.Context, id uuid.UUID) (*models.PersonalPolicy, error) {
	var spec models.PersonalPolicy
	if err := r.db.GetContext(ctx, &spec, `SELECT * FROM apolice_pessoal WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrPolicyNotFound
		}
		return nil, fmt.Errorf("failed to get personal policy: %w", err)
	}
	return &spec, nil
}

func (r *policyRepository) GetHealthByID(ctx context.Context, id uuid.UUID) (*models.HealthPolicy, error) {
	var spec models.HealthPolicy
	if err := r.db.GetContext(ctx, &spec, `SELECT * FROM apolice_saude WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrPolicyNotFound
		}
		return nil, fmt.Errorf("failed to get health policy: %w", err)
	}
	return &spec, nil
}

func (r *policyRepository) GetVehicleByID(ctx context.Context, id uuid.UUID) (*models.VehiclePolicy, error) {
	var spec models.VehiclePolicy
	if err := r.db.GetContext(ctx, &spec, `SELECT * FROM apolice_veiculo WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrPolicyNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle policy: %w", err)
	}
	return &spec, nil
}

func (r *policyRepository) GetPersonalByClientID(ctx context.Context, clientID uuid.UUID) ([]models.PersonalPolicy, error) {
	var specs []models.PersonalPolicy
	query := `SELECT * FROM apolice_pessoal WHERE client_id = $1`
	if err := r.db.SelectContext(ctx, &specs, query, clientID); err != nil {
		return nil, fmt.Errorf("failed to get personal policies by client: %w", err)
	}
	return specs, nil
}

func (r *policyRepository) UpdatePersonal(ctx context.Context, spec *models.PersonalPolicy) error {
	query := `UPDATE apolice_pessoal SET insured_amount = $1 WHERE id = $2`
	if err := utils.ExecWithCheck(ctx, r.db, query, utils.ExecUpdate, spec.InsuredAmount, spec.ID); err != nil {
		return fmt.Errorf("failed to update personal policy: %w", err)
	}
	return nil
}

func (r *policyRepository) UpdateVehicle(ctx context.Context, spec *models.VehiclePolicy) error {
	query := `UPDATE apolice_veiculo SET accident_count = $1, license_date = $2 WHERE id = $3`
	if err := utils.ExecWithCheck(ctx, r.db, query, utils.ExecUpdate, spec.AccidentCount, spec.LicenseDate, spec.ID); err != nil {
		return fmt.Errorf("failed to update vehicle policy: %w", err)
	}
	return nil
}

func (r *policyRepository) DuePolicies(ctx context.Context, asOf time.Time) ([]models.Policy, error) {
	var policies []models.Policy
	query := `
		SELECT ` + policyColumns + `
		FROM apolice
		WHERE simulation_state = $1 AND valid_until IS NOT NULL AND valid_until < $2
		ORDER BY valid_until
	`

	if err := r.db.SelectContext(ctx, &policies, query, models.SimulationPaymentIssued, asOf); err != nil {
		return nil, fmt.Errorf("failed to get due policies: %w", err)
	}
	return policies, nil
}

func (r *policyRepository) ApplyBillingRun(ctx context.Context, policies []models.Policy, payments []models.Payment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	policyQuery := `
		UPDATE apolice
		SET active = $1, valid_until = $2, simulation_state = $3, updated_at = $4
		WHERE id = $5
	`
	for i := range policies {
		policy := &policies[i]
		err := utils.ExecWithCheck(ctx, tx, policyQuery, utils.ExecUpdate,
			policy.Active, policy.ValidUntil, policy.SimulationState, time.Now(), policy.ID)
		if err != nil {
			return fmt.Errorf("failed to update policy %s in billing run: %w", policy.ID, err)
		}
	}

	paymentQuery := `
		INSERT INTO pagamento (id, method, issue_date, paid_date, amount, policy_id)
		VALUES (:id, :method, :issue_date, :paid_date, :amount, :policy_id)
	`
	for i := range payments {
		if _, err := tx.NamedExecContext(ctx, paymentQuery, &payments[i]); err != nil {
			return fmt.Errorf("failed to insert payment in billing run: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit billing run: %w", err)
	}
	return nil
}
