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

// ClaimRepository persists the claim aggregate. Claims are only ever created
// together with their specialization link, inside one transaction.
type ClaimRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Claim, error)
	GetAll(ctx context.Context, limit, offset int) ([]models.Claim, error)
	Update(ctx context.Context, claim *models.Claim) error

	AddEvidence(ctx context.Context, evidence *models.Evidence, newState models.ClaimState) error
	AddAssessmentReport(ctx context.Context, report *models.AssessmentReport, claim *models.Claim) error
	GetEvidenceByClaimID(ctx context.Context, claimID uuid.UUID) ([]models.Evidence, error)
	GetReportsByClaimID(ctx context.Context, claimID uuid.UUID) ([]models.AssessmentReport, error)

	CreatePersonalClaim(ctx context.Context, claim *models.Claim, link *models.PersonalClaim) error
	CreateVehicleClaim(ctx context.Context, claim *models.Claim, link *models.VehicleClaim) error
	GetPersonalClaimsByPolicyID(ctx context.Context, personalPolicyID uuid.UUID) ([]models.PersonalClaim, error)
	GetVehicleClaimsByPolicyID(ctx context.Context, vehiclePolicyID uuid.UUID) ([]models.VehicleClaim, error)
}

type claimRepository struct {
	db *sqlx.DB
}

func NewClaimRepository(db *sqlx.DB) ClaimRepository {
	return &claimRepository{db: db}
}

func (r *claimRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Claim, error) {
	var claim models.Claim
	if err := r.db.GetContext(ctx, &claim, `SELECT * FROM sinistro WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrClaimNotFound
		}
		return nil, fmt.Errorf("failed to get claim by id: %w", err)
	}
	return &claim, nil
}

func (r *claimRepository) GetAll(ctx context.Context, limit, offset int) ([]models.Claim, error) {
	var claims []models.Claim
	query := `SELECT * FROM sinistro ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &claims, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to get claims: %w", err)
	}
	return claims, nil
}

func (r *claimRepository) Update(ctx context.Context, claim *models.Claim) error {
	query := `
		UPDATE sinistro
		SET description = $1, state = $2, reimbursement = $3, valid = $4, deferred = $5, updated_at = $6
		WHERE id = $7
	`

	err := utils.ExecWithCheck(ctx, r.db, query, utils.ExecUpdate,
		claim.Description, claim.State, claim.Reimbursement, claim.Valid, claim.Deferred, time.Now(), claim.ID)
	if err != nil {
		return fmt.Errorf("failed to update claim: %w", err)
	}
	return nil
}

// AddEvidence inserts the evidence row and moves the claim into newState in
// one transaction.
func (r *claimRepository) AddEvidence(ctx context.Context, evidence *models.Evidence, newState models.ClaimState) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	evidence.CreatedAt = time.Now()
	query := `INSERT INTO prova (id, content, date, claim_id, created_at) VALUES (:id, :content, :date, :claim_id, :created_at)`
	if _, err := tx.NamedExecContext(ctx, query, evidence); err != nil {
		return fmt.Errorf("failed to create evidence: %w", err)
	}

	stateQuery := `UPDATE sinistro SET state = $1, updated_at = $2 WHERE id = $3`
	if err := utils.ExecWithCheck(ctx, tx, stateQuery, utils.ExecUpdate, newState, time.Now(), evidence.ClaimID); err != nil {
		return fmt.Errorf("failed to update claim state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit evidence: %w", err)
	}
	return nil
}

// AddAssessmentReport inserts the report and applies the resolved claim
// fields (state, valid, deferred) in one transaction.
func (r *claimRepository) AddAssessmentReport(ctx context.Context, report *models.AssessmentReport, claim *models.Claim) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	report.CreatedAt = time.Now()
	query := `
		INSERT INTO relatorio_peritagem (id, content, date, upheld, claim_id, created_at)
		VALUES (:id, :content, :date, :upheld, :claim_id, :created_at)
	`
	if _, err := tx.NamedExecContext(ctx, query, report); err != nil {
		return fmt.Errorf("failed to create assessment report: %w", err)
	}

	claimQuery := `UPDATE sinistro SET state = $1, valid = $2, deferred = $3, updated_at = $4 WHERE id = $5`
	err = utils.ExecWithCheck(ctx, tx, claimQuery, utils.ExecUpdate,
		claim.State, claim.Valid, claim.Deferred, time.Now(), claim.ID)
	if err != nil {
		return fmt.Errorf("failed to resolve claim: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit assessment report: %w", err)
	}
	return nil
}

func (r *claimRepository) GetEvidenceByClaimID(ctx context.Context, claimID uuid.UUID) ([]models.Evidence, error) {
	var evidence []models.Evidence
	query := `SELECT * FROM prova WHERE claim_id = $1 ORDER BY date`
	if err := r.db.SelectContext(ctx, &evidence, query, claimID); err != nil {
		return nil, fmt.Errorf("failed to get evidence by claim: %w", err)
	}
	return evidence, nil
}

func (r *claimRepository) GetReportsByClaimID(ctx context.Context, claimID uuid.UUID) ([]models.AssessmentReport, error) {
	var reports []models.AssessmentReport
	query := `SELECT * FROM relatorio_peritagem WHERE claim_id = $1 ORDER BY date`
	if err := r.db.SelectContext(ctx, &reports, query, claimID); err != nil {
		return nil, fmt.Errorf("failed to get reports by claim: %w", err)
	}
	return reports, nil
}

func (r *claimRepository) CreatePersonalClaim(ctx context.Context, claim *models.Claim, link *models.PersonalClaim) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := r.createClaimTx(ctx, tx, claim); err != nil {
		return err
	}

	query := `INSERT INTO sinistro_pessoal (id, claim_id, personal_policy_id) VALUES (:id, :claim_id, :personal_policy_id)`
	if _, err := tx.NamedExecContext(ctx, query, link); err != nil {
		return fmt.Errorf("failed to create personal claim link: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit personal claim: %w", err)
	}
	return nil
}

func (r *claimRepository) CreateVehicleClaim(ctx context.Context, claim *models.Claim, link *models.VehicleClaim) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := r.createClaimTx(ctx, tx, claim); err != nil {
		return err
	}

	query := `INSERT INTO sinistro_veiculo (id, claim_id, vehicle_policy_id) VALUES (:id, :claim_id, :vehicle_policy_id)`
	if _, err := tx.NamedExecContext(ctx, query, link); err != nil {
		return fmt.Errorf("failed to create vehicle claim link: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit vehicle claim: %w", err)
	}
	return nil
}

func (r *claimRepository) createClaimTx(ctx context.Context, tx *sqlx.Tx, claim *models.Claim) error {
	now := time.Now()
	claim.CreatedAt = now
	claim.UpdatedAt = now

	query := `
		INSERT INTO sinistro (id, description, state, reimbursement, claim_date, valid, deferred, created_at, updated_at)
		VALUES (:id, :description, :state, :reimbursement, :claim_date, :valid, :deferred, :created_at, :updated_at)
	`
	if _, err := tx.NamedExecContext(ctx, query, claim); err != nil {
		return fmt.Errorf("failed to create claim: %w", err)
	}
	return nil
}

func (r *claimRepository) GetPersonalClaimsByPolicyID(ctx context.Context, personalPolicyID uuid.UUID) ([]models.PersonalClaim, error) {
	var links []models.PersonalClaim
	query := `SELECT * FROM sinistro_pessoal WHERE personal_policy_id = $1`
	if err := r.db.SelectContext(ctx, &links, query, personalPolicyID); err != nil {
		return nil, fmt.Errorf("failed to get personal claims by policy: %w", err)
	}
	return links, nil
}

func (r *claimRepository) GetVehicleClaimsByPolicyID(ctx context.Context, vehiclePolicyID uuid.UUID) ([]models.VehicleClaim, error) {
	var links []models.VehicleClaim
	query := `SELECT * FROM sinistro_veiculo WHERE vehicle_policy_id = $1`
	if err := r.db.SelectContext(ctx, &links, query, vehiclePolicyID); err != nil {
		return nil, fmt.Errorf("failed to get vehicle claims by policy: %w", err)
	}
	return links, nil
}
