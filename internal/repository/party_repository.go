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

type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	GetByPersonID(ctx context.Context, personID uuid.UUID) (*models.Client, error)
	GetAll(ctx context.Context, limit, offset int) ([]models.Client, error)
}

type clientRepository struct {
	db *sqlx.DB
}

func NewClientRepository(db *sqlx.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *models.Client) error {
	query := `INSERT INTO client (id, person_id, created_at) VALUES (:id, :person_id, :created_at)`

	client.CreatedAt = time.Now()
	if _, err := r.db.NamedExecContext(ctx, query, client); err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

func (r *clientRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := r.db.GetContext(ctx, &client, `SELECT * FROM client WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client by id: %w", err)
	}
	return &client, nil
}

func (r *clientRepository) GetByPersonID(ctx context.Context, personID uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := r.db.GetContext(ctx, &client, `SELECT * FROM client WHERE person_id = $1`, personID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client by person id: %w", err)
	}
	return &client, nil
}

func (r *clientRepository) GetAll(ctx context.Context, limit, offset int) ([]models.Client, error) {
	var clients []models.Client
	query := `SELECT * FROM client ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &clients, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to get clients: %w", err)
	}
	return clients, nil
}

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error)
	GetAll(ctx context.Context) ([]models.Team, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type teamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `INSERT INTO team (id, name, created_at) VALUES (:id, :name, :created_at)`

	team.CreatedAt = time.Now()
	if _, err := r.db.NamedExecContext(ctx, query, team); err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

func (r *teamRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	var team models.Team
	if err := r.db.GetContext(ctx, &team, `SELECT * FROM team WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team by id: %w", err)
	}
	return &team, nil
}

func (r *teamRepository) GetAll(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.SelectContext(ctx, &teams, `SELECT * FROM team ORDER BY name`); err != nil {
		return nil, fmt.Errorf("failed to get teams: %w", err)
	}
	return teams, nil
}

func (r *teamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := utils.ExecWithCheck(ctx, r.db, `DELETE FROM team WHERE id = $1`, utils.ExecDelete, id); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	return nil
}

type AgentRepository interface {
	Create(ctx context.Context, agent *models.Agent) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Agent, error)
	GetByTeamID(ctx context.Context, teamID uuid.UUID) ([]models.Agent, error)
	GetAll(ctx context.Context, limit, offset int) ([]models.Agent, error)
	AssignTeam(ctx context.Context, agentID, teamID uuid.UUID) error
}

type agentRepository struct {
	db *sqlx.DB
}

func NewAgentRepository(db *sqlx.DB) AgentRepository {
	return &agentRepository{db: db}
}

func (r *agentRepository) Create(ctx context.Context, agent *models.Agent) error {
	query := `INSERT INTO agent (id, person_id, team_id, created_at) VALUES (:id, :person_id, :team_id, :created_at)`

	agent.CreatedAt = time.Now()
	if _, err := r.db.NamedExecContext(ctx, query, agent); err != nil {
		return fmt.Errorf("failed to create agent: %w", err)
	}
	return nil
}

func (r *agentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Agent, error) {
	var agent models.Agent
	if err := r.db.GetContext(ctx, &agent, `SELECT * FROM agent WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrAgentNotFound
		}
		return nil, fmt.Errorf("failed to get agent by id: %w", err)
	}
	return &agent, nil
}

func (r *agentRepository) GetByTeamID(ctx context.Context, teamID uuid.UUID) ([]models.Agent, error) {
	var agents []models.Agent
	query := `SELECT * FROM agent WHERE team_id = $1 ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &agents, query, teamID); err != nil {
		return nil, fmt.Errorf("failed to get agents by team: %w", err)
	}
	return agents, nil
}

func (r *agentRepository) GetAll(ctx context.Context, limit, offset int) ([]models.Agent, error) {
	var agents []models.Agent
	query := `SELECT * FROM agent ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &agents, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to get agents: %w", err)
	}
	return agents, nil
}

func (r *agentRepository) AssignTeam(ctx context.Context, agentID, teamID uuid.UUID) error {
	query := `UPDATE agent SET team_id = $1 WHERE id = $2`
	if err := utils.ExecWithCheck(ctx, r.db, query, utils.ExecUpdate, teamID, agentID); err != nil {
		return fmt.Errorf("failed to assign agent team: %w", err)
	}
	return nil
}

type ManagerRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Manager, error)
	GetByTeamID(ctx context.Context, teamID uuid.UUID) (*models.Manager, error)
	// CreateGraph writes the person, the user account and the manager row in
	// one transaction.
	CreateGraph(ctx context.Context, person *models.Person, user *models.User, manager *models.Manager) error
}

type managerRepository struct {
	db *sqlx.DB
}

func NewManagerRepository(db *sqlx.DB) ManagerRepository {
	return &managerRepository{db: db}
}

func (r *managerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Manager, error) {
	var manager models.Manager
	if err := r.db.GetContext(ctx, &manager, `SELECT * FROM manager WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrManagerNotFound
		}
		return nil, fmt.Errorf("failed to get manager by id: %w", err)
	}
	return &manager, nil
}

func (r *managerRepository) GetByTeamID(ctx context.Context, teamID uuid.UUID) (*models.Manager, error) {
	var manager models.Manager
	if err := r.db.GetContext(ctx, &manager, `SELECT * FROM manager WHERE team_id = $1`, teamID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrManagerNotFound
		}
		return nil, fmt.Errorf("failed to get manager by team id: %w", err)
	}
	return &manager, nil
}

func (r *managerRepository) CreateGraph(ctx context.Context, person *models.Person, user *models.User, manager *models.Manager) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	person.CreatedAt = now
	person.UpdatedAt = now
	personQuery := `
		INSERT INTO person (id, name, nif, birth_date, phone, address, civil_status, created_at, updated_at)
		VALUES (:id, :name, :nif, :birth_date, :phone, :address, :civil_status, :created_at, :updated_at)
	`
	if _, err := tx.NamedExecContext(ctx, personQuery, person); err != nil {
		return fmt.Errorf("failed to create manager person: %w", err)
	}

	user.CreatedAt = now
	user.UpdatedAt = now
	userQuery := `
		INSERT INTO users (id, username, password_hash, role, person_id, active, created_at, updated_at)
		VALUES (:id, :username, :password_hash, :role, :person_id, :active, :created_at, :updated_at)
	`
	if _, err := tx.NamedExecContext(ctx, userQuery, user); err != nil {
		return fmt.Errorf("failed to create manager user: %w", err)
	}

	manager.CreatedAt = now
	managerQuery := `INSERT INTO manager (id, person_id, team_id, created_at) VALUES (:id, :person_id, :team_id, :created_at)`
	if _, err := tx.NamedExecContext(ctx, managerQuery, manager); err != nil {
		return fmt.Errorf("failed to create manager: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit manager graph: %w", err)
	}
	return nil
}
