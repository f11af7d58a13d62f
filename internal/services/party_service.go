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

// PartyService maintains the natural-person and organizational records:
// persons, clients, teams, agents and managers.
type PartyService struct {
	personRepo  repository.PersonRepository
	clientRepo  repository.ClientRepository
	teamRepo    repository.TeamRepository
	agentRepo   repository.AgentRepository
	managerRepo repository.ManagerRepository
	userRepo    repository.UserRepository
}

func NewPartyService(
	personRepo repository.PersonRepository,
	clientRepo repository.ClientRepository,
	teamRepo repository.TeamRepository,
	agentRepo repository.AgentRepository,
	managerRepo repository.ManagerRepository,
	userRepo repository.UserRepository,
) *PartyService {
	return &PartyService{
		personRepo:  personRepo,
		clientRepo:  clientRepo,
		teamRepo:    teamRepo,
		agentRepo:   agentRepo,
		managerRepo: managerRepo,
		userRepo:    userRepo,
	}
}

func validatePersonFields(req models.CreatePersonRequest) error {
	if len(req.Name) == 0 || len(req.Name) > 100 {
		return fmt.Errorf("%w: name must be 1-100 characters", models.ErrInvalidField)
	}
	if !utils.ValidateNIF(req.NIF) {
		return fmt.Errorf("%w: nif %q is not valid", models.ErrInvalidField, req.NIF)
	}
	if !req.CivilStatus.IsValid() {
		return fmt.Errorf("%w: civil status %q", models.ErrInvalidField, req.CivilStatus)
	}
	if req.Phone != nil {
		if ok, _ := utils.ValidatePhone(*req.Phone); !ok {
			return fmt.Errorf("%w: phone %q is not valid", models.ErrInvalidField, *req.Phone)
		}
	}
	return nil
}

// checkNIFAvailable rejects a NIF that already belongs to a person record.
func (s *PartyService) checkNIFAvailable(ctx context.Context, nif string) error {
	if _, err := s.personRepo.GetByNIF(ctx, nif); err == nil {
		return fmt.Errorf("%w: nif %s is already registered", models.ErrInvalidField, nif)
	} else if !errors.Is(err, models.ErrPersonNotFound) {
		return err
	}
	return nil
}

func (s *PartyService) CreatePerson(ctx context.Context, req models.CreatePersonRequest) (*models.Person, error) {
	if err := validatePersonFields(req); err != nil {
		return nil, err
	}
	if err := s.checkNIFAvailable(ctx, req.NIF); err != nil {
		return nil, err
	}

	person := &models.Person{
		ID:          uuid.New(),
		Name:        req.Name,
		NIF:         req.NIF,
		BirthDate:   req.BirthDate,
		Phone:       req.Phone,
		Address:     req.Address,
		CivilStatus: req.CivilStatus,
	}
	if err := s.personRepo.Create(ctx, person); err != nil {
		return nil, err
	}
	return person, nil
}

func (s *PartyService) GetPerson(ctx context.Context, id uuid.UUID) (*models.Person, error) {
	return s.personRepo.GetByID(ctx, id)
}

func (s *PartyService) GetPersons(ctx context.Context, limit, offset int) ([]models.Person, error) {
	return s.personRepo.GetAll(ctx, limit, offset)
}

func (s *PartyService) UpdatePerson(ctx context.Context, id uuid.UUID, req models.UpdatePersonRequest) (*models.Person, error) {
	person, err := s.personRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if len(*req.Name) == 0 || len(*req.Name) > 100 {
			return nil, fmt.Errorf("%w: name must be 1-100 characters", models.ErrInvalidField)
		}
		person.Name = *req.Name
	}
	if req.Phone != nil {
		if ok, _ := utils.ValidatePhone(*req.Phone); !ok {
			return nil, fmt.Errorf("%w: phone %q is not valid", models.ErrInvalidField, *req.Phone)
		}
		person.Phone = req.Phone
	}
	if req.Address != nil {
		person.Address = req.Address
	}
	if req.CivilStatus != nil {
		if !req.CivilStatus.IsValid() {
			return nil, fmt.Errorf("%w: civil status %q", models.ErrInvalidField, *req.CivilStatus)
		}
		person.CivilStatus = *req.CivilStatus
	}

	if err := s.personRepo.Update(ctx, person); err != nil {
		if errors.Is(err, utils.ErrNoRowsAffected) {
			return nil, models.ErrSaveFailed
		}
		return nil, err
	}
	return person, nil
}

// DeletePerson removes a person record that is no longer referenced.
func (s *PartyService) DeletePerson(ctx context.Context, id uuid.UUID) error {
	if err := s.personRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, utils.ErrNoRowsAffected) {
			return models.ErrPersonNotFound
		}
		return err
	}
	return nil
}

func (s *PartyService) CreateClient(ctx context.Context, req models.CreateClientRequest) (*models.Client, error) {
	if _, err := s.personRepo.GetByID(ctx, req.PersonID); err != nil {
		return nil, err
	}
	if _, err := s.clientRepo.GetByPersonID(ctx, req.PersonID); err == nil {
		return nil, fmt.Errorf("%w: person %s already has a client record", models.ErrInvalidField, req.PersonID)
	} else if !errors.Is(err, models.ErrClientNotFound) {
		return nil, err
	}

	client := &models.Client{
		ID:       uuid.New(),
		PersonID: req.PersonID,
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *PartyService) GetClient(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	return s.clientRepo.GetByID(ctx, id)
}

func (s *PartyService) GetClients(ctx context.Context, limit, offset int) ([]models.Client, error) {
	return s.clientRepo.GetAll(ctx, limit, offset)
}

func (s *PartyService) CreateTeam(ctx context.Context, req models.CreateTeamRequest) (*models.Team, error) {
	team := &models.Team{
		ID:   uuid.New(),
		Name: req.Name,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *PartyService) GetTeams(ctx context.Context) ([]models.Team, error) {
	return s.teamRepo.GetAll(ctx)
}

func (s *PartyService) GetTeamAgents(ctx context.Context, teamID uuid.UUID) ([]models.Agent, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, err
	}
	return s.agentRepo.GetByTeamID(ctx, teamID)
}

func (s *PartyService) GetTeamManager(ctx context.Context, teamID uuid.UUID) (*models.Manager, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, err
	}
	return s.managerRepo.GetByTeamID(ctx, teamID)
}

// DeleteTeam removes an empty team. A team that still holds agents or a
// manager cannot be deleted.
func (s *PartyService) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	if _, err := s.teamRepo.GetByID(ctx, id); err != nil {
		return err
	}

	agents, err := s.agentRepo.GetByTeamID(ctx, id)
	if err != nil {
		return err
	}
	if len(agents) > 0 {
		return fmt.Errorf("%w: team still has %d agents", models.ErrTeamInUse, len(agents))
	}

	if _, err := s.managerRepo.GetByTeamID(ctx, id); err == nil {
		return fmt.Errorf("%w: team still has a manager", models.ErrTeamInUse)
	} else if !errors.Is(err, models.ErrManagerNotFound) {
		return err
	}

	if err := s.teamRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, utils.ErrNoRowsAffected) {
			return models.ErrTeamNotFound
		}
		return err
	}
	return nil
}

func (s *PartyService) CreateAgent(ctx context.Context, req models.CreateAgentRequest) (*models.Agent, error) {
	if _, err := s.personRepo.GetByID(ctx, req.PersonID); err != nil {
		return nil, err
	}
	if req.TeamID != nil {
		if _, err := s.teamRepo.GetByID(ctx, *req.TeamID); err != nil {
			return nil, err
		}
	}

	agent := &models.Agent{
		ID:       uuid.New(),
		PersonID: req.PersonID,
		TeamID:   req.TeamID,
	}
	if err := s.agentRepo.Create(ctx, agent); err != nil {
		return nil, err
	}
	return agent, nil
}

func (s *PartyService) GetAgent(ctx context.Context, id uuid.UUID) (*models.Agent, error) {
	return s.agentRepo.GetByID(ctx, id)
}

func (s *PartyService) GetAgents(ctx context.Context, limit, offset int) ([]models.Agent, error) {
	return s.agentRepo.GetAll(ctx, limit, offset)
}

func (s *PartyService) AssignAgentTeam(ctx context.Context, agentID uuid.UUID, req models.AssignAgentTeamRequest) error {
	if _, err := s.agentRepo.GetByID(ctx, agentID); err != nil {
		return err
	}
	if _, err := s.teamRepo.GetByID(ctx, req.TeamID); err != nil {
		return err
	}

	if err := s.agentRepo.AssignTeam(ctx, agentID, req.TeamID); err != nil {
		if errors.Is(err, utils.ErrNoRowsAffected) {
			return models.ErrSaveFailed
		}
		return err
	}
	return nil
}

// CreateManager registers the person, the Gestor user account and the
// manager row in one transaction.
func (s *PartyService) CreateManager(ctx context.Context, req models.CreateManagerRequest) (*models.Manager, error) {
	if err := validatePersonFields(req.Person); err != nil {
		return nil, err
	}
	if err := s.checkNIFAvailable(ctx, req.Person.NIF); err != nil {
		return nil, err
	}
	if _, err := s.teamRepo.GetByID(ctx, req.TeamID); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByUsername(ctx, req.Username); err == nil {
		return nil, models.ErrDuplicateUsername
	} else if !errors.Is(err, models.ErrUserNotFound) {
		return nil, err
	}

	passwordHash, err := s.userRepo.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash manager password: %w", err)
	}

	person := &models.Person{
		ID:          uuid.New(),
		Name:        req.Person.Name,
		NIF:         req.Person.NIF,
		BirthDate:   req.Person.BirthDate,
		Phone:       req.Person.Phone,
		Address:     req.Person.Address,
		CivilStatus: req.Person.CivilStatus,
	}
	user := &models.User{
		ID:           uuid.New(),
		Username:     req.Username,
		PasswordHash: passwordHash,
		Role:         models.RoleManager,
		PersonID:     &person.ID,
		Active:       true,
	}
	manager := &models.Manager{
		ID:       uuid.New(),
		PersonID: person.ID,
		TeamID:   req.TeamID,
	}

	if err := s.managerRepo.CreateGraph(ctx, person, user, manager); err != nil {
		return nil, err
	}
	return manager, nil
}

func (s *PartyService) GetManager(ctx context.Context, id uuid.UUID) (*models.Manager, error) {
	return s.managerRepo.GetByID(ctx, id)
}
