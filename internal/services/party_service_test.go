package services

import (
	"context"
	"testing"

	"backoffice-service/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

type partyFixture struct {
	service     *PartyService
	personRepo  *fakePersonRepo
	clientRepo  *fakeClientRepo
	teamRepo    *fakeTeamRepo
	agentRepo   *fakeAgentRepo
	managerRepo *fakeManagerRepo
	userRepo    *fakeUserRepo
}

func newPartyFixture() *partyFixture {
	personRepo := newFakePersonRepo()
	clientRepo := newFakeClientRepo()
	teamRepo := newFakeTeamRepo()
	agentRepo := newFakeAgentRepo()
	userRepo := newFakeUserRepo()
	managerRepo := newFakeManagerRepo(personRepo, userRepo)

	return &partyFixture{
		service:     NewPartyService(personRepo, clientRepo, teamRepo, agentRepo, managerRepo, userRepo),
		personRepo:  personRepo,
		clientRepo:  clientRepo,
		teamRepo:    teamRepo,
		agentRepo:   agentRepo,
		managerRepo: managerRepo,
		userRepo:    userRepo,
	}
}

func validPersonRequest() models.CreatePersonRequest {
	phone := "912345678"
	return models.CreatePersonRequest{
		Name:        "Maria Santos",
		NIF:         "123456789",
		Phone:       &phone,
		CivilStatus: models.CivilMarried,
	}
}

// ============================================================================
// PERSONS
// ============================================================================

func TestCreatePerson_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *models.CreatePersonRequest)
	}{
		{"empty name", func(req *models.CreatePersonRequest) { req.Name = "" }},
		{"nif too short", func(req *models.CreatePersonRequest) { req.NIF = "12345678" }},
		{"nif bad check digit", func(req *models.CreatePersonRequest) { req.NIF = "123456780" }},
		{"nif not numeric", func(req *models.CreatePersonRequest) { req.NIF = "12345678A" }},
		{"unknown civil status", func(req *models.CreatePersonRequest) { req.CivilStatus = "Comprometido" }},
		{"malformed phone", func(req *models.CreatePersonRequest) {
			phone := "812345678"
			req.Phone = &phone
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPartyFixture()
			req := validPersonRequest()
			tt.mutate(&req)

			_, err := f.service.CreatePerson(context.Background(), req)
			assert.ErrorIs(t, err, models.ErrInvalidField)
			assert.Empty(t, f.personRepo.persons)
		})
	}
}

func TestCreatePerson_Success(t *testing.T) {
	f := newPartyFixture()

	person, err := f.service.CreatePerson(context.Background(), validPersonRequest())
	require.NoError(t, err)
	assert.Equal(t, "123456789", person.NIF)

	stored, err := f.service.GetPerson(context.Background(), person.ID)
	require.NoError(t, err)
	assert.Equal(t, person.Name, stored.Name)
}

func TestCreatePerson_RejectsDuplicateNIF(t *testing.T) {
	f := newPartyFixture()

	_, err := f.service.CreatePerson(context.Background(), validPersonRequest())
	require.NoError(t, err)

	_, err = f.service.CreatePerson(context.Background(), validPersonRequest())
	assert.ErrorIs(t, err, models.ErrInvalidField)
	assert.Len(t, f.personRepo.persons, 1)
}

func TestDeletePerson(t *testing.T) {
	f := newPartyFixture()
	person, err := f.service.CreatePerson(context.Background(), validPersonRequest())
	require.NoError(t, err)

	require.NoError(t, f.service.DeletePerson(context.Background(), person.ID))
	_, err = f.service.GetPerson(context.Background(), person.ID)
	assert.ErrorIs(t, err, models.ErrPersonNotFound)

	err = f.service.DeletePerson(context.Background(), uuid.New())
	assert.ErrorIs(t, err, models.ErrPersonNotFound)
}

func TestUpdatePerson_MergesFields(t *testing.T) {
	f := newPartyFixture()
	person, err := f.service.CreatePerson(context.Background(), validPersonRequest())
	require.NoError(t, err)

	name := "Maria Santos Oliveira"
	status := models.CivilDivorced
	updated, err := f.service.UpdatePerson(context.Background(), person.ID, models.UpdatePersonRequest{
		Name:        &name,
		CivilStatus: &status,
	})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, status, updated.CivilStatus)
	assert.Equal(t, person.NIF, updated.NIF, "nif is immutable")
	assert.Equal(t, person.Phone, updated.Phone, "omitted fields keep their value")

	badPhone := "000"
	_, err = f.service.UpdatePerson(context.Background(), person.ID, models.UpdatePersonRequest{Phone: &badPhone})
	assert.ErrorIs(t, err, models.ErrInvalidField)
}

// ============================================================================
// CLIENTS, AGENTS, TEAMS
// ============================================================================

func TestCreateClient_RequiresPerson(t *testing.T) {
	f := newPartyFixture()

	_, err := f.service.CreateClient(context.Background(), models.CreateClientRequest{PersonID: uuid.New()})
	assert.ErrorIs(t, err, models.ErrPersonNotFound)

	person, err := f.service.CreatePerson(context.Background(), validPersonRequest())
	require.NoError(t, err)

	client, err := f.service.CreateClient(context.Background(), models.CreateClientRequest{PersonID: person.ID})
	require.NoError(t, err)
	assert.Equal(t, person.ID, client.PersonID)

	// One client record per person.
	_, err = f.service.CreateClient(context.Background(), models.CreateClientRequest{PersonID: person.ID})
	assert.ErrorIs(t, err, models.ErrInvalidField)
	assert.Len(t, f.clientRepo.clients, 1)
}

func TestTeamRoster(t *testing.T) {
	f := newPartyFixture()
	team, err := f.service.CreateTeam(context.Background(), models.CreateTeamRequest{Name: "Equipa Norte"})
	require.NoError(t, err)

	person, err := f.service.CreatePerson(context.Background(), validPersonRequest())
	require.NoError(t, err)
	agent, err := f.service.CreateAgent(context.Background(), models.CreateAgentRequest{
		PersonID: person.ID,
		TeamID:   &team.ID,
	})
	require.NoError(t, err)

	agents, err := f.service.GetTeamAgents(context.Background(), team.ID)
	require.NoError(t, err)
	require.Len(t, agents, 1)
	assert.Equal(t, agent.ID, agents[0].ID)

	_, err = f.service.GetTeamAgents(context.Background(), uuid.New())
	assert.ErrorIs(t, err, models.ErrTeamNotFound)

	_, err = f.service.GetTeamManager(context.Background(), team.ID)
	assert.ErrorIs(t, err, models.ErrManagerNotFound)

	manager, err := f.service.CreateManager(context.Background(), models.CreateManagerRequest{
		Person: models.CreatePersonRequest{
			Name:        "Rui Almeida",
			NIF:         "234567899",
			CivilStatus: models.CivilSingle,
		},
		Username: "gestor.roster",
		Password: "uma password segura",
		TeamID:   team.ID,
	})
	require.NoError(t, err)

	stored, err := f.service.GetTeamManager(context.Background(), team.ID)
	require.NoError(t, err)
	assert.Equal(t, manager.ID, stored.ID)
}

func TestDeleteTeam(t *testing.T) {
	t.Run("empty team is deleted", func(t *testing.T) {
		f := newPartyFixture()
		team, err := f.service.CreateTeam(context.Background(), models.CreateTeamRequest{Name: "Equipa Norte"})
		require.NoError(t, err)

		require.NoError(t, f.service.DeleteTeam(context.Background(), team.ID))
		_, err = f.teamRepo.GetByID(context.Background(), team.ID)
		assert.ErrorIs(t, err, models.ErrTeamNotFound)
	})

	t.Run("team with agents is kept", func(t *testing.T) {
		f := newPartyFixture()
		team, err := f.service.CreateTeam(context.Background(), models.CreateTeamRequest{Name: "Equipa Sul"})
		require.NoError(t, err)

		person, err := f.service.CreatePerson(context.Background(), validPersonRequest())
		require.NoError(t, err)
		_, err = f.service.CreateAgent(context.Background(), models.CreateAgentRequest{
			PersonID: person.ID,
			TeamID:   &team.ID,
		})
		require.NoError(t, err)

		err = f.service.DeleteTeam(context.Background(), team.ID)
		assert.ErrorIs(t, err, models.ErrTeamInUse)
		_, err = f.teamRepo.GetByID(context.Background(), team.ID)
		assert.NoError(t, err)
	})

	t.Run("team with a manager is kept", func(t *testing.T) {
		f := newPartyFixture()
		team, err := f.service.CreateTeam(context.Background(), models.CreateTeamRequest{Name: "Equipa Este"})
		require.NoError(t, err)

		_, err = f.service.CreateManager(context.Background(), managerRequest(team.ID))
		require.NoError(t, err)

		err = f.service.DeleteTeam(context.Background(), team.ID)
		assert.ErrorIs(t, err, models.ErrTeamInUse)
	})

	t.Run("unknown team", func(t *testing.T) {
		f := newPartyFixture()
		err := f.service.DeleteTeam(context.Background(), uuid.New())
		assert.ErrorIs(t, err, models.ErrTeamNotFound)
	})
}

func TestCreateAgent(t *testing.T) {
	f := newPartyFixture()
	person, err := f.service.CreatePerson(context.Background(), validPersonRequest())
	require.NoError(t, err)

	t.Run("team is optional", func(t *testing.T) {
		agent, err := f.service.CreateAgent(context.Background(), models.CreateAgentRequest{PersonID: person.ID})
		require.NoError(t, err)
		assert.Nil(t, agent.TeamID)
	})

	t.Run("named team must exist", func(t *testing.T) {
		ghost := uuid.New()
		_, err := f.service.CreateAgent(context.Background(), models.CreateAgentRequest{
			PersonID: person.ID,
			TeamID:   &ghost,
		})
		assert.ErrorIs(t, err, models.ErrTeamNotFound)
	})
}

func TestAssignAgentTeam(t *testing.T) {
	f := newPartyFixture()
	person, err := f.service.CreatePerson(context.Background(), validPersonRequest())
	require.NoError(t, err)
	agent, err := f.service.CreateAgent(context.Background(), models.CreateAgentRequest{PersonID: person.ID})
	require.NoError(t, err)
	team, err := f.service.CreateTeam(context.Background(), models.CreateTeamRequest{Name: "Equipa Norte"})
	require.NoError(t, err)

	require.NoError(t, f.service.AssignAgentTeam(context.Background(), agent.ID, models.AssignAgentTeamRequest{TeamID: team.ID}))

	stored, err := f.service.GetAgent(context.Background(), agent.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.TeamID)
	assert.Equal(t, team.ID, *stored.TeamID)

	err = f.service.AssignAgentTeam(context.Background(), agent.ID, models.AssignAgentTeamRequest{TeamID: uuid.New()})
	assert.ErrorIs(t, err, models.ErrTeamNotFound)
}

// ============================================================================
// MANAGERS
// ============================================================================

func managerRequest(teamID uuid.UUID) models.CreateManagerRequest {
	return models.CreateManagerRequest{
		Person:   validPersonRequest(),
		Username: "gestor.norte",
		Password: "uma password segura",
		TeamID:   teamID,
	}
}

func TestCreateManager_Success(t *testing.T) {
	f := newPartyFixture()
	team, err := f.service.CreateTeam(context.Background(), models.CreateTeamRequest{Name: "Equipa Norte"})
	require.NoError(t, err)

	manager, err := f.service.CreateManager(context.Background(), managerRequest(team.ID))
	require.NoError(t, err)
	assert.Equal(t, team.ID, manager.TeamID)

	// Person and Gestor account are created alongside the manager row.
	_, err = f.personRepo.GetByID(context.Background(), manager.PersonID)
	require.NoError(t, err)

	user, err := f.userRepo.GetByUsername(context.Background(), "gestor.norte")
	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, user.Role)
	assert.True(t, user.Active)
	assert.True(t, f.userRepo.CheckPasswordHash("uma password segura", user.PasswordHash),
		"stored hash must verify against the supplied password")
}

func TestCreateManager_Rejections(t *testing.T) {
	t.Run("unknown team", func(t *testing.T) {
		f := newPartyFixture()
		_, err := f.service.CreateManager(context.Background(), managerRequest(uuid.New()))
		assert.ErrorIs(t, err, models.ErrTeamNotFound)
	})

	t.Run("duplicate username", func(t *testing.T) {
		f := newPartyFixture()
		team, err := f.service.CreateTeam(context.Background(), models.CreateTeamRequest{Name: "Equipa Sul"})
		require.NoError(t, err)

		_, err = f.service.CreateManager(context.Background(), managerRequest(team.ID))
		require.NoError(t, err)

		req := managerRequest(team.ID)
		req.Person.NIF = "234567899"
		_, err = f.service.CreateManager(context.Background(), req)
		assert.ErrorIs(t, err, models.ErrDuplicateUsername)
	})

	t.Run("duplicate nif", func(t *testing.T) {
		f := newPartyFixture()
		team, err := f.service.CreateTeam(context.Background(), models.CreateTeamRequest{Name: "Equipa Oeste"})
		require.NoError(t, err)

		_, err = f.service.CreatePerson(context.Background(), validPersonRequest())
		require.NoError(t, err)

		_, err = f.service.CreateManager(context.Background(), managerRequest(team.ID))
		assert.ErrorIs(t, err, models.ErrInvalidField)
		assert.Empty(t, f.managerRepo.managers)
	})

	t.Run("invalid person fields", func(t *testing.T) {
		f := newPartyFixture()
		team, err := f.service.CreateTeam(context.Background(), models.CreateTeamRequest{Name: "Equipa Este"})
		require.NoError(t, err)

		req := managerRequest(team.ID)
		req.Person.NIF = "111111111"
		_, err = f.service.CreateManager(context.Background(), req)
		assert.ErrorIs(t, err, models.ErrInvalidField)
		assert.Empty(t, f.managerRepo.managers)
	})
}
