package handlers

import (
	"backoffice-service/internal/models"
	"backoffice-service/internal/services"
	"backoffice-service/pkg/utils"

	"github.com/gofiber/fiber/v3"
)

type PartyHandler struct {
	partyService *services.PartyService
	middleware   *Middleware
}

func NewPartyHandler(partyService *services.PartyService, middleware *Middleware) *PartyHandler {
	return &PartyHandler{
		partyService: partyService,
		middleware:   middleware,
	}
}

func (h *PartyHandler) Register(app *fiber.App) {
	group := app.Group("/api/v1",
		h.middleware.RequireAuth(),
		h.middleware.RequireRole(models.RoleAdmin, models.RoleManager),
	)

	group.Post("/persons", h.CreatePerson)
	group.Get("/persons", h.GetPersons)
	group.Get("/persons/:id", h.GetPerson)
	group.Put("/persons/:id", h.UpdatePerson)
	group.Delete("/persons/:id", h.DeletePerson)

	group.Post("/clients", h.CreateClient)
	group.Get("/clients", h.GetClients)
	group.Get("/clients/:id", h.GetClient)

	group.Post("/teams", h.CreateTeam)
	group.Get("/teams", h.GetTeams)
	group.Get("/teams/:id/agents", h.GetTeamAgents)
	group.Get("/teams/:id/manager", h.GetTeamManager)
	group.Delete("/teams/:id", h.DeleteTeam)

	group.Post("/agents", h.CreateAgent)
	group.Get("/agents", h.GetAgents)
	group.Get("/agents/:id", h.GetAgent)
	group.Put("/agents/:id/team", h.AssignAgentTeam)

	admin := app.Group("/api/v1",
		h.middleware.RequireAuth(),
		h.middleware.RequireRole(models.RoleAdmin),
	)
	admin.Post("/managers", h.CreateManager)
	admin.Get("/managers/:id", h.GetManager)
}

func (h *PartyHandler) CreatePerson(c fiber.Ctx) error {
	var req models.CreatePersonRequest
	if err := c.Bind().Body(&req); err != nil {
		return respondInvalidBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	person, err := h.partyService.CreatePerson(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.CreateSuccessResponse(person))
}

func (h *PartyHandler) GetPersons(c fiber.Ctx) error {
	limit, offset := paginationParams(c)
	persons, err := h.partyService.GetPersons(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(persons))
}

func (h *PartyHandler) GetPerson(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	person, err := h.partyService.GetPerson(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(person))
}

func (h *PartyHandler) UpdatePerson(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	var req models.UpdatePersonRequest
	if err := c.Bind().Body(&req); err != nil {
		return respondInvalidBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	person, err := h.partyService.UpdatePerson(c.Context(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(person))
}

func (h *PartyHandler) DeletePerson(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	if err := h.partyService.DeletePerson(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusNoContent).Send(nil)
}

func (h *PartyHandler) CreateClient(c fiber.Ctx) error {
	var req models.CreateClientRequest
	if err := c.Bind().Body(&req); err != nil {
		return respondInvalidBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	client, err := h.partyService.CreateClient(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.CreateSuccessResponse(client))
}

func (h *PartyHandler) GetClients(c fiber.Ctx) error {
	limit, offset := paginationParams(c)
	clients, err := h.partyService.GetClients(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(clients))
}

func (h *PartyHandler) GetClient(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	client, err := h.partyService.GetClient(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(client))
}

func (h *PartyHandler) CreateTeam(c fiber.Ctx) error {
	var req models.CreateTeamRequest
	if err := c.Bind().Body(&req); err != nil {
		return respondInvalidBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	team, err := h.partyService.CreateTeam(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.CreateSuccessResponse(team))
}

func (h *PartyHandler) GetTeams(c fiber.Ctx) error {
	teams, err := h.partyService.GetTeams(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(teams))
}

func (h *PartyHandler) GetTeamAgents(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	agents, err := h.partyService.GetTeamAgents(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(agents))
}

func (h *PartyHandler) GetTeamManager(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	manager, err := h.partyService.GetTeamManager(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(manager))
}

func (h *PartyHandler) DeleteTeam(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	if err := h.partyService.DeleteTeam(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusNoContent).Send(nil)
}

func (h *PartyHandler) CreateAgent(c fiber.Ctx) error {
	var req models.CreateAgentRequest
	if err := c.Bind().Body(&req); err != nil {
		return respondInvalidBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	agent, err := h.partyService.CreateAgent(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.CreateSuccessResponse(agent))
}

func (h *PartyHandler) GetAgents(c fiber.Ctx) error {
	limit, offset := paginationParams(c)
	agents, err := h.partyService.GetAgents(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(agents))
}

func (h *PartyHandler) GetAgent(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	agent, err := h.partyService.GetAgent(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(agent))
}

func (h *PartyHandler) AssignAgentTeam(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	var req models.AssignAgentTeamRequest
	if err := c.Bind().Body(&req); err != nil {
		return respondInvalidBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	if err := h.partyService.AssignAgentTeam(c.Context(), id, req); err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(nil))
}

func (h *PartyHandler) CreateManager(c fiber.Ctx) error {
	var req models.CreateManagerRequest
	if err := c.Bind().Body(&req); err != nil {
		return respondInvalidBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	manager, err := h.partyService.CreateManager(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.CreateSuccessResponse(manager))
}

func (h *PartyHandler) GetManager(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	manager, err := h.partyService.GetManager(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(manager))
}
