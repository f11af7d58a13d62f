package handlers

import (
	"backoffice-service/internal/models"
	"backoffice-service/internal/services"
	"backoffice-service/pkg/utils"

	"github.com/gofiber/fiber/v3"
)

type ClaimHandler struct {
	claimService *services.ClaimService
	middleware   *Middleware
}

func NewClaimHandler(claimService *services.ClaimService, middleware *Middleware) *ClaimHandler {
	return &ClaimHandler{
		claimService: claimService,
		middleware:   middleware,
	}
}

func (h *ClaimHandler) Register(app *fiber.App) {
	// Clients report claims and submit evidence on them; resolution stays
	// with back office staff.
	group := app.Group("/api/v1", h.middleware.RequireAuth())
	group.Post("/claims/personal", h.CreatePersonalClaim)
	group.Post("/claims/vehicle", h.CreateVehicleClaim)
	group.Get("/claims", h.GetClaims)
	group.Get("/claims/:id", h.GetClaim)
	group.Post("/claims/:id/evidence", h.SubmitEvidence)
	group.Get("/claims/:id/evidence", h.GetEvidence)
	group.Get("/claims/:id/reports", h.GetReports)
	group.Get("/policies/personal/:id/claims", h.GetPersonalPolicyClaims)
	group.Get("/policies/vehicle/:id/claims", h.GetVehiclePolicyClaims)

	staff := app.Group("/api/v1",
		h.middleware.RequireAuth(),
		h.middleware.RequireRole(models.RoleAdmin, models.RoleManager, models.RoleAgent),
	)
	staff.Post("/claims/:id/report", h.SubmitAssessmentReport)
	staff.Put("/claims/:id", h.UpdateClaim)
}

func (h *ClaimHandler) CreatePersonalClaim(c fiber.Ctx) error {
	var req models.CreatePersonalClaimRequest
	if err := c.Bind().Body(&req); err != nil {
		return respondInvalidBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	claim, err := h.claimService.CreatePersonalClaim(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.CreateSuccessResponse(claim))
}

func (h *ClaimHandler) CreateVehicleClaim(c fiber.Ctx) error {
	var req models.CreateVehicleClaimRequest
	if err := c.Bind().Body(&req); err != nil {
		return respondInvalidBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	claim, err := h.claimService.CreateVehicleClaim(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.CreateSuccessResponse(claim))
}

func (h *ClaimHandler) GetClaims(c fiber.Ctx) error {
	limit, offset := paginationParams(c)
	claims, err := h.claimService.GetClaims(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(claims))
}

func (h *ClaimHandler) GetClaim(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	claim, err := h.claimService.GetClaim(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(claim))
}

func (h *ClaimHandler) SubmitEvidence(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	var req models.SubmitEvidenceRequest
	if err := c.Bind().Body(&req); err != nil {
		return respondInvalidBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	evidence, err := h.claimService.SubmitEvidence(c.Context(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.CreateSuccessResponse(evidence))
}

func (h *ClaimHandler) GetEvidence(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	evidence, err := h.claimService.GetEvidence(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(evidence))
}

func (h *ClaimHandler) GetReports(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	reports, err := h.claimService.GetReports(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(reports))
}

func (h *ClaimHandler) GetPersonalPolicyClaims(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	links, err := h.claimService.GetPersonalPolicyClaims(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(links))
}

func (h *ClaimHandler) GetVehiclePolicyClaims(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	links, err := h.claimService.GetVehiclePolicyClaims(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(links))
}

func (h *ClaimHandler) SubmitAssessmentReport(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	var req models.SubmitAssessmentReportRequest
	if err := c.Bind().Body(&req); err != nil {
		return respondInvalidBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	report, err := h.claimService.SubmitAssessmentReport(c.Context(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.CreateSuccessResponse(report))
}

func (h *ClaimHandler) UpdateClaim(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	var req models.UpdateClaimRequest
	if err := c.Bind().Body(&req); err != nil {
		return respondInvalidBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	claim, err := h.claimService.UpdateClaim(c.Context(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(claim))
}
