package handlers

import (
	"backoffice-service/internal/models"
	"backoffice-service/internal/services"
	"backoffice-service/pkg/utils"

	"github.com/gofiber/fiber/v3"
)

type PolicyHandler struct {
	policyService  *services.PolicyService
	paymentService *services.PaymentService
	middleware     *Middleware
}

func NewPolicyHandler(policyService *services.PolicyService, paymentService *services.PaymentService, middleware *Middleware) *PolicyHandler {
	return &PolicyHandler{
		policyService:  policyService,
		paymentService: paymentService,
		middleware:     middleware,
	}
}

func (h *PolicyHandler) Register(app *fiber.App) {
	group := app.Group("/api/v1",
		h.middleware.RequireAuth(),
		h.middleware.RequireRole(models.RoleAdmin, models.RoleManager, models.RoleAgent),
	)

	group.Post("/policies/personal", h.CreatePersonalPolicy)
	group.Post("/policies/health", h.CreateHealthPolicy)
	group.Post("/policies/vehicle", h.CreateVehiclePolicy)

	group.Get("/policies", h.GetPolicies)
	group.Get("/policies/:id", h.GetPolicy)
	group.Get("/policies/:id/coverages", h.GetPolicyCoverages)
	group.Get("/policies/:id/can-update", h.CanUpdate)
	group.Put("/policies/:id", h.UpdatePolicy)

	group.Get("/policies/personal/:id", h.GetPersonalPolicy)
	group.Get("/policies/health/:id", h.GetHealthPolicy)
	group.Get("/policies/vehicle/:id", h.GetVehiclePolicy)
	group.Put("/policies/personal/:id", h.UpdatePersonalPolicy)
	group.Put("/policies/vehicle/:id", h.UpdateVehiclePolicy)

	group.Get("/clients/:id/policies/personal", h.GetClientPersonalPolicies)

	group.Get("/policies/:id/payments", h.GetPolicyPayments)
	group.Get("/payments/:id", h.GetPayment)

	// Clients settle their own installments.
	payments := app.Group("/api/v1", h.middleware.RequireAuth())
	payments.Put("/payments/:id/settle", h.SettlePayment)
}

func (h *PolicyHandler) CreatePersonalPolicy(c fiber.Ctx) error {
	var req models.CreatePersonalPolicyRequest
	if err := c.Bind().Body(&req); err != nil {
		return respondInvalidBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	spec, err := h.policyService.CreatePersonalPolicy(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.CreateSuccessResponse(spec))
}

func (h *PolicyHandler) CreateHealthPolicy(c fiber.Ctx) error {
	var req models.CreateHealthPolicyRequest
	if err := c.Bind().Body(&req); err != nil {
		return respondInvalidBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	spec, err := h.policyService.CreateHealthPolicy(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.CreateSuccessResponse(spec))
}

func (h *PolicyHandler) CreateVehiclePolicy(c fiber.Ctx) error {
	var req models.CreateVehiclePolicyRequest
	if err := c.Bind().Body(&req); err != nil {
		return respondInvalidBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	spec, err := h.policyService.CreateVehiclePolicy(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.CreateSuccessResponse(spec))
}

func (h *PolicyHandler) GetPolicies(c fiber.Ctx) error {
	limit, offset := paginationParams(c)
	policies, err := h.policyService.GetPolicies(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(policies))
}

func (h *PolicyHandler) GetPolicy(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	policy, err := h.policyService.GetPolicy(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(policy))
}

func (h *PolicyHandler) GetPolicyCoverages(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	links, err := h.policyService.GetCoverageLinks(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(links))
}

func (h *PolicyHandler) CanUpdate(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	canUpdate, err := h.policyService.CanUpdate(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(fiber.Map{"can_update": canUpdate}))
}

func (h *PolicyHandler) UpdatePolicy(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	var req models.UpdatePolicyRequest
	if err := c.Bind().Body(&req); err != nil {
		return respondInvalidBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	policy, err := h.policyService.UpdatePolicy(c.Context(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(policy))
}

func (h *PolicyHandler) GetPersonalPolicy(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	spec, err := h.policyService.GetPersonalPolicy(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(spec))
}

func (h *PolicyHandler) GetHealthPolicy(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	spec, err := h.policyService.GetHealthPolicy(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(spec))
}

func (h *PolicyHandler) GetVehiclePolicy(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	spec, err := h.policyService.GetVehiclePolicy(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(spec))
}

func (h *PolicyHandler) UpdatePersonalPolicy(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	var req models.UpdatePersonalPolicyRequest
	if err := c.Bind().Body(&req); err != nil {
		return respondInvalidBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	spec, err := h.policyService.UpdatePersonalPolicy(c.Context(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(spec))
}

func (h *PolicyHandler) UpdateVehiclePolicy(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	var req models.UpdateVehiclePolicyRequest
	if err := c.Bind().Body(&req); err != nil {
		return respondInvalidBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	spec, err := h.policyService.UpdateVehiclePolicy(c.Context(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(spec))
}

func (h *PolicyHandler) GetClientPersonalPolicies(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	specs, err := h.policyService.GetClientPersonalPolicies(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(specs))
}

func (h *PolicyHandler) GetPayment(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	payment, err := h.paymentService.GetPayment(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(payment))
}

func (h *PolicyHandler) GetPolicyPayments(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	payments, err := h.paymentService.GetPolicyPayments(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(payments))
}

func (h *PolicyHandler) SettlePayment(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	payment, err := h.paymentService.SettlePayment(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(payment))
}
