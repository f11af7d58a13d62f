package handlers

import (
	"errors"

	"backoffice-service/internal/models"
	"backoffice-service/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// validate is shared across handlers; validator instances cache struct
// metadata and are safe for concurrent use.
var validate = validator.New()

type errorMapping struct {
	err    error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{models.ErrInvalidField, fiber.StatusBadRequest, "INVALID_FIELD"},
	{models.ErrDateNotAccepted, fiber.StatusBadRequest, "DATE_NOT_ACCEPTED"},

	{models.ErrInvalidProduct, fiber.StatusUnprocessableEntity, "INVALID_PRODUCT"},
	{models.ErrInvalidCoverage, fiber.StatusUnprocessableEntity, "INVALID_COVERAGE"},
	{models.ErrInvalidAgent, fiber.StatusUnprocessableEntity, "INVALID_AGENT"},
	{models.ErrInvalidClient, fiber.StatusUnprocessableEntity, "INVALID_CLIENT"},
	{models.ErrInvalidVehicle, fiber.StatusUnprocessableEntity, "INVALID_VEHICLE"},
	{models.ErrReimbursementNotAllowed, fiber.StatusUnprocessableEntity, "REIMBURSEMENT_NOT_ALLOWED"},

	{models.ErrInvalidUpdate, fiber.StatusForbidden, "POLICY_NOT_UPDATABLE"},
	{models.ErrPermissionDenied, fiber.StatusForbidden, "PERMISSION_DENIED"},

	{models.ErrPersonNotFound, fiber.StatusNotFound, "PERSON_NOT_FOUND"},
	{models.ErrClientNotFound, fiber.StatusNotFound, "CLIENT_NOT_FOUND"},
	{models.ErrTeamNotFound, fiber.StatusNotFound, "TEAM_NOT_FOUND"},
	{models.ErrAgentNotFound, fiber.StatusNotFound, "AGENT_NOT_FOUND"},
	{models.ErrManagerNotFound, fiber.StatusNotFound, "MANAGER_NOT_FOUND"},
	{models.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{models.ErrProductNotFound, fiber.StatusNotFound, "PRODUCT_NOT_FOUND"},
	{models.ErrCoverageNotFound, fiber.StatusNotFound, "COVERAGE_NOT_FOUND"},
	{models.ErrCategoryNotFound, fiber.StatusNotFound, "CATEGORY_NOT_FOUND"},
	{models.ErrVehicleNotFound, fiber.StatusNotFound, "VEHICLE_NOT_FOUND"},
	{models.ErrDiseaseNotFound, fiber.StatusNotFound, "DISEASE_NOT_FOUND"},
	{models.ErrClinicalDataNotFound, fiber.StatusNotFound, "CLINICAL_DATA_NOT_FOUND"},
	{models.ErrPolicyNotFound, fiber.StatusNotFound, "POLICY_NOT_FOUND"},
	{models.ErrClaimNotFound, fiber.StatusNotFound, "CLAIM_NOT_FOUND"},
	{models.ErrPaymentNotFound, fiber.StatusNotFound, "PAYMENT_NOT_FOUND"},

	{models.ErrProductInUse, fiber.StatusConflict, "PRODUCT_IN_USE"},
	{models.ErrTeamInUse, fiber.StatusConflict, "TEAM_IN_USE"},
	{models.ErrDuplicateUsername, fiber.StatusConflict, "DUPLICATE_USERNAME"},

	{models.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{models.ErrSessionInvalid, fiber.StatusUnauthorized, "SESSION_INVALID"},
}

// respondError maps a service error to its HTTP status; anything unmapped,
// including ErrSaveFailed, surfaces as a 500.
func respondError(c fiber.Ctx, err error) error {
	for _, mapping := range errorMappings {
		if errors.Is(err, mapping.err) {
			return c.Status(mapping.status).JSON(utils.CreateErrorResponse(mapping.code, err.Error()))
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(utils.CreateErrorResponse("INTERNAL_ERROR", "internal server error"))
}

func respondInvalidBody(c fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", "invalid request body"))
}

func respondValidation(c fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(utils.CreateErrorResponse("VALIDATION_ERROR", err.Error()))
}

func respondInvalidID(c fiber.Ctx, name string) error {
	return c.Status(fiber.StatusBadRequest).
		JSON(utils.CreateErrorResponse("INVALID_ID", name+" must be a valid uuid"))
}

func idParam(c fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func paginationParams(c fiber.Ctx) (limit, offset int) {
	limit = fiber.Query[int](c, "limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset = fiber.Query[int](c, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
