package handlers

import (
	"backoffice-service/internal/models"
	"backoffice-service/internal/services"
	"backoffice-service/pkg/utils"

	"github.com/gofiber/fiber/v3"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
	middleware     *Middleware
}

func NewCatalogHandler(catalogService *services.CatalogService, middleware *Middleware) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		middleware:     middleware,
	}
}

func (h *CatalogHandler) Register(app *fiber.App) {
	// The catalog is readable by anyone who can sell or buy from it.
	read := app.Group("/api/v1", h.middleware.RequireAuth())
	read.Get("/products", h.GetProducts)
	read.Get("/products/:id", h.GetProduct)
	read.Get("/products/:id/coverages", h.GetCoverages)
	read.Get("/vehicle-categories", h.GetVehicleCategories)
	read.Get("/vehicles/:id", h.GetVehicle)
	read.Get("/clients/:id/vehicles", h.GetClientVehicles)
	read.Get("/diseases", h.GetDiseases)
	read.Get("/clients/:id/clinical-data", h.GetClinicalData)

	write := app.Group("/api/v1",
		h.middleware.RequireAuth(),
		h.middleware.RequireRole(models.RoleAdmin, models.RoleManager),
	)
	write.Post("/products", h.CreateProduct)
	write.Put("/products/:id/deactivate", h.DeactivateProduct)
	write.Put("/products/:id/activate", h.ActivateProduct)
	write.Delete("/products/:id", h.DeleteProduct)
	write.Post("/coverages", h.CreateCoverage)
	write.Delete("/coverages/:id", h.DeleteCoverage)
	write.Post("/vehicle-categories", h.CreateVehicleCategory)
	write.Post("/vehicles", h.CreateVehicle)
	write.Post("/diseases", h.CreateDisease)
	write.Post("/clinical-data", h.CreateClinicalData)
}

func (h *CatalogHandler) CreateProduct(c fiber.Ctx) error {
	var req models.CreateProductRequest
	if err := c.Bind().Body(&req); err != nil {
		return respondInvalidBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	product, err := h.catalogService.CreateProduct(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.CreateSuccessResponse(product))
}

func (h *CatalogHandler) GetProducts(c fiber.Ctx) error {
	if category := c.Query("category"); category != "" {
		products, err := h.catalogService.GetProductsByCategory(c.Context(), models.ProductCategory(category))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(utils.CreateSuccessResponse(products))
	}

	products, err := h.catalogService.GetProducts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(products))
}

func (h *CatalogHandler) GetProduct(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	product, err := h.catalogService.GetProduct(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(product))
}

func (h *CatalogHandler) DeactivateProduct(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	if err := h.catalogService.DeactivateProduct(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(nil))
}

func (h *CatalogHandler) ActivateProduct(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	if err := h.catalogService.ActivateProduct(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(nil))
}

func (h *CatalogHandler) DeleteProduct(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	if err := h.catalogService.DeleteProduct(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusNoContent).Send(nil)
}

func (h *CatalogHandler) CreateCoverage(c fiber.Ctx) error {
	var req models.CreateCoverageRequest
	if err := c.Bind().Body(&req); err != nil {
		return respondInvalidBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	coverage, err := h.catalogService.CreateCoverage(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.CreateSuccessResponse(coverage))
}

func (h *CatalogHandler) GetCoverages(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	coverages, err := h.catalogService.GetCoverages(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(coverages))
}

func (h *CatalogHandler) DeleteCoverage(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	if err := h.catalogService.DeleteCoverage(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusNoContent).Send(nil)
}

func (h *CatalogHandler) CreateVehicleCategory(c fiber.Ctx) error {
	var req models.CreateVehicleCategoryRequest
	if err := c.Bind().Body(&req); err != nil {
		return respondInvalidBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	category, err := h.catalogService.CreateVehicleCategory(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.CreateSuccessResponse(category))
}

func (h *CatalogHandler) GetVehicleCategories(c fiber.Ctx) error {
	categories, err := h.catalogService.GetVehicleCategories(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(categories))
}

func (h *CatalogHandler) CreateVehicle(c fiber.Ctx) error {
	var req models.CreateVehicleRequest
	if err := c.Bind().Body(&req); err != nil {
		return respondInvalidBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	vehicle, err := h.catalogService.CreateVehicle(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.CreateSuccessResponse(vehicle))
}

func (h *CatalogHandler) GetVehicle(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	vehicle, err := h.catalogService.GetVehicle(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(vehicle))
}

func (h *CatalogHandler) GetClientVehicles(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	vehicles, err := h.catalogService.GetClientVehicles(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(vehicles))
}

func (h *CatalogHandler) CreateDisease(c fiber.Ctx) error {
	var req models.CreateDiseaseRequest
	if err := c.Bind().Body(&req); err != nil {
		return respondInvalidBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	disease, err := h.catalogService.CreateDisease(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.CreateSuccessResponse(disease))
}

func (h *CatalogHandler) GetDiseases(c fiber.Ctx) error {
	diseases, err := h.catalogService.GetDiseases(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(diseases))
}

func (h *CatalogHandler) CreateClinicalData(c fiber.Ctx) error {
	var req models.CreateClinicalDataRequest
	if err := c.Bind().Body(&req); err != nil {
		return respondInvalidBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	data, err := h.catalogService.CreateClinicalData(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.CreateSuccessResponse(data))
}

func (h *CatalogHandler) GetClinicalData(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	data, diseases, err := h.catalogService.GetClinicalData(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(fiber.Map{
		"clinical_data": data,
		"diseases":      diseases,
	}))
}
