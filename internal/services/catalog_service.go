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

// CatalogService manages the sellable catalog: products and their coverages,
// vehicle categories and vehicles, diseases and clinical records.
type CatalogService struct {
	productRepo  repository.ProductRepository
	coverageRepo repository.CoverageRepository
	vehicleRepo  repository.VehicleRepository
	diseaseRepo  repository.DiseaseRepository
	clientRepo   repository.ClientRepository
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	coverageRepo repository.CoverageRepository,
	vehicleRepo repository.VehicleRepository,
	diseaseRepo repository.DiseaseRepository,
	clientRepo repository.ClientRepository,
) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		coverageRepo: coverageRepo,
		vehicleRepo:  vehicleRepo,
		diseaseRepo:  diseaseRepo,
		clientRepo:   clientRepo,
	}
}

func (s *CatalogService) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	if !req.Category.IsValid() {
		return nil, fmt.Errorf("%w: product category %q", models.ErrInvalidField, req.Category)
	}

	product := &models.Product{
		ID:       uuid.New(),
		Name:     req.Name,
		Category: req.Category,
		Active:   true,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

func (s *CatalogService) GetProducts(ctx context.Context) ([]models.Product, error) {
	return s.productRepo.GetAll(ctx)
}

func (s *CatalogService) GetProductsByCategory(ctx context.Context, category models.ProductCategory) ([]models.Product, error) {
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: product category %q", models.ErrInvalidField, category)
	}
	return s.productRepo.GetByCategory(ctx, category)
}

// DeactivateProduct retires a product from sale without touching the
// policies that reference it.
func (s *CatalogService) DeactivateProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.productRepo.SetActive(ctx, id, false); err != nil {
		if errors.Is(err, utils.ErrNoRowsAffected) {
			return models.ErrSaveFailed
		}
		return err
	}
	return nil
}

// DeleteProduct removes a product that no policy has ever referenced.
// Referenced products must be deactivated instead.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.productRepo.CountPolicies(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d policies reference product %s", models.ErrProductInUse, count, id)
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, utils.ErrNoRowsAffected) {
			return models.ErrProductNotFound
		}
		return err
	}
	return nil
}

func (s *CatalogService) ActivateProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.productRepo.SetActive(ctx, id, true); err != nil {
		if errors.Is(err, utils.ErrNoRowsAffected) {
			return models.ErrSaveFailed
		}
		return err
	}
	return nil
}

func (s *CatalogService) CreateCoverage(ctx context.Context, req models.CreateCoverageRequest) (*models.Coverage, error) {
	if _, err := s.productRepo.GetByID(ctx, req.ProductID); err != nil {
		return nil, err
	}

	coverage := &models.Coverage{
		ID:          uuid.New(),
		Description: req.Description,
		ProductID:   req.ProductID,
	}
	if err := s.coverageRepo.Create(ctx, coverage); err != nil {
		return nil, err
	}
	return coverage, nil
}

func (s *CatalogService) GetCoverages(ctx context.Context, productID uuid.UUID) ([]models.Coverage, error) {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.coverageRepo.GetByProductID(ctx, productID)
}

func (s *CatalogService) DeleteCoverage(ctx context.Context, id uuid.UUID) error {
	if err := s.coverageRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, utils.ErrNoRowsAffected) {
			return models.ErrCoverageNotFound
		}
		return err
	}
	return nil
}

func (s *CatalogService) CreateVehicleCategory(ctx context.Context, req models.CreateVehicleCategoryRequest) (*models.VehicleCategory, error) {
	category := &models.VehicleCategory{
		ID:   uuid.New(),
		Name: req.Name,
	}
	if err := s.vehicleRepo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) GetVehicleCategories(ctx context.Context) ([]models.VehicleCategory, error) {
	return s.vehicleRepo.GetAllCategories(ctx)
}

func (s *CatalogService) CreateVehicle(ctx context.Context, req models.CreateVehicleRequest) (*models.Vehicle, error) {
	if !utils.ValidatePlate(req.Plate) {
		return nil, fmt.Errorf("%w: plate %q is not valid", models.ErrInvalidField, req.Plate)
	}
	if _, err := s.vehicleRepo.GetCategoryByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	if _, err := s.clientRepo.GetByID(ctx, req.ClientID); err != nil {
		return nil, err
	}

	vehicle := &models.Vehicle{
		ID:         uuid.New(),
		Plate:      req.Plate,
		CategoryID: req.CategoryID,
		ClientID:   req.ClientID,
	}
	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *CatalogService) GetVehicle(ctx context.Context, id uuid.UUID) (*models.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, id)
}

func (s *CatalogService) GetClientVehicles(ctx context.Context, clientID uuid.UUID) ([]models.Vehicle, error) {
	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		return nil, err
	}
	return s.vehicleRepo.GetByClientID(ctx, clientID)
}

func (s *CatalogService) CreateDisease(ctx context.Context, req models.CreateDiseaseRequest) (*models.Disease, error) {
	disease := &models.Disease{
		ID:   uuid.New(),
		Name: req.Name,
	}
	if err := s.diseaseRepo.Create(ctx, disease); err != nil {
		return nil, err
	}
	return disease, nil
}

func (s *CatalogService) GetDiseases(ctx context.Context) ([]models.Disease, error) {
	return s.diseaseRepo.GetAll(ctx)
}

// CreateClinicalData records a client's clinical record together with its
// disease links in one transaction.
func (s *CatalogService) CreateClinicalData(ctx context.Context, req models.CreateClinicalDataRequest) (*models.ClinicalData, error) {
	if _, err := s.clientRepo.GetByID(ctx, req.ClientID); err != nil {
		return nil, err
	}
	for _, diseaseID := range req.DiseaseIDs {
		if _, err := s.diseaseRepo.GetByID(ctx, diseaseID); err != nil {
			return nil, err
		}
	}

	data := &models.ClinicalData{
		ID:       uuid.New(),
		ClientID: req.ClientID,
		Notes:    req.Notes,
	}
	if err := s.diseaseRepo.CreateClinicalData(ctx, data, req.DiseaseIDs); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *CatalogService) GetClinicalData(ctx context.Context, clientID uuid.UUID) (*models.ClinicalData, []models.Disease, error) {
	data, err := s.diseaseRepo.GetClinicalDataByClientID(ctx, clientID)
	if err != nil {
		return nil, nil, err
	}
	diseases, err := s.diseaseRepo.GetDiseasesForClinicalData(ctx, data.ID)
	if err != nil {
		return nil, nil, err
	}
	return data, diseases, nil
}
