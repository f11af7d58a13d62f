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

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByCategory(ctx context.Context, category models.ProductCategory) ([]models.Product, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	CountPolicies(ctx context.Context, productID uuid.UUID) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO product (id, name, category, active, created_at, updated_at)
		VALUES (:id, :name, :category, :active, :created_at, :updated_at)
	`

	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()
	if _, err := r.db.NamedExecContext(ctx, query, product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.GetContext(ctx, &product, `SELECT * FROM product WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by id: %w", err)
	}
	return &product, nil
}

func (r *productRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.SelectContext(ctx, &products, `SELECT * FROM product ORDER BY name`); err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

func (r *productRepository) GetByCategory(ctx context.Context, category models.ProductCategory) ([]models.Product, error) {
	var products []models.Product
	query := `SELECT * FROM product WHERE category = $1 AND active = true ORDER BY name`
	if err := r.db.SelectContext(ctx, &products, query, category); err != nil {
		return nil, fmt.Errorf("failed to get products by category: %w", err)
	}
	return products, nil
}

func (r *productRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE product SET active = $1, updated_at = $2 WHERE id = $3`
	if err := utils.ExecWithCheck(ctx, r.db, query, utils.ExecUpdate, active, time.Now(), id); err != nil {
		return fmt.Errorf("failed to set product active: %w", err)
	}
	return nil
}

func (r *productRepository) CountPolicies(ctx context.Context, productID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM apolice WHERE product_id = $1`
	if err := r.db.GetContext(ctx, &count, query, productID); err != nil {
		return 0, fmt.Errorf("failed to count policies for product: %w", err)
	}
	return count, nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := utils.ExecWithCheck(ctx, r.db, `DELETE FROM product WHERE id = $1`, utils.ExecDelete, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

type CoverageRepository interface {
	Create(ctx context.Context, coverage *models.Coverage) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Coverage, error)
	GetByProductID(ctx context.Context, productID uuid.UUID) ([]models.Coverage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type coverageRepository struct {
	db *sqlx.DB
}

func NewCoverageRepository(db *sqlx.DB) CoverageRepository {
	return &coverageRepository{db: db}
}

func (r *coverageRepository) Create(ctx context.Context, coverage *models.Coverage) error {
	query := `INSERT INTO cobertura (id, description, product_id, created_at) VALUES (:id, :description, :product_id, :created_at)`

	coverage.CreatedAt = time.Now()
	if _, err := r.db.NamedExecContext(ctx, query, coverage); err != nil {
		return fmt.Errorf("failed to create coverage: %w", err)
	}
	return nil
}

func (r *coverageRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Coverage, error) {
	var coverage models.Coverage
	if err := r.db.GetContext(ctx, &coverage, `SELECT * FROM cobertura WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrCoverageNotFound
		}
		return nil, fmt.Errorf("failed to get coverage by id: %w", err)
	}
	return &coverage, nil
}

func (r *coverageRepository) GetByProductID(ctx context.Context, productID uuid.UUID) ([]models.Coverage, error) {
	var coverages []models.Coverage
	query := `SELECT * FROM cobertura WHERE product_id = $1 ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &coverages, query, productID); err != nil {
		return nil, fmt.Errorf("failed to get coverages by product: %w", err)
	}
	return coverages, nil
}

func (r *coverageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := utils.ExecWithCheck(ctx, r.db, `DELETE FROM cobertura WHERE id = $1`, utils.ExecDelete, id); err != nil {
		return fmt.Errorf("failed to delete coverage: %w", err)
	}
	return nil
}

type VehicleRepository interface {
	CreateCategory(ctx context.Context, category *models.VehicleCategory) error
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.VehicleCategory, error)
	GetAllCategories(ctx context.Context) ([]models.VehicleCategory, error)
	Create(ctx context.Context, vehicle *models.Vehicle) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)
	GetByClientID(ctx context.Context, clientID uuid.UUID) ([]models.Vehicle, error)
}

type vehicleRepository struct {
	db *sqlx.DB
}

func NewVehicleRepository(db *sqlx.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) CreateCategory(ctx context.Context, category *models.VehicleCategory) error {
	query := `INSERT INTO vehicle_category (id, name) VALUES (:id, :name)`
	if _, err := r.db.NamedExecContext(ctx, query, category); err != nil {
		return fmt.Errorf("failed to create vehicle category: %w", err)
	}
	return nil
}

func (r *vehicleRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.VehicleCategory, error) {
	var category models.VehicleCategory
	if err := r.db.GetContext(ctx, &category, `SELECT * FROM vehicle_category WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle category: %w", err)
	}
	return &category, nil
}

func (r *vehicleRepository) GetAllCategories(ctx context.Context) ([]models.VehicleCategory, error) {
	var categories []models.VehicleCategory
	if err := r.db.SelectContext(ctx, &categories, `SELECT * FROM vehicle_category ORDER BY name`); err != nil {
		return nil, fmt.Errorf("failed to get vehicle categories: %w", err)
	}
	return categories, nil
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	query := `INSERT INTO vehicle (id, plate, category_id, client_id, created_at) VALUES (:id, :plate, :category_id, :client_id, :created_at)`

	vehicle.CreatedAt = time.Now()
	if _, err := r.db.NamedExecContext(ctx, query, vehicle); err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := r.db.GetContext(ctx, &vehicle, `SELECT * FROM vehicle WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle by id: %w", err)
	}
	return &vehicle, nil
}

func (r *vehicleRepository) GetByClientID(ctx context.Context, clientID uuid.UUID) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	query := `SELECT * FROM vehicle WHERE client_id = $1 ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &vehicles, query, clientID); err != nil {
		return nil, fmt.Errorf("failed to get vehicles by client: %w", err)
	}
	return vehicles, nil
}

type DiseaseRepository interface {
	Create(ctx context.Context, disease *models.Disease) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Disease, error)
	GetAll(ctx context.Context) ([]models.Disease, error)
	CreateClinicalData(ctx context.Context, data *models.ClinicalData, diseaseIDs []uuid.UUID) error
	GetClinicalDataByID(ctx context.Context, id uuid.UUID) (*models.ClinicalData, error)
	GetClinicalDataByClientID(ctx context.Context, clientID uuid.UUID) (*models.ClinicalData, error)
	GetDiseasesForClinicalData(ctx context.Context, clinicalDataID uuid.UUID) ([]models.Disease, error)
}

type diseaseRepository struct {
	db *sqlx.DB
}

func NewDiseaseRepository(db *sqlx.DB) DiseaseRepository {
	return &diseaseRepository{db: db}
}

func (r *diseaseRepository) Create(ctx context.Context, disease *models.Disease) error {
	query := `INSERT INTO disease (id, name) VALUES (:id, :name)`
	if _, err := r.db.NamedExecContext(ctx, query, disease); err != nil {
		return fmt.Errorf("failed to create disease: %w", err)
	}
	return nil
}

func (r *diseaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Disease, error) {
	var disease models.Disease
	if err := r.db.GetContext(ctx, &disease, `SELECT * FROM disease WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrDiseaseNotFound
		}
		return nil, fmt.Errorf("failed to get disease by id: %w", err)
	}
	return &disease, nil
}

func (r *diseaseRepository) GetAll(ctx context.Context) ([]models.Disease, error) {
	var diseases []models.Disease
	if err := r.db.SelectContext(ctx, &diseases, `SELECT * FROM disease ORDER BY name`); err != nil {
		return nil, fmt.Errorf("failed to get diseases: %w", err)
	}
	return diseases, nil
}

func (r *diseaseRepository) CreateClinicalData(ctx context.Context, data *models.ClinicalData, diseaseIDs []uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	data.CreatedAt = time.Now()
	query := `INSERT INTO dado_clinico (id, client_id, notes, created_at) VALUES (:id, :client_id, :notes, :created_at)`
	if _, err := tx.NamedExecContext(ctx, query, data); err != nil {
		return fmt.Errorf("failed to create clinical data: %w", err)
	}

	linkQuery := `INSERT INTO dado_clinico_disease (clinical_data_id, disease_id) VALUES ($1, $2)`
	for _, diseaseID := range diseaseIDs {
		if _, err := tx.ExecContext(ctx, linkQuery, data.ID, diseaseID); err != nil {
			return fmt.Errorf("failed to link disease %s: %w", diseaseID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit clinical data: %w", err)
	}
	return nil
}

func (r *diseaseRepository) GetClinicalDataByID(ctx context.Context, id uuid.UUID) (*models.ClinicalData, error) {
	var data models.ClinicalData
	if err := r.db.GetContext(ctx, &data, `SELECT * FROM dado_clinico WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrClinicalDataNotFound
		}
		return nil, fmt.Errorf("failed to get clinical data by id: %w", err)
	}
	return &data, nil
}

func (r *diseaseRepository) GetClinicalDataByClientID(ctx context.Context, clientID uuid.UUID) (*models.ClinicalData, error) {
	var data models.ClinicalData
	if err := r.db.GetContext(ctx, &data, `SELECT * FROM dado_clinico WHERE client_id = $1`, clientID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrClinicalDataNotFound
		}
		return nil, fmt.Errorf("failed to get clinical data by client: %w", err)
	}
	return &data, nil
}

func (r *diseaseRepository) GetDiseasesForClinicalData(ctx context.Context, clinicalDataID uuid.UUID) ([]models.Disease, error) {
	var diseases []models.Disease
	query := `
		SELECT d.id, d.name
		FROM disease d
		JOIN dado_clinico_disease dcd ON dcd.disease_id = d.id
		WHERE dcd.clinical_data_id = $1
		ORDER BY d.name
	`
	if err := r.db.SelectContext(ctx, &diseases, query, clinicalDataID); err != nil {
		return nil, fmt.Errorf("failed to get diseases for clinical data: %w", err)
	}
	return diseases, nil
}
