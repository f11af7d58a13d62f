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

type PersonRepository interface {
	Create(ctx context.Context, person *models.Person) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Person, error)
	GetByNIF(ctx context.Context, nif string) (*models.Person, error)
	GetAll(ctx context.Context, limit, offset int) ([]models.Person, error)
	Update(ctx context.Context, person *models.Person) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type personRepository struct {
	db *sqlx.DB
}

func NewPersonRepository(db *sqlx.DB) PersonRepository {
	return &personRepository{db: db}
}

func (r *personRepository) Create(ctx context.Context, person *models.Person) error {
	query := `
		INSERT INTO person (id, name, nif, birth_date, phone, address, civil_status, created_at, updated_at)
		VALUES (:id, :name, :nif, :birth_date, :phone, :address, :civil_status, :created_at, :updated_at)
	`

	person.CreatedAt = time.Now()
	person.UpdatedAt = time.Now()

	if _, err := r.db.NamedExecContext(ctx, query, person); err != nil {
		return fmt.Errorf("failed to create person: %w", err)
	}
	return nil
}

func (r *personRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Person, error) {
	var person models.Person
	query := `SELECT * FROM person WHERE id = $1`

	if err := r.db.GetContext(ctx, &person, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrPersonNotFound
		}
		return nil, fmt.Errorf("failed to get person by id: %w", err)
	}
	return &person, nil
}

func (r *personRepository) GetByNIF(ctx context.Context, nif string) (*models.Person, error) {
	var person models.Person
	query := `SELECT * FROM person WHERE nif = $1`

	if err := r.db.GetContext(ctx, &person, query, nif); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrPersonNotFound
		}
		return nil, fmt.Errorf("failed to get person by nif: %w", err)
	}
	return &person, nil
}

func (r *personRepository) GetAll(ctx context.Context, limit, offset int) ([]models.Person, error) {
	var persons []models.Person
	query := `SELECT * FROM person ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	if err := r.db.SelectContext(ctx, &persons, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to get persons: %w", err)
	}
	return persons, nil
}

func (r *personRepository) Update(ctx context.Context, person *models.Person) error {
	query := `
		UPDATE person
		SET name = $1, phone = $2, address = $3, civil_status = $4, updated_at = $5
		WHERE id = $6
	`

	err := utils.ExecWithCheck(ctx, r.db, query, utils.ExecUpdate,
		person.Name, person.Phone, person.Address, person.CivilStatus, time.Now(), person.ID)
	if err != nil {
		return fmt.Errorf("failed to update person: %w", err)
	}
	return nil
}

func (r *personRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM person WHERE id = $1`

	if err := utils.ExecWithCheck(ctx, r.db, query, utils.ExecDelete, id); err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	return nil
}
