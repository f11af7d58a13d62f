package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Category  ProductCategory `json:"category" db:"category"`
	Active    bool            `json:"active" db:"active"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

type Coverage struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Description string    `json:"description" db:"description"`
	ProductID   uuid.UUID `json:"product_id" db:"product_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type VehicleCategory struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}

type Vehicle struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Plate      string    `json:"plate" db:"plate"`
	CategoryID uuid.UUID `json:"category_id" db:"category_id"`
	ClientID   uuid.UUID `json:"client_id" db:"client_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

type Disease struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}

// ClinicalData is a client's clinical record; diseases are linked through
// the clinical_data_disease join table.
type ClinicalData struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ClientID  uuid.UUID `json:"client_id" db:"client_id"`
	Notes     *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
