package models

import (
	"time"

	"github.com/google/uuid"
)

type Person struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	NIF         string      `json:"nif" db:"nif"`
	BirthDate   *time.Time  `json:"birth_date,omitempty" db:"birth_date"`
	Phone       *string     `json:"phone,omitempty" db:"phone"`
	Address     *string     `json:"address,omitempty" db:"address"`
	CivilStatus CivilStatus `json:"civil_status" db:"civil_status"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

type Client struct {
	ID        uuid.UUID `json:"id" db:"id"`
	PersonID  uuid.UUID `json:"person_id" db:"person_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Team struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Agent struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	PersonID  uuid.UUID  `json:"person_id" db:"person_id"`
	TeamID    *uuid.UUID `json:"team_id,omitempty" db:"team_id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

type Manager struct {
	ID        uuid.UUID `json:"id" db:"id"`
	PersonID  uuid.UUID `json:"person_id" db:"person_id"`
	TeamID    uuid.UUID `json:"team_id" db:"team_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
