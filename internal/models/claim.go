package models

import (
	"time"

	"github.com/google/uuid"
)

type Claim struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	Description   string     `json:"description" db:"description"`
	State         ClaimState `json:"state" db:"state"`
	Reimbursement *float64   `json:"reimbursement,omitempty" db:"reimbursement"`
	ClaimDate     time.Time  `json:"claim_date" db:"claim_date"`
	Valid         *bool      `json:"valid,omitempty" db:"valid"`
	Deferred      *bool      `json:"deferred,omitempty" db:"deferred"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

type Evidence struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Content   string    `json:"content" db:"content"`
	Date      time.Time `json:"date" db:"date"`
	ClaimID   uuid.UUID `json:"claim_id" db:"claim_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type AssessmentReport struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Content   string    `json:"content" db:"content"`
	Date      time.Time `json:"date" db:"date"`
	Upheld    bool      `json:"upheld" db:"upheld"`
	ClaimID   uuid.UUID `json:"claim_id" db:"claim_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type PersonalClaim struct {
	ID               uuid.UUID `json:"id" db:"id"`
	ClaimID          uuid.UUID `json:"claim_id" db:"claim_id"`
	PersonalPolicyID uuid.UUID `json:"personal_policy_id" db:"personal_policy_id"`
}

type VehicleClaim struct {
	ID              uuid.UUID `json:"id" db:"id"`
	ClaimID         uuid.UUID `json:"claim_id" db:"claim_id"`
	VehiclePolicyID uuid.UUID `json:"vehicle_policy_id" db:"vehicle_policy_id"`
}
