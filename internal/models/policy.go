package models

import (
	"time"

	"github.com/google/uuid"
)

type Policy struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	Active          bool            `json:"active" db:"active"`
	Premium         *float64        `json:"premium,omitempty" db:"premium"`
	ValidUntil      *time.Time      `json:"valid_until,omitempty" db:"valid_until"`
	InstallmentPlan InstallmentPlan `json:"installment_plan" db:"installment_plan"`
	SimulationState SimulationState `json:"simulation_state" db:"simulation_state"`
	AgentID         *uuid.UUID      `json:"agent_id,omitempty" db:"agent_id"`
	ProductID       uuid.UUID       `json:"product_id" db:"product_id"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// CanUpdate reports whether request-driven mutation is still allowed. Once a
// policy is active or its payment has been issued only the billing run may
// touch it.
func (p *Policy) CanUpdate() bool {
	return !p.Active && p.SimulationState != SimulationPaymentIssued
}

type PersonalPolicy struct {
	ID            uuid.UUID `json:"id" db:"id"`
	PolicyID      uuid.UUID `json:"policy_id" db:"policy_id"`
	ClientID      uuid.UUID `json:"client_id" db:"client_id"`
	InsuredAmount *float64  `json:"insured_amount,omitempty" db:"insured_amount"`
}

type HealthPolicy struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	PolicyID       uuid.UUID  `json:"policy_id" db:"policy_id"`
	ClientID       uuid.UUID  `json:"client_id" db:"client_id"`
	ClinicalDataID *uuid.UUID `json:"clinical_data_id,omitempty" db:"clinical_data_id"`
}

type VehiclePolicy struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	PolicyID      uuid.UUID  `json:"policy_id" db:"policy_id"`
	ClientID      uuid.UUID  `json:"client_id" db:"client_id"`
	VehicleID     uuid.UUID  `json:"vehicle_id" db:"vehicle_id"`
	AccidentCount *int       `json:"accident_count,omitempty" db:"accident_count"`
	LicenseDate   *time.Time `json:"license_date,omitempty" db:"license_date"`
}

type CoverageLink struct {
	ID         uuid.UUID `json:"id" db:"id"`
	CoverageID uuid.UUID `json:"coverage_id" db:"coverage_id"`
	PolicyID   uuid.UUID `json:"policy_id" db:"policy_id"`
}
