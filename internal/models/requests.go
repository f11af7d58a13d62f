package models

import (
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// PARTY REQUESTS
// ============================================================================

type CreatePersonRequest struct {
	Name        string      `json:"name" validate:"required,min=1,max=100"`
	NIF         string      `json:"nif" validate:"required,len=9"`
	BirthDate   *time.Time  `json:"birth_date,omitempty"`
	Phone       *string     `json:"phone,omitempty" validate:"omitempty,max=16"`
	Address     *string     `json:"address,omitempty" validate:"omitempty,max=200"`
	CivilStatus CivilStatus `json:"civil_status" validate:"required"`
}

type UpdatePersonRequest struct {
	Name        *string      `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Phone       *string      `json:"phone,omitempty" validate:"omitempty,max=16"`
	Address     *string      `json:"address,omitempty" validate:"omitempty,max=200"`
	CivilStatus *CivilStatus `json:"civil_status,omitempty"`
}

type CreateClientRequest struct {
	PersonID uuid.UUID `json:"person_id" validate:"required"`
}

type CreateTeamRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type CreateAgentRequest struct {
	PersonID uuid.UUID  `json:"person_id" validate:"required"`
	TeamID   *uuid.UUID `json:"team_id,omitempty"`
}

type AssignAgentTeamRequest struct {
	TeamID uuid.UUID `json:"team_id" validate:"required"`
}

// CreateManagerRequest registers the person, the backing user account and the
// manager row in one call.
type CreateManagerRequest struct {
	Person   CreatePersonRequest `json:"person" validate:"required"`
	Username string              `json:"username" validate:"required,min=3,max=50"`
	Password string              `json:"password" validate:"required,min=8,max=72"`
	TeamID   uuid.UUID           `json:"team_id" validate:"required"`
}

// ============================================================================
// CATALOG REQUESTS
// ============================================================================

type CreateProductRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=100"`
	Category ProductCategory `json:"category" validate:"required"`
}

type CreateCoverageRequest struct {
	Description string    `json:"description" validate:"required,min=1,max=200"`
	ProductID   uuid.UUID `json:"product_id" validate:"required"`
}

type CreateVehicleCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type CreateVehicleRequest struct {
	Plate      string    `json:"plate" validate:"required,max=10"`
	CategoryID uuid.UUID `json:"category_id" validate:"required"`
	ClientID   uuid.UUID `json:"client_id" validate:"required"`
}

type CreateDiseaseRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type CreateClinicalDataRequest struct {
	ClientID   uuid.UUID   `json:"client_id" validate:"required"`
	Notes      *string     `json:"notes,omitempty" validate:"omitempty,max=1000"`
	DiseaseIDs []uuid.UUID `json:"disease_ids,omitempty"`
}

// ============================================================================
// POLICY REQUESTS
// ============================================================================

// PolicyDraft is the nested policy payload shared by the three
// specialization create requests.
type PolicyDraft struct {
	Premium         *float64        `json:"premium,omitempty" validate:"omitempty,gt=0"`
	ValidUntil      *time.Time      `json:"valid_until,omitempty"`
	InstallmentPlan InstallmentPlan `json:"installment_plan" validate:"required"`
	SimulationState SimulationState `json:"simulation_state" validate:"required"`
	AgentID         *uuid.UUID      `json:"agent_id,omitempty"`
	ProductID       uuid.UUID       `json:"product_id" validate:"required"`
	CoverageIDs     []uuid.UUID     `json:"coverage_ids,omitempty"`
}

type CreatePersonalPolicyRequest struct {
	Policy        PolicyDraft `json:"policy" validate:"required"`
	ClientID      uuid.UUID   `json:"client_id" validate:"required"`
	InsuredAmount *float64    `json:"insured_amount" validate:"required,gt=0"`
}

type CreateHealthPolicyRequest struct {
	Policy         PolicyDraft `json:"policy" validate:"required"`
	ClientID       uuid.UUID   `json:"client_id" validate:"required"`
	ClinicalDataID *uuid.UUID  `json:"clinical_data_id,omitempty"`
}

type CreateVehiclePolicyRequest struct {
	Policy        PolicyDraft `json:"policy" validate:"required"`
	ClientID      uuid.UUID   `json:"client_id" validate:"required"`
	VehicleID     uuid.UUID   `json:"vehicle_id" validate:"required"`
	AccidentCount *int        `json:"accident_count" validate:"required,gte=0"`
	LicenseDate   *time.Time  `json:"license_date" validate:"required"`
}

type UpdatePolicyRequest struct {
	Premium         *float64        `json:"premium,omitempty" validate:"omitempty,gt=0"`
	ValidUntil      *time.Time      `json:"valid_until,omitempty"`
	InstallmentPlan InstallmentPlan `json:"installment_plan" validate:"required"`
	SimulationState SimulationState `json:"simulation_state" validate:"required"`
	AgentID         *uuid.UUID      `json:"agent_id,omitempty"`
	ProductID       uuid.UUID       `json:"product_id" validate:"required"`
}

type UpdatePersonalPolicyRequest struct {
	ClientID      uuid.UUID `json:"client_id" validate:"required"`
	InsuredAmount *float64  `json:"insured_amount" validate:"required,gt=0"`
}

type UpdateVehiclePolicyRequest struct {
	ClientID      uuid.UUID  `json:"client_id" validate:"required"`
	VehicleID     uuid.UUID  `json:"vehicle_id" validate:"required"`
	AccidentCount *int       `json:"accident_count" validate:"required,gte=0"`
	LicenseDate   *time.Time `json:"license_date" validate:"required"`
}

// ============================================================================
// CLAIM REQUESTS
// ============================================================================

type ClaimDraft struct {
	Description string    `json:"description" validate:"required,min=1,max=500"`
	ClaimDate   time.Time `json:"claim_date" validate:"required"`
}

type CreatePersonalClaimRequest struct {
	Claim            ClaimDraft `json:"claim" validate:"required"`
	PersonalPolicyID uuid.UUID  `json:"personal_policy_id" validate:"required"`
}

type CreateVehicleClaimRequest struct {
	Claim           ClaimDraft `json:"claim" validate:"required"`
	VehiclePolicyID uuid.UUID  `json:"vehicle_policy_id" validate:"required"`
}

type SubmitEvidenceRequest struct {
	Content string    `json:"content" validate:"required,min=1"`
	Date    time.Time `json:"date" validate:"required"`
}

type SubmitAssessmentReportRequest struct {
	Content string    `json:"content" validate:"required,min=1"`
	Date    time.Time `json:"date" validate:"required"`
	Upheld  bool      `json:"upheld"`
}

type UpdateClaimRequest struct {
	Description   *string  `json:"description,omitempty" validate:"omitempty,min=1,max=500"`
	Reimbursement *float64 `json:"reimbursement,omitempty" validate:"omitempty,gte=0"`
	Valid         *bool    `json:"valid,omitempty"`
	Deferred      *bool    `json:"deferred,omitempty"`
}

// ============================================================================
// AUTH REQUESTS
// ============================================================================

type RegisterUserRequest struct {
	Username string     `json:"username" validate:"required,min=3,max=50"`
	Password string     `json:"password" validate:"required,min=8,max=72"`
	Role     Role       `json:"role" validate:"required"`
	PersonID *uuid.UUID `json:"person_id,omitempty"`
}

type ChangePasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	Role      Role      `json:"role"`
	UserID    uuid.UUID `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
