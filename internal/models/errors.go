package models

import "errors"

// Domain errors returned by the services layer. Handlers translate these to
// HTTP status codes with errors.Is; repositories wrap storage failures and
// never return them directly.
var (
	ErrInvalidField  = errors.New("invalid field value")
	ErrInvalidUpdate = errors.New("policy is no longer updatable")

	ErrInvalidProduct  = errors.New("invalid product")
	ErrInvalidCoverage = errors.New("coverage does not belong to product")
	ErrInvalidAgent    = errors.New("invalid agent reference")
	ErrInvalidClient   = errors.New("invalid client reference")
	ErrInvalidVehicle  = errors.New("invalid vehicle reference")

	ErrPermissionDenied = errors.New("permission denied")

	ErrPersonNotFound       = errors.New("person not found")
	ErrClientNotFound       = errors.New("client not found")
	ErrTeamNotFound         = errors.New("team not found")
	ErrAgentNotFound        = errors.New("agent not found")
	ErrManagerNotFound      = errors.New("manager not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrCoverageNotFound     = errors.New("coverage not found")
	ErrCategoryNotFound     = errors.New("vehicle category not found")
	ErrVehicleNotFound      = errors.New("vehicle not found")
	ErrDiseaseNotFound      = errors.New("disease not found")
	ErrClinicalDataNotFound = errors.New("clinical data not found")
	ErrPolicyNotFound       = errors.New("policy not found")
	ErrClaimNotFound        = errors.New("claim not found")
	ErrPaymentNotFound      = errors.New("payment not found")

	ErrDateNotAccepted         = errors.New("date not accepted")
	ErrReimbursementNotAllowed = errors.New("reimbursement requires an upheld claim")
	ErrProductInUse            = errors.New("product is referenced by policies")
	ErrTeamInUse               = errors.New("team still has members")
	ErrDuplicateUsername       = errors.New("username already taken")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrSessionInvalid          = errors.New("session invalid or expired")

	ErrSaveFailed = errors.New("no rows affected")
)
