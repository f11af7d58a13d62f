package models

// Persisted enum literals match the historical database values exactly and
// must not be renamed without a data migration.

type SimulationState string

const (
	SimulationNotValidated  SimulationState = "Não Validada"
	SimulationValidated     SimulationState = "Validada"
	SimulationApproved      SimulationState = "Aprovada"
	SimulationPaymentIssued SimulationState = "Pagamento Emitido"
	SimulationCancelled     SimulationState = "Cancelada"
)

// CreatableSimulationStates are the states a caller may supply when creating
// or updating a policy. Cancelada is reachable only through the billing run.
var CreatableSimulationStates = []SimulationState{
	SimulationNotValidated,
	SimulationValidated,
	SimulationApproved,
	SimulationPaymentIssued,
}

func (s SimulationState) IsCreatable() bool {
	for _, state := range CreatableSimulationStates {
		if s == state {
			return true
		}
	}
	return false
}

type InstallmentPlan string

const (
	InstallmentMonthly    InstallmentPlan = "Mensal"
	InstallmentQuarterly  InstallmentPlan = "Trimestral"
	InstallmentSemiannual InstallmentPlan = "Semestral"
	InstallmentAnnual     InstallmentPlan = "Anual"
)

func (p InstallmentPlan) IsValid() bool {
	switch p {
	case InstallmentMonthly, InstallmentQuarterly, InstallmentSemiannual, InstallmentAnnual:
		return true
	}
	return false
}

// PaymentsPerYear returns how many installments one annual premium is split
// into. Unknown plans fall back to zero; callers keep the historical 9999
// sentinel amount for that case.
func (p InstallmentPlan) PaymentsPerYear() int {
	switch p {
	case InstallmentMonthly:
		return 12
	case InstallmentQuarterly:
		return 4
	case InstallmentSemiannual:
		return 2
	case InstallmentAnnual:
		return 1
	}
	return 0
}

// ValidityMonths is the number of months one billing cycle extends a
// policy's validity.
func (p InstallmentPlan) ValidityMonths() int {
	switch p {
	case InstallmentMonthly:
		return 1
	case InstallmentQuarterly:
		return 3
	case InstallmentSemiannual:
		return 6
	case InstallmentAnnual:
		return 12
	}
	return 0
}

type ClaimState string

const (
	ClaimReported           ClaimState = "Reportado"
	ClaimAwaitingValidation ClaimState = "Aguardar Validação"
	ClaimAwaitingAssessment ClaimState = "Aguardar Peritagem"
	ClaimResultIssued       ClaimState = "Resultado Emitido"
)

type ProductCategory string

const (
	CategoryPersonal ProductCategory = "Pessoal"
	CategoryHealth   ProductCategory = "Saúde"
	CategoryVehicle  ProductCategory = "Veiculo"
)

func (c ProductCategory) IsValid() bool {
	switch c {
	case CategoryPersonal, CategoryHealth, CategoryVehicle:
		return true
	}
	return false
}

type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleManager Role = "Gestor"
	RoleAgent   Role = "Agente"
	RoleClient  Role = "Cliente"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleAgent, RoleClient:
		return true
	}
	return false
}

type CivilStatus string

const (
	CivilSingle   CivilStatus = "Solteiro"
	CivilMarried  CivilStatus = "Casado"
	CivilDivorced CivilStatus = "Divorciado"
	CivilWidowed  CivilStatus = "Viúvo"
)

func (s CivilStatus) IsValid() bool {
	switch s {
	case CivilSingle, CivilMarried, CivilDivorced, CivilWidowed:
		return true
	}
	return false
}

// PaymentMethodCard is the method the billing run stamps on synthesized
// payments.
const PaymentMethodCard = "Card"
