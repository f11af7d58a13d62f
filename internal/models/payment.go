package models

import (
	"time"

	"github.com/google/uuid"
)

// UnpaidSentinel is the historical paid_date value meaning "not yet paid".
var UnpaidSentinel = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// FallbackInstallmentAmount is charged when a policy carries an installment
// plan the billing run does not recognize.
const FallbackInstallmentAmount = 9999

type Payment struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Method    string    `json:"method" db:"method"`
	IssueDate time.Time `json:"issue_date" db:"issue_date"`
	PaidDate  time.Time `json:"paid_date" db:"paid_date"`
	Amount    float64   `json:"amount" db:"amount"`
	PolicyID  uuid.UUID `json:"policy_id" db:"policy_id"`
}

// Unpaid reports whether the payment still carries the unpaid sentinel.
func (p *Payment) Unpaid() bool {
	return p.PaidDate.Equal(UnpaidSentinel)
}
