package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanPayment represents an actual payment recorded against a loan
type LoanPayment struct {
	ID               int64           `json:"id"`
	LoanID           int64           `json:"loan_id"`
	PaymentNumber    int             `json:"payment_number"`
	PaymentDate      time.Time       `json:"payment_date"`
	Amount           decimal.Decimal `json:"amount"`
	PrincipalAmount  decimal.Decimal `json:"principal_amount"`
	InterestAmount   decimal.Decimal `json:"interest_amount"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	CreatedAt        time.Time       `json:"created_at"`
}
