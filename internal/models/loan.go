package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan represents vehicle financing in the system
type Loan struct {
	ID             int64           `json:"id"`
	UserID         int64           `json:"user_id"`
	VehicleID      int64           `json:"vehicle_id"`
	Principal      decimal.Decimal `json:"principal"`
	APR            decimal.Decimal `json:"apr"`
	TermMonths     int             `json:"term_months"`
	StartDate      time.Time       `json:"start_date"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	PaymentsMade   int             `json:"payments_made"`
	PaidOff        bool            `json:"paid_off"`
	HMAC           string          `json:"hmac"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
