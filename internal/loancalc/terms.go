package loancalc

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	MinTermMonths = 1
	MaxTermMonths = 600 // 50 years
)

// MaxAPR is a sanity bound, not a regulatory cap. Rates above it are almost
// certainly data-entry errors.
var MaxAPR = decimal.NewFromInt(50)

// LoanTerms describes a fixed-rate loan to be amortized over monthly periods.
type LoanTerms struct {
	Principal  decimal.Decimal `json:"principal"`
	APR        decimal.Decimal `json:"apr"`
	TermMonths int             `json:"term_months"`
	StartDate  time.Time       `json:"start_date"`
}

// ValidateLoanTerms checks the terms against domain constraints and returns one
// message per violation. An empty slice means the terms are valid. Every rule is
// checked so the caller sees all violations at once.
func ValidateLoanTerms(terms LoanTerms) []string {
	var violations []string

	if !terms.Principal.GreaterThan(decimal.Zero) {
		violations = append(violations, "principal must be greater than 0")
	}
	if terms.APR.IsNegative() || terms.APR.GreaterThan(MaxAPR) {
		violations = append(violations, fmt.Sprintf("apr must be between 0 and %s", MaxAPR))
	}
	if terms.TermMonths < MinTermMonths || terms.TermMonths > MaxTermMonths {
		violations = append(violations, fmt.Sprintf("term must be between %d and %d months", MinTermMonths, MaxTermMonths))
	}
	if terms.StartDate.IsZero() {
		violations = append(violations, "start date is required")
	}

	return violations
}
