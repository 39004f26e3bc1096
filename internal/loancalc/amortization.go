package loancalc

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// AmortizationScheduleEntry is one period of an amortization schedule.
type AmortizationScheduleEntry struct {
	PaymentNumber    int             `json:"payment_number"`
	PaymentDate      time.Time       `json:"payment_date"`
	PaymentAmount    decimal.Decimal `json:"payment_amount"`
	PrincipalAmount  decimal.Decimal `json:"principal_amount"`
	InterestAmount   decimal.Decimal `json:"interest_amount"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// AmortizationAnalysis is the full schedule plus its summary figures.
type AmortizationAnalysis struct {
	MonthlyPayment decimal.Decimal             `json:"monthly_payment"`
	TotalInterest  decimal.Decimal             `json:"total_interest"`
	TotalCost      decimal.Decimal             `json:"total_cost"`
	Schedule       []AmortizationScheduleEntry `json:"schedule"`
}

// GenerateAmortizationSchedule computes a standard fixed-payment amortization
// schedule for the given terms.
//
// The terms must already have passed ValidateLoanTerms; the engine does not
// re-validate and the result is undefined for invalid input.
//
// The calculation uses:
//
//	r       = apr / 100 / 12
//	payment = P * r * (1+r)^n / ((1+r)^n - 1)
//
// with an even split when r is zero. Interest is rounded to cents per period.
// The running balance is carried exactly between periods, and the final payment
// pays off the exact remaining balance so the schedule terminates at zero
// instead of a residual fraction of a cent.
func GenerateAmortizationSchedule(terms LoanTerms) AmortizationAnalysis {
	r := monthlyRate(terms.APR)
	payment := monthlyPayment(terms.Principal, r, terms.TermMonths)

	schedule := make([]AmortizationScheduleEntry, 0, terms.TermMonths)
	remaining := terms.Principal
	totalInterest := decimal.Zero

	for n := 1; n <= terms.TermMonths; n++ {
		interest := remaining.Mul(r).Round(2)
		principalPart := payment.Sub(interest)
		entryPayment := payment

		// Last period: the remaining balance becomes the principal portion,
		// absorbing accumulated rounding so the loan ends at exactly zero.
		if n == terms.TermMonths {
			principalPart = remaining
			entryPayment = principalPart.Add(interest)
		}

		remaining = remaining.Sub(principalPart)
		totalInterest = totalInterest.Add(interest)

		schedule = append(schedule, AmortizationScheduleEntry{
			PaymentNumber:    n,
			PaymentDate:      AddMonths(terms.StartDate, n),
			PaymentAmount:    entryPayment,
			PrincipalAmount:  principalPart,
			InterestAmount:   interest,
			RemainingBalance: remaining,
		})
	}

	return AmortizationAnalysis{
		MonthlyPayment: payment,
		TotalInterest:  totalInterest,
		TotalCost:      terms.Principal.Add(totalInterest),
		Schedule:       schedule,
	}
}

// monthlyRate converts an annual percentage rate to a monthly periodic rate.
func monthlyRate(apr decimal.Decimal) decimal.Decimal {
	return apr.Div(hundred).Div(twelve)
}

// monthlyPayment computes the fixed payment for a loan, rounded to cents.
func monthlyPayment(principal, r decimal.Decimal, termMonths int) decimal.Decimal {
	n := decimal.NewFromInt(int64(termMonths))
	if r.IsZero() {
		return principal.Div(n).Round(2)
	}
	factor := one.Add(r).Pow(n)
	return principal.Mul(r).Mul(factor).Div(factor.Sub(one)).Round(2)
}

// AddMonths advances t by n calendar months, clamping the day of month when the
// target month is shorter (Jan 31 + 1 month = Feb 28/29). time.Time.AddDate
// normalizes overflow into the following month instead, which would shift
// payment dates for loans starting on the 29th through 31st.
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	lastDay := time.Date(year, month+time.Month(n)+1, 0, 0, 0, 0, 0, t.Location()).Day()
	if day > lastDay {
		day = lastDay
	}
	hour, min, sec := t.Clock()
	return time.Date(year, month+time.Month(n), day, hour, min, sec, t.Nanosecond(), t.Location())
}
