package loancalc

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func carLoanTerms() LoanTerms {
	// $20,000 at 4.5% for 60 months.
	return LoanTerms{
		Principal:  decimal.NewFromInt(20_000),
		APR:        decimal.NewFromFloat(4.5),
		TermMonths: 60,
		StartDate:  time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestGenerateAmortizationSchedule_CarLoan(t *testing.T) {
	terms := carLoanTerms()
	analysis := GenerateAmortizationSchedule(terms)

	require.Len(t, analysis.Schedule, 60, "schedule should have one entry per month")

	// Monthly payment for $20K at 4.5% over 60 months is $372.86.
	expectedPayment := decimal.NewFromFloat(372.86)
	assert.True(t,
		analysis.MonthlyPayment.Sub(expectedPayment).Abs().LessThan(decimal.NewFromFloat(0.01)),
		"monthly payment should be $372.86, got %s", analysis.MonthlyPayment,
	)

	assert.True(t, analysis.TotalInterest.GreaterThan(decimal.Zero),
		"total interest should be positive")
	assert.True(t, analysis.TotalCost.Equal(terms.Principal.Add(analysis.TotalInterest)),
		"total cost should be principal plus total interest")

	first := analysis.Schedule[0]
	assert.Equal(t, 1, first.PaymentNumber)
	assert.Equal(t, time.Date(2020, 4, 15, 0, 0, 0, 0, time.UTC), first.PaymentDate)

	// First month interest = 20000 * 0.045/12 = $75.00.
	assert.True(t, first.InterestAmount.Equal(decimal.NewFromInt(75)),
		"first interest should be $75.00, got %s", first.InterestAmount)

	last := analysis.Schedule[59]
	assert.Equal(t, 60, last.PaymentNumber)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), last.PaymentDate)
	assert.True(t, last.RemainingBalance.IsZero(),
		"final remaining balance should be exactly zero, got %s", last.RemainingBalance)
}

func TestGenerateAmortizationSchedule_Invariants(t *testing.T) {
	analysis := GenerateAmortizationSchedule(carLoanTerms())

	totalPrincipal := decimal.Zero
	previousBalance := decimal.NewFromInt(20_000)
	for _, entry := range analysis.Schedule {
		// Each payment splits exactly into principal and interest.
		assert.True(t,
			entry.PrincipalAmount.Add(entry.InterestAmount).Equal(entry.PaymentAmount),
			"entry %d: principal %s + interest %s != payment %s",
			entry.PaymentNumber, entry.PrincipalAmount, entry.InterestAmount, entry.PaymentAmount,
		)

		// Balance never increases.
		assert.True(t, entry.RemainingBalance.LessThanOrEqual(previousBalance),
			"entry %d: balance %s exceeds previous %s",
			entry.PaymentNumber, entry.RemainingBalance, previousBalance,
		)
		previousBalance = entry.RemainingBalance

		totalPrincipal = totalPrincipal.Add(entry.PrincipalAmount)
	}

	// All principal payments together repay the original principal.
	assert.True(t,
		totalPrincipal.Sub(decimal.NewFromInt(20_000)).Abs().LessThan(decimal.NewFromFloat(0.01)),
		"total principal paid should equal $20,000, got %s", totalPrincipal,
	)
}

func TestGenerateAmortizationSchedule_ZeroAPR(t *testing.T) {
	terms := LoanTerms{
		Principal:  decimal.NewFromInt(12_000),
		APR:        decimal.Zero,
		TermMonths: 12,
		StartDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	analysis := GenerateAmortizationSchedule(terms)

	require.Len(t, analysis.Schedule, 12)
	assert.True(t, analysis.TotalInterest.IsZero(), "zero-rate loan accrues no interest")

	for _, entry := range analysis.Schedule {
		assert.True(t, entry.InterestAmount.IsZero(),
			"entry %d: interest should be zero", entry.PaymentNumber)
		assert.True(t, entry.PrincipalAmount.Equal(decimal.NewFromInt(1000)),
			"entry %d: principal should be $1000, got %s", entry.PaymentNumber, entry.PrincipalAmount)
	}
	assert.True(t, analysis.Schedule[11].RemainingBalance.IsZero())
}

func TestGenerateAmortizationSchedule_SingleMonth(t *testing.T) {
	terms := LoanTerms{
		Principal:  decimal.NewFromInt(10_000),
		APR:        decimal.NewFromInt(12),
		TermMonths: 1,
		StartDate:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	analysis := GenerateAmortizationSchedule(terms)

	require.Len(t, analysis.Schedule, 1)
	entry := analysis.Schedule[0]

	// One percent monthly interest on the full principal, paid off in one go.
	assert.True(t, entry.PrincipalAmount.Equal(decimal.NewFromInt(10_000)))
	assert.True(t, entry.InterestAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, entry.PaymentAmount.Equal(decimal.NewFromInt(10_100)))
	assert.True(t, entry.RemainingBalance.IsZero())
}

func TestAddMonths_ClampsDayOfMonth(t *testing.T) {
	start := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), AddMonths(start, 1),
		"Jan 31 + 1 month should clamp to Feb 28")
	assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), AddMonths(start, 2))
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), AddMonths(start, 12))

	leap := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), AddMonths(leap, 1),
		"leap-year February keeps the 29th")
}
