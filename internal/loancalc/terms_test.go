package loancalc

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validTerms() LoanTerms {
	return LoanTerms{
		Principal:  decimal.NewFromInt(20_000),
		APR:        decimal.NewFromFloat(4.5),
		TermMonths: 60,
		StartDate:  time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestValidateLoanTerms_Valid(t *testing.T) {
	assert.Empty(t, ValidateLoanTerms(validTerms()))
}

func TestValidateLoanTerms_Violations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*LoanTerms)
	}{
		{"zero principal", func(lt *LoanTerms) { lt.Principal = decimal.Zero }},
		{"negative principal", func(lt *LoanTerms) { lt.Principal = decimal.NewFromInt(-500) }},
		{"negative apr", func(lt *LoanTerms) { lt.APR = decimal.NewFromFloat(-0.1) }},
		{"apr above cap", func(lt *LoanTerms) { lt.APR = decimal.NewFromFloat(50.01) }},
		{"zero term", func(lt *LoanTerms) { lt.TermMonths = 0 }},
		{"negative term", func(lt *LoanTerms) { lt.TermMonths = -12 }},
		{"term above cap", func(lt *LoanTerms) { lt.TermMonths = 601 }},
		{"missing start date", func(lt *LoanTerms) { lt.StartDate = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms := validTerms()
			tt.mutate(&terms)
			assert.NotEmpty(t, ValidateLoanTerms(terms))
		})
	}
}

func TestValidateLoanTerms_BoundaryValues(t *testing.T) {
	terms := validTerms()
	terms.APR = decimal.Zero
	terms.TermMonths = 1
	assert.Empty(t, ValidateLoanTerms(terms), "zero apr and one-month term are valid")

	terms.APR = decimal.NewFromInt(50)
	terms.TermMonths = 600
	assert.Empty(t, ValidateLoanTerms(terms), "upper bounds are inclusive")
}

func TestValidateLoanTerms_ReportsAllViolations(t *testing.T) {
	terms := LoanTerms{
		Principal:  decimal.NewFromInt(-1),
		APR:        decimal.NewFromInt(99),
		TermMonths: 0,
	}
	assert.Len(t, ValidateLoanTerms(terms), 4,
		"every violated rule should produce its own message")
}
