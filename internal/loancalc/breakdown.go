package loancalc

import "github.com/shopspring/decimal"

// PaymentBreakdown is the principal/interest split of a single scheduled payment.
type PaymentBreakdown struct {
	PrincipalAmount decimal.Decimal `json:"principal_amount"`
	InterestAmount  decimal.Decimal `json:"interest_amount"`
}

// CalculatePaymentBreakdown computes the principal/interest split for one
// specific payment using the closed-form remaining-balance formula, without
// materializing the full schedule:
//
//	balance after k payments = P*(1+r)^k - payment*((1+r)^k - 1)/r
//
// The inputs must satisfy the same constraints as ValidateLoanTerms, and
// paymentNumber must be in [1, termMonths]; the result is unspecified outside
// that range. The split assumes the loan is being paid exactly on schedule —
// reconciling against a live balance that has diverged (extra or partial
// payments) is the caller's responsibility.
func CalculatePaymentBreakdown(principal, apr decimal.Decimal, termMonths, paymentNumber int) PaymentBreakdown {
	r := monthlyRate(apr)
	payment := monthlyPayment(principal, r, termMonths)
	balance := balanceAfter(principal, payment, r, paymentNumber-1)

	interest := balance.Mul(r).Round(2)
	return PaymentBreakdown{
		PrincipalAmount: payment.Sub(interest),
		InterestAmount:  interest,
	}
}

// balanceAfter returns the theoretical balance remaining after k scheduled
// payments.
func balanceAfter(principal, payment, r decimal.Decimal, k int) decimal.Decimal {
	periods := decimal.NewFromInt(int64(k))
	if r.IsZero() {
		return principal.Sub(payment.Mul(periods))
	}
	growth := one.Add(r).Pow(periods)
	return principal.Mul(growth).Sub(payment.Mul(growth.Sub(one)).Div(r))
}
