package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vroomhq/vroom-service/internal/loancalc"
	"github.com/vroomhq/vroom-service/internal/models"
	"github.com/vroomhq/vroom-service/internal/utils"
)

// CreateLoan validates the financing terms, computes the fixed payment, and
// stores the loan with its opening balance
func (s *Service) CreateLoan(ctx context.Context, vehicleID int64, terms loancalc.LoanTerms) (*models.Loan, error) {
	vehicle, err := s.ownedVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	if violations := loancalc.ValidateLoanTerms(terms); len(violations) > 0 {
		return nil, &ValidationError{Messages: violations}
	}

	analysis := loancalc.GenerateAmortizationSchedule(terms)

	loan := &models.Loan{
		UserID:         vehicle.UserID,
		VehicleID:      vehicleID,
		Principal:      terms.Principal,
		APR:            terms.APR,
		TermMonths:     terms.TermMonths,
		StartDate:      terms.StartDate,
		MonthlyPayment: analysis.MonthlyPayment,
		CurrentBalance: terms.Principal,
		HMAC:           s.loanHMAC(terms),
	}

	if err := s.store.CreateLoan(loan); err != nil {
		return nil, err
	}

	// Warm the schedule cache (not critical if it fails)
	if err := s.cacheSchedule(loan.ID, &analysis); err != nil {
		s.log.Warnf("Failed to cache schedule for loan %d: %v", loan.ID, err)
	}

	s.log.Infof("Loan created for vehicle %d: %s at %s%% over %d months",
		vehicleID, loan.Principal.StringFixed(2), loan.APR, loan.TermMonths)
	return loan, nil
}

// ListLoans returns all loans belonging to the authenticated user
func (s *Service) ListLoans(ctx context.Context) ([]models.Loan, error) {
	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.ListLoansByUser(userID)
}

// GetLoan returns one loan belonging to the authenticated user
func (s *Service) GetLoan(ctx context.Context, loanID int64) (*models.Loan, error) {
	return s.ownedLoan(ctx, loanID)
}

// GetAmortizationSchedule returns the full payment-by-payment schedule for a
// loan, served from cache when the terms have been computed before
func (s *Service) GetAmortizationSchedule(ctx context.Context, loanID int64) (*loancalc.AmortizationAnalysis, error) {
	loan, err := s.ownedLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	key := scheduleCacheKey(loanID)
	if cached, ok := s.cache.Get(key); ok {
		var analysis loancalc.AmortizationAnalysis
		if err := json.Unmarshal([]byte(cached), &analysis); err == nil {
			return &analysis, nil
		}
		// Corrupt cache entry; fall through and recompute
		if err := s.cache.Delete(key); err != nil {
			s.log.Warnf("Failed to drop cache entry %s: %v", key, err)
		}
	}

	analysis := loancalc.GenerateAmortizationSchedule(loancalc.LoanTerms{
		Principal:  loan.Principal,
		APR:        loan.APR,
		TermMonths: loan.TermMonths,
		StartDate:  loan.StartDate,
	})

	if err := s.cacheSchedule(loanID, &analysis); err != nil {
		s.log.Warnf("Failed to cache schedule for loan %d: %v", loanID, err)
	}
	return &analysis, nil
}

// RecordLoanPayment records an actual payment against a loan. The scheduled
// principal/interest split for the next payment number is reconciled against
// the amount actually paid: both portions are clamped to the paid amount and
// the stored balance never drops below zero, so extra or partial payments do
// not corrupt the running balance.
func (s *Service) RecordLoanPayment(ctx context.Context, loanID int64, amountPaid decimal.Decimal) (*models.LoanPayment, error) {
	loan, err := s.ownedLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if loan.PaidOff {
		return nil, fmt.Errorf("loan %d is already paid off", loanID)
	}
	if !amountPaid.GreaterThan(decimal.Zero) {
		return nil, &ValidationError{Messages: []string{"payment amount must be greater than 0"}}
	}

	paymentNumber := loan.PaymentsMade + 1
	if paymentNumber > loan.TermMonths {
		return nil, fmt.Errorf("loan %d has no scheduled payments remaining", loanID)
	}

	breakdown := loancalc.CalculatePaymentBreakdown(loan.Principal, loan.APR, loan.TermMonths, paymentNumber)

	// Reconcile the theoretical split against what was actually paid.
	principal := decimal.Min(breakdown.PrincipalAmount, amountPaid)
	interest := decimal.Min(breakdown.InterestAmount, amountPaid)
	newBalance := decimal.Max(decimal.Zero, loan.CurrentBalance.Sub(principal))

	payment := &models.LoanPayment{
		LoanID:           loanID,
		PaymentNumber:    paymentNumber,
		PaymentDate:      time.Now().UTC(),
		Amount:           amountPaid,
		PrincipalAmount:  principal,
		InterestAmount:   interest,
		RemainingBalance: newBalance,
	}
	if err := s.store.CreateLoanPayment(payment); err != nil {
		return nil, err
	}

	loan.CurrentBalance = newBalance
	loan.PaymentsMade = paymentNumber
	loan.PaidOff = newBalance.IsZero()
	if err := s.store.UpdateLoanAfterPayment(loan); err != nil {
		return nil, err
	}

	s.log.Infof("Payment %d recorded for loan %d: %s (principal %s, interest %s), balance %s",
		paymentNumber, loanID, amountPaid.StringFixed(2), principal.StringFixed(2),
		interest.StringFixed(2), newBalance.StringFixed(2))
	return payment, nil
}

// ListLoanPayments returns all recorded payments for a loan
func (s *Service) ListLoanPayments(ctx context.Context, loanID int64) ([]models.LoanPayment, error) {
	if _, err := s.ownedLoan(ctx, loanID); err != nil {
		return nil, err
	}
	return s.store.ListLoanPayments(loanID)
}

// ownedLoan loads a loan, verifies ownership, and checks the integrity HMAC
func (s *Service) ownedLoan(ctx context.Context, loanID int64) (*models.Loan, error) {
	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	loan, err := s.store.FindLoanByID(loanID)
	if err != nil {
		return nil, err
	}
	if loan.UserID != userID {
		return nil, ErrForbidden
	}

	terms := loancalc.LoanTerms{
		Principal:  loan.Principal,
		APR:        loan.APR,
		TermMonths: loan.TermMonths,
		StartDate:  loan.StartDate,
	}
	if loan.HMAC != s.loanHMAC(terms) {
		return nil, fmt.Errorf("loan %d failed integrity check", loanID)
	}
	return loan, nil
}

func (s *Service) loanHMAC(terms loancalc.LoanTerms) string {
	return utils.GenerateHMAC(
		terms.Principal.StringFixed(2),
		terms.APR.String(),
		strconv.Itoa(terms.TermMonths),
		terms.StartDate.Format("2006-01-02"),
		s.config.HMACSecret,
	)
}

func (s *Service) cacheSchedule(loanID int64, analysis *loancalc.AmortizationAnalysis) error {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return err
	}
	return s.cache.Set(scheduleCacheKey(loanID), string(payload))
}

func scheduleCacheKey(loanID int64) string {
	return fmt.Sprintf("loan:%d:schedule", loanID)
}
