package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vroomhq/vroom-service/internal/loancalc"
)

type createLoanRequest struct {
	VehicleID  int64           `json:"vehicle_id"`
	Principal  decimal.Decimal `json:"principal"`
	APR        decimal.Decimal `json:"apr"`
	TermMonths int             `json:"term_months"`
	StartDate  string          `json:"start_date"` // Format: YYYY-MM-DD
}

type recordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// CreateLoan handles financing creation for a vehicle
func (h *Handler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var req createLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	// An unparseable date becomes the zero time, which the validator rejects
	// along with any other violations so the client sees them all at once.
	startDate, _ := time.Parse("2006-01-02", req.StartDate)

	terms := loancalc.LoanTerms{
		Principal:  req.Principal,
		APR:        req.APR,
		TermMonths: req.TermMonths,
		StartDate:  startDate,
	}

	loan, err := h.svc.CreateLoan(r.Context(), req.VehicleID, terms)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, loan)
}

// ListLoans returns the authenticated user's loans
func (h *Handler) ListLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.svc.ListLoans(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loans)
}

// GetLoan returns a single loan
func (h *Handler) GetLoan(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid loan id"})
		return
	}

	loan, err := h.svc.GetLoan(r.Context(), loanID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loan)
}

// GetAmortizationSchedule returns the full payment schedule for a loan
func (h *Handler) GetAmortizationSchedule(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid loan id"})
		return
	}

	analysis, err := h.svc.GetAmortizationSchedule(r.Context(), loanID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, analysis)
}

// RecordPayment records an actual payment against a loan
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid loan id"})
		return
	}

	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	payment, err := h.svc.RecordLoanPayment(r.Context(), loanID, req.Amount)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, payment)
}

// ListPayments returns all recorded payments for a loan
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid loan id"})
		return
	}

	payments, err := h.svc.ListLoanPayments(r.Context(), loanID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payments)
}
