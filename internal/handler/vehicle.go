package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vroomhq/vroom-service/internal/models"
)

// CreateVehicle handles vehicle registration
func (h *Handler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var vehicle models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.svc.CreateVehicle(r.Context(), &vehicle); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, vehicle)
}

// ListVehicles returns the authenticated user's vehicles
func (h *Handler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.svc.ListVehicles(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vehicles)
}

// AddExpense records an expense for a vehicle
func (h *Handler) AddExpense(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid vehicle id"})
		return
	}

	var expense models.Expense
	if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.svc.AddExpense(r.Context(), vehicleID, &expense); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, expense)
}

// ListExpenses returns a vehicle's expenses
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid vehicle id"})
		return
	}

	expenses, err := h.svc.ListExpenses(r.Context(), vehicleID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, expenses)
}

// AddFuelLog records a fill-up for a vehicle
func (h *Handler) AddFuelLog(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid vehicle id"})
		return
	}

	var log models.FuelLog
	if err := json.NewDecoder(r.Body).Decode(&log); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.svc.AddFuelLog(r.Context(), vehicleID, &log); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, log)
}

// FuelEfficiency returns miles-per-gallon analytics for a vehicle
func (h *Handler) FuelEfficiency(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid vehicle id"})
		return
	}

	eff, err := h.svc.FuelEfficiency(r.Context(), vehicleID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, eff)
}

// CostPerMile returns cost-per-mile analytics for a vehicle
func (h *Handler) CostPerMile(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid vehicle id"})
		return
	}

	cpm, err := h.svc.CostPerMile(r.Context(), vehicleID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cpm)
}

// CostSummary returns per-category expense totals for a vehicle
func (h *Handler) CostSummary(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid vehicle id"})
		return
	}

	summary, err := h.svc.CostSummary(r.Context(), vehicleID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
