package service

import (
	"context"
	"time"

	"github.com/vroomhq/vroom-service/internal/models"
)

var validCategories = map[string]bool{
	models.CategoryFuel:        true,
	models.CategoryMaintenance: true,
	models.CategoryInsurance:   true,
	models.CategoryFinancing:   true,
	models.CategoryOther:       true,
}

// AddExpense records an expense against a vehicle owned by the authenticated user
func (s *Service) AddExpense(ctx context.Context, vehicleID int64, expense *models.Expense) error {
	if _, err := s.ownedVehicle(ctx, vehicleID); err != nil {
		return err
	}

	var violations []string
	if !validCategories[expense.Category] {
		violations = append(violations, "category must be one of fuel, maintenance, insurance, financing, other")
	}
	if expense.Amount <= 0 {
		violations = append(violations, "amount must be greater than 0")
	}
	if _, err := time.Parse("2006-01-02", expense.IncurredDate); err != nil {
		violations = append(violations, "incurred date must be formatted YYYY-MM-DD")
	}
	if len(violations) > 0 {
		return &ValidationError{Messages: violations}
	}

	expense.VehicleID = vehicleID
	if err := s.store.CreateExpense(expense); err != nil {
		return err
	}

	s.log.Infof("Expense recorded for vehicle %d: %s %.2f", vehicleID, expense.Category, expense.Amount)
	return nil
}

// ListExpenses returns all expenses for a vehicle owned by the authenticated user
func (s *Service) ListExpenses(ctx context.Context, vehicleID int64) ([]models.Expense, error) {
	if _, err := s.ownedVehicle(ctx, vehicleID); err != nil {
		return nil, err
	}
	return s.store.ListExpensesByVehicle(vehicleID)
}

// AddFuelLog records a fill-up against a vehicle owned by the authenticated user.
// A matching fuel expense row is stored as well so category totals stay complete.
func (s *Service) AddFuelLog(ctx context.Context, vehicleID int64, log *models.FuelLog) error {
	if _, err := s.ownedVehicle(ctx, vehicleID); err != nil {
		return err
	}

	var violations []string
	if log.Gallons <= 0 {
		violations = append(violations, "gallons must be greater than 0")
	}
	if log.PricePerGallon <= 0 {
		violations = append(violations, "price per gallon must be greater than 0")
	}
	if log.Odometer <= 0 {
		violations = append(violations, "odometer must be greater than 0")
	}
	if _, err := time.Parse("2006-01-02", log.FilledAt); err != nil {
		violations = append(violations, "filled at must be formatted YYYY-MM-DD")
	}
	if len(violations) > 0 {
		return &ValidationError{Messages: violations}
	}

	log.VehicleID = vehicleID
	if err := s.store.CreateFuelLog(log); err != nil {
		return err
	}

	expense := &models.Expense{
		VehicleID:    vehicleID,
		Category:     models.CategoryFuel,
		Amount:       log.Gallons * log.PricePerGallon,
		Odometer:     log.Odometer,
		IncurredDate: log.FilledAt,
	}
	if err := s.store.CreateExpense(expense); err != nil {
		return err
	}

	s.log.Infof("Fuel log recorded for vehicle %d: %.2f gal at %d mi", vehicleID, log.Gallons, log.Odometer)
	return nil
}
