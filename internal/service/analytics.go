package service

import (
	"context"
	"fmt"

	"github.com/vroomhq/vroom-service/internal/models"
)

// FuelEfficiency computes miles per gallon for a vehicle using the full-tank
// method: miles between the first and last full-tank fill-ups divided by the
// gallons pumped after the first one. Partial fill-ups in between are counted
// toward gallons but cannot anchor the window.
func (s *Service) FuelEfficiency(ctx context.Context, vehicleID int64) (*models.FuelEfficiency, error) {
	if _, err := s.ownedVehicle(ctx, vehicleID); err != nil {
		return nil, err
	}

	logs, err := s.store.ListFuelLogsByVehicle(vehicleID)
	if err != nil {
		return nil, err
	}

	firstFull, lastFull := -1, -1
	for i, l := range logs {
		if !l.FullTank {
			continue
		}
		if firstFull == -1 {
			firstFull = i
		}
		lastFull = i
	}
	if firstFull == -1 || firstFull == lastFull {
		return nil, fmt.Errorf("at least two full-tank fill-ups are required")
	}

	miles := logs[lastFull].Odometer - logs[firstFull].Odometer
	if miles <= 0 {
		return nil, fmt.Errorf("odometer readings do not increase between fill-ups")
	}

	var gallons float64
	for _, l := range logs[firstFull+1 : lastFull+1] {
		gallons += l.Gallons
	}

	return &models.FuelEfficiency{
		VehicleID:    vehicleID,
		TotalMiles:   miles,
		TotalGallons: gallons,
		MilesPerGal:  float64(miles) / gallons,
	}, nil
}

// CostPerMile computes total recorded cost divided by miles driven since the
// vehicle was registered
func (s *Service) CostPerMile(ctx context.Context, vehicleID int64) (*models.CostPerMile, error) {
	vehicle, err := s.ownedVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	totals, err := s.store.ExpenseTotalsByCategory(vehicleID)
	if err != nil {
		return nil, err
	}
	var totalCost float64
	for _, t := range totals {
		totalCost += t
	}

	logs, err := s.store.ListFuelLogsByVehicle(vehicleID)
	if err != nil {
		return nil, err
	}
	latest := vehicle.InitialOdometer
	for _, l := range logs {
		if l.Odometer > latest {
			latest = l.Odometer
		}
	}

	miles := latest - vehicle.InitialOdometer
	if miles <= 0 {
		return nil, fmt.Errorf("no mileage recorded for vehicle %d", vehicleID)
	}

	return &models.CostPerMile{
		VehicleID:   vehicleID,
		TotalCost:   totalCost,
		TotalMiles:  miles,
		CostPerMile: totalCost / float64(miles),
	}, nil
}

// CostSummary returns a vehicle's expense totals broken down by category
func (s *Service) CostSummary(ctx context.Context, vehicleID int64) (*models.VehicleCostSummary, error) {
	if _, err := s.ownedVehicle(ctx, vehicleID); err != nil {
		return nil, err
	}

	totals, err := s.store.ExpenseTotalsByCategory(vehicleID)
	if err != nil {
		return nil, err
	}

	summary := &models.VehicleCostSummary{
		VehicleID:  vehicleID,
		ByCategory: totals,
	}
	for _, t := range totals {
		summary.Total += t
	}
	return summary, nil
}
