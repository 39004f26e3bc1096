package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vroomhq/vroom-service/internal/models"
)

func TestFuelEfficiency(t *testing.T) {
	store := newMockStore()
	svc, _ := testService(store)
	vehicle := seedVehicle(store, 1)
	ctx := userContext(1)

	fills := []models.FuelLog{
		{VehicleID: vehicle.ID, Gallons: 10.0, PricePerGallon: 3.50, Odometer: 10_000, FullTank: true, FilledAt: "2025-01-05"},
		{VehicleID: vehicle.ID, Gallons: 5.0, PricePerGallon: 3.40, Odometer: 10_150, FullTank: false, FilledAt: "2025-01-12"},
		{VehicleID: vehicle.ID, Gallons: 9.0, PricePerGallon: 3.45, Odometer: 10_420, FullTank: true, FilledAt: "2025-01-20"},
	}
	for i := range fills {
		require.NoError(t, store.CreateFuelLog(&fills[i]))
	}

	eff, err := svc.FuelEfficiency(ctx, vehicle.ID)
	require.NoError(t, err)

	// 420 miles between the two full tanks, on 14 gallons pumped after the first.
	assert.Equal(t, int64(420), eff.TotalMiles)
	assert.InDelta(t, 14.0, eff.TotalGallons, 0.001)
	assert.InDelta(t, 30.0, eff.MilesPerGal, 0.001)
}

func TestFuelEfficiency_NeedsTwoFullTanks(t *testing.T) {
	store := newMockStore()
	svc, _ := testService(store)
	vehicle := seedVehicle(store, 1)

	log := models.FuelLog{VehicleID: vehicle.ID, Gallons: 10, PricePerGallon: 3.5, Odometer: 10_000, FullTank: true, FilledAt: "2025-01-05"}
	require.NoError(t, store.CreateFuelLog(&log))

	_, err := svc.FuelEfficiency(userContext(1), vehicle.ID)
	assert.Error(t, err)
}

func TestCostPerMile(t *testing.T) {
	store := newMockStore()
	svc, _ := testService(store)
	vehicle := seedVehicle(store, 1)
	vehicle.InitialOdometer = 10_000
	ctx := userContext(1)

	expenses := []models.Expense{
		{VehicleID: vehicle.ID, Category: models.CategoryFuel, Amount: 120, IncurredDate: "2025-01-10"},
		{VehicleID: vehicle.ID, Category: models.CategoryMaintenance, Amount: 80, IncurredDate: "2025-01-15"},
	}
	for i := range expenses {
		require.NoError(t, store.CreateExpense(&expenses[i]))
	}
	log := models.FuelLog{VehicleID: vehicle.ID, Gallons: 10, PricePerGallon: 3.5, Odometer: 11_000, FullTank: true, FilledAt: "2025-01-20"}
	require.NoError(t, store.CreateFuelLog(&log))

	cpm, err := svc.CostPerMile(ctx, vehicle.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(1000), cpm.TotalMiles)
	assert.InDelta(t, 200.0, cpm.TotalCost, 0.001)
	assert.InDelta(t, 0.20, cpm.CostPerMile, 0.0001)
}

func TestCostSummary(t *testing.T) {
	store := newMockStore()
	svc, _ := testService(store)
	vehicle := seedVehicle(store, 1)
	ctx := userContext(1)

	expenses := []models.Expense{
		{VehicleID: vehicle.ID, Category: models.CategoryFuel, Amount: 50, IncurredDate: "2025-01-10"},
		{VehicleID: vehicle.ID, Category: models.CategoryFuel, Amount: 45, IncurredDate: "2025-01-18"},
		{VehicleID: vehicle.ID, Category: models.CategoryInsurance, Amount: 130, IncurredDate: "2025-01-01"},
	}
	for i := range expenses {
		require.NoError(t, store.CreateExpense(&expenses[i]))
	}

	summary, err := svc.CostSummary(ctx, vehicle.ID)
	require.NoError(t, err)

	assert.InDelta(t, 95.0, summary.ByCategory[models.CategoryFuel], 0.001)
	assert.InDelta(t, 130.0, summary.ByCategory[models.CategoryInsurance], 0.001)
	assert.InDelta(t, 225.0, summary.Total, 0.001)
}
