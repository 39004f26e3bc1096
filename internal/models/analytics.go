package models

// FuelEfficiency represents fuel economy derived from a vehicle's fill-ups
type FuelEfficiency struct {
	VehicleID    int64   `json:"vehicle_id"`
	TotalMiles   int64   `json:"total_miles"`
	TotalGallons float64 `json:"total_gallons"`
	MilesPerGal  float64 `json:"miles_per_gallon"`
}

// CostPerMile represents total running cost divided by miles driven
type CostPerMile struct {
	VehicleID   int64   `json:"vehicle_id"`
	TotalCost   float64 `json:"total_cost"`
	TotalMiles  int64   `json:"total_miles"`
	CostPerMile float64 `json:"cost_per_mile"`
}

// VehicleCostSummary represents expense totals for a vehicle broken down by category
type VehicleCostSummary struct {
	VehicleID  int64              `json:"vehicle_id"`
	ByCategory map[string]float64 `json:"by_category"`
	Total      float64            `json:"total"`
}
