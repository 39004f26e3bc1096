package models

// FuelLog represents a single fill-up
type FuelLog struct {
	ID             int64   `json:"id"`
	VehicleID      int64   `json:"vehicle_id"`
	Gallons        float64 `json:"gallons"`
	PricePerGallon float64 `json:"price_per_gallon"`
	Odometer       int64   `json:"odometer"`
	FullTank       bool    `json:"full_tank"`
	FilledAt       string  `json:"filled_at"` // Format: YYYY-MM-DD
	CreatedAt      string  `json:"created_at"`
}
