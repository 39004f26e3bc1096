package models

// Expense categories
const (
	CategoryFuel        = "fuel"
	CategoryMaintenance = "maintenance"
	CategoryInsurance   = "insurance"
	CategoryFinancing   = "financing"
	CategoryOther       = "other"
)

// Expense represents a recorded vehicle expense
type Expense struct {
	ID           int64   `json:"id"`
	VehicleID    int64   `json:"vehicle_id"`
	Category     string  `json:"category"`
	Amount       float64 `json:"amount"`
	Odometer     int64   `json:"odometer,omitempty"`
	IncurredDate string  `json:"incurred_date"` // Format: YYYY-MM-DD
	Note         string  `json:"note,omitempty"`
	CreatedAt    string  `json:"created_at"`
}
