package models

// Vehicle represents a registered vehicle
type Vehicle struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"user_id"`
	Make            string `json:"make"`
	Model           string `json:"model"`
	Year            int    `json:"year"`
	VIN             string `json:"vin,omitempty"`
	LicensePlate    string `json:"license_plate,omitempty"`
	InitialOdometer int64  `json:"initial_odometer"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}
