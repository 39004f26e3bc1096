package service

import (
	"context"
	"time"

	"github.com/vroomhq/vroom-service/internal/models"
)

// CreateVehicle registers a new vehicle for the authenticated user
func (s *Service) CreateVehicle(ctx context.Context, vehicle *models.Vehicle) error {
	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		return err
	}

	var violations []string
	if vehicle.Make == "" {
		violations = append(violations, "make is required")
	}
	if vehicle.Model == "" {
		violations = append(violations, "model is required")
	}
	if vehicle.Year < 1900 || vehicle.Year > time.Now().Year()+1 {
		violations = append(violations, "year is out of range")
	}
	if vehicle.InitialOdometer < 0 {
		violations = append(violations, "initial odometer must not be negative")
	}
	if len(violations) > 0 {
		return &ValidationError{Messages: violations}
	}

	vehicle.UserID = userID
	if err := s.store.CreateVehicle(vehicle); err != nil {
		return err
	}

	s.log.Infof("Vehicle registered for user %d: %s %s", userID, vehicle.Make, vehicle.Model)
	return nil
}

// ListVehicles returns all vehicles registered by the authenticated user
func (s *Service) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.ListVehiclesByUser(userID)
}

// ownedVehicle loads a vehicle and verifies it belongs to the authenticated user
func (s *Service) ownedVehicle(ctx context.Context, vehicleID int64) (*models.Vehicle, error) {
	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	vehicle, err := s.store.FindVehicleByID(vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.UserID != userID {
		return nil, ErrForbidden
	}
	return vehicle, nil
}
