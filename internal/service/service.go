package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vroomhq/vroom-service/internal/config"
	"github.com/vroomhq/vroom-service/internal/models"
	"github.com/vroomhq/vroom-service/internal/repository"
)

// Store is the persistence surface the service depends on. It is satisfied by
// *repository.Repository and mocked in tests.
type Store interface {
	CreateUser(user *models.User) error
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id int64) (*models.User, error)
	FindUserByOAuth(provider, subject string) (*models.User, error)
	UpdateRefreshToken(userID int64, encryptedToken string) error

	CreateVehicle(vehicle *models.Vehicle) error
	FindVehicleByID(id int64) (*models.Vehicle, error)
	ListVehiclesByUser(userID int64) ([]models.Vehicle, error)

	CreateExpense(expense *models.Expense) error
	ListExpensesByVehicle(vehicleID int64) ([]models.Expense, error)
	ExpenseTotalsByCategory(vehicleID int64) (map[string]float64, error)

	CreateFuelLog(log *models.FuelLog) error
	ListFuelLogsByVehicle(vehicleID int64) ([]models.FuelLog, error)

	CreateLoan(loan *models.Loan) error
	FindLoanByID(id int64) (*models.Loan, error)
	ListLoansByUser(userID int64) ([]models.Loan, error)
	UpdateLoanAfterPayment(loan *models.Loan) error

	CreateLoanPayment(payment *models.LoanPayment) error
	ListLoanPayments(loanID int64) ([]models.LoanPayment, error)
}

// ErrForbidden is returned when a resource does not belong to the requesting user.
var ErrForbidden = errors.New("resource does not belong to user")

// ValidationError carries every validation message for a rejected request.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// Service handles business logic
type Service struct {
	store  Store
	cache  repository.Cache
	log    *logrus.Logger
	config *config.Config
}

// NewService initializes a new service
func NewService(store Store, cache repository.Cache, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{store: store, cache: cache, log: log, config: cfg}
}

// userIDFromContext extracts the authenticated user ID set by the auth middleware
func (s *Service) userIDFromContext(ctx context.Context) (int64, error) {
	userIDStr, ok := ctx.Value("userID").(string)
	if !ok || userIDStr == "" {
		return 0, fmt.Errorf("user ID not found in context")
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID: %w", err)
	}
	return userID, nil
}
