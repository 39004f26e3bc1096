package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vroomhq/vroom-service/internal/config"
	"github.com/vroomhq/vroom-service/internal/loancalc"
	"github.com/vroomhq/vroom-service/internal/models"
	"github.com/vroomhq/vroom-service/internal/repository"
)

// mockStore is an in-memory Store for service tests.
type mockStore struct {
	users    map[int64]*models.User
	vehicles map[int64]*models.Vehicle
	loans    map[int64]*models.Loan
	payments []models.LoanPayment
	expenses []models.Expense
	fuelLogs []models.FuelLog
	nextID   int64
}

func newMockStore() *mockStore {
	return &mockStore{
		users:    make(map[int64]*models.User),
		vehicles: make(map[int64]*models.Vehicle),
		loans:    make(map[int64]*models.Loan),
	}
}

func (m *mockStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *mockStore) CreateUser(user *models.User) error {
	user.ID = m.id()
	m.users[user.ID] = user
	return nil
}

func (m *mockStore) FindUserByEmail(email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (m *mockStore) FindUserByID(id int64) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	return u, nil
}

func (m *mockStore) FindUserByOAuth(provider, subject string) (*models.User, error) {
	for _, u := range m.users {
		if u.OAuthProvider == provider && u.OAuthSubject == subject {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (m *mockStore) UpdateRefreshToken(userID int64, encryptedToken string) error {
	u, ok := m.users[userID]
	if !ok {
		return fmt.Errorf("user not found")
	}
	u.RefreshToken = encryptedToken
	return nil
}

func (m *mockStore) CreateVehicle(vehicle *models.Vehicle) error {
	vehicle.ID = m.id()
	m.vehicles[vehicle.ID] = vehicle
	return nil
}

func (m *mockStore) FindVehicleByID(id int64) (*models.Vehicle, error) {
	v, ok := m.vehicles[id]
	if !ok {
		return nil, fmt.Errorf("vehicle not found")
	}
	return v, nil
}

func (m *mockStore) ListVehiclesByUser(userID int64) ([]models.Vehicle, error) {
	var out []models.Vehicle
	for _, v := range m.vehicles {
		if v.UserID == userID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (m *mockStore) CreateExpense(expense *models.Expense) error {
	expense.ID = m.id()
	m.expenses = append(m.expenses, *expense)
	return nil
}

func (m *mockStore) ListExpensesByVehicle(vehicleID int64) ([]models.Expense, error) {
	var out []models.Expense
	for _, e := range m.expenses {
		if e.VehicleID == vehicleID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockStore) ExpenseTotalsByCategory(vehicleID int64) (map[string]float64, error) {
	totals := make(map[string]float64)
	for _, e := range m.expenses {
		if e.VehicleID == vehicleID {
			totals[e.Category] += e.Amount
		}
	}
	return totals, nil
}

func (m *mockStore) CreateFuelLog(log *models.FuelLog) error {
	log.ID = m.id()
	m.fuelLogs = append(m.fuelLogs, *log)
	return nil
}

func (m *mockStore) ListFuelLogsByVehicle(vehicleID int64) ([]models.FuelLog, error) {
	var out []models.FuelLog
	for _, l := range m.fuelLogs {
		if l.VehicleID == vehicleID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *mockStore) CreateLoan(loan *models.Loan) error {
	loan.ID = m.id()
	stored := *loan
	m.loans[loan.ID] = &stored
	return nil
}

func (m *mockStore) FindLoanByID(id int64) (*models.Loan, error) {
	l, ok := m.loans[id]
	if !ok {
		return nil, fmt.Errorf("loan not found")
	}
	clone := *l
	return &clone, nil
}

func (m *mockStore) ListLoansByUser(userID int64) ([]models.Loan, error) {
	var out []models.Loan
	for _, l := range m.loans {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (m *mockStore) UpdateLoanAfterPayment(loan *models.Loan) error {
	stored, ok := m.loans[loan.ID]
	if !ok {
		return fmt.Errorf("loan not found")
	}
	stored.CurrentBalance = loan.CurrentBalance
	stored.PaymentsMade = loan.PaymentsMade
	stored.PaidOff = loan.PaidOff
	return nil
}

func (m *mockStore) CreateLoanPayment(payment *models.LoanPayment) error {
	payment.ID = m.id()
	m.payments = append(m.payments, *payment)
	return nil
}

func (m *mockStore) ListLoanPayments(loanID int64) ([]models.LoanPayment, error) {
	var out []models.LoanPayment
	for _, p := range m.payments {
		if p.LoanID == loanID {
			out = append(out, p)
		}
	}
	return out, nil
}

func testService(store *mockStore) (*Service, *repository.MockCache) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	cache := repository.NewMockCache()
	cfg := &config.Config{
		JWTSecret:     "test-secret",
		HMACSecret:    "test-hmac-secret",
		EncryptionKey: "0123456789abcdef0123456789abcdef",
	}
	return NewService(store, cache, logger, cfg), cache
}

func userContext(userID int64) context.Context {
	return context.WithValue(context.Background(), "userID", fmt.Sprintf("%d", userID))
}

func seedVehicle(store *mockStore, userID int64) *models.Vehicle {
	store.users[userID] = &models.User{ID: userID, Email: "driver@example.com", Username: "driver"}
	vehicle := &models.Vehicle{UserID: userID, Make: "Honda", Model: "Civic", Year: 2019}
	store.CreateVehicle(vehicle)
	return vehicle
}

func carTerms() loancalc.LoanTerms {
	return loancalc.LoanTerms{
		Principal:  decimal.NewFromInt(20_000),
		APR:        decimal.NewFromFloat(4.5),
		TermMonths: 60,
		StartDate:  time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateLoan(t *testing.T) {
	store := newMockStore()
	svc, cache := testService(store)
	vehicle := seedVehicle(store, 1)

	loan, err := svc.CreateLoan(userContext(1), vehicle.ID, carTerms())
	require.NoError(t, err)

	assert.True(t, loan.MonthlyPayment.Equal(decimal.NewFromFloat(372.86)),
		"monthly payment should be $372.86, got %s", loan.MonthlyPayment)
	assert.True(t, loan.CurrentBalance.Equal(decimal.NewFromInt(20_000)),
		"opening balance should equal principal")
	assert.False(t, loan.PaidOff)
	assert.NotEmpty(t, loan.HMAC)

	_, cached := cache.Get(fmt.Sprintf("loan:%d:schedule", loan.ID))
	assert.True(t, cached, "schedule should be cached on creation")
}

func TestCreateLoan_InvalidTerms(t *testing.T) {
	store := newMockStore()
	svc, _ := testService(store)
	vehicle := seedVehicle(store, 1)

	terms := carTerms()
	terms.Principal = decimal.Zero
	terms.TermMonths = 0

	_, err := svc.CreateLoan(userContext(1), vehicle.ID, terms)
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Messages, 2, "every violation should be reported")
	assert.Empty(t, store.loans, "invalid loan should not be stored")
}

func TestCreateLoan_VehicleNotOwned(t *testing.T) {
	store := newMockStore()
	svc, _ := testService(store)
	vehicle := seedVehicle(store, 1)

	_, err := svc.CreateLoan(userContext(2), vehicle.ID, carTerms())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRecordLoanPayment(t *testing.T) {
	store := newMockStore()
	svc, _ := testService(store)
	vehicle := seedVehicle(store, 1)
	ctx := userContext(1)

	loan, err := svc.CreateLoan(ctx, vehicle.ID, carTerms())
	require.NoError(t, err)

	payment, err := svc.RecordLoanPayment(ctx, loan.ID, loan.MonthlyPayment)
	require.NoError(t, err)

	assert.Equal(t, 1, payment.PaymentNumber)
	// First month interest on $20K at 4.5% is $75.00.
	assert.True(t, payment.InterestAmount.Equal(decimal.NewFromInt(75)),
		"interest should be $75.00, got %s", payment.InterestAmount)
	assert.True(t, payment.PrincipalAmount.Equal(loan.MonthlyPayment.Sub(payment.InterestAmount)))
	assert.True(t, payment.RemainingBalance.Equal(decimal.NewFromInt(20_000).Sub(payment.PrincipalAmount)))

	updated, err := svc.GetLoan(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.PaymentsMade)
	assert.True(t, updated.CurrentBalance.Equal(payment.RemainingBalance))
}

func TestRecordLoanPayment_PartialPaymentIsClamped(t *testing.T) {
	store := newMockStore()
	svc, _ := testService(store)
	vehicle := seedVehicle(store, 1)
	ctx := userContext(1)

	loan, err := svc.CreateLoan(ctx, vehicle.ID, carTerms())
	require.NoError(t, err)

	// Pay $50 against a ~$372.86 scheduled payment. Both portions clamp to the
	// paid amount and the balance only drops by the clamped principal.
	paid := decimal.NewFromInt(50)
	payment, err := svc.RecordLoanPayment(ctx, loan.ID, paid)
	require.NoError(t, err)

	assert.True(t, payment.PrincipalAmount.Equal(paid))
	assert.True(t, payment.InterestAmount.Equal(paid))
	assert.True(t, payment.RemainingBalance.Equal(decimal.NewFromInt(20_000).Sub(paid)))
}

func TestRecordLoanPayment_PayoffMarksLoanPaid(t *testing.T) {
	store := newMockStore()
	svc, _ := testService(store)
	vehicle := seedVehicle(store, 1)
	ctx := userContext(1)

	terms := loancalc.LoanTerms{
		Principal:  decimal.NewFromInt(1200),
		APR:        decimal.Zero,
		TermMonths: 12,
		StartDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	loan, err := svc.CreateLoan(ctx, vehicle.ID, terms)
	require.NoError(t, err)

	for i := 0; i < 12; i++ {
		_, err := svc.RecordLoanPayment(ctx, loan.ID, decimal.NewFromInt(100))
		require.NoError(t, err)
	}

	final, err := svc.GetLoan(ctx, loan.ID)
	require.NoError(t, err)
	assert.True(t, final.PaidOff, "loan should be marked paid off")
	assert.True(t, final.CurrentBalance.IsZero())

	_, err = svc.RecordLoanPayment(ctx, loan.ID, decimal.NewFromInt(100))
	assert.Error(t, err, "payments against a paid-off loan are rejected")
}

func TestRecordLoanPayment_RejectsNonPositiveAmount(t *testing.T) {
	store := newMockStore()
	svc, _ := testService(store)
	vehicle := seedVehicle(store, 1)
	ctx := userContext(1)

	loan, err := svc.CreateLoan(ctx, vehicle.ID, carTerms())
	require.NoError(t, err)

	_, err = svc.RecordLoanPayment(ctx, loan.ID, decimal.Zero)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Empty(t, store.payments)
}

func TestGetAmortizationSchedule_UsesCache(t *testing.T) {
	store := newMockStore()
	svc, cache := testService(store)
	vehicle := seedVehicle(store, 1)
	ctx := userContext(1)

	loan, err := svc.CreateLoan(ctx, vehicle.ID, carTerms())
	require.NoError(t, err)

	analysis, err := svc.GetAmortizationSchedule(ctx, loan.ID)
	require.NoError(t, err)
	require.Len(t, analysis.Schedule, 60)
	assert.True(t, analysis.Schedule[59].RemainingBalance.IsZero())

	// Drop the cache and fetch again; the schedule is recomputed and re-cached.
	key := fmt.Sprintf("loan:%d:schedule", loan.ID)
	require.NoError(t, cache.Delete(key))

	analysis, err = svc.GetAmortizationSchedule(ctx, loan.ID)
	require.NoError(t, err)
	require.Len(t, analysis.Schedule, 60)
	_, cached := cache.Get(key)
	assert.True(t, cached)
}

func TestOwnedLoan_DetectsTampering(t *testing.T) {
	store := newMockStore()
	svc, _ := testService(store)
	vehicle := seedVehicle(store, 1)
	ctx := userContext(1)

	loan, err := svc.CreateLoan(ctx, vehicle.ID, carTerms())
	require.NoError(t, err)

	// Simulate a tampered row: bump the principal behind the service's back.
	store.loans[loan.ID].Principal = decimal.NewFromInt(25_000)

	_, err = svc.GetLoan(ctx, loan.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "integrity")
}
