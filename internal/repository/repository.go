package repository

import (
	"database/sql"
	"fmt"

	"github.com/vroomhq/vroom-service/internal/models"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO vroom.users (username, email, password_hash, oauth_provider, oauth_subject, refresh_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, user.Username, user.Email, user.PasswordHash, user.OAuthProvider, user.OAuthSubject, user.RefreshToken).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, oauth_provider, oauth_subject, refresh_token, created_at
		FROM vroom.users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.OAuthProvider, &user.OAuthSubject, &user.RefreshToken, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindUserByID retrieves a user by ID
func (r *Repository) FindUserByID(id int64) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, oauth_provider, oauth_subject, refresh_token, created_at
		FROM vroom.users
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.OAuthProvider, &user.OAuthSubject, &user.RefreshToken, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindUserByOAuth retrieves a user by OAuth provider and subject
func (r *Repository) FindUserByOAuth(provider, subject string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, oauth_provider, oauth_subject, refresh_token, created_at
		FROM vroom.users
		WHERE oauth_provider = $1 AND oauth_subject = $2`
	err := r.db.QueryRow(query, provider, subject).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.OAuthProvider, &user.OAuthSubject, &user.RefreshToken, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdateRefreshToken stores a new encrypted refresh token for a user
func (r *Repository) UpdateRefreshToken(userID int64, encryptedToken string) error {
	query := `
		UPDATE vroom.users
		SET refresh_token = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`
	if _, err := r.db.Exec(query, userID, encryptedToken); err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}
	return nil
}

// CreateVehicle creates a new vehicle in the database
func (r *Repository) CreateVehicle(vehicle *models.Vehicle) error {
	query := `
		INSERT INTO vroom.vehicles (user_id, make, model, year, vin, license_plate, initial_odometer, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, vehicle.UserID, vehicle.Make, vehicle.Model, vehicle.Year, vehicle.VIN, vehicle.LicensePlate, vehicle.InitialOdometer).
		Scan(&vehicle.ID, &vehicle.CreatedAt, &vehicle.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

// FindVehicleByID retrieves a vehicle by ID
func (r *Repository) FindVehicleByID(id int64) (*models.Vehicle, error) {
	vehicle := &models.Vehicle{}
	query := `
		SELECT id, user_id, make, model, year, vin, license_plate, initial_odometer, created_at, updated_at
		FROM vroom.vehicles
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&vehicle.ID, &vehicle.UserID, &vehicle.Make, &vehicle.Model, &vehicle.Year, &vehicle.VIN, &vehicle.LicensePlate, &vehicle.InitialOdometer, &vehicle.CreatedAt, &vehicle.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("vehicle not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find vehicle: %w", err)
	}
	return vehicle, nil
}

// ListVehiclesByUser retrieves all vehicles registered by a user
func (r *Repository) ListVehiclesByUser(userID int64) ([]models.Vehicle, error) {
	query := `
		SELECT id, user_id, make, model, year, vin, license_plate, initial_odometer, created_at, updated_at
		FROM vroom.vehicles
		WHERE user_id = $1
		ORDER BY created_at`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []models.Vehicle
	for rows.Next() {
		var v models.Vehicle
		if err := rows.Scan(&v.ID, &v.UserID, &v.Make, &v.Model, &v.Year, &v.VIN, &v.LicensePlate, &v.InitialOdometer, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

// ListAllVehicles retrieves every registered vehicle
func (r *Repository) ListAllVehicles() ([]models.Vehicle, error) {
	query := `
		SELECT id, user_id, make, model, year, vin, license_plate, initial_odometer, created_at, updated_at
		FROM vroom.vehicles
		ORDER BY id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []models.Vehicle
	for rows.Next() {
		var v models.Vehicle
		if err := rows.Scan(&v.ID, &v.UserID, &v.Make, &v.Model, &v.Year, &v.VIN, &v.LicensePlate, &v.InitialOdometer, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

// CreateExpense creates a new expense in the database
func (r *Repository) CreateExpense(expense *models.Expense) error {
	query := `
		INSERT INTO vroom.expenses (vehicle_id, category, amount, odometer, incurred_date, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, expense.VehicleID, expense.Category, expense.Amount, expense.Odometer, expense.IncurredDate, expense.Note).
		Scan(&expense.ID, &expense.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// ListExpensesByVehicle retrieves all expenses for a vehicle
func (r *Repository) ListExpensesByVehicle(vehicleID int64) ([]models.Expense, error) {
	query := `
		SELECT id, vehicle_id, category, amount, odometer, incurred_date, note, created_at
		FROM vroom.expenses
		WHERE vehicle_id = $1
		ORDER BY incurred_date`
	rows, err := r.db.Query(query, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.VehicleID, &e.Category, &e.Amount, &e.Odometer, &e.IncurredDate, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// ExpenseTotalsByCategory sums a vehicle's expenses grouped by category
func (r *Repository) ExpenseTotalsByCategory(vehicleID int64) (map[string]float64, error) {
	query := `
		SELECT category, COALESCE(SUM(amount), 0)
		FROM vroom.expenses
		WHERE vehicle_id = $1
		GROUP BY category`
	rows, err := r.db.Query(query, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]float64)
	for rows.Next() {
		var category string
		var total float64
		if err := rows.Scan(&category, &total); err != nil {
			return nil, fmt.Errorf("failed to scan expense total: %w", err)
		}
		totals[category] = total
	}
	return totals, rows.Err()
}

// CreateFuelLog creates a new fuel log in the database
func (r *Repository) CreateFuelLog(log *models.FuelLog) error {
	query := `
		INSERT INTO vroom.fuel_logs (vehicle_id, gallons, price_per_gallon, odometer, full_tank, filled_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, log.VehicleID, log.Gallons, log.PricePerGallon, log.Odometer, log.FullTank, log.FilledAt).
		Scan(&log.ID, &log.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create fuel log: %w", err)
	}
	return nil
}

// ListFuelLogsByVehicle retrieves all fuel logs for a vehicle, oldest first
func (r *Repository) ListFuelLogsByVehicle(vehicleID int64) ([]models.FuelLog, error) {
	query := `
		SELECT id, vehicle_id, gallons, price_per_gallon, odometer, full_tank, filled_at, created_at
		FROM vroom.fuel_logs
		WHERE vehicle_id = $1
		ORDER BY odometer`
	rows, err := r.db.Query(query, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fuel logs: %w", err)
	}
	defer rows.Close()

	var logs []models.FuelLog
	for rows.Next() {
		var l models.FuelLog
		if err := rows.Scan(&l.ID, &l.VehicleID, &l.Gallons, &l.PricePerGallon, &l.Odometer, &l.FullTank, &l.FilledAt, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan fuel log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// CreateLoan creates a new loan in the database
func (r *Repository) CreateLoan(loan *models.Loan) error {
	query := `
		INSERT INTO vroom.loans (user_id, vehicle_id, principal, apr, term_months, start_date, monthly_payment, current_balance, payments_made, paid_off, hmac, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, loan.UserID, loan.VehicleID, loan.Principal, loan.APR, loan.TermMonths, loan.StartDate,
		loan.MonthlyPayment, loan.CurrentBalance, loan.PaymentsMade, loan.PaidOff, loan.HMAC).
		Scan(&loan.ID, &loan.CreatedAt, &loan.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create loan: %w", err)
	}
	return nil
}

// FindLoanByID retrieves a loan by ID
func (r *Repository) FindLoanByID(id int64) (*models.Loan, error) {
	loan := &models.Loan{}
	query := `
		SELECT id, user_id, vehicle_id, principal, apr, term_months, start_date, monthly_payment, current_balance, payments_made, paid_off, hmac, created_at, updated_at
		FROM vroom.loans
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&loan.ID, &loan.UserID, &loan.VehicleID, &loan.Principal, &loan.APR, &loan.TermMonths, &loan.StartDate,
			&loan.MonthlyPayment, &loan.CurrentBalance, &loan.PaymentsMade, &loan.PaidOff, &loan.HMAC, &loan.CreatedAt, &loan.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("loan not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find loan: %w", err)
	}
	return loan, nil
}

// ListLoansByUser retrieves all loans for a user
func (r *Repository) ListLoansByUser(userID int64) ([]models.Loan, error) {
	query := `
		SELECT id, user_id, vehicle_id, principal, apr, term_months, start_date, monthly_payment, current_balance, payments_made, paid_off, hmac, created_at, updated_at
		FROM vroom.loans
		WHERE user_id = $1
		ORDER BY created_at`
	return r.scanLoans(r.db.Query(query, userID))
}

// ListActiveLoans retrieves all loans that are not yet paid off
func (r *Repository) ListActiveLoans() ([]models.Loan, error) {
	query := `
		SELECT id, user_id, vehicle_id, principal, apr, term_months, start_date, monthly_payment, current_balance, payments_made, paid_off, hmac, created_at, updated_at
		FROM vroom.loans
		WHERE paid_off = FALSE
		ORDER BY id`
	return r.scanLoans(r.db.Query(query))
}

func (r *Repository) scanLoans(rows *sql.Rows, err error) ([]models.Loan, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	defer rows.Close()

	var loans []models.Loan
	for rows.Next() {
		var l models.Loan
		if err := rows.Scan(&l.ID, &l.UserID, &l.VehicleID, &l.Principal, &l.APR, &l.TermMonths, &l.StartDate,
			&l.MonthlyPayment, &l.CurrentBalance, &l.PaymentsMade, &l.PaidOff, &l.HMAC, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}

// UpdateLoanAfterPayment stores the new balance and payment count for a loan
func (r *Repository) UpdateLoanAfterPayment(loan *models.Loan) error {
	query := `
		UPDATE vroom.loans
		SET current_balance = $2, payments_made = $3, paid_off = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`
	if _, err := r.db.Exec(query, loan.ID, loan.CurrentBalance, loan.PaymentsMade, loan.PaidOff); err != nil {
		return fmt.Errorf("failed to update loan: %w", err)
	}
	return nil
}

// CreateLoanPayment creates a new loan payment in the database
func (r *Repository) CreateLoanPayment(payment *models.LoanPayment) error {
	query := `
		INSERT INTO vroom.loan_payments (loan_id, payment_number, payment_date, amount, principal_amount, interest_amount, remaining_balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, payment.LoanID, payment.PaymentNumber, payment.PaymentDate, payment.Amount,
		payment.PrincipalAmount, payment.InterestAmount, payment.RemainingBalance).
		Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create loan payment: %w", err)
	}
	return nil
}

// ListLoanPayments retrieves all recorded payments for a loan
func (r *Repository) ListLoanPayments(loanID int64) ([]models.LoanPayment, error) {
	query := `
		SELECT id, loan_id, payment_number, payment_date, amount, principal_amount, interest_amount, remaining_balance, created_at
		FROM vroom.loan_payments
		WHERE loan_id = $1
		ORDER BY payment_number`
	rows, err := r.db.Query(query, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loan payments: %w", err)
	}
	defer rows.Close()

	var payments []models.LoanPayment
	for rows.Next() {
		var p models.LoanPayment
		if err := rows.Scan(&p.ID, &p.LoanID, &p.PaymentNumber, &p.PaymentDate, &p.Amount,
			&p.PrincipalAmount, &p.InterestAmount, &p.RemainingBalance, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan loan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
