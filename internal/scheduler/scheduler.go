package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/vroomhq/vroom-service/internal/loancalc"
	"github.com/vroomhq/vroom-service/internal/models"
	"github.com/vroomhq/vroom-service/internal/repository"
	"github.com/vroomhq/vroom-service/internal/utils/email"
)

// reminderWindow is how far ahead of the due date reminders go out.
const reminderWindow = 3 * 24 * time.Hour

// Scheduler runs the daily payment reminder sweep
type Scheduler struct {
	cron   *cron.Cron
	repo   *repository.Repository
	sender *email.Sender
	log    *logrus.Logger
}

// NewScheduler initializes the reminder scheduler
func NewScheduler(repo *repository.Repository, sender *email.Sender, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		repo:   repo,
		sender: sender,
		log:    log,
	}
}

// Start registers the sweeps and starts the cron loop
func (s *Scheduler) Start() error {
	// Every day at 09:00
	if _, err := s.cron.AddFunc("0 9 * * *", s.sweepDuePayments); err != nil {
		return err
	}
	// First of every month at 08:00
	if _, err := s.cron.AddFunc("0 8 1 * *", s.sweepMonthlySummaries); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("Payment reminder scheduler started")
	return nil
}

// Stop stops the cron loop
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// sweepDuePayments emails a reminder for every active loan whose next scheduled
// payment is due within the reminder window or already overdue
func (s *Scheduler) sweepDuePayments() {
	loans, err := s.repo.ListActiveLoans()
	if err != nil {
		s.log.Errorf("Reminder sweep failed to list loans: %v", err)
		return
	}

	now := time.Now()
	for _, loan := range loans {
		nextPayment := loan.PaymentsMade + 1
		if nextPayment > loan.TermMonths {
			continue
		}
		dueDate := loancalc.AddMonths(loan.StartDate, nextPayment)
		if dueDate.After(now.Add(reminderWindow)) {
			continue
		}

		user, err := s.repo.FindUserByID(loan.UserID)
		if err != nil {
			s.log.Errorf("Reminder sweep failed to load user %d: %v", loan.UserID, err)
			continue
		}

		isOverdue := dueDate.Before(now)
		if err := s.sender.SendPaymentReminder(user.Email, user.Username, dueDate, loan.MonthlyPayment, isOverdue); err != nil {
			s.log.Errorf("Failed to send reminder for loan %d: %v", loan.ID, err)
		}
	}
	s.log.Infof("Reminder sweep completed over %d active loans", len(loans))
}

// sweepMonthlySummaries emails every owner a per-category cost summary for each
// of their vehicles
func (s *Scheduler) sweepMonthlySummaries() {
	vehicles, err := s.repo.ListAllVehicles()
	if err != nil {
		s.log.Errorf("Summary sweep failed to list vehicles: %v", err)
		return
	}

	for _, vehicle := range vehicles {
		totals, err := s.repo.ExpenseTotalsByCategory(vehicle.ID)
		if err != nil {
			s.log.Errorf("Summary sweep failed to total vehicle %d: %v", vehicle.ID, err)
			continue
		}
		if len(totals) == 0 {
			continue
		}

		summary := &models.VehicleCostSummary{VehicleID: vehicle.ID, ByCategory: totals}
		for _, t := range totals {
			summary.Total += t
		}

		user, err := s.repo.FindUserByID(vehicle.UserID)
		if err != nil {
			s.log.Errorf("Summary sweep failed to load user %d: %v", vehicle.UserID, err)
			continue
		}

		vehicleName := fmt.Sprintf("%d %s %s", vehicle.Year, vehicle.Make, vehicle.Model)
		if err := s.sender.SendMonthlySummary(user.Email, user.Username, vehicleName, summary); err != nil {
			s.log.Errorf("Failed to send summary for vehicle %d: %v", vehicle.ID, err)
		}
	}
	s.log.Infof("Summary sweep completed over %d vehicles", len(vehicles))
}
