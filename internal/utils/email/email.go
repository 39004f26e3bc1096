package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vroomhq/vroom-service/internal/config"
	"github.com/vroomhq/vroom-service/internal/models"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendPaymentReminder sends a loan payment reminder email
func (s *Sender) SendPaymentReminder(to, username string, paymentDate time.Time, amount decimal.Decimal, isOverdue bool) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	if isOverdue {
		e.Subject = "Overdue Loan Payment Notification"
	} else {
		e.Subject = "Upcoming Loan Payment Reminder"
	}

	// Format email body
	body := fmt.Sprintf(
		"Dear %s,\n\n", username,
	)
	if isOverdue {
		body += fmt.Sprintf(
			"Your loan payment of $%s was due on %s and is now overdue.\n"+
				"Please record the payment as soon as possible to keep your amortization schedule accurate.\n",
			amount.StringFixed(2), paymentDate.Format("2006-01-02"),
		)
	} else {
		body += fmt.Sprintf(
			"This is a reminder that your loan payment of $%s is due on %s.\n",
			amount.StringFixed(2), paymentDate.Format("2006-01-02"),
		)
	}
	body += "\nBest regards,\nVROOM"
	e.Text = []byte(body)

	// Send email
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	err := e.Send(addr, auth)
	if err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

// SendMonthlySummary sends a monthly cost summary email for a vehicle
func (s *Sender) SendMonthlySummary(to, username, vehicleName string, summary *models.VehicleCostSummary) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Monthly Cost Summary: %s", vehicleName)

	// Format email body
	body := fmt.Sprintf(
		"Dear %s,\n\nHere is the cost summary for your %s:\n\n", username, vehicleName,
	)
	for category, total := range summary.ByCategory {
		body += fmt.Sprintf("  %-12s $%.2f\n", category, total)
	}
	body += fmt.Sprintf("\nTotal: $%.2f\n", summary.Total)
	body += "\nBest regards,\nVROOM"
	e.Text = []byte(body)

	// Send email
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	err := e.Send(addr, auth)
	if err != nil {
		s.logger.Errorf("Failed to send summary to %s: %v", to, err)
		return fmt.Errorf("failed to send summary: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
