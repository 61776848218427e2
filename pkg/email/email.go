package email

import (
	"fmt"
	"net/smtp"
	"strings"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// EmailService sends transactional mail over plain SMTP
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// OrderConfirmation is the data rendered into the confirmation mail
type OrderConfirmation struct {
	CustomerName string
	OrderNumber  string
	BranchName   string
	DeliveryDate string
	GrandTotal   string
	AdvancePaid  string
	Balance      string
}

// SendOrderConfirmation sends a plain-text order confirmation. Callers treat
// failures as best-effort: log and move on.
func (s *EmailService) SendOrderConfirmation(toEmail string, oc OrderConfirmation) error {
	if s.config.SMTPHost == "" {
		return fmt.Errorf("smtp not configured")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\r\n\r\n", oc.CustomerName)
	fmt.Fprintf(&b, "Your order %s has been placed at %s.\r\n\r\n", oc.OrderNumber, oc.BranchName)
	if oc.DeliveryDate != "" {
		fmt.Fprintf(&b, "Delivery date: %s\r\n", oc.DeliveryDate)
	}
	fmt.Fprintf(&b, "Order total:   %s\r\n", oc.GrandTotal)
	fmt.Fprintf(&b, "Advance paid:  %s\r\n", oc.AdvancePaid)
	fmt.Fprintf(&b, "Balance due:   %s\r\n\r\n", oc.Balance)
	fmt.Fprintf(&b, "Thank you,\r\n%s\r\n", s.config.FromName)

	subject := fmt.Sprintf("Order confirmation %s", oc.OrderNumber)
	message := s.buildTextEmail(toEmail, subject, b.String())

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// buildTextEmail builds a plain-text email message
func (s *EmailService) buildTextEmail(to, subject, body string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/plain; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)
	return []byte(headers + body)
}
