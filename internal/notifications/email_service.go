package notifications

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"drivehub/internal/shared/config"
)

// EmailService turns booking events into customer emails
type EmailService interface {
	SendBookingEvent(ctx context.Context, event BookingEvent) error
	SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// NewEmailService returns an SMTP mailer when SMTP is configured and a
// logging mailer otherwise
func NewEmailService(cfg *config.Config) EmailService {
	if !cfg.SMTPEnabled() {
		return NewMockEmailService()
	}
	return NewSMTPEmailService(&SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		UseTLS:    cfg.Email.UseTLS,
	})
}

// SMTPConfig holds SMTP configuration
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool
}

// SMTPEmailService is a real SMTP implementation of the EmailService interface
type SMTPEmailService struct {
	config *SMTPConfig
}

func NewSMTPEmailService(config *SMTPConfig) *SMTPEmailService {
	return &SMTPEmailService{config: config}
}

// SendBookingEvent sends the email matching the event type
func (s *SMTPEmailService) SendBookingEvent(ctx context.Context, event BookingEvent) error {
	log.Printf("📧 [SMTP] Sending booking %s email to %s (%s)", event.Type, event.Email, event.FullName)

	subject, htmlBody, textBody := renderBookingEmail(event)
	return s.SendHTML(ctx, event.Email, subject, htmlBody, textBody)
}

// SendHTML sends an HTML email
func (s *SMTPEmailService) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	message := s.buildMessage(to, subject, htmlBody, textBody)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var auth smtp.Auth
	if s.config.Username != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}

	var err error
	if s.config.UseTLS {
		err = s.sendWithSTARTTLS(addr, auth, to, message)
	} else {
		err = smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	}
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("📧 [SMTP] Email sent successfully to %s", to)
	return nil
}

// sendWithSTARTTLS upgrades a plain connection before authenticating
func (s *SMTPEmailService) sendWithSTARTTLS(addr string, auth smtp.Auth, to string, message []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Quit()

	if err = client.StartTLS(&tls.Config{ServerName: s.config.Host}); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return w.Close()
}

// buildMessage creates a multipart/alternative message
func (s *SMTPEmailService) buildMessage(to, subject, htmlBody, textBody string) []byte {
	boundary := "boundary_" + strconv.FormatInt(time.Now().UnixNano(), 10)

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary)

	if textBody != "" {
		fmt.Fprintf(&b, "--%s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s\r\n", boundary, textBody)
	}
	if htmlBody != "" {
		fmt.Fprintf(&b, "--%s\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s\r\n", boundary, htmlBody)
	}
	fmt.Fprintf(&b, "--%s--\r\n", boundary)

	return []byte(b.String())
}

// renderBookingEmail builds subject, html and text bodies for an event
func renderBookingEmail(event BookingEvent) (string, string, string) {
	var subject, headline, detail string

	switch event.Type {
	case EventBookingCreated:
		subject = fmt.Sprintf("Booking #%d received", event.BookingID)
		headline = "We received your booking request"
		detail = "Our team will review it shortly."
	case EventBookingApproved:
		subject = fmt.Sprintf("Booking #%d approved", event.BookingID)
		headline = "Your booking is approved"
		detail = "Your car will be ready at the pickup location."
	case EventBookingRejected:
		subject = fmt.Sprintf("Booking #%d rejected", event.BookingID)
		headline = "Your booking could not be approved"
		detail = "Please contact us or choose another car."
	case EventBookingCompleted:
		subject = fmt.Sprintf("Booking #%d completed", event.BookingID)
		headline = "Thanks for driving with DriveHub"
		detail = "We hope to see you again soon."
	case EventBookingCancelled:
		subject = fmt.Sprintf("Booking #%d cancelled", event.BookingID)
		headline = "Your booking was cancelled"
		detail = "No further action is needed."
	default:
		subject = "Notification from DriveHub"
		headline = "Booking update"
	}

	total := fmt.Sprintf("$%.2f", event.TotalAmount)

	htmlBody := fmt.Sprintf(`
			<h2>%s</h2>
			<p>Hi %s,</p>
			<p>%s</p>
			<p>Booking Number: <strong>#%d</strong></p>
			<p>Status: %s</p>
			<p>Total Amount: %s</p>
			<p>Best regards,<br>DriveHub Team</p>
		`, headline, event.FullName, detail, event.BookingID, event.Status, total)

	textBody := fmt.Sprintf(
		"Hi %s,\n\n%s. %s\nBooking Number: #%d\nStatus: %s\nTotal Amount: %s\n\nBest regards,\nDriveHub Team",
		event.FullName, headline, detail, event.BookingID, event.Status, total,
	)

	return subject, htmlBody, textBody
}

// MockEmailService logs emails instead of sending them
type MockEmailService struct{}

func NewMockEmailService() *MockEmailService {
	return &MockEmailService{}
}

func (s *MockEmailService) SendBookingEvent(ctx context.Context, event BookingEvent) error {
	subject, htmlBody, textBody := renderBookingEmail(event)
	return s.SendHTML(ctx, event.Email, subject, htmlBody, textBody)
}

func (s *MockEmailService) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	log.Printf("📧 [MOCK] To: %s, Subject: %s", to, subject)
	log.Printf("📧 [MOCK] Body: %s", strings.TrimSpace(textBody))
	return nil
}
