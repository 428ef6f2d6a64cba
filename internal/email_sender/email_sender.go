package emailsender

import (
	"context"
	"fmt"
	"strings"
	"time"

	"reservation_service/internal/models"

	"gopkg.in/gomail.v2"
)

type Mailer struct {
	Host     string
	Port     int
	Username string
	Password string
}

func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.Username)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)

	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.Host, m.Port, m.Username, m.Password)
	return dialer.DialAndSend(msg)
}

// CreateMessage formats the admin notification for a new reservation.
// Special requests are included only when the customer wrote any.
func (m *Mailer) CreateMessage(r models.Reservation) (string, string) {
	subject := "New Reservation Request"

	var b strings.Builder
	fmt.Fprintf(&b, "New reservation request!\n\n")
	fmt.Fprintf(&b, "Name: %s\n", r.Name)
	fmt.Fprintf(&b, "Email: %s\n", r.Email)
	fmt.Fprintf(&b, "Phone: %s\n", r.Phone)
	fmt.Fprintf(&b, "Date: %s\n", r.Date)
	fmt.Fprintf(&b, "Time: %s\n", r.Time)
	fmt.Fprintf(&b, "Guests: %s\n", r.Guests)
	if r.SpecialRequests != "" {
		fmt.Fprintf(&b, "Special requests: %s\n", r.SpecialRequests)
	}
	fmt.Fprintf(&b, "Submitted at: %s\n", formatSubmittedAt(r.SubmittedAt))

	return subject, b.String()
}

// DirectSink sends the admin notification over SMTP from the API process
// itself, for deployments without the queue and worker.
type DirectSink struct {
	Mailer *Mailer
	To     string
}

func (s *DirectSink) SendNotification(ctx context.Context, r models.Reservation) error {
	subject, body := s.Mailer.CreateMessage(r)

	return s.Mailer.Send(s.To, subject, body)
}

func formatSubmittedAt(submittedAt string) string {
	t, err := time.Parse(time.RFC3339, submittedAt)
	if err != nil {
		return submittedAt
	}

	return t.Format("02-01-2006 15:04:05")
}
