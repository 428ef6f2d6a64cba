package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"reservation_service/internal/client/notify"
	"reservation_service/internal/lib/logger/sl"
	"reservation_service/internal/validation"
)

// Form holds the raw reservation form values, field name -> value.
type Form map[string]string

var ErrSubmitFailed = errors.New("failed to submit reservation")

type Client struct {
	log       *slog.Logger
	serverURL string
	http      *http.Client
	notifier  *notify.Notifier
}

func New(log *slog.Logger, serverURL string, timeout time.Duration, notifier *notify.Notifier) *Client {
	return &Client{
		log:       log,
		serverURL: serverURL,
		http:      &http.Client{Timeout: timeout},
		notifier:  notifier,
	}
}

// SubmitReservation validates the form and posts it to the reservation API.
// A validation failure is shown to the user and nothing goes over the wire;
// the form keeps its values. On a 2xx response the form is cleared and a
// success notification shown; on anything else the form stays intact so the
// user can retry.
func (c *Client) SubmitReservation(ctx context.Context, form Form) error {
	payload, err := validation.Validate(validation.Payload(form))
	if err != nil {
		c.notifier.Show(validationMessage(err), notify.KindError)
		return err
	}

	body := map[string]string{
		"name":            payload["name"],
		"email":           payload["email"],
		"phone":           payload["phone"],
		"date":            payload["date"],
		"time":            payload["time"],
		"guests":          payload["guests"],
		"specialRequests": payload["special-requests"],
		"submittedAt":     time.Now().Format(time.RFC3339),
	}

	if err := c.post(ctx, body); err != nil {
		c.log.Error("failed to submit reservation", sl.Err(err))

		c.notifier.Show("Failed to submit reservation. Please try again or contact us directly.", notify.KindError)

		return err
	}

	for field := range form {
		delete(form, field)
	}

	c.notifier.Show("Reservation request submitted successfully! We will contact you shortly.", notify.KindSuccess)

	return nil
}

func (c *Client) post(ctx context.Context, body map[string]string) error {
	const op = "client.post"

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/reservations", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s: %w: status %d", op, ErrSubmitFailed, resp.StatusCode)
	}

	return nil
}

// validationMessage translates a validation error into the wording shown on
// screen.
func validationMessage(err error) string {
	var missing *validation.MissingFieldError
	if errors.As(err, &missing) {
		return fmt.Sprintf("Please fill in the %s field.", missing.Field)
	}

	switch {
	case errors.Is(err, validation.ErrInvalidEmail):
		return "Please enter a valid email address."
	case errors.Is(err, validation.ErrInvalidPhone):
		return "Please enter a valid Kenyan phone number (e.g., +254712345678 or 0712345678)."
	case errors.Is(err, validation.ErrPastDate):
		return "Please select a future date."
	default:
		return "Please check the reservation form."
	}
}
