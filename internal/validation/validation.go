package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Payload maps reservation form field names to their raw string values.
type Payload map[string]string

var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrInvalidPhone = errors.New("invalid phone number")
	ErrPastDate     = errors.New("reservation date is in the past")
)

// MissingFieldError names the first required field that is absent or blank.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("field %s is required", e.Field)
}

// requiredFields is checked in this exact order; the first miss wins.
var requiredFields = []string{"name", "email", "phone", "date", "time", "guests"}

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^(\+254|0)[17]\d{8}$`)
	phoneJunk  = regexp.MustCompile(`[\s\-()]`)
)

const dateLayout = "2006-01-02"

// Validate checks a reservation payload: required fields, then email shape,
// then phone shape, then that the date is not before today. Checks run in
// that fixed order and the first failure is returned; at most one error is
// ever reported per call. On success the payload is returned unchanged.
func Validate(p Payload) (Payload, error) {
	return validateAt(p, time.Now())
}

func validateAt(p Payload, now time.Time) (Payload, error) {
	for _, field := range requiredFields {
		if strings.TrimSpace(p[field]) == "" {
			return nil, &MissingFieldError{Field: field}
		}
	}

	if !emailRegex.MatchString(p["email"]) {
		return nil, ErrInvalidEmail
	}

	cleanPhone := phoneJunk.ReplaceAllString(p["phone"], "")
	if !phoneRegex.MatchString(cleanPhone) {
		return nil, ErrInvalidPhone
	}

	date, err := time.ParseInLocation(dateLayout, p["date"], now.Location())
	if err != nil {
		return nil, ErrPastDate
	}

	// Calendar-day comparison only; the time-of-day field is ignored, so a
	// same-day booking for an hour already gone is accepted.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return nil, ErrPastDate
	}

	return p, nil
}
