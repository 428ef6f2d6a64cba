package client

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"reservation_service/internal/client/notify"
	"reservation_service/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPresenter struct {
	mu       sync.Mutex
	messages []notify.Notification
}

func (p *recordingPresenter) Render(n notify.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, n)
}

func (p *recordingPresenter) Clear() {}

func (p *recordingPresenter) last() (notify.Notification, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.messages) == 0 {
		return notify.Notification{}, false
	}
	return p.messages[len(p.messages)-1], true
}

func validForm() Form {
	return Form{
		"name":             "Brian Kip",
		"email":            "brian@example.com",
		"phone":            "+254712345678",
		"date":             "2030-06-01",
		"time":             "19:00",
		"guests":           "4",
		"special-requests": "window seat",
	}
}

func newTestClient(t *testing.T, serverURL string) (*Client, *recordingPresenter) {
	t.Helper()

	p := &recordingPresenter{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(log, serverURL, 5*time.Second, notify.New(p)), p
}

func TestSubmitReservation_Success(t *testing.T) {
	var received map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/reservations", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success":true,"message":"ok","reservationId":"1"}`))
	}))
	defer srv.Close()

	c, p := newTestClient(t, srv.URL)
	form := validForm()

	err := c.SubmitReservation(context.Background(), form)
	require.NoError(t, err)

	assert.Equal(t, "Brian Kip", received["name"])
	assert.Equal(t, "window seat", received["specialRequests"])
	assert.NotEmpty(t, received["submittedAt"])
	_, parseErr := time.Parse(time.RFC3339, received["submittedAt"])
	assert.NoError(t, parseErr)

	// Form is cleared on success.
	assert.Empty(t, form)

	last, ok := p.last()
	require.True(t, ok)
	assert.Equal(t, notify.KindSuccess, last.Kind)
}

func TestSubmitReservation_ValidationFailureSkipsNetwork(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c, p := newTestClient(t, srv.URL)
	form := validForm()
	form["email"] = "not-an-email"

	err := c.SubmitReservation(context.Background(), form)
	assert.ErrorIs(t, err, validation.ErrInvalidEmail)
	assert.Equal(t, 0, calls, "no network call may happen on validation failure")

	// Form keeps its values so the user can fix and retry.
	assert.Equal(t, "Brian Kip", form["name"])

	last, ok := p.last()
	require.True(t, ok)
	assert.Equal(t, notify.KindError, last.Kind)
	assert.Contains(t, last.Message, "valid email")
}

func TestSubmitReservation_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"message":"Failed to process reservation"}`))
	}))
	defer srv.Close()

	c, p := newTestClient(t, srv.URL)
	form := validForm()

	err := c.SubmitReservation(context.Background(), form)
	require.Error(t, err)

	// Form intact for retry.
	assert.Equal(t, "Brian Kip", form["name"])

	last, ok := p.last()
	require.True(t, ok)
	assert.Equal(t, notify.KindError, last.Kind)
}

func TestSubmitReservation_NetworkFailure(t *testing.T) {
	// A server that is no longer there.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c, p := newTestClient(t, srv.URL)
	form := validForm()

	err := c.SubmitReservation(context.Background(), form)
	require.Error(t, err)
	assert.Equal(t, "Brian Kip", form["name"])

	last, ok := p.last()
	require.True(t, ok)
	assert.Equal(t, notify.KindError, last.Kind)
}

func TestValidationMessages(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"missing field", &validation.MissingFieldError{Field: "guests"}, "Please fill in the guests field."},
		{"email", validation.ErrInvalidEmail, "Please enter a valid email address."},
		{"phone", validation.ErrInvalidPhone, "Please enter a valid Kenyan phone number (e.g., +254712345678 or 0712345678)."},
		{"date", validation.ErrPastDate, "Please select a future date."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, validationMessage(tc.err))
		})
	}
}
