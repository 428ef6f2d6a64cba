package reservationsrv

import (
	"context"
	"log/slog"

	"reservation_service/internal/lib/logger/sl"
	"reservation_service/internal/models"
)

type Storage interface {
	SaveReservation(reservation models.Reservation) (string, error)
	GetReservations() []models.Reservation
}

type Sink interface {
	SendNotification(ctx context.Context, reservation models.Reservation) error
}

type ReservationService struct {
	log     *slog.Logger
	storage Storage
	sink    Sink
}

func NewReservationService(log *slog.Logger, storage Storage, sink Sink) *ReservationService {
	return &ReservationService{
		log:     log,
		storage: storage,
		sink:    sink,
	}
}

// CreateReservation appends and persists the reservation, then fires the
// admin notification. The notification is best-effort: a failure is logged
// and never reaches the caller, so it cannot fail the request.
func (s *ReservationService) CreateReservation(ctx context.Context, reservation models.Reservation) (string, error) {
	id, err := s.storage.SaveReservation(reservation)
	if err != nil {
		return "", err
	}

	reservation.ID = id

	if s.sink != nil {
		if err := s.sink.SendNotification(ctx, reservation); err != nil {
			s.log.Error("failed to send admin notification", sl.Err(err))
		}
	}

	return id, nil
}

func (s *ReservationService) GetReservations(ctx context.Context) []models.Reservation {
	return s.storage.GetReservations()
}
