package getreservations

import (
	"log/slog"
	"net/http"

	reservationsrv "reservation_service/internal/http-server/handlers/middleware/reservation"
	"reservation_service/internal/models"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

func New(log *slog.Logger, reservationService *reservationsrv.ReservationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.get-reservations.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		reservations := reservationService.GetReservations(r.Context())
		if reservations == nil {
			reservations = []models.Reservation{}
		}

		log.Info("reservations fetched", slog.Int("count", len(reservations)))

		// Bare array, insertion order, no envelope.
		render.JSON(w, r, reservations)
	}
}
