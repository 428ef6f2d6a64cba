package createreservation

import (
	"log/slog"
	"net/http"
	"time"

	reservationsrv "reservation_service/internal/http-server/handlers/middleware/reservation"
	resp "reservation_service/internal/lib/api/response"
	"reservation_service/internal/lib/logger/sl"
	"reservation_service/internal/models"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
)

type Request struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required"`
	Phone           string `json:"phone" validate:"required"`
	Date            string `json:"date" validate:"required"`
	Time            string `json:"time" validate:"required"`
	Guests          string `json:"guests" validate:"required"`
	SpecialRequests string `json:"specialRequests"`
	SubmittedAt     string `json:"submittedAt"`
}

func New(log *slog.Logger, reservationService *reservationsrv.ReservationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.create-reservation.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Failed to decode request"))

			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		// Проверка формы запроса. Semantic checks (email, phone, date) are the
		// submitting client's job; the record is stored as received.
		if err := validator.New().Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)

			log.Error("invalid request", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.ValidationError(validateErr))

			return
		}

		if req.SubmittedAt == "" {
			req.SubmittedAt = time.Now().Format(time.RFC3339)
		}

		reservation := models.Reservation{
			Name:            req.Name,
			Email:           req.Email,
			Phone:           req.Phone,
			Date:            req.Date,
			Time:            req.Time,
			Guests:          req.Guests,
			SpecialRequests: req.SpecialRequests,
			SubmittedAt:     req.SubmittedAt,
		}

		id, err := reservationService.CreateReservation(r.Context(), reservation)
		if err != nil {
			log.Error("failed to save reservation", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to process reservation"))

			return
		}

		log.Info("reservation saved", slog.String("reservationId", id))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, resp.OK("Reservation submitted successfully", id))
	}
}
