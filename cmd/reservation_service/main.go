package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"

	"reservation_service/internal/config"
	emailsender "reservation_service/internal/email_sender"
	createreservation "reservation_service/internal/http-server/handlers/create_reservation"
	getreservations "reservation_service/internal/http-server/handlers/get_reservations"
	reservationsrv "reservation_service/internal/http-server/handlers/middleware/reservation"
	"reservation_service/internal/lib/logger/sl"
	"reservation_service/internal/rabbitmq"
	"reservation_service/internal/storage/jsonfile"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad("./config/local.yaml")
	log := setupLogger(cfg.Env)

	log.Info("starting reservation service", slog.String("env", cfg.Env))

	// * Storage
	repo := jsonfile.Open(log, cfg.Storage.ReservationsFile)

	// * Notification sink
	sink, cleanup, err := setupSink(log, cfg)
	if err != nil {
		log.Error("failed to init notification sink", sl.Err(err))
		os.Exit(1)
	}
	if cleanup != nil {
		defer cleanup()
	}

	reservationService := reservationsrv.NewReservationService(log, repo, sink)

	// * Routing
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// * Handlers
	r.Post("/reservations", createreservation.New(log, reservationService))
	r.Get("/reservations", getreservations.New(log, reservationService))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      r,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	log.Info("HTTP server starting", slog.String("addr", cfg.HTTPServer.Address))
	log.Info("reservations are stored locally", slog.String("file", cfg.Storage.ReservationsFile))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server failed", sl.Err(err))
		os.Exit(1)
	}
}

// setupSink picks the notification transport: the durable queue for the
// worker, direct SMTP, or nothing. A missing sink only disables emails.
func setupSink(log *slog.Logger, cfg *config.Config) (reservationsrv.Sink, func(), error) {
	switch cfg.Notifier.Kind {
	case "amqp":
		rabbitMQClient, err := rabbitmq.New(cfg.RabbitMQ.URL, cfg.RabbitMQ.QueueName)
		if err != nil {
			return nil, nil, err
		}
		return rabbitMQClient, rabbitMQClient.Close, nil
	case "smtp":
		return &emailsender.DirectSink{
			Mailer: &emailsender.Mailer{
				Host:     cfg.Email.Host,
				Port:     cfg.Email.Port,
				Username: cfg.Email.Username,
				Password: cfg.Email.Password,
			},
			To: cfg.Notifier.AdministratorEmail,
		}, nil, nil
	default:
		log.Warn("admin notifications are disabled")
		return nil, nil, nil
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}
