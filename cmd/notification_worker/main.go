package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"reservation_service/internal/config"
	mailer "reservation_service/internal/email_sender"
	"reservation_service/internal/lib/logger/sl"
	"reservation_service/internal/models"
	"reservation_service/internal/rabbitmq"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad("./config/local.yaml")
	log := setupLogger(cfg.Env)

	startWorker(ctx, cfg, log)
}

func startWorker(ctx context.Context, cfg *config.Config, log *slog.Logger) {
	log.Info("starting notification worker", slog.String("env", cfg.Env))

	r, err := rabbitmq.New(cfg.RabbitMQ.URL, cfg.RabbitMQ.QueueName)
	if err != nil {
		log.Error("failed to init rabbitmq", sl.Err(err))
		return
	}
	defer r.Close()

	m := &mailer.Mailer{
		Host:     cfg.Email.Host,
		Port:     cfg.Email.Port,
		Username: cfg.Email.Username,
		Password: cfg.Email.Password,
	}

	done := make(chan struct{})

	go func() {
		defer close(done)

		err := r.StartReading(ctx, func(msg []byte) {
			var reservation models.Reservation
			if err := json.Unmarshal(msg, &reservation); err != nil {
				log.Error("failed to unmarshal message", sl.Err(err))
				return
			}

			subject, mesText := m.CreateMessage(reservation)

			err := m.Send(cfg.Notifier.AdministratorEmail,
				subject,
				mesText,
			)
			if err != nil {
				log.Error("failed to send message", sl.Err(err))
				return
			}

			log.Info("admin notification sent successfully",
				slog.String("reservationId", reservation.ID),
			)
		})
		if err != nil {
			log.Error("failed to start reading", sl.Err(err))
			return
		}
	}()

	log.Info("notification worker successfully started")

	select {
	case <-ctx.Done():
		log.Info("shutting down consumer...")
	case <-done:
		log.Info("notification worker finished the work")
	}

	log.Info("notification worker gracefully stopped")
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
