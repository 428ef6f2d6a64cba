package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	Storage    `yaml:"storage"`
	Notifier   `yaml:"notifier"`
	RabbitMQ   `yaml:"rabbitmq"`
	Email      `yaml:"email"`
	Cart       `yaml:"cart"`
	Client     `yaml:"client"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:3000"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type Storage struct {
	ReservationsFile string `yaml:"reservations_file" env-default:"reservations.json"`
}

// Notifier selects how admin notifications leave the process: published to
// the queue for the worker, sent over SMTP directly, or disabled.
type Notifier struct {
	Kind               string `yaml:"kind" env-default:"none"` // amqp, smtp or none
	AdministratorEmail string `yaml:"administrator_email" env:"ADMINISTRATOR_EMAIL"`
}

type RabbitMQ struct {
	URL       string `yaml:"url" env:"RABBITMQ_URL"`
	QueueName string `yaml:"queue_name" env-default:"notifications_queue"`
}

type Email struct {
	Host     string `yaml:"host" env-default:"smtp.gmail.com"`
	Port     int    `yaml:"port" env-default:"587"`
	Username string `yaml:"username" env:"EMAIL_USERNAME"`
	Password string `yaml:"password" env:"EMAIL_PASSWORD"`
}

// Cart configures the client-side cart's durable storage.
type Cart struct {
	Backend string `yaml:"backend" env-default:"file"` // file or redis
	Dir     string `yaml:"dir" env-default:".cart"`
	Redis   `yaml:"redis"`
}

type Redis struct {
	Host     string `yaml:"host" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env-default:"0"`
}

type Client struct {
	ServerURL string        `yaml:"server_url" env-default:"http://localhost:3000"`
	Timeout   time.Duration `yaml:"timeout" env-default:"10s"`
}

func MustLoad(configPath string) *Config {
	// проверка существования файла
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", configPath)
	}

	return &cfg
}
