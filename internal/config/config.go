package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App      App      `yaml:"app"`
	HTTP     HTTP     `yaml:"http"`
	Log      Log      `yaml:"log"`
	Postgres Postgres `yaml:"postgres"`
	Redis    Redis    `yaml:"redis"`
	Kafka    Kafka    `yaml:"kafka"`
	Retry    Retry    `yaml:"retry"`
	Mail     Mail     `yaml:"mail"`
	Events   Events   `yaml:"events"`
}

type App struct {
	Name    string `yaml:"name" env:"APP_NAME" env-default:"eventflow"`
	Version string `yaml:"version" env:"APP_VERSION" env-default:"1.0.0"`
}

type HTTP struct {
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

type Log struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type Postgres struct {
	Host     string `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"POSTGRES_USER" env-default:"user"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD" env-default:"password"`
	DBName   string `yaml:"dbname" env:"POSTGRES_DB" env-default:"eventflow_db"`
}

type Redis struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type Kafka struct {
	Brokers  []string `yaml:"brokers" env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	Topic    string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"orders"`
	DLQTopic string   `yaml:"dlq_topic" env:"KAFKA_DLQ_TOPIC" env-default:"orders.DLT"`
	GroupID  string   `yaml:"group_id" env:"KAFKA_GROUP_ID" env-default:"notification-service"`
}

// Retry drives the consumer-side backoff: the delay before attempt n+1 is
// InitialBackoff * Multiplier^(n-1), until MaxAttempts is exhausted.
type Retry struct {
	InitialBackoff time.Duration `yaml:"initial_backoff" env:"RETRY_INITIAL_BACKOFF" env-default:"1s"`
	Multiplier     float64       `yaml:"multiplier" env:"RETRY_MULTIPLIER" env-default:"2.0"`
	MaxAttempts    int           `yaml:"max_attempts" env:"RETRY_MAX_ATTEMPTS" env-default:"3"`
}

type Mail struct {
	Host     string `yaml:"host" env:"MAIL_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"MAIL_PORT" env-default:"1025"`
	Username string `yaml:"username" env:"MAIL_USERNAME" env-default:""`
	Password string `yaml:"password" env:"MAIL_PASSWORD" env-default:""`
	From     string `yaml:"from" env:"MAIL_FROM" env-default:"noreply@eventflow.dev"`
}

type Events struct {
	// TrustedTypes is the allowlist of event type discriminators the
	// consumer will decode. Anything else is acknowledged and skipped.
	TrustedTypes []string `yaml:"trusted_types" env:"EVENT_TRUSTED_TYPES" env-default:"OrderPlaced,OrderCancelled"`
}

func New() (*Config, error) {
	cfg := &Config{}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		// fallback to env vars if file not found
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("config error: %w", err)
		}
	} else {
		// Allow env vars to override config file
		cleanenv.ReadEnv(cfg)
	}

	return cfg, nil
}
