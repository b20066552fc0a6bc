package config

import (
	"os"

	"github.com/joho/godotenv"
)

// RelayConfig holds configuration for the outbox relay process.
type RelayConfig struct {
	DatabaseURL     string
	RabbitMQURL     string
	EventsQueueName string
	HealthPort      string
	Environment     string
}

func LoadRelayConfig() *RelayConfig {
	_ = godotenv.Load()

	dbURL := os.Getenv("DB_CONNECTION_STRING")
	if dbURL == "" {
		panic("DB_CONNECTION_STRING environment variable is required")
	}

	rabbitURL := os.Getenv("RABBITMQ_URL")
	if rabbitURL == "" {
		panic("RABBITMQ_URL environment variable is required")
	}

	return &RelayConfig{
		DatabaseURL:     dbURL,
		RabbitMQURL:     rabbitURL,
		EventsQueueName: getEnv("EVENTS_QUEUE_NAME", "salon-events"),
		HealthPort:      getEnv("RELAY_HEALTH_PORT", "8090"),
		Environment:     getEnv("APP_ENV", "production"),
	}
}
