package config

import (
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const (
	BreakerRedis         = "Redis-Auth"
	BreakerRelayPostgres = "Relay-PostgreSQL"
	BreakerRabbitMQ      = "RabbitMQ-Publisher"
)

// NewCircuitBreaker creates a circuit breaker with standard settings.
// The name parameter uniquely identifies the circuit breaker instance.
func NewCircuitBreaker(name string, logger *zap.Logger) *gobreaker.CircuitBreaker {
	var timeout time.Duration

	// aligned with the 5s health check timeout
	switch name {
	case BreakerRedis:
		timeout = 5 * time.Second
	case BreakerRelayPostgres:
		timeout = 10 * time.Second
	default:
		timeout = 30 * time.Second
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Error("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}
