package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	messagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salon_messages_sent_total",
		Help: "Total number of direct messages stored",
	})

	ratingsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salon_ratings_recorded_total",
			Help: "Total number of appointment ratings written, by value",
		},
		[]string{"rating"},
	)

	authAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salon_auth_attempts_total",
			Help: "Login and registration attempts by outcome",
		},
		[]string{"action", "outcome"},
	)
)
