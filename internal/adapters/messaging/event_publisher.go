package messaging

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/AchilleasB/salon-booking/booking-service/internal/core/domain"
	"github.com/AchilleasB/salon-booking/booking-service/internal/core/ports"
)

var _ ports.EventPublisher = (*RabbitMQBroker)(nil)

// Publish sends the event as a persistent JSON message. The event type is
// carried in the AMQP Type property so consumers can route on it.
func (rmq *RabbitMQBroker) Publish(ctx context.Context, evt domain.OutboxEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	// Respect context deadline
	if deadline, ok := ctx.Deadline(); ok {
		if time.Until(deadline) <= 0 {
			return ctx.Err()
		}
	}

	_, err = rmq.cb.Execute(func() (interface{}, error) {
		err := rmq.ch.PublishWithContext(
			ctx,
			"",            // exchange (default)
			rmq.queueName, // routing key == queue name
			false,         // mandatory
			false,         // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				MessageId:    evt.ID,
				Type:         evt.Type,
				Timestamp:    evt.CreatedAt,
				Body:         body,
			},
		)
		return nil, err
	})
	return err
}
