package notifications

import (
	"context"
	"fmt"
	"time"

	"drivehub/internal/shared/config"
	"drivehub/pkg/logger"
)

// Publisher sends booking events to a broker
type Publisher interface {
	Publish(ctx context.Context, event BookingEvent) error
	Close() error
}

// NoopPublisher drops every event
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, BookingEvent) error { return nil }
func (NoopPublisher) Close() error                                { return nil }

const publishTimeout = 10 * time.Second

// NewPublisher builds the publisher selected by EVENT_BROKER
func NewPublisher(cfg config.EventsConfig) (Publisher, error) {
	switch cfg.Broker {
	case "kafka":
		return NewKafkaPublisher(DefaultKafkaProducerConfig(cfg.KafkaBrokers, cfg.KafkaTopic))
	case "rabbitmq":
		return NewRabbitMQPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange)
	case "", "none":
		return NoopPublisher{}, nil
	default:
		return nil, fmt.Errorf("unknown event broker %q", cfg.Broker)
	}
}

// PublishAsync publishes in the background. Failures are logged and never
// reach the caller.
func PublishAsync(p Publisher, event BookingEvent) {
	if p == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := p.Publish(ctx, event); err != nil {
			logger.GetDefault().ErrorWithContext(ctx, "Failed to publish booking event", err, map[string]interface{}{
				"event_id":   event.ID,
				"event_type": string(event.Type),
				"booking_id": event.BookingID,
			})
		}
	}()
}
