package notifications

import (
	"context"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitMQPublisher publishes booking events to a topic exchange with
// publisher confirms
type RabbitMQPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	mu       sync.Mutex
}

// NewRabbitMQPublisher dials the broker and declares the exchange
func NewRabbitMQPublisher(url, exchange string) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	if err := ch.Confirm(false); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	log.Printf("📤 RabbitMQ booking event publisher ready on exchange %s", exchange)
	return &RabbitMQPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// Publish sends the event and waits for the broker confirm
func (rp *RabbitMQPublisher) Publish(ctx context.Context, event BookingEvent) error {
	body, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	// amqp channels are not safe for concurrent publishing
	rp.mu.Lock()
	confirm, err := rp.channel.PublishWithDeferredConfirmWithContext(ctx, rp.exchange, event.RoutingKey(), false, false, amqpMessage(event, body))
	rp.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to publish booking event to RabbitMQ: %w", err)
	}

	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("failed waiting for RabbitMQ confirm: %w", err)
	}
	if !acked {
		return fmt.Errorf("booking event %s was nacked by RabbitMQ", event.ID)
	}

	log.Printf("📤 Booking event published - Exchange: %s, Key: %s, Booking: %d",
		rp.exchange, event.RoutingKey(), event.BookingID)
	return nil
}

func amqpMessage(event BookingEvent, body []byte) amqp.Publishing {
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Timestamp:    event.OccurredAt,
		Type:         string(event.Type),
		AppId:        "drivehub-api",
		Body:         body,
	}
}

// Close closes the channel and connection
func (rp *RabbitMQPublisher) Close() error {
	if rp.channel != nil {
		rp.channel.Close()
	}
	if rp.conn != nil {
		if err := rp.conn.Close(); err != nil {
			return fmt.Errorf("failed to close RabbitMQ connection: %w", err)
		}
	}
	log.Printf("📤 RabbitMQ booking event publisher closed")
	return nil
}
