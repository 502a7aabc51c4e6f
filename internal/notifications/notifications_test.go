package notifications

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"drivehub/internal/shared/config"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingEventJSON(t *testing.T) {
	event := NewBookingEvent(EventBookingApproved, 7, 3, "jane@example.com", "Jane Doe", "APPROVED", 140)

	body, err := event.ToJSON()
	require.NoError(t, err)
	for _, key := range []string{`"bookingId":7`, `"carId":3`, `"type":"approved"`, `"fullName":"Jane Doe"`, `"totalAmount":140`, `"occurredAt"`} {
		assert.Contains(t, string(body), key)
	}

	decoded, err := DecodeBookingEvent(body)
	require.NoError(t, err)
	assert.Equal(t, event.ID, decoded.ID)
	assert.Equal(t, "booking.approved", decoded.RoutingKey())
	assert.Equal(t, "booking-7", decoded.PartitionKey())
}

func TestDecodeBookingEventRejectsBadPayloads(t *testing.T) {
	_, err := DecodeBookingEvent([]byte("not json"))
	assert.Error(t, err)

	_, err = DecodeBookingEvent([]byte(`{"type":"exploded","email":"a@b.c"}`))
	assert.Error(t, err)

	_, err = DecodeBookingEvent([]byte(`{"type":"created"}`))
	assert.Error(t, err)
}

func TestNewPublisher(t *testing.T) {
	p, err := NewPublisher(config.EventsConfig{Broker: "none"})
	require.NoError(t, err)
	assert.IsType(t, NoopPublisher{}, p)

	_, err = NewPublisher(config.EventsConfig{Broker: "carrier-pigeon"})
	assert.Error(t, err)
}

func TestKafkaPublisher(t *testing.T) {
	cfg := mocks.NewTestConfig()
	cfg.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, cfg)

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "booking-events" {
			return errors.New("unexpected topic " + msg.Topic)
		}
		key, _ := msg.Key.Encode()
		if string(key) != "booking-12" {
			return errors.New("unexpected key " + string(key))
		}
		return nil
	})

	publisher := newKafkaPublisher(producer, "booking-events")
	event := NewBookingEvent(EventBookingCreated, 12, 1, "a@b.c", "A B", "PENDING", 90)
	require.NoError(t, publisher.Publish(context.Background(), event))
	require.NoError(t, publisher.Close())
}

func TestKafkaPublisherFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher := newKafkaPublisher(producer, "booking-events")
	err := publisher.Publish(context.Background(), NewBookingEvent(EventBookingCreated, 1, 1, "a@b.c", "A", "PENDING", 1))
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, publisher.Close())
}

type flakyMailer struct {
	failures int
	calls    int
	last     BookingEvent
}

func (m *flakyMailer) SendBookingEvent(_ context.Context, event BookingEvent) error {
	m.calls++
	m.last = event
	if m.calls <= m.failures {
		return errors.New("smtp unavailable")
	}
	return nil
}

func (m *flakyMailer) SendHTML(context.Context, string, string, string, string) error { return nil }

func TestEventHandlerRetries(t *testing.T) {
	body, err := NewBookingEvent(EventBookingCompleted, 5, 2, "x@y.z", "X", "COMPLETED", 50).ToJSON()
	require.NoError(t, err)

	mailer := &flakyMailer{failures: 2}
	handler := NewEventHandler(mailer, 3, time.Millisecond)
	require.NoError(t, handler.Handle(context.Background(), body))
	assert.Equal(t, 3, mailer.calls)
	assert.Equal(t, uint(5), mailer.last.BookingID)

	mailer = &flakyMailer{failures: 10}
	handler = NewEventHandler(mailer, 1, time.Millisecond)
	assert.Error(t, handler.Handle(context.Background(), body))
	assert.Equal(t, 2, mailer.calls)
}

func TestRenderBookingEmail(t *testing.T) {
	subject, htmlBody, textBody := renderBookingEmail(NewBookingEvent(EventBookingRejected, 9, 4, "r@s.t", "Rita", "REJECTED", 75.5))

	assert.Equal(t, "Booking #9 rejected", subject)
	assert.Contains(t, htmlBody, "Hi Rita")
	assert.Contains(t, textBody, "$75.50")
	assert.True(t, strings.HasPrefix(textBody, "Hi Rita,"))
}

func TestBuildMessageHeaders(t *testing.T) {
	s := NewSMTPEmailService(&SMTPConfig{FromEmail: "noreply@drivehub.com", FromName: "DriveHub"})
	msg := string(s.buildMessage("c@d.e", "Hello", "<p>hi</p>", "hi"))

	assert.Contains(t, msg, "From: DriveHub <noreply@drivehub.com>\r\n")
	assert.Contains(t, msg, "Subject: Hello\r\n")
	assert.Contains(t, msg, "Content-Type: text/plain; charset=UTF-8")
	assert.Contains(t, msg, "Content-Type: text/html; charset=UTF-8")
}
