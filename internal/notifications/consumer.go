package notifications

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/IBM/sarama"
)

type NotificationConsumer interface {
	Start(ctx context.Context, numWorkers int) error
	Stop() error
}

type ConsumerConfig struct {
	Brokers              []string
	GroupID              string
	Topics               []string
	SessionTimeoutMs     int
	HeartbeatMs          int
	MaxProcessingTime    time.Duration
	OffsetOldest         bool
	MaxRetries           int
	RetryBackoffDuration time.Duration
}

func DefaultConsumerConfig(brokers []string, groupID, topic string) *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:              brokers,
		GroupID:              groupID,
		Topics:               []string{topic},
		SessionTimeoutMs:     30000,
		HeartbeatMs:          3000,
		MaxProcessingTime:    time.Minute,
		OffsetOldest:         false,
		MaxRetries:           3,
		RetryBackoffDuration: time.Second,
	}
}

// KafkaNotificationConsumer reads booking events and emails customers
type KafkaNotificationConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	emailService  EmailService
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

func NewKafkaNotificationConsumer(config *ConsumerConfig, emailService EmailService) (*KafkaNotificationConsumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	saramaConfig.Consumer.Group.Heartbeat.Interval = time.Duration(config.HeartbeatMs) * time.Millisecond
	saramaConfig.Consumer.MaxProcessingTime = config.MaxProcessingTime
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = time.Second

	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &KafkaNotificationConsumer{
		consumerGroup: consumerGroup,
		config:        config,
		emailService:  emailService,
	}, nil
}

// Start launches the workers and returns immediately
func (knc *KafkaNotificationConsumer) Start(ctx context.Context, numWorkers int) error {
	if numWorkers < 1 {
		numWorkers = 1
	}
	ctx, knc.cancel = context.WithCancel(ctx)

	log.Printf("📥 Starting %d booking event consumer workers for topics: %v", numWorkers, knc.config.Topics)

	go knc.handleErrors()

	for i := 0; i < numWorkers; i++ {
		knc.wg.Add(1)
		go func(workerID int) {
			defer knc.wg.Done()
			knc.runWorker(ctx, workerID)
		}(i)
	}
	return nil
}

func (knc *KafkaNotificationConsumer) runWorker(ctx context.Context, workerID int) {
	handler := &ConsumerGroupHandler{
		workerID: workerID,
		handler:  NewEventHandler(knc.emailService, knc.config.MaxRetries, knc.config.RetryBackoffDuration),
	}

	for {
		if err := knc.consumerGroup.Consume(ctx, knc.config.Topics, handler); err != nil {
			if err == sarama.ErrClosedConsumerGroup {
				return
			}
			log.Printf("📥 Worker %d error consuming messages: %v", workerID, err)
			time.Sleep(time.Second)
		}
		if ctx.Err() != nil {
			log.Printf("📥 Worker %d shutting down", workerID)
			return
		}
	}
}

func (knc *KafkaNotificationConsumer) handleErrors() {
	for err := range knc.consumerGroup.Errors() {
		log.Printf("📥 Consumer group error: %v", err)
	}
}

func (knc *KafkaNotificationConsumer) Stop() error {
	log.Println("📥 Stopping booking event consumer...")
	if knc.cancel != nil {
		knc.cancel()
	}
	knc.wg.Wait()

	if err := knc.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	log.Println("📥 Booking event consumer stopped")
	return nil
}

// ConsumerGroupHandler adapts EventHandler to sarama
type ConsumerGroupHandler struct {
	workerID int
	handler  *EventHandler
}

func (h *ConsumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Printf("📥 Worker %d: Consumer group session started", h.workerID)
	return nil
}

func (h *ConsumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Printf("📥 Worker %d: Consumer group session ended", h.workerID)
	return nil
}

func (h *ConsumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok || message == nil {
				return nil
			}
			if err := h.handler.Handle(session.Context(), message.Value); err != nil {
				log.Printf("📥 Worker %d: Error processing message at offset %d: %v", h.workerID, message.Offset, err)
			}
			// Undeliverable events are not redelivered forever
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

// EventHandler decodes one event and sends its email with retries
type EventHandler struct {
	emailService EmailService
	maxRetries   int
	backoff      time.Duration
}

func NewEventHandler(emailService EmailService, maxRetries int, backoff time.Duration) *EventHandler {
	return &EventHandler{emailService: emailService, maxRetries: maxRetries, backoff: backoff}
}

func (h *EventHandler) Handle(ctx context.Context, payload []byte) error {
	event, err := DecodeBookingEvent(payload)
	if err != nil {
		return err
	}

	for attempt := 0; attempt <= h.maxRetries; attempt++ {
		err = h.emailService.SendBookingEvent(ctx, event)
		if err == nil {
			if attempt > 0 {
				log.Printf("📥 Booking event %s delivered after %d retries", event.ID, attempt)
			}
			return nil
		}
		if attempt == h.maxRetries {
			break
		}

		// Exponential backoff
		delay := h.backoff * time.Duration(1<<attempt)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("failed to email booking event %s after %d attempts: %w", event.ID, h.maxRetries+1, err)
}
