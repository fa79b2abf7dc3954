package audit

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"roomly/internal/reservation"
	"roomly/internal/shared/config"
)

// Producer publishes reservation lifecycle events to the audit topic. It
// implements reservation.EventPublisher; callers treat publish failures as
// log-and-continue, never as a reason to roll back an engine transition.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewProducer creates a Kafka audit producer from the service configuration
func NewProducer(cfg config.KafkaConfig) (*Producer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Retry.Max = cfg.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(cfg.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1

	// Hash partitioner keeps each room's events on one partition, in order
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Printf("📤 Kafka audit producer created successfully")
	return &Producer{
		producer: producer,
		topic:    cfg.AuditTopic,
	}, nil
}

var _ reservation.EventPublisher = (*Producer)(nil)

func (p *Producer) PublishLockAcquired(ctx context.Context, lock *reservation.Lock) error {
	return p.publish(ctx, &Event{
		ID:         uuid.New(),
		Type:       EventLockAcquired,
		LockID:     lock.ID,
		RoomID:     lock.RoomID,
		OwnerID:    lock.OwnerID,
		StartTime:  &lock.Range.Start,
		EndTime:    &lock.Range.End,
		OccurredAt: time.Now().UTC(),
	})
}

func (p *Producer) PublishLockReleased(ctx context.Context, lock *reservation.Lock) error {
	return p.publish(ctx, &Event{
		ID:         uuid.New(),
		Type:       EventLockReleased,
		LockID:     lock.ID,
		RoomID:     lock.RoomID,
		OwnerID:    lock.OwnerID,
		OccurredAt: time.Now().UTC(),
	})
}

func (p *Producer) PublishLockExpired(ctx context.Context, lock *reservation.Lock) error {
	return p.publish(ctx, &Event{
		ID:         uuid.New(),
		Type:       EventLockExpired,
		LockID:     lock.ID,
		RoomID:     lock.RoomID,
		OwnerID:    lock.OwnerID,
		StartTime:  &lock.Range.Start,
		EndTime:    &lock.Range.End,
		OccurredAt: time.Now().UTC(),
	})
}

func (p *Producer) PublishBookingConfirmed(ctx context.Context, rec *reservation.BookingRecord, lockID uuid.UUID) error {
	return p.publish(ctx, &Event{
		ID:         uuid.New(),
		Type:       EventBookingConfirmed,
		LockID:     lockID,
		BookingID:  &rec.ID,
		RoomID:     rec.RoomID,
		OwnerID:    rec.OwnerID,
		StartTime:  &rec.Range.Start,
		EndTime:    &rec.Range.End,
		OccurredAt: time.Now().UTC(),
	})
}

func (p *Producer) publish(_ context.Context, event *Event) error {
	messageBytes, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(event.GetPartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Headers:   p.createHeaders(event),
		Timestamp: event.OccurredAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send audit event to Kafka: %w", err)
	}

	log.Printf("📤 Audit event published - Topic: %s, Partition: %d, Offset: %d, Type: %s, Lock: %s",
		p.topic, partition, offset, event.Type, event.LockID)

	return nil
}

func (p *Producer) createHeaders(event *Event) []sarama.RecordHeader {
	headers := []sarama.RecordHeader{
		{Key: []byte("event_id"), Value: []byte(event.ID.String())},
		{Key: []byte("event_type"), Value: []byte(event.Type)},
		{Key: []byte("lock_id"), Value: []byte(event.LockID.String())},
		{Key: []byte("owner_id"), Value: []byte(event.OwnerID.String())},
		{Key: []byte("producer"), Value: []byte("roomly-reservations")},
		{Key: []byte("occurred_at"), Value: []byte(event.OccurredAt.Format(time.RFC3339))},
	}

	if event.BookingID != nil {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte("booking_id"),
			Value: []byte(event.BookingID.String()),
		})
	}

	return headers
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	if p.producer != nil {
		if err := p.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
		log.Printf("📤 Kafka audit producer closed")
	}
	return nil
}
