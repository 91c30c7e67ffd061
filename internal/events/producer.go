package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// Event types published by the reservation engine
const (
	TypeBookingCreated   = "booking_created"
	TypeBookingCancelled = "booking_cancelled"
	TypeScheduleUpdated  = "schedule_updated"
)

// Producer publishes reservation events to Kafka
type Producer struct {
	writer  *kafka.Writer
	timeout time.Duration
}

// NewProducer creates a Kafka producer for the given brokers
func NewProducer(brokers []string, timeout time.Duration) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	return &Producer{writer: writer, timeout: timeout}
}

// Envelope wraps every published event with its type and timestamp
type Envelope struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// Publish sends one event to the given topic. Callers treat failures as
// non-fatal: the reservation state is already committed when an event
// is published.
func (p *Producer) Publish(ctx context.Context, topic, key string, eventType string, payload interface{}) error {
	data, err := json.Marshal(Envelope{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
	})
}

// Close closes the underlying writer
func (p *Producer) Close() error {
	return p.writer.Close()
}
