package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer handles publishing events to Kafka
type Producer struct {
	writer messageWriter
	topic  string
	now    func() time.Time
}

// NewProducer creates a new Kafka producer
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
	return newProducer(writer, topic)
}

func newProducer(w messageWriter, topic string) *Producer {
	return &Producer{writer: w, topic: topic, now: time.Now}
}

// Topic returns the topic messages are written to.
func (p *Producer) Topic() string { return p.topic }

// PublishAlertCrossed publishes a target crossing keyed by symbol.
func (p *Producer) PublishAlertCrossed(ctx context.Context, e AlertCrossed) error {
	return p.publish(ctx, TypeAlertCrossed, e.Symbol, e)
}

// PublishEmailRequested publishes an email request keyed by user id.
func (p *Producer) PublishEmailRequested(ctx context.Context, e EmailRequested) error {
	return p.publish(ctx, TypeEmailRequested, e.UserID, e)
}

func (p *Producer) publish(ctx context.Context, eventType, key string, payload any) error {
	data, err := json.Marshal(Envelope{
		EventType: eventType,
		Key:       key,
		Payload:   payload,
		Timestamp: p.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}
	return nil
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	return p.writer.Close()
}
