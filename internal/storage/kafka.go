package storage

import (
	"context"
	"encoding/json"

	"tastify/internal/domain"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher emits review change events keyed by review ID.
type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

func (p *KafkaPublisher) PublishEvent(ctx context.Context, event domain.ReviewEvent) error {
	payload, _ := json.Marshal(event)
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ReviewID),
		Value: payload,
	})
}

// MessageReader is the consuming half of the change-event topic.
// *kafka.Reader satisfies it; tests script their own.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}
