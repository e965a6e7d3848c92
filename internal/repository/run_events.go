package repository

import (
	"context"
	"fmt"

	"WorldSim/internal/domain/models"
	pkgkafka "WorldSim/pkg/kafka"
)

// RunEvents publishes run-completed records for the ops pipeline. Publishing
// is fire-and-forget: a failure is logged by the caller and never fails the
// analysis response.
type RunEvents interface {
	Publish(ctx context.Context, event models.RunEvent) error
	Close() error
}

// KafkaRunEvents publishes run events to a Kafka topic, keyed by tick range
// so events for the same window land on one partition in order.
type KafkaRunEvents struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaRunEvents creates a Kafka-backed run event publisher.
func NewKafkaRunEvents(producer *pkgkafka.Producer, topic string) RunEvents {
	return &KafkaRunEvents{producer: producer, topic: topic}
}

func (p *KafkaRunEvents) Publish(ctx context.Context, event models.RunEvent) error {
	key := []byte(fmt.Sprintf("%d:%d", event.TickStart, event.TickEnd))
	if err := p.producer.Publish(ctx, p.topic, key, event); err != nil {
		return fmt.Errorf("publish run event: %w", err)
	}
	return nil
}

func (p *KafkaRunEvents) Close() error {
	return p.producer.Close()
}
