package repository

import (
	"context"

	"LiskPredict/internal/domain/models"
	"LiskPredict/internal/domain/repository"
	pkgkafka "LiskPredict/pkg/kafka"
)

// KafkaPublisher emits predictions to the broker, keyed by symbol so a
// symbol's predictions stay ordered within one partition. It also serves
// the log digest shipper via PublishMessage.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPublisher creates a Kafka-backed prediction publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, pred *models.Prediction) error {
	return p.producer.Publish(ctx, p.topic, []byte(pred.Symbol), pred)
}

// PublishMessage sends an arbitrary payload to an explicit topic.
func (p *KafkaPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return p.producer.Publish(ctx, topic, nil, payload)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

var _ repository.Publisher = (*KafkaPublisher)(nil)
