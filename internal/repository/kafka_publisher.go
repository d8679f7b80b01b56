package repository

import (
	"context"
	"time"

	"FundRadar/internal/domain/models"
	drepo "FundRadar/internal/domain/repository"
	pkgkafka "FundRadar/pkg/kafka"
)

// KafkaPublisher emits each completed snapshot as one Kafka message keyed
// by the cycle timestamp.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) PublishSnapshot(ctx context.Context, snap *models.Snapshot) error {
	key := []byte(snap.Timestamp.Format(time.RFC3339))
	return p.producer.Publish(ctx, p.topic, key, snap)
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

var _ drepo.Publisher = (*KafkaPublisher)(nil)
