package events

import (
	"context"

	"github.com/IBM/sarama"

	"hotel_booking/internal/adapters/observability"
)

type Kafka struct {
	sync sarama.SyncProducer
}

func NewKafka(brokers []string, cfg *sarama.Config) (*Kafka, error) {
	if cfg == nil {
		cfg = sarama.NewConfig()
		cfg.Version = sarama.V2_1_0_0
	}
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Producer.Return.Successes = true
	cfg.Net.MaxOpenRequests = 1
	sp, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return NewKafkaFromProducer(sp), nil
}

func NewKafkaFromProducer(sp sarama.SyncProducer) *Kafka { return &Kafka{sync: sp} }

func (k *Kafka) Publish(ctx context.Context, topic, key string, payload any) (err error) {
	defer func() { observability.ObservePublish("kafka", topic, err) }()

	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := encode(topic, key, payload)
	if err != nil {
		return err
	}
	_, _, err = k.sync.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte("content-type"), Value: []byte("application/json")},
		},
	})
	return err
}

func (k *Kafka) Close() error {
	if k.sync == nil {
		return nil
	}
	return k.sync.Close()
}
