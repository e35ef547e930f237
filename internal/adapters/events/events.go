// Package events publishes domain events to a message broker.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
)

// Envelope is the wire shape of every event.
type Envelope struct {
	Topic      string    `json:"topic"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

func encode(topic, key string, payload any) ([]byte, error) {
	b, err := json.Marshal(Envelope{Topic: topic, Key: key, OccurredAt: time.Now().UTC(), Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("encode %s event: %w", topic, err)
	}
	return b, nil
}

// Noop drops events. It is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(ctx context.Context, topic, key string, _ any) error {
	log.Debug().Str("topic", topic).Str("key", key).Msg("event dropped (no broker)")
	observability.ObservePublish("none", topic, nil)
	return nil
}

func (Noop) Close() error { return nil }

// Publisher is what cmd/api wires into the app services.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload any) error
	Close() error
}

// New picks a publisher by driver name: none, amqp or kafka.
func New(driver, amqpURL string, kafkaBrokers []string) (Publisher, error) {
	switch strings.ToLower(driver) {
	case "", "none":
		return Noop{}, nil
	case "amqp":
		return NewAMQP(amqpURL)
	case "kafka":
		return NewKafka(kafkaBrokers, nil)
	default:
		return nil, fmt.Errorf("unknown events driver %q", driver)
	}
}
