package events

import (
	"context"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
)

// AMQP publishes each topic to a durable queue of the same name on the
// default exchange.
type AMQP struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	declared map[string]bool
}

func NewAMQP(url string) (*AMQP, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &AMQP{conn: conn, ch: ch, declared: map[string]bool{}}, nil
}

func (a *AMQP) Publish(ctx context.Context, topic, key string, payload any) (err error) {
	defer func() { observability.ObservePublish("amqp", topic, err) }()

	body, err := encode(topic, key, payload)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.declared[topic] {
		if _, err := a.ch.QueueDeclare(topic, true, false, false, false, nil); err != nil {
			log.Error().Err(err).Str("queue", topic).Msg("rabbitmq: queue declare failed")
			return err
		}
		a.declared[topic] = true
	}

	return a.ch.PublishWithContext(ctx, "", topic, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    key,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

func (a *AMQP) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ch != nil {
		_ = a.ch.Close()
	}
	if a.conn != nil {
		return a.conn.Close()
	}
	return nil
}
