package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/meal-planner/internal/config"
	"github.com/iliyamo/meal-planner/internal/logging"
)

// Publisher sends change events. Failures are logged and returned so the
// caller can ignore them without interrupting the request.
type Publisher interface {
	Publish(ctx context.Context, ev ChangeEvent) error
}

// NewPublisher returns an AMQP publisher when the queue is enabled and a
// no-op publisher otherwise.
func NewPublisher(cfg config.QueueConfig) Publisher {
	if !cfg.Enabled {
		return Noop{}
	}
	return &AMQPPublisher{url: cfg.URL, queue: cfg.Name, timeout: cfg.DialTimeout}
}

const defaultDialTimeout = 2 * time.Second

// dial connects with a bounded TCP connect and handshake. amqp.Dial alone
// waits up to 30s on an unreachable broker.
func dial(url string, timeout time.Duration) (*amqp.Connection, error) {
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}
	return amqp.DialConfig(url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
}

// Noop discards events.
type Noop struct{}

func (Noop) Publish(context.Context, ChangeEvent) error { return nil }

// AMQPPublisher dials RabbitMQ per event. Writes are rare (dashboard
// forms), so a long-lived channel is not worth its reconnect handling.
type AMQPPublisher struct {
	url     string
	queue   string
	timeout time.Duration
}

// Publish declares the durable queue and publishes ev as a persistent
// JSON message on the default exchange.
func (p *AMQPPublisher) Publish(ctx context.Context, ev ChangeEvent) error {
	log := logging.Ctx(ctx).With().Str(logging.FieldEventID, ev.ID).Str(logging.FieldEventKind, ev.Kind).Logger()

	conn, err := dial(p.url, p.timeout)
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	if err := declare(ch, p.queue); err != nil {
		log.Warn().Err(err).Msg("rabbitmq: queue declare failed")
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq: marshal event failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.ID,
		Type:         ev.Kind,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		pub,
	); err != nil {
		log.Warn().Err(err).Msg("rabbitmq: publish failed")
		return err
	}
	log.Debug().Msg("change event published")
	return nil
}

// declare makes sure the durable queue exists (idempotent).
func declare(ch *amqp.Channel, name string) error {
	_, err := ch.QueueDeclare(
		name,  // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	return err
}
