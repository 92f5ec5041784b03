// Package rabbitmq publishes outbox messages to a topic exchange. The routing
// key is the event name, so consumers bind with patterns such as "order.*".
package rabbitmq

import (
	"context"
	"fmt"
	"sync"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

const contentType = "application/json"

var _ ports.EventPublisher = (*Publisher)(nil)

// Publisher owns one connection and one channel in confirm mode. Publish
// waits for the broker ack, so a message is marked published only once
// RabbitMQ has taken responsibility for it.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	mu       sync.Mutex
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	if url == "" {
		return nil, errs.NewValueIsRequiredError("url")
	}
	if exchange == "" {
		return nil, errs.NewValueIsRequiredError("exchange")
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err = ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err = ch.Confirm(false); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &Publisher{conn: conn, channel: ch, exchange: exchange}, nil
}

func (p *Publisher) Publish(ctx context.Context, message ports.OutboxMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	confirmation, err := p.channel.PublishWithDeferredConfirmWithContext(
		ctx,
		p.exchange,
		message.EventName,
		false, // mandatory
		false, // immediate
		newPublishing(message),
	)
	if err != nil {
		return err
	}

	acked, err := confirmation.WaitContext(ctx)
	if err != nil {
		return err
	}
	if !acked {
		return fmt.Errorf("broker nacked message %s", message.ID)
	}
	return nil
}

func (p *Publisher) Close() error {
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			_ = p.conn.Close()
			return err
		}
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

func newPublishing(message ports.OutboxMessage) amqp.Publishing {
	return amqp.Publishing{
		ContentType:  contentType,
		DeliveryMode: amqp.Persistent,
		MessageId:    message.ID.String(),
		Timestamp:    message.OccurredAt,
		Type:         message.EventName,
		Headers: amqp.Table{
			"aggregate_id": message.AggregateID.String(),
		},
		Body: message.Payload,
	}
}
