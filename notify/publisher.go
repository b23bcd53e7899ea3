package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const RoutingKeyOrderPlaced = "orders.placed"

// Publisher sends order messages to a RabbitMQ topic exchange with
// publisher confirms. Each publish waits on its own deferred confirmation,
// matched by delivery tag, so an abandoned wait cannot shift later acks.
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	mu       sync.Mutex
}

func Dial(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *Publisher) Notify(ctx context.Context, msg OrderMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal order message: %w", err)
	}

	p.mu.Lock()
	confirm, err := p.ch.PublishWithDeferredConfirmWithContext(ctx, p.exchange, RoutingKeyOrderPlaced, false, false, amqp.Publishing{
		DeliveryMode:  amqp.Persistent,
		ContentType:   "application/json",
		CorrelationId: msg.OrderID,
		Timestamp:     time.Now().UTC(),
		Headers:       amqp.Table{"x-source": "cafe-ordering"},
		Body:          body,
	})
	p.mu.Unlock()
	if err != nil {
		return err
	}
	if confirm == nil {
		return errors.New("channel is not in confirm mode")
	}
	return waitConfirm(ctx, confirm)
}

type confirmation interface {
	WaitContext(ctx context.Context) (bool, error)
}

func waitConfirm(ctx context.Context, c confirmation) error {
	ack, err := c.WaitContext(ctx)
	if err != nil {
		return err
	}
	if !ack {
		return errors.New("publish NACK from broker")
	}
	return nil
}

func (p *Publisher) Close() error {
	var errs []error
	if p.ch != nil {
		errs = append(errs, p.ch.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}
