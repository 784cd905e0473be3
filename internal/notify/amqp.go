// Package notify publishes renewal-reminder events to an AMQP broker.
// Publishing is optional: a nil *Publisher is a no-op, so the service runs
// without a broker configured.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// Publisher publishes reminder events to a durable direct exchange.
type Publisher struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
}

// NewPublisher connects to the broker and declares the exchange and queue.
func NewPublisher(url, exchangeName, queueName string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p := &Publisher{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
	}
	if err := p.setup(); err != nil {
		p.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}
	return p, nil
}

func (p *Publisher) setup() error {
	err := p.channel.ExchangeDeclare(
		p.exchangeName,
		"direct",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = p.channel.QueueDeclare(
		p.queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	// Routing key matches the queue name on a direct exchange.
	err = p.channel.QueueBind(p.queueName, p.queueName, p.exchangeName, false, nil)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

// PublishReminder publishes a renewal reminder event. A nil publisher drops
// the event silently.
func (p *Publisher) PublishReminder(ctx context.Context, event *ReminderEvent) error {
	if p == nil {
		return nil
	}

	body, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchangeName,
		p.queueName,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	slog.InfoContext(ctx, "Published renewal reminder",
		"subscription_id", event.SubscriptionID,
		"days_until", event.DaysUntil,
		"exchange", p.exchangeName,
		"queue", p.queueName)
	return nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
