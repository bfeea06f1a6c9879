// backend/internal/adapters/out/mq/order_events_amqp.go
package mq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/TheRipper284/backend/internal/application/usecase"
)

// ExchangeName is the topic exchange carrying order lifecycle events.
const ExchangeName = "marketplace.orders"

const (
	routingKeyCreated       = "order.created"
	routingKeyStatusChanged = "order.status_changed"
)

// Publisher implements usecase.OrderEventPublisher on a RabbitMQ channel.
type Publisher struct {
	ch *amqp.Channel
}

func NewPublisher(ch *amqp.Channel) *Publisher {
	return &Publisher{ch: ch}
}

// DeclareExchange sets up the durable topic exchange. Call once at boot.
func DeclareExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		ExchangeName,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
}

func (p *Publisher) PublishOrderCreated(ctx context.Context, evt usecase.OrderCreatedEvent) error {
	return p.publish(ctx, routingKeyCreated, evt)
}

func (p *Publisher) PublishStatusChanged(ctx context.Context, evt usecase.OrderStatusChangedEvent) error {
	return p.publish(ctx, routingKeyStatusChanged, evt)
}

func (p *Publisher) publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("could not marshal %s event: %w", routingKey, err)
	}

	return p.ch.PublishWithContext(ctx,
		ExchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
