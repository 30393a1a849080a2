// Package messaging publishes OrderConfirmed/OrderFailed domain events
// after the fulfillment transaction commits, built on the
// shared/infra/messaging.MessageHandler abstraction. This is a downstream
// notification side channel, not the admission queue — RabbitMQ is never
// the order-intake path itself, so the worker publishes fire-and-forget,
// post-commit, never blocking the status store write on it.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"flashsale/internal/flashsale/domain/model"
	sharedmessaging "flashsale/shared/infra/messaging"
)

// EventPublisher is the port the Queue Worker depends on.
type EventPublisher interface {
	PublishOrderConfirmed(ctx context.Context, order *model.Order)
	PublishOrderFailed(ctx context.Context, orderID uuid.UUID, reason string)
}

// EventMessage is the wire envelope published for both event types.
type EventMessage struct {
	EventID     string                 `json:"event_id"`
	EventType   string                 `json:"event_type"`
	AggregateID string                 `json:"aggregate_id"`
	OccurredAt  time.Time              `json:"occurred_at"`
	EventData   map[string]interface{} `json:"event_data"`
	MessageID   string                 `json:"message_id"`
	Source      string                 `json:"source"`
}

// RabbitMQPublisher implements EventPublisher over the shared MessageHandler.
type RabbitMQPublisher struct {
	handler  sharedmessaging.MessageHandler
	exchange string
	log      *zap.Logger
}

func NewRabbitMQPublisher(handler sharedmessaging.MessageHandler, exchange string, log *zap.Logger) *RabbitMQPublisher {
	if exchange == "" {
		exchange = "flashsale.events"
	}
	return &RabbitMQPublisher{handler: handler, exchange: exchange, log: log}
}

func (p *RabbitMQPublisher) PublishOrderConfirmed(ctx context.Context, order *model.Order) {
	msg := EventMessage{
		EventID:     uuid.NewString(),
		EventType:   "OrderConfirmed",
		AggregateID: order.ID.String(),
		OccurredAt:  time.Now(),
		EventData: map[string]interface{}{
			"order_id":      order.ID,
			"user_id":       order.UserID,
			"flash_sale_id": order.FlashSaleID,
			"quantity":      order.Quantity,
			"status":        order.Status,
		},
		Source: "flashsale.worker",
	}
	p.publish(ctx, "orders.confirmed", msg)
}

func (p *RabbitMQPublisher) PublishOrderFailed(ctx context.Context, orderID uuid.UUID, reason string) {
	msg := EventMessage{
		EventID:     uuid.NewString(),
		EventType:   "OrderFailed",
		AggregateID: orderID.String(),
		OccurredAt:  time.Now(),
		EventData: map[string]interface{}{
			"order_id": orderID,
			"reason":   reason,
		},
		Source: "flashsale.worker",
	}
	p.publish(ctx, "orders.failed", msg)
}

func (p *RabbitMQPublisher) publish(ctx context.Context, queueName string, msg EventMessage) {
	msg.MessageID = fmt.Sprintf("%s-%d", msg.EventID, time.Now().UnixNano())

	body, err := json.Marshal(msg)
	if err != nil {
		p.log.Error("failed to marshal event", zap.Error(err), zap.String("event_type", msg.EventType))
		return
	}

	if err := p.handler.Publish(ctx, queueName, body); err != nil {
		p.log.Warn("failed to publish event, dropping (post-commit side channel, non-critical)",
			zap.Error(err), zap.String("event_type", msg.EventType), zap.String("queue", queueName))
	}
}

// NoopPublisher is wired when RABBITMQ_URL is unset — post-commit events
// are an enrichment, not a pipeline dependency.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderConfirmed(context.Context, *model.Order)   {}
func (NoopPublisher) PublishOrderFailed(context.Context, uuid.UUID, string) {}
