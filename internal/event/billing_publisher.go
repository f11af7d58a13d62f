package event

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync/atomic"
	"time"

	"backoffice-service/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

const BillingEventsQueue = "billing_events"

const (
	EventPolicyCancelled = "policy.cancelled"
	EventPaymentIssued   = "payment.issued"
)

// BillingEvent is the message emitted for each billing run outcome.
type BillingEvent struct {
	Type       string     `json:"type"`
	PolicyID   string     `json:"policy_id"`
	PaymentID  *string    `json:"payment_id,omitempty"`
	Amount     *float64   `json:"amount,omitempty"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// BillingPublisher pushes billing run outcomes onto the billing_events
// queue. Publish failures are logged and swallowed so a broker outage never
// rolls back an already committed billing run.
type BillingPublisher struct {
	conn              *RabbitMQConnection
	messagesPublished atomic.Int64
	messagesFailed    atomic.Int64
}

func NewBillingPublisher(conn *RabbitMQConnection) *BillingPublisher {
	return &BillingPublisher{conn: conn}
}

func (p *BillingPublisher) PolicyCancelled(ctx context.Context, policy models.Policy) {
	p.publish(ctx, BillingEvent{
		Type:       EventPolicyCancelled,
		PolicyID:   policy.ID.String(),
		OccurredAt: time.Now(),
	})
}

func (p *BillingPublisher) PaymentIssued(ctx context.Context, policy models.Policy, payment models.Payment) {
	paymentID := payment.ID.String()
	amount := payment.Amount
	p.publish(ctx, BillingEvent{
		Type:       EventPaymentIssued,
		PolicyID:   policy.ID.String(),
		PaymentID:  &paymentID,
		Amount:     &amount,
		ValidUntil: policy.ValidUntil,
		OccurredAt: time.Now(),
	})
}

func (p *BillingPublisher) publish(ctx context.Context, event BillingEvent) {
	if _, err := p.conn.Channel.QueueDeclare(
		BillingEventsQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		p.messagesFailed.Add(1)
		slog.Error("failed to declare billing queue", "error", err)
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.messagesFailed.Add(1)
		slog.Error("failed to marshal billing event", "error", err)
		return
	}

	err = p.conn.Channel.PublishWithContext(
		ctx,
		"",
		BillingEventsQueue,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		p.messagesFailed.Add(1)
		slog.Error("failed to publish billing event", "type", event.Type, "policy_id", event.PolicyID, "error", err)
		return
	}

	p.messagesPublished.Add(1)
	slog.Info("billing event published", "type", event.Type, "policy_id", event.PolicyID)
}

func (p *BillingPublisher) Metrics() map[string]any {
	return map[string]any{
		"messages_published": p.messagesPublished.Load(),
		"messages_failed":    p.messagesFailed.Load(),
		"queue":              BillingEventsQueue,
	}
}
