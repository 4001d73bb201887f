// Package events publishes order lifecycle events to Kafka. A nil Publisher
// is valid and drops everything, so the broker stays optional.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/spoonful/spoonful-backend/pkg/models"
)

const (
	TopicOrderCreated = "order-created"
	TopicOrderPaid    = "order-paid"
)

type Publisher struct {
	created *kafka.Writer
	paid    *kafka.Writer
}

// NewPublisher wires writers for the order topics. Returns nil when no
// brokers are configured.
func NewPublisher(brokers []string) *Publisher {
	if len(brokers) == 0 {
		return nil
	}
	return &Publisher{
		created: newWriter(brokers, TopicOrderCreated),
		paid:    newWriter(brokers, TopicOrderPaid),
	}
}

func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
}

func (p *Publisher) OrderCreated(ctx context.Context, order *models.Order) {
	if p == nil {
		return
	}
	p.publish(ctx, p.created, order)
}

func (p *Publisher) OrderPaid(ctx context.Context, order *models.Order) {
	if p == nil {
		return
	}
	p.publish(ctx, p.paid, order)
}

// publish is fire-and-forget: a broker outage must not fail the request that
// already committed its state change.
func (p *Publisher) publish(ctx context.Context, w *kafka.Writer, order *models.Order) {
	value, err := json.Marshal(order)
	if err != nil {
		logrus.WithError(err).Error("events: failed to marshal order")
		return
	}

	msg := kafka.Message{
		Key:   []byte(order.ID.Hex()),
		Value: value,
		Time:  time.Now(),
	}
	if err := w.WriteMessages(ctx, msg); err != nil {
		logrus.WithFields(logrus.Fields{
			"topic":    w.Topic,
			"order_id": order.ID.Hex(),
		}).WithError(err).Error("events: failed to publish")
	}
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	_ = p.created.Close()
	_ = p.paid.Close()
}
