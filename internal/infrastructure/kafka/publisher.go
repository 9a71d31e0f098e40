package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/arplanets/livesight-order-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

type OrderEventPublisher struct {
	writer *kafka.Writer
}

func NewOrderEventPublisher(brokers []string, topic string) *OrderEventPublisher {
	return &OrderEventPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *OrderEventPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	now := time.Now()
	msg, err := json.Marshal(toOrderEventMessage(event, now))
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Action + "/" + event.OrderID),
		Value: msg,
		Time:  now,
	})
}

func (p *OrderEventPublisher) Close() error {
	return p.writer.Close()
}
