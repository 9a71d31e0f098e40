package kafka

import (
	"time"

	"github.com/arplanets/livesight-order-service/internal/domain"
)

// orderEventMessage is the wire payload for device-facing order events.
// The message key carries the topic action path ("active/<id>" or
// "revoke/<id>") so downstream routers can fan out without decoding the
// body.
type orderEventMessage struct {
	Action    string   `json:"action"`
	OrderID   string   `json:"order_id"`
	Namespace string   `json:"namespace"`
	ProductID string   `json:"product_id"`
	Status    string   `json:"order_status"`
	Tags      []string `json:"tags,omitempty"`
	ExpiredAt string   `json:"expired_at,omitempty"`
	SentAt    string   `json:"sent_at"`
}

func toOrderEventMessage(event domain.OrderEvent, sentAt time.Time) orderEventMessage {
	return orderEventMessage{
		Action:    event.Action,
		OrderID:   event.OrderID,
		Namespace: event.Namespace,
		ProductID: event.ProductID,
		Status:    string(event.Status),
		Tags:      event.Tags,
		ExpiredAt: event.ExpiredAt,
		SentAt:    sentAt.UTC().Format(time.RFC3339),
	}
}
