package domain

import "context"

// OwnershipChecker answers whether an organization owns a live sight.
// Implemented against the org service; the order core only consumes it.
type OwnershipChecker interface {
	Verify(ctx context.Context, orgID, liveSightID string) (bool, error)
}

// Notifier pushes an order state change to the device topic. Fire and
// forget: a failed publish is logged by the implementation and never
// affects the order record.
type Notifier interface {
	PublishOrderEvent(ctx context.Context, event OrderEvent) error
}

// OrderEvent mirrors the device-facing payload published on activate,
// void and return. Action is "active" for activation and "revoke" for
// everything that ends access.
type OrderEvent struct {
	Action    string      `json:"action"`
	OrderID   string      `json:"order_id"`
	Namespace string      `json:"namespace"`
	ProductID string      `json:"product_id"`
	Status    OrderStatus `json:"order_status"`
	Tags      []string    `json:"tags,omitempty"`
	ExpiredAt string      `json:"expired_at,omitempty"`
}

const (
	EventActionActive = "active"
	EventActionRevoke = "revoke"
)

// AuditSink records a post-transition order snapshot. Implementations
// queue and flush in batches; Record never blocks the caller beyond a
// bounded enqueue.
type AuditSink interface {
	Record(ctx context.Context, snapshot AuditSnapshot)
}

// AuditSnapshot captures what an operation did to an order.
type AuditSnapshot struct {
	Operation string      `json:"operation"`
	OrderID   string      `json:"order_id"`
	Status    OrderStatus `json:"order_status"`
	ActorID   string      `json:"actor_id,omitempty"`
	Outcome   string      `json:"outcome"`
	At        string      `json:"at"`
}
