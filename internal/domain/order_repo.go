package domain

import (
	"context"
	"time"
)

// OrderUpdate is a partial order record. Only the fields a transition
// writes are set; the repository builds the conditional write from the
// target Status plus the expected ProductID/Namespace/RedeemCode, so the
// guard and the mutation land as one atomic statement.
type OrderUpdate struct {
	OrderID   string
	Status    OrderStatus // target status, selects the storage guard
	ProductID string
	Namespace string

	// Activation fields.
	ActivatedAt *time.Time
	ActivatedBy string
	Tags        []string

	// RedeemCode is written on activate and asserted on redeem.
	RedeemCode string

	// Redemption fields.
	RedeemedAt  *time.Time
	AccessToken string

	// Void fields.
	VoidedAt *time.Time
	VoidedBy string

	// Return fields.
	ReturnedAt *time.Time
	ReturnedBy string

	ExpiredAt *time.Time
	UpdatedAt time.Time
}

// DateRange bounds a timestamp filter; either side may be nil.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// OrderFilters narrows the unbounded report listing. Tag filtering is
// contains-all: every listed tag must be present on the order.
type OrderFilters struct {
	Namespace      string
	UserBrowser    string
	UserOS         string
	UserDeviceType string
	Status         OrderStatus

	ActivatedBy string
	VoidedBy    string
	ReturnedBy  string
	Tags        []string

	CreatedAt   *DateRange
	ActivatedAt *DateRange
	RedeemedAt  *DateRange
	VoidedAt    *DateRange
	ReturnedAt  *DateRange
	ExpiredAt   *DateRange
	UpdatedAt   *DateRange
}

// OrderPage is one page of a cursor-resumable listing. NextCursor is an
// opaque string clients replay verbatim; it is only set when HasNextPage.
type OrderPage struct {
	Items       []*Order
	NextCursor  string
	HasNextPage bool
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *Order) error
	GetOrderByID(ctx context.Context, orderID string) (*Order, error)

	// UpdateOrder applies the partial update iff the transition guard
	// derived from update.Status still holds at write time. A failed guard
	// returns the transition's conflict sentinel; no partial mutation is
	// ever visible.
	UpdateOrder(ctx context.Context, update *OrderUpdate) (*Order, error)

	// PageByServiceTypeID returns orders of one owning live sight in
	// descending creation order, resumable via the opaque cursor.
	PageByServiceTypeID(ctx context.Context, serviceTypeID string, startDate, endDate *time.Time, pageSize int, cursor string) (*OrderPage, error)

	// ListByServiceTypeID scans all matching orders for reporting, paging
	// internally in large fixed-size batches until exhausted.
	ListByServiceTypeID(ctx context.Context, serviceTypeID string, filters *OrderFilters) ([]*Order, error)

	// PruneExpired deletes records whose storage TTL has passed. Storage
	// housekeeping only, never part of the business lifecycle.
	PruneExpired(ctx context.Context, now time.Time) (int64, error)
}
