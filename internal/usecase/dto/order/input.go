package order

import (
	"time"

	"github.com/arplanets/livesight-order-service/internal/domain"
)

// ClientInfo is the request metadata captured once at creation.
type ClientInfo struct {
	Browser    string
	OS         string
	DeviceType string
}

type CreateOrderInput struct {
	ProductID  string
	Namespace  string
	AuthType   string
	AuthTypeID string
	Salt       string
	ClientInfo ClientInfo
}

type GetOrderStatusInput struct {
	ProductID string
	OrderID   string
	Salt      string
}

type GetOrderInput struct {
	ProductID string
	OrgID     string
	Namespace string
	OrderID   string
}

type ActivateOrderInput struct {
	ProductID string
	OrgID     string
	Namespace string
	OrderID   string
	Tags      []string
	StaffID   string
}

type RedeemOrderInput struct {
	ProductID  string
	OrderID    string
	RedeemCode string
}

type VoidOrderInput struct {
	ProductID string
	OrgID     string
	Namespace string
	OrderID   string
	StaffID   string
}

type ReturnOrderInput struct {
	ProductID string
	OrgID     string
	Namespace string
	OrderID   string
	StaffID   string
}

type ListOrdersInput struct {
	ProductID string
	OrgID     string
	Namespace string
	StartDate *time.Time
	EndDate   *time.Time
	PageSize  int
	Cursor    string
}

type ReportOrdersInput struct {
	ProductID string
	OrgID     string
	Namespace string
	Filters   *domain.OrderFilters
}
