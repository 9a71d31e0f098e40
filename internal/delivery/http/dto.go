package http

import (
	"time"

	"github.com/arplanets/livesight-order-service/internal/domain"
)

type clientInfoRequest struct {
	Browser    string `json:"browser"`
	OS         string `json:"os"`
	DeviceType string `json:"device_type"`
}

type createOrderRequest struct {
	ProductID  string            `json:"product_id"`
	Namespace  string            `json:"namespace"`
	AuthType   string            `json:"auth_type"`
	AuthTypeID string            `json:"auth_type_id"`
	Salt       string            `json:"salt"`
	ClientInfo clientInfoRequest `json:"client_info"`
}

type orderStatusRequest struct {
	ProductID string `json:"product_id"`
	Salt      string `json:"salt"`
}

type activateOrderRequest struct {
	ProductID string   `json:"product_id"`
	OrgID     string   `json:"org_id"`
	Namespace string   `json:"namespace"`
	Tags      []string `json:"tags"`
	StaffID   string   `json:"staff_id"`
}

type redeemOrderRequest struct {
	ProductID  string `json:"product_id"`
	RedeemCode string `json:"redeem_code"`
}

type voidOrderRequest struct {
	ProductID string `json:"product_id"`
	OrgID     string `json:"org_id"`
	Namespace string `json:"namespace"`
	StaffID   string `json:"staff_id"`
}

type returnOrderRequest = voidOrderRequest

type reportOrdersRequest struct {
	ProductID string        `json:"product_id"`
	OrgID     string        `json:"org_id"`
	Namespace string        `json:"namespace"`
	Filters   reportFilters `json:"filters"`
}

type dateRange struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

type reportFilters struct {
	Namespace      string   `json:"namespace,omitempty"`
	UserBrowser    string   `json:"user_browser,omitempty"`
	UserOS         string   `json:"user_os,omitempty"`
	UserDeviceType string   `json:"user_device_type,omitempty"`
	Status         string   `json:"status,omitempty"`
	ActivatedBy    string   `json:"activated_by,omitempty"`
	VoidedBy       string   `json:"voided_by,omitempty"`
	ReturnedBy     string   `json:"returned_by,omitempty"`
	Tags           []string `json:"tags,omitempty"`

	CreatedAt   *dateRange `json:"created_at,omitempty"`
	ActivatedAt *dateRange `json:"activated_at,omitempty"`
	RedeemedAt  *dateRange `json:"redeemed_at,omitempty"`
	VoidedAt    *dateRange `json:"voided_at,omitempty"`
	ReturnedAt  *dateRange `json:"returned_at,omitempty"`
	ExpiredAt   *dateRange `json:"expired_at,omitempty"`
	UpdatedAt   *dateRange `json:"updated_at,omitempty"`
}

func (f *reportFilters) toDomain() *domain.OrderFilters {
	toRange := func(r *dateRange) *domain.DateRange {
		if r == nil {
			return nil
		}
		return &domain.DateRange{Start: r.Start, End: r.End}
	}

	return &domain.OrderFilters{
		Namespace:      f.Namespace,
		UserBrowser:    f.UserBrowser,
		UserOS:         f.UserOS,
		UserDeviceType: f.UserDeviceType,
		Status:         domain.ToOrderStatus(f.Status),

		ActivatedBy: f.ActivatedBy,
		VoidedBy:    f.VoidedBy,
		ReturnedBy:  f.ReturnedBy,
		Tags:        f.Tags,

		CreatedAt:   toRange(f.CreatedAt),
		ActivatedAt: toRange(f.ActivatedAt),
		RedeemedAt:  toRange(f.RedeemedAt),
		VoidedAt:    toRange(f.VoidedAt),
		ReturnedAt:  toRange(f.ReturnedAt),
		ExpiredAt:   toRange(f.ExpiredAt),
		UpdatedAt:   toRange(f.UpdatedAt),
	}
}

type verifyTokenRequest struct {
	AccessToken string `json:"access_token"`
}

type verifyTokenResponse struct {
	OrderID string `json:"order_id"`
}

type orderResponse struct {
	OrderID       string `json:"order_id"`
	Namespace     string `json:"namespace"`
	ProductID     string `json:"product_id"`
	ServiceType   string `json:"service_type"`
	ServiceTypeID string `json:"service_type_id"`

	AuthType   string `json:"auth_type,omitempty"`
	AuthTypeID string `json:"auth_type_id,omitempty"`

	UserBrowser    string `json:"user_browser,omitempty"`
	UserOS         string `json:"user_os,omitempty"`
	UserDeviceType string `json:"user_device_type,omitempty"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`

	ActivatedAt *time.Time `json:"activated_at,omitempty"`
	ActivatedBy string     `json:"activated_by,omitempty"`
	RedeemCode  string     `json:"redeem_code,omitempty"`
	Tags        []string   `json:"tags,omitempty"`

	RedeemedAt  *time.Time `json:"redeemed_at,omitempty"`
	AccessToken string     `json:"access_token,omitempty"`

	VoidedAt *time.Time `json:"voided_at,omitempty"`
	VoidedBy string     `json:"voided_by,omitempty"`

	ReturnedAt *time.Time `json:"returned_at,omitempty"`
	ReturnedBy string     `json:"returned_by,omitempty"`

	ExpiredAt time.Time `json:"expired_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type orderStatusResponse struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	ExpiredAt time.Time `json:"expired_at"`
}

type orderPageResponse struct {
	Items       []orderResponse `json:"items"`
	NextCursor  string          `json:"next_cursor,omitempty"`
	HasNextPage bool            `json:"has_next_page"`
}

type reportResponse struct {
	Items []orderResponse `json:"items"`
	Total int             `json:"total"`
}

func toOrderResponse(order *domain.Order) orderResponse {
	return orderResponse{
		OrderID:       order.ID,
		Namespace:     order.Namespace,
		ProductID:     order.ProductID,
		ServiceType:   order.ServiceType,
		ServiceTypeID: order.ServiceTypeID,

		AuthType:   order.AuthType,
		AuthTypeID: order.AuthTypeID,

		UserBrowser:    order.UserBrowser,
		UserOS:         order.UserOS,
		UserDeviceType: order.UserDeviceType,

		Status:    string(order.Status),
		CreatedAt: order.CreatedAt,

		ActivatedAt: order.ActivatedAt,
		ActivatedBy: order.ActivatedBy,
		RedeemCode:  order.RedeemCode,
		Tags:        order.Tags,

		RedeemedAt:  order.RedeemedAt,
		AccessToken: order.AccessToken,

		VoidedAt: order.VoidedAt,
		VoidedBy: order.VoidedBy,

		ReturnedAt: order.ReturnedAt,
		ReturnedBy: order.ReturnedBy,

		ExpiredAt: order.ExpiredAt,
		UpdatedAt: order.UpdatedAt,
	}
}

func toOrderResponses(orders []*domain.Order) []orderResponse {
	out := make([]orderResponse, len(orders))
	for i, order := range orders {
		out[i] = toOrderResponse(order)
	}
	return out
}
