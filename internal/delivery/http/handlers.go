package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arplanets/livesight-order-service/internal/token"
	orderdto "github.com/arplanets/livesight-order-service/internal/usecase/dto/order"
	ordersvc "github.com/arplanets/livesight-order-service/internal/usecase/order"
)

// OrderHandler is the REST surface over the order usecase. It binds,
// validates required fields, calls the usecase and translates errors; no
// business rules live here.
type OrderHandler struct {
	uc     ordersvc.OrderUsecase
	tokens *token.Manager
	log    *slog.Logger
}

func NewOrderHandler(uc ordersvc.OrderUsecase, tokens *token.Manager, log *slog.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, tokens: tokens, log: log}
}

func (h *OrderHandler) badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Code: codeInvalidRequest, Message: message})
}

func (h *OrderHandler) domainError(c echo.Context, operation string, err error) error {
	status, resp := mapDomainError(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("order operation failed", "operation", operation, "error", err.Error())
	}
	return c.JSON(status, resp)
}

// CreateOrder handles POST /api/v1/orders.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c, "invalid request body")
	}
	if msg := requireFields(
		[]string{"product_id", "namespace", "salt"},
		map[string]string{"product_id": req.ProductID, "namespace": req.Namespace, "salt": req.Salt},
	); msg != "" {
		return h.badRequest(c, msg)
	}

	order, err := h.uc.CreateOrder(c.Request().Context(), &orderdto.CreateOrderInput{
		ProductID:  req.ProductID,
		Namespace:  req.Namespace,
		AuthType:   req.AuthType,
		AuthTypeID: req.AuthTypeID,
		Salt:       req.Salt,
		ClientInfo: orderdto.ClientInfo{
			Browser:    req.ClientInfo.Browser,
			OS:         req.ClientInfo.OS,
			DeviceType: req.ClientInfo.DeviceType,
		},
	})
	if err != nil {
		return h.domainError(c, "create", err)
	}
	return c.JSON(http.StatusCreated, toOrderResponse(order))
}

// GetOrderStatus handles POST /api/v1/orders/:id/status. A POST so the
// salt travels in the body, never in a URL or access log.
func (h *OrderHandler) GetOrderStatus(c echo.Context) error {
	var req orderStatusRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c, "invalid request body")
	}
	orderID := c.Param("id")
	if msg := requireFields(
		[]string{"order_id", "product_id", "salt"},
		map[string]string{"order_id": orderID, "product_id": req.ProductID, "salt": req.Salt},
	); msg != "" {
		return h.badRequest(c, msg)
	}

	order, err := h.uc.GetOrderStatus(c.Request().Context(), &orderdto.GetOrderStatusInput{
		ProductID: req.ProductID,
		OrderID:   orderID,
		Salt:      req.Salt,
	})
	if err != nil {
		return h.domainError(c, "status", err)
	}
	return c.JSON(http.StatusOK, orderStatusResponse{
		OrderID:   order.ID,
		Status:    string(order.Status),
		ExpiredAt: order.ExpiredAt,
	})
}

// GetOrder handles GET /api/v1/orders/:id.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	orderID := c.Param("id")
	productID := c.QueryParam("product_id")
	orgID := c.QueryParam("org_id")
	namespace := c.QueryParam("namespace")
	if msg := requireFields(
		[]string{"order_id", "product_id", "org_id", "namespace"},
		map[string]string{"order_id": orderID, "product_id": productID, "org_id": orgID, "namespace": namespace},
	); msg != "" {
		return h.badRequest(c, msg)
	}

	order, err := h.uc.GetOrder(c.Request().Context(), &orderdto.GetOrderInput{
		ProductID: productID,
		OrgID:     orgID,
		Namespace: namespace,
		OrderID:   orderID,
	})
	if err != nil {
		return h.domainError(c, "get", err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

// ActivateOrder handles POST /api/v1/orders/:id/activate.
func (h *OrderHandler) ActivateOrder(c echo.Context) error {
	var req activateOrderRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c, "invalid request body")
	}
	orderID := c.Param("id")
	if msg := requireFields(
		[]string{"order_id", "product_id", "org_id", "namespace", "staff_id"},
		map[string]string{
			"order_id": orderID, "product_id": req.ProductID, "org_id": req.OrgID,
			"namespace": req.Namespace, "staff_id": req.StaffID,
		},
	); msg != "" {
		return h.badRequest(c, msg)
	}

	order, err := h.uc.ActivateOrder(c.Request().Context(), &orderdto.ActivateOrderInput{
		ProductID: req.ProductID,
		OrgID:     req.OrgID,
		Namespace: req.Namespace,
		OrderID:   orderID,
		Tags:      req.Tags,
		StaffID:   req.StaffID,
	})
	if err != nil {
		return h.domainError(c, "activate", err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

// RedeemOrder handles POST /api/v1/orders/:id/redeem.
func (h *OrderHandler) RedeemOrder(c echo.Context) error {
	var req redeemOrderRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c, "invalid request body")
	}
	orderID := c.Param("id")
	if msg := requireFields(
		[]string{"order_id", "product_id", "redeem_code"},
		map[string]string{"order_id": orderID, "product_id": req.ProductID, "redeem_code": req.RedeemCode},
	); msg != "" {
		return h.badRequest(c, msg)
	}

	order, err := h.uc.RedeemOrder(c.Request().Context(), &orderdto.RedeemOrderInput{
		ProductID:  req.ProductID,
		OrderID:    orderID,
		RedeemCode: req.RedeemCode,
	})
	if err != nil {
		return h.domainError(c, "redeem", err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

// VoidOrder handles POST /api/v1/orders/:id/void.
func (h *OrderHandler) VoidOrder(c echo.Context) error {
	var req voidOrderRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c, "invalid request body")
	}
	orderID := c.Param("id")
	if msg := requireFields(
		[]string{"order_id", "product_id", "org_id", "namespace", "staff_id"},
		map[string]string{
			"order_id": orderID, "product_id": req.ProductID, "org_id": req.OrgID,
			"namespace": req.Namespace, "staff_id": req.StaffID,
		},
	); msg != "" {
		return h.badRequest(c, msg)
	}

	order, err := h.uc.VoidOrder(c.Request().Context(), &orderdto.VoidOrderInput{
		ProductID: req.ProductID,
		OrgID:     req.OrgID,
		Namespace: req.Namespace,
		OrderID:   orderID,
		StaffID:   req.StaffID,
	})
	if err != nil {
		return h.domainError(c, "void", err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

// ReturnOrder handles POST /api/v1/orders/:id/return.
func (h *OrderHandler) ReturnOrder(c echo.Context) error {
	var req returnOrderRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c, "invalid request body")
	}
	orderID := c.Param("id")
	if msg := requireFields(
		[]string{"order_id", "product_id", "org_id", "namespace", "staff_id"},
		map[string]string{
			"order_id": orderID, "product_id": req.ProductID, "org_id": req.OrgID,
			"namespace": req.Namespace, "staff_id": req.StaffID,
		},
	); msg != "" {
		return h.badRequest(c, msg)
	}

	order, err := h.uc.ReturnOrder(c.Request().Context(), &orderdto.ReturnOrderInput{
		ProductID: req.ProductID,
		OrgID:     req.OrgID,
		Namespace: req.Namespace,
		OrderID:   orderID,
		StaffID:   req.StaffID,
	})
	if err != nil {
		return h.domainError(c, "return", err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

// ListOrders handles GET /api/v1/orders.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	productID := c.QueryParam("product_id")
	orgID := c.QueryParam("org_id")
	namespace := c.QueryParam("namespace")
	if msg := requireFields(
		[]string{"product_id", "org_id", "namespace"},
		map[string]string{"product_id": productID, "org_id": orgID, "namespace": namespace},
	); msg != "" {
		return h.badRequest(c, msg)
	}

	pageSize := 0
	if raw := c.QueryParam("page_size"); raw != "" {
		n, err := parsePositiveInt(raw)
		if err != nil {
			return h.badRequest(c, "page_size must be a positive integer")
		}
		pageSize = n
	}

	startDate, err := parseDateParam(c.QueryParam("start_date"))
	if err != nil {
		return h.badRequest(c, "start_date must be RFC 3339")
	}
	endDate, err := parseDateParam(c.QueryParam("end_date"))
	if err != nil {
		return h.badRequest(c, "end_date must be RFC 3339")
	}

	page, err := h.uc.ListOrders(c.Request().Context(), &orderdto.ListOrdersInput{
		ProductID: productID,
		OrgID:     orgID,
		Namespace: namespace,
		StartDate: startDate,
		EndDate:   endDate,
		PageSize:  pageSize,
		Cursor:    c.QueryParam("cursor"),
	})
	if err != nil {
		return h.domainError(c, "list", err)
	}
	return c.JSON(http.StatusOK, orderPageResponse{
		Items:       toOrderResponses(page.Items),
		NextCursor:  page.NextCursor,
		HasNextPage: page.HasNextPage,
	})
}

// ReportOrders handles POST /api/v1/orders/report.
func (h *OrderHandler) ReportOrders(c echo.Context) error {
	var req reportOrdersRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c, "invalid request body")
	}
	if msg := requireFields(
		[]string{"product_id", "org_id", "namespace"},
		map[string]string{"product_id": req.ProductID, "org_id": req.OrgID, "namespace": req.Namespace},
	); msg != "" {
		return h.badRequest(c, msg)
	}

	orders, err := h.uc.ReportOrders(c.Request().Context(), &orderdto.ReportOrdersInput{
		ProductID: req.ProductID,
		OrgID:     req.OrgID,
		Namespace: req.Namespace,
		Filters:   req.Filters.toDomain(),
	})
	if err != nil {
		return h.domainError(c, "report", err)
	}
	return c.JSON(http.StatusOK, reportResponse{
		Items: toOrderResponses(orders),
		Total: len(orders),
	})
}

// VerifyToken handles POST /api/v1/token/verify.
func (h *OrderHandler) VerifyToken(c echo.Context) error {
	var req verifyTokenRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c, "invalid request body")
	}
	if msg := requireFields(
		[]string{"access_token"},
		map[string]string{"access_token": req.AccessToken},
	); msg != "" {
		return h.badRequest(c, msg)
	}

	orderID, err := h.uc.VerifyAccessToken(c.Request().Context(), req.AccessToken)
	if err != nil {
		return h.domainError(c, "verify_token", err)
	}
	return c.JSON(http.StatusOK, verifyTokenResponse{OrderID: orderID})
}

// JWKS handles GET /.well-known/jwks.json.
func (h *OrderHandler) JWKS(c echo.Context) error {
	doc, err := h.tokens.JWKS()
	if err != nil {
		h.log.Error("failed to render jwks", "error", err.Error())
		return c.JSON(http.StatusInternalServerError, errorResponse{Code: codeInternal, Message: "internal error"})
	}
	return c.JSONBlob(http.StatusOK, doc)
}

func parsePositiveInt(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, echo.ErrBadRequest
	}
	return n, nil
}

func parseDateParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
