package order

import (
	"context"

	"github.com/arplanets/livesight-order-service/internal/domain"
	"github.com/arplanets/livesight-order-service/internal/token"
	orderdto "github.com/arplanets/livesight-order-service/internal/usecase/dto/order"
	"github.com/google/uuid"
)

// CreateOrder mints a PENDING order. The caller's salt never leaves this
// call: only its hash binding to the order id is stored, and the same
// salt must be presented again on every status check.
func (uc *DefaultOrderUsecase) CreateOrder(ctx context.Context, input *orderdto.CreateOrderInput) (*domain.Order, error) {
	now := uc.now()
	orderID := "order_" + uuid.NewString()

	order := &domain.Order{
		ID:            orderID,
		Namespace:     input.Namespace,
		ProductID:     input.ProductID,
		ServiceType:   ServiceTypeLiveSight,
		ServiceTypeID: ExtractServiceTypeID(input.Namespace),

		AuthType:   input.AuthType,
		AuthTypeID: input.AuthTypeID,

		UserBrowser:    input.ClientInfo.Browser,
		UserOS:         input.ClientInfo.OS,
		UserDeviceType: input.ClientInfo.DeviceType,

		Status:           domain.StatusPending,
		CreatedAt:        now,
		VerificationCode: token.VerificationCode(orderID, input.Salt),

		ExpiredAt: uc.endOfDay(now),
		UpdatedAt: now,
		TTL:       now.Add(uc.Rules.StorageTTL),
	}

	if err := uc.OrderRepo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordOrderCreated(order.ProductID, order.ServiceType)
	}
	uc.recordAudit(ctx, "create", order, "")

	uc.log.Info("order created",
		"order_id", order.ID,
		"product_id", order.ProductID,
		"service_type_id", order.ServiceTypeID,
		"expired_at", order.ExpiredAt)

	return order, nil
}
