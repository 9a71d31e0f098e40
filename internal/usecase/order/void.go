package order

import (
	"context"

	"github.com/arplanets/livesight-order-service/internal/domain"
	orderdto "github.com/arplanets/livesight-order-service/internal/usecase/dto/order"
)

// VoidOrder revokes an order from any non-VOIDED state. Devices holding
// the order's access get a revoke event; the access token itself stays
// cryptographically valid until expiry, which is why token verification
// always re-checks the stored status.
func (uc *DefaultOrderUsecase) VoidOrder(ctx context.Context, input *orderdto.VoidOrderInput) (*domain.Order, error) {
	uc.locks.Lock(input.OrderID)
	defer uc.locks.Unlock(input.OrderID)

	if err := uc.verifyOwnership(ctx, input.OrgID, input.Namespace); err != nil {
		return nil, err
	}

	order, err := uc.OrderRepo.GetOrderByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	if err := order.CanVoid(input.ProductID, input.Namespace); err != nil {
		return nil, err
	}

	now := uc.now()
	updated, err := uc.OrderRepo.UpdateOrder(ctx, &domain.OrderUpdate{
		OrderID:   input.OrderID,
		Status:    domain.StatusVoided,
		ProductID: input.ProductID,
		Namespace: input.Namespace,

		VoidedAt: &now,
		VoidedBy: input.StaffID,

		UpdatedAt: now,
	})
	if err != nil {
		if uc.Metrics != nil && domain.IsTransitionConflict(err) {
			uc.Metrics.RecordConflict("void")
		}
		return nil, err
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordTransition("void")
	}
	uc.publishEvent(updated, domain.EventActionRevoke)
	uc.recordAudit(ctx, "void", updated, input.StaffID)

	uc.log.Info("order voided", "order_id", updated.ID, "staff_id", input.StaffID)

	return updated, nil
}
