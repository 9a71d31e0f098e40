package order

import (
	"context"

	"github.com/arplanets/livesight-order-service/internal/domain"
	orderdto "github.com/arplanets/livesight-order-service/internal/usecase/dto/order"
)

// ReturnOrder closes out a REDEEMED order as COMPLETED when the access it
// granted is handed back. Like void, it ends device access, so the same
// revoke event goes out.
func (uc *DefaultOrderUsecase) ReturnOrder(ctx context.Context, input *orderdto.ReturnOrderInput) (*domain.Order, error) {
	uc.locks.Lock(input.OrderID)
	defer uc.locks.Unlock(input.OrderID)

	if err := uc.verifyOwnership(ctx, input.OrgID, input.Namespace); err != nil {
		return nil, err
	}

	order, err := uc.OrderRepo.GetOrderByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	if err := order.CanReturn(input.ProductID, input.Namespace); err != nil {
		return nil, err
	}

	now := uc.now()
	updated, err := uc.OrderRepo.UpdateOrder(ctx, &domain.OrderUpdate{
		OrderID:   input.OrderID,
		Status:    domain.StatusCompleted,
		ProductID: input.ProductID,
		Namespace: input.Namespace,

		ReturnedAt: &now,
		ReturnedBy: input.StaffID,

		UpdatedAt: now,
	})
	if err != nil {
		if uc.Metrics != nil && domain.IsTransitionConflict(err) {
			uc.Metrics.RecordConflict("return")
		}
		return nil, err
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordTransition("return")
	}
	uc.publishEvent(updated, domain.EventActionRevoke)
	uc.recordAudit(ctx, "return", updated, input.StaffID)

	uc.log.Info("order returned", "order_id", updated.ID, "staff_id", input.StaffID)

	return updated, nil
}
