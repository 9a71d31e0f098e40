package order

import (
	"context"

	"github.com/arplanets/livesight-order-service/internal/domain"
	"github.com/arplanets/livesight-order-service/internal/token"
	orderdto "github.com/arplanets/livesight-order-service/internal/usecase/dto/order"
)

// ActivateOrder moves PENDING -> ACTIVATED: mints a fresh redeem code,
// attaches the staff-chosen tags and narrows expiry to the redeem window.
// The store re-asserts the PENDING+unexpired guard atomically, so two
// racing activations produce exactly one winner.
func (uc *DefaultOrderUsecase) ActivateOrder(ctx context.Context, input *orderdto.ActivateOrderInput) (*domain.Order, error) {
	uc.locks.Lock(input.OrderID)
	defer uc.locks.Unlock(input.OrderID)

	if err := uc.verifyOwnership(ctx, input.OrgID, input.Namespace); err != nil {
		return nil, err
	}

	order, err := uc.OrderRepo.GetOrderByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	if err := order.CanActivate(input.ProductID, input.Namespace, now); err != nil {
		return nil, err
	}

	redeemCode, err := token.NewRedeemCode()
	if err != nil {
		return nil, err
	}
	expiredAt := now.Add(uc.Rules.RedeemWindow)

	updated, err := uc.OrderRepo.UpdateOrder(ctx, &domain.OrderUpdate{
		OrderID:   input.OrderID,
		Status:    domain.StatusActivated,
		ProductID: input.ProductID,
		Namespace: input.Namespace,

		ActivatedAt: &now,
		ActivatedBy: input.StaffID,
		Tags:        input.Tags,
		RedeemCode:  redeemCode,

		ExpiredAt: &expiredAt,
		UpdatedAt: now,
	})
	if err != nil {
		if uc.Metrics != nil && domain.IsTransitionConflict(err) {
			uc.Metrics.RecordConflict("activate")
		}
		return nil, err
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordTransition("activate")
	}
	uc.publishEvent(updated, domain.EventActionActive)
	uc.recordAudit(ctx, "activate", updated, input.StaffID)

	uc.log.Info("order activated",
		"order_id", updated.ID, "staff_id", input.StaffID, "expired_at", updated.ExpiredAt)

	return updated, nil
}
