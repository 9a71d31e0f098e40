package order

import (
	"context"

	"github.com/arplanets/livesight-order-service/internal/domain"
	orderdto "github.com/arplanets/livesight-order-service/internal/usecase/dto/order"
)

// RedeemOrder moves ACTIVATED -> REDEEMED and mints the access token. The
// presented redeem code is checked in-process for a precise error, then
// asserted again inside the store condition; expiry widens back out to
// the end of the local day, which is also the token's expiry.
func (uc *DefaultOrderUsecase) RedeemOrder(ctx context.Context, input *orderdto.RedeemOrderInput) (*domain.Order, error) {
	uc.locks.Lock(input.OrderID)
	defer uc.locks.Unlock(input.OrderID)

	order, err := uc.OrderRepo.GetOrderByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	if err := order.CanRedeem(input.ProductID, input.RedeemCode, now); err != nil {
		if uc.Metrics != nil && err == domain.ErrRedeemCodeMismatch {
			uc.Metrics.RecordValidationFailure("redeem_code")
		}
		return nil, err
	}

	expiredAt := uc.endOfDay(now)
	accessToken, err := uc.Tokens.Issue(order.ID, order.ProductID, order.Tags, now, expiredAt)
	if err != nil {
		return nil, err
	}

	updated, err := uc.OrderRepo.UpdateOrder(ctx, &domain.OrderUpdate{
		OrderID:    input.OrderID,
		Status:     domain.StatusRedeemed,
		ProductID:  input.ProductID,
		RedeemCode: input.RedeemCode,

		RedeemedAt:  &now,
		AccessToken: accessToken,

		ExpiredAt: &expiredAt,
		UpdatedAt: now,
	})
	if err != nil {
		if uc.Metrics != nil && domain.IsTransitionConflict(err) {
			uc.Metrics.RecordConflict("redeem")
		}
		return nil, err
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordTransition("redeem")
		uc.Metrics.RecordTokenIssued()
	}
	uc.recordAudit(ctx, "redeem", updated, "")

	uc.log.Info("order redeemed", "order_id", updated.ID, "expired_at", updated.ExpiredAt)

	return updated, nil
}
