package order

import (
	"context"
	"fmt"

	"github.com/arplanets/livesight-order-service/internal/domain"
)

// VerifyAccessToken validates an access token end to end: signature and
// claims first, then the live order record. A token that verifies
// cryptographically is still refused once its order left REDEEMED, which
// is how void revokes access before the token expires.
func (uc *DefaultOrderUsecase) VerifyAccessToken(ctx context.Context, accessToken string) (string, error) {
	claims, err := uc.Tokens.Verify(accessToken)
	if err != nil {
		if uc.Metrics != nil {
			uc.Metrics.RecordValidationFailure("access_token")
		}
		return "", fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}

	order, err := uc.OrderRepo.GetOrderByID(ctx, claims.Subject)
	if err != nil {
		return "", err
	}

	if order.Status != domain.StatusRedeemed {
		return "", domain.ErrOrderRevoked
	}

	return order.ID, nil
}
