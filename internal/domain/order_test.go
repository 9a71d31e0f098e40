package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingOrder(expiredAt time.Time) *Order {
	return &Order{
		ID:        "order_test",
		ProductID: "prod_1",
		Namespace: "arplanets.livesight.ls_1",
		Status:    StatusPending,
		ExpiredAt: expiredAt,
	}
}

func TestCanActivate(t *testing.T) {
	now := time.Now()

	t.Run("pending unexpired order activates", func(t *testing.T) {
		order := pendingOrder(now.Add(time.Hour))
		require.NoError(t, order.CanActivate("prod_1", "arplanets.livesight.ls_1", now))
	})

	t.Run("wrong product", func(t *testing.T) {
		order := pendingOrder(now.Add(time.Hour))
		assert.ErrorIs(t, order.CanActivate("prod_2", "arplanets.livesight.ls_1", now), ErrProductMismatch)
	})

	t.Run("wrong namespace", func(t *testing.T) {
		order := pendingOrder(now.Add(time.Hour))
		assert.ErrorIs(t, order.CanActivate("prod_1", "arplanets.livesight.ls_2", now), ErrNamespaceMismatch)
	})

	t.Run("expired order", func(t *testing.T) {
		order := pendingOrder(now.Add(-time.Minute))
		assert.ErrorIs(t, order.CanActivate("prod_1", "arplanets.livesight.ls_1", now), ErrOrderExpired)
	})

	t.Run("expiry boundary is exclusive", func(t *testing.T) {
		order := pendingOrder(now)
		assert.ErrorIs(t, order.CanActivate("prod_1", "arplanets.livesight.ls_1", now), ErrOrderExpired)
	})

	t.Run("already activated", func(t *testing.T) {
		order := pendingOrder(now.Add(time.Hour))
		order.Status = StatusActivated
		assert.ErrorIs(t, order.CanActivate("prod_1", "arplanets.livesight.ls_1", now), ErrActivateConflict)
	})
}

func TestCanRedeem(t *testing.T) {
	now := time.Now()
	order := &Order{
		ID:         "order_test",
		ProductID:  "prod_1",
		Status:     StatusActivated,
		RedeemCode: "code-abc",
		ExpiredAt:  now.Add(30 * time.Minute),
	}

	t.Run("matching code redeems", func(t *testing.T) {
		require.NoError(t, order.CanRedeem("prod_1", "code-abc", now))
	})

	t.Run("wrong code", func(t *testing.T) {
		assert.ErrorIs(t, order.CanRedeem("prod_1", "code-xyz", now), ErrRedeemCodeMismatch)
	})

	t.Run("wrong product checked before code", func(t *testing.T) {
		assert.ErrorIs(t, order.CanRedeem("prod_2", "code-xyz", now), ErrProductMismatch)
	})

	t.Run("not activated", func(t *testing.T) {
		pending := *order
		pending.Status = StatusPending
		assert.ErrorIs(t, pending.CanRedeem("prod_1", "code-abc", now), ErrRedeemConflict)
	})

	t.Run("past redeem window", func(t *testing.T) {
		assert.ErrorIs(t, order.CanRedeem("prod_1", "code-abc", now.Add(time.Hour)), ErrOrderExpired)
	})
}

func TestCanVoid(t *testing.T) {
	base := Order{
		ID:        "order_test",
		ProductID: "prod_1",
		Namespace: "arplanets.livesight.ls_1",
	}

	t.Run("voidable from every non-voided status", func(t *testing.T) {
		for _, status := range []OrderStatus{StatusPending, StatusActivated, StatusRedeemed, StatusCompleted} {
			order := base
			order.Status = status
			assert.NoError(t, order.CanVoid("prod_1", "arplanets.livesight.ls_1"), "status %s", status)
		}
	})

	t.Run("already voided", func(t *testing.T) {
		order := base
		order.Status = StatusVoided
		assert.ErrorIs(t, order.CanVoid("prod_1", "arplanets.livesight.ls_1"), ErrVoidConflict)
	})

	t.Run("wrong namespace", func(t *testing.T) {
		order := base
		order.Status = StatusPending
		assert.ErrorIs(t, order.CanVoid("prod_1", "arplanets.livesight.ls_2"), ErrNamespaceMismatch)
	})
}

func TestCanReturn(t *testing.T) {
	base := Order{
		ID:        "order_test",
		ProductID: "prod_1",
		Namespace: "arplanets.livesight.ls_1",
	}

	t.Run("redeemed order returns", func(t *testing.T) {
		order := base
		order.Status = StatusRedeemed
		require.NoError(t, order.CanReturn("prod_1", "arplanets.livesight.ls_1"))
	})

	t.Run("anything else conflicts", func(t *testing.T) {
		for _, status := range []OrderStatus{StatusPending, StatusActivated, StatusCompleted, StatusVoided} {
			order := base
			order.Status = status
			assert.ErrorIs(t, order.CanReturn("prod_1", "arplanets.livesight.ls_1"), ErrReturnConflict, "status %s", status)
		}
	})
}

func TestToOrderStatus(t *testing.T) {
	assert.Equal(t, StatusPending, ToOrderStatus("PENDING"))
	assert.Equal(t, StatusVoided, ToOrderStatus("VOIDED"))
	assert.Equal(t, OrderStatus(""), ToOrderStatus("pending"))
	assert.Equal(t, OrderStatus(""), ToOrderStatus("UNKNOWN"))
}

func TestIsTransitionConflict(t *testing.T) {
	assert.True(t, IsTransitionConflict(ErrActivateConflict))
	assert.True(t, IsTransitionConflict(ErrReturnConflict))
	assert.False(t, IsTransitionConflict(ErrOrderNotFound))
	assert.False(t, IsTransitionConflict(nil))
}
