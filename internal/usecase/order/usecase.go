package order

import (
	"context"
	"log/slog"
	"time"

	"github.com/arplanets/livesight-order-service/internal/domain"
	"github.com/arplanets/livesight-order-service/internal/infrastructure/metrics"
	"github.com/arplanets/livesight-order-service/internal/token"
	orderdto "github.com/arplanets/livesight-order-service/internal/usecase/dto/order"
)

type OrderUsecase interface {
	CreateOrder(ctx context.Context, input *orderdto.CreateOrderInput) (*domain.Order, error)
	GetOrderStatus(ctx context.Context, input *orderdto.GetOrderStatusInput) (*domain.Order, error)
	GetOrder(ctx context.Context, input *orderdto.GetOrderInput) (*domain.Order, error)

	ActivateOrder(ctx context.Context, input *orderdto.ActivateOrderInput) (*domain.Order, error)
	RedeemOrder(ctx context.Context, input *orderdto.RedeemOrderInput) (*domain.Order, error)
	VoidOrder(ctx context.Context, input *orderdto.VoidOrderInput) (*domain.Order, error)
	ReturnOrder(ctx context.Context, input *orderdto.ReturnOrderInput) (*domain.Order, error)

	ListOrders(ctx context.Context, input *orderdto.ListOrdersInput) (*domain.OrderPage, error)
	ReportOrders(ctx context.Context, input *orderdto.ReportOrdersInput) ([]*domain.Order, error)

	// VerifyAccessToken checks the token signature and claims, then
	// confirms the backing order is still REDEEMED. Returns the order id.
	VerifyAccessToken(ctx context.Context, accessToken string) (string, error)
}

// LifecycleRules carries the deployment-level timing policy: which local
// timezone "end of day" is computed in, how long an activated order stays
// redeemable, and how long a record survives in storage.
type LifecycleRules struct {
	Location     *time.Location
	RedeemWindow time.Duration
	StorageTTL   time.Duration
}

type DefaultOrderUsecase struct {
	OrderRepo domain.OrderRepository
	Ownership domain.OwnershipChecker
	Notifier  domain.Notifier
	Audit     domain.AuditSink
	Tokens    *token.Manager
	Metrics   *metrics.OrderMetrics
	Rules     LifecycleRules

	log   *slog.Logger
	now   func() time.Time
	locks *keyMutex
}

func NewDefaultOrderUsecase(
	orderRepo domain.OrderRepository,
	ownership domain.OwnershipChecker,
	notifier domain.Notifier,
	audit domain.AuditSink,
	tokens *token.Manager,
	m *metrics.OrderMetrics,
	rules LifecycleRules,
	log *slog.Logger,
) *DefaultOrderUsecase {
	if rules.Location == nil {
		rules.Location = time.UTC
	}
	return &DefaultOrderUsecase{
		OrderRepo: orderRepo,
		Ownership: ownership,
		Notifier:  notifier,
		Audit:     audit,
		Tokens:    tokens,
		Metrics:   m,
		Rules:     rules,
		log:       log,
		now:       time.Now,
		locks:     newKeyMutex(),
	}
}

// endOfDay returns the next local midnight after now, in the configured
// timezone. An order created or redeemed at any point of a local day is
// valid until that day ends.
func (uc *DefaultOrderUsecase) endOfDay(now time.Time) time.Time {
	local := now.In(uc.Rules.Location)
	year, month, day := local.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, uc.Rules.Location).AddDate(0, 0, 1)
}

// verifyOwnership resolves whether orgID owns the live sight embedded in
// the namespace. A live sight the org service does not know surfaces as
// ErrLiveSightNotFound from the checker.
func (uc *DefaultOrderUsecase) verifyOwnership(ctx context.Context, orgID, namespace string) error {
	liveSightID := ExtractServiceTypeID(namespace)
	if liveSightID == "" {
		return domain.ErrLiveSightNotFound
	}

	owned, err := uc.Ownership.Verify(ctx, orgID, liveSightID)
	if err != nil {
		return err
	}
	if !owned {
		return domain.ErrOrgPermissionDenied
	}
	return nil
}

// publishEvent pushes the device-facing event off the request path. A
// publish failure is logged and never surfaced: the order record is the
// source of truth and devices re-sync from it.
func (uc *DefaultOrderUsecase) publishEvent(order *domain.Order, action string) {
	if uc.Notifier == nil {
		return
	}

	event := domain.OrderEvent{
		Action:    action,
		OrderID:   order.ID,
		Namespace: order.Namespace,
		ProductID: order.ProductID,
		Status:    order.Status,
		Tags:      order.Tags,
		ExpiredAt: order.ExpiredAt.UTC().Format(time.RFC3339),
	}

	go func() {
		if err := uc.Notifier.PublishOrderEvent(context.Background(), event); err != nil {
			uc.log.Error("failed to publish order event",
				"action", action, "order_id", order.ID, "error", err.Error())
		}
	}()
}

func (uc *DefaultOrderUsecase) recordAudit(ctx context.Context, operation string, order *domain.Order, actorID string) {
	if uc.Audit == nil {
		return
	}
	uc.Audit.Record(ctx, domain.AuditSnapshot{
		Operation: operation,
		OrderID:   order.ID,
		Status:    order.Status,
		ActorID:   actorID,
		Outcome:   "success",
		At:        uc.now().UTC().Format(time.RFC3339),
	})
}
