package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arplanets/livesight-order-service/internal/domain"
	"github.com/arplanets/livesight-order-service/internal/infrastructure/postgres/mappers"
	"github.com/arplanets/livesight-order-service/internal/infrastructure/postgres/models"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// reportBatchSize is the internal page size of the unbounded report scan.
const reportBatchSize = 1000

type DefaultOrderRepository struct {
	DB  *gorm.DB
	log *slog.Logger

	// observe reports store round-trip time per operation; nil disables.
	observe func(operation string, seconds float64)
}

func NewDefaultOrderRepository(db *gorm.DB, log *slog.Logger, observe func(operation string, seconds float64)) *DefaultOrderRepository {
	return &DefaultOrderRepository{DB: db, log: log, observe: observe}
}

func (r *DefaultOrderRepository) track(operation string) func() {
	if r.observe == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		r.observe(operation, time.Since(start).Seconds())
	}
}

func (r *DefaultOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	defer r.track("create")()

	orderModel := mappers.ToGORMOrder(order)
	if err := r.DB.WithContext(ctx).Create(orderModel).Error; err != nil {
		return fmt.Errorf("%w: inserting order: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *DefaultOrderRepository) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	defer r.track("get")()

	var order models.OrderModel
	if err := r.DB.WithContext(ctx).First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("%w: fetching order: %v", domain.ErrStoreUnavailable, err)
	}

	return mappers.ToDomainOrder(&order), nil
}

// transitionGuard is the WHERE condition re-asserting a transition's
// legality at write time, and the conflict sentinel reported when it no
// longer holds.
type transitionGuard struct {
	cond     string
	args     []any
	conflict error
}

func guardFor(update *domain.OrderUpdate) (*transitionGuard, error) {
	switch update.Status {
	case domain.StatusActivated:
		return &transitionGuard{
			cond:     "status = ? AND product_id = ? AND namespace = ? AND expired_at > ?",
			args:     []any{string(domain.StatusPending), update.ProductID, update.Namespace, update.UpdatedAt},
			conflict: domain.ErrActivateConflict,
		}, nil
	case domain.StatusRedeemed:
		return &transitionGuard{
			cond:     "status = ? AND product_id = ? AND redeem_code = ? AND expired_at > ?",
			args:     []any{string(domain.StatusActivated), update.ProductID, update.RedeemCode, update.UpdatedAt},
			conflict: domain.ErrRedeemConflict,
		}, nil
	case domain.StatusVoided:
		return &transitionGuard{
			cond:     "status <> ? AND product_id = ? AND namespace = ?",
			args:     []any{string(domain.StatusVoided), update.ProductID, update.Namespace},
			conflict: domain.ErrVoidConflict,
		}, nil
	case domain.StatusCompleted:
		return &transitionGuard{
			cond:     "status = ? AND product_id = ? AND namespace = ?",
			args:     []any{string(domain.StatusRedeemed), update.ProductID, update.Namespace},
			conflict: domain.ErrReturnConflict,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported target status %q", update.Status)
	}
}

// UpdateOrder applies a partial update guarded by the transition condition
// derived from update.Status. Guard, mutation and read-back execute as one
// UPDATE ... RETURNING statement, so the snapshot handed to the caller is
// exactly the row this transition produced, untouched by later writers;
// zero affected rows means the condition no longer held at write time and
// the transition's conflict sentinel is returned. This is what serializes
// concurrent transitions on one order across processes.
func (r *DefaultOrderRepository) UpdateOrder(ctx context.Context, update *domain.OrderUpdate) (*domain.Order, error) {
	defer r.track("update")()

	if update == nil || update.OrderID == "" {
		return nil, fmt.Errorf("order update requires an order id")
	}

	values, err := buildUpdateValues(update)
	if err != nil {
		return nil, err
	}
	guard, err := guardFor(update)
	if err != nil {
		return nil, err
	}

	var updated models.OrderModel
	res := r.DB.WithContext(ctx).
		Model(&updated).
		Clauses(clause.Returning{}).
		Where("id = ?", update.OrderID).
		Where(guard.cond, guard.args...).
		Updates(values)
	if res.Error != nil {
		return nil, fmt.Errorf("%w: updating order: %v", domain.ErrStoreUnavailable, res.Error)
	}
	if res.RowsAffected == 0 {
		// Expected under concurrency: the in-process precondition passed
		// but another writer got there first.
		return nil, guard.conflict
	}

	return mappers.ToDomainOrder(&updated), nil
}

func buildUpdateValues(update *domain.OrderUpdate) (map[string]any, error) {
	values := map[string]any{
		"status":     string(update.Status),
		"updated_at": update.UpdatedAt,
	}

	if update.ExpiredAt != nil {
		values["expired_at"] = *update.ExpiredAt
	}

	switch update.Status {
	case domain.StatusActivated:
		values["activated_at"] = update.ActivatedAt
		values["activated_by"] = update.ActivatedBy
		values["redeem_code"] = update.RedeemCode
		if len(update.Tags) > 0 {
			values["tags"] = pq.StringArray(update.Tags)
		}
	case domain.StatusRedeemed:
		values["redeemed_at"] = update.RedeemedAt
		values["access_token"] = update.AccessToken
	case domain.StatusVoided:
		values["voided_at"] = update.VoidedAt
		values["voided_by"] = update.VoidedBy
	case domain.StatusCompleted:
		values["returned_at"] = update.ReturnedAt
		values["returned_by"] = update.ReturnedBy
	default:
		return nil, fmt.Errorf("unsupported target status %q", update.Status)
	}

	return values, nil
}

// PageByServiceTypeID lists one live sight's orders newest-first. It
// fetches pageSize+1 rows; a full overfetch means another page exists and
// the key of the last row inside the page becomes the continuation
// cursor. A cursor that fails to decode, or that belongs to a different
// live sight, is ignored and the listing restarts from the top.
func (r *DefaultOrderRepository) PageByServiceTypeID(
	ctx context.Context,
	serviceTypeID string,
	startDate, endDate *time.Time,
	pageSize int,
	cursor string,
) (*domain.OrderPage, error) {
	defer r.track("page")()

	query := r.DB.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("service_type_id = ?", serviceTypeID)

	query = applyDateWindow(query, startDate, endDate)

	if key := decodeCursor(cursor); key != nil && key.ServiceTypeID == serviceTypeID {
		query = query.Where("(created_at, id) < (?, ?)", key.CreatedAt, key.OrderID)
	}

	var orderModels []models.OrderModel
	err := query.
		Order("created_at DESC, id DESC").
		Limit(pageSize + 1).
		Find(&orderModels).Error
	if err != nil {
		return nil, fmt.Errorf("%w: paging orders: %v", domain.ErrStoreUnavailable, err)
	}

	hasNextPage := len(orderModels) > pageSize

	var nextCursor string
	if hasNextPage {
		last := orderModels[pageSize-1]
		nextCursor, err = encodeCursor(pageKey{
			ServiceTypeID: last.ServiceTypeID,
			CreatedAt:     last.CreatedAt,
			OrderID:       last.ID,
		})
		if err != nil {
			return nil, fmt.Errorf("serializing page cursor: %w", err)
		}
		orderModels = orderModels[:pageSize]
	}

	orders := make([]*domain.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = mappers.ToDomainOrder(&orderModels[i])
	}

	return &domain.OrderPage{
		Items:       orders,
		NextCursor:  nextCursor,
		HasNextPage: hasNextPage,
	}, nil
}

// ListByServiceTypeID runs the unbounded report scan: same descending
// keyset walk as the paged listing, internal batches of reportBatchSize,
// filter expression applied on top of the indexed range condition.
func (r *DefaultOrderRepository) ListByServiceTypeID(
	ctx context.Context,
	serviceTypeID string,
	filters *domain.OrderFilters,
) ([]*domain.Order, error) {
	defer r.track("report")()

	var allOrders []*domain.Order
	var resumeKey *pageKey

	var startDate, endDate *time.Time
	if filters != nil && filters.CreatedAt != nil {
		startDate, endDate = filters.CreatedAt.Start, filters.CreatedAt.End
	}

	for {
		query := r.DB.WithContext(ctx).
			Model(&models.OrderModel{}).
			Where("service_type_id = ?", serviceTypeID)

		query = applyDateWindow(query, startDate, endDate)
		query = applyFilters(query, filters)

		if resumeKey != nil {
			query = query.Where("(created_at, id) < (?, ?)", resumeKey.CreatedAt, resumeKey.OrderID)
		}

		var batch []models.OrderModel
		err := query.
			Order("created_at DESC, id DESC").
			Limit(reportBatchSize).
			Find(&batch).Error
		if err != nil {
			return nil, fmt.Errorf("%w: listing orders: %v", domain.ErrStoreUnavailable, err)
		}

		for i := range batch {
			allOrders = append(allOrders, mappers.ToDomainOrder(&batch[i]))
		}

		if len(batch) < reportBatchSize {
			return allOrders, nil
		}

		last := batch[len(batch)-1]
		resumeKey = &pageKey{
			ServiceTypeID: last.ServiceTypeID,
			CreatedAt:     last.CreatedAt,
			OrderID:       last.ID,
		}
	}
}

// PruneExpired deletes rows whose storage TTL has passed. Business expiry
// (expired_at) is untouched: expired orders stay queryable until pruned.
func (r *DefaultOrderRepository) PruneExpired(ctx context.Context, now time.Time) (int64, error) {
	defer r.track("prune")()

	res := r.DB.WithContext(ctx).
		Where("ttl < ?", now).
		Delete(&models.OrderModel{})
	if res.Error != nil {
		return 0, fmt.Errorf("%w: pruning orders: %v", domain.ErrStoreUnavailable, res.Error)
	}
	if res.RowsAffected > 0 {
		r.log.Info("pruned expired orders", "count", res.RowsAffected)
	}
	return res.RowsAffected, nil
}

// applyDateWindow bounds created_at on either side independently. Both
// bounds are inclusive, so start == end is a valid single-instant window.
func applyDateWindow(query *gorm.DB, startDate, endDate *time.Time) *gorm.DB {
	if startDate != nil {
		query = query.Where("created_at >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("created_at <= ?", *endDate)
	}
	return query
}

func applyFilters(query *gorm.DB, filters *domain.OrderFilters) *gorm.DB {
	if filters == nil {
		return query
	}

	if filters.Namespace != "" {
		query = query.Where("namespace = ?", filters.Namespace)
	}
	if filters.UserBrowser != "" {
		query = query.Where("user_browser = ?", filters.UserBrowser)
	}
	if filters.UserOS != "" {
		query = query.Where("user_os = ?", filters.UserOS)
	}
	if filters.UserDeviceType != "" {
		query = query.Where("user_device_type = ?", filters.UserDeviceType)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", string(filters.Status))
	}
	if filters.ActivatedBy != "" {
		query = query.Where("activated_by = ?", filters.ActivatedBy)
	}
	if filters.VoidedBy != "" {
		query = query.Where("voided_by = ?", filters.VoidedBy)
	}
	if filters.ReturnedBy != "" {
		query = query.Where("returned_by = ?", filters.ReturnedBy)
	}
	if len(filters.Tags) > 0 {
		query = query.Where("tags @> ?", pq.StringArray(filters.Tags))
	}

	query = applyRange(query, "activated_at", filters.ActivatedAt)
	query = applyRange(query, "redeemed_at", filters.RedeemedAt)
	query = applyRange(query, "voided_at", filters.VoidedAt)
	query = applyRange(query, "returned_at", filters.ReturnedAt)
	query = applyRange(query, "expired_at", filters.ExpiredAt)
	query = applyRange(query, "updated_at", filters.UpdatedAt)

	return query
}

func applyRange(query *gorm.DB, column string, dateRange *domain.DateRange) *gorm.DB {
	if dateRange == nil {
		return query
	}
	if dateRange.Start != nil {
		query = query.Where(column+" >= ?", *dateRange.Start)
	}
	if dateRange.End != nil {
		query = query.Where(column+" <= ?", *dateRange.End)
	}
	return query
}
