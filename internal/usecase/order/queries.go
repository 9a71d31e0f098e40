package order

import (
	"context"

	"github.com/arplanets/livesight-order-service/internal/domain"
	"github.com/arplanets/livesight-order-service/internal/token"
	orderdto "github.com/arplanets/livesight-order-service/internal/usecase/dto/order"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// GetOrderStatus is the end-user self-check: the caller proves knowledge
// of the creation salt by letting the service recompute the verification
// code and compare. Nothing about the order leaks on a bad salt.
func (uc *DefaultOrderUsecase) GetOrderStatus(ctx context.Context, input *orderdto.GetOrderStatusInput) (*domain.Order, error) {
	order, err := uc.OrderRepo.GetOrderByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	if order.ProductID != input.ProductID {
		return nil, domain.ErrProductMismatch
	}
	if token.VerificationCode(order.ID, input.Salt) != order.VerificationCode {
		if uc.Metrics != nil {
			uc.Metrics.RecordValidationFailure("salt")
		}
		return nil, domain.ErrSaltMismatch
	}

	return order, nil
}

// GetOrder is the staff-side read, gated on org ownership of the live
// sight named by the namespace.
func (uc *DefaultOrderUsecase) GetOrder(ctx context.Context, input *orderdto.GetOrderInput) (*domain.Order, error) {
	if err := uc.verifyOwnership(ctx, input.OrgID, input.Namespace); err != nil {
		return nil, err
	}

	order, err := uc.OrderRepo.GetOrderByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	if order.ProductID != input.ProductID {
		return nil, domain.ErrProductMismatch
	}
	if order.Namespace != input.Namespace {
		return nil, domain.ErrNamespaceMismatch
	}

	return order, nil
}

// ListOrders pages through one live sight's orders, newest first. The
// cursor is opaque to callers; a cursor that fails to decode restarts
// from the top rather than erroring.
func (uc *DefaultOrderUsecase) ListOrders(ctx context.Context, input *orderdto.ListOrdersInput) (*domain.OrderPage, error) {
	if err := uc.verifyOwnership(ctx, input.OrgID, input.Namespace); err != nil {
		return nil, err
	}

	pageSize := input.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	serviceTypeID := ExtractServiceTypeID(input.Namespace)
	return uc.OrderRepo.PageByServiceTypeID(ctx, serviceTypeID, input.StartDate, input.EndDate, pageSize, input.Cursor)
}

// ReportOrders returns every order of a live sight matching the filters,
// for export. Unbounded by design; the repository batches internally.
func (uc *DefaultOrderUsecase) ReportOrders(ctx context.Context, input *orderdto.ReportOrdersInput) ([]*domain.Order, error) {
	if err := uc.verifyOwnership(ctx, input.OrgID, input.Namespace); err != nil {
		return nil, err
	}

	serviceTypeID := ExtractServiceTypeID(input.Namespace)
	return uc.OrderRepo.ListByServiceTypeID(ctx, serviceTypeID, input.Filters)
}
