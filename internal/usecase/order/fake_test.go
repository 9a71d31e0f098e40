package order

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/arplanets/livesight-order-service/internal/domain"
)

// fakeOrderRepo is an in-memory stand-in that keeps the store contract:
// UpdateOrder re-evaluates the transition guard atomically under the
// repo lock and rejects with the transition's conflict sentinel, exactly
// like the conditional write in the real adapter.
type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*domain.Order)}
}

func copyOrder(o *domain.Order) *domain.Order {
	cp := *o
	cp.Tags = append([]string(nil), o.Tags...)
	return &cp
}

func (r *fakeOrderRepo) CreateOrder(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = copyOrder(order)
	return nil
}

func (r *fakeOrderRepo) GetOrderByID(_ context.Context, orderID string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return copyOrder(order), nil
}

func (r *fakeOrderRepo) UpdateOrder(_ context.Context, update *domain.OrderUpdate) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	order, ok := r.orders[update.OrderID]

	switch update.Status {
	case domain.StatusActivated:
		if !ok || order.Status != domain.StatusPending ||
			order.ProductID != update.ProductID || order.Namespace != update.Namespace ||
			!now.Before(order.ExpiredAt) {
			return nil, domain.ErrActivateConflict
		}
		order.Status = domain.StatusActivated
		order.ActivatedAt = update.ActivatedAt
		order.ActivatedBy = update.ActivatedBy
		order.Tags = append([]string(nil), update.Tags...)
		order.RedeemCode = update.RedeemCode

	case domain.StatusRedeemed:
		if !ok || order.Status != domain.StatusActivated ||
			order.ProductID != update.ProductID || order.RedeemCode != update.RedeemCode ||
			!now.Before(order.ExpiredAt) {
			return nil, domain.ErrRedeemConflict
		}
		order.Status = domain.StatusRedeemed
		order.RedeemedAt = update.RedeemedAt
		order.AccessToken = update.AccessToken

	case domain.StatusVoided:
		if !ok || order.Status == domain.StatusVoided ||
			order.ProductID != update.ProductID || order.Namespace != update.Namespace {
			return nil, domain.ErrVoidConflict
		}
		order.Status = domain.StatusVoided
		order.VoidedAt = update.VoidedAt
		order.VoidedBy = update.VoidedBy

	case domain.StatusCompleted:
		if !ok || order.Status != domain.StatusRedeemed ||
			order.ProductID != update.ProductID || order.Namespace != update.Namespace {
			return nil, domain.ErrReturnConflict
		}
		order.Status = domain.StatusCompleted
		order.ReturnedAt = update.ReturnedAt
		order.ReturnedBy = update.ReturnedBy
	}

	if update.ExpiredAt != nil {
		order.ExpiredAt = *update.ExpiredAt
	}
	order.UpdatedAt = update.UpdatedAt

	return copyOrder(order), nil
}

func (r *fakeOrderRepo) PageByServiceTypeID(_ context.Context, serviceTypeID string, startDate, endDate *time.Time, pageSize int, cursor string) (*domain.OrderPage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*domain.Order
	for _, order := range r.orders {
		if order.ServiceTypeID != serviceTypeID {
			continue
		}
		if startDate != nil && order.CreatedAt.Before(*startDate) {
			continue
		}
		if endDate != nil && order.CreatedAt.After(*endDate) {
			continue
		}
		matched = append(matched, copyOrder(order))
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	start := 0
	if cursor != "" {
		for i, order := range matched {
			if order.ID == cursor {
				start = i + 1
				break
			}
		}
	}
	if start > len(matched) {
		start = len(matched)
	}

	end := start + pageSize
	page := &domain.OrderPage{}
	if end < len(matched) {
		page.HasNextPage = true
		page.NextCursor = matched[end-1].ID
	} else {
		end = len(matched)
	}
	page.Items = matched[start:end]
	return page, nil
}

func (r *fakeOrderRepo) ListByServiceTypeID(_ context.Context, serviceTypeID string, filters *domain.OrderFilters) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*domain.Order
	for _, order := range r.orders {
		if order.ServiceTypeID != serviceTypeID {
			continue
		}
		if filters != nil {
			if filters.Status != "" && order.Status != filters.Status {
				continue
			}
			if filters.Namespace != "" && order.Namespace != filters.Namespace {
				continue
			}
			if !containsAll(order.Tags, filters.Tags) {
				continue
			}
		}
		matched = append(matched, copyOrder(order))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

func containsAll(have, want []string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (r *fakeOrderRepo) PruneExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var pruned int64
	for id, order := range r.orders {
		if order.TTL.Before(now) {
			delete(r.orders, id)
			pruned++
		}
	}
	return pruned, nil
}

// fakeOwnership grants orgs access to explicit live-sight ids.
type fakeOwnership struct {
	grants map[string]string // live sight id -> owning org
	err    error
}

func (f *fakeOwnership) Verify(_ context.Context, orgID, liveSightID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	owner, ok := f.grants[liveSightID]
	if !ok {
		return false, domain.ErrLiveSightNotFound
	}
	return owner == orgID, nil
}

// fakeNotifier delivers published events on a channel so tests can wait
// for the fire-and-forget goroutine.
type fakeNotifier struct {
	events chan domain.OrderEvent
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{events: make(chan domain.OrderEvent, 16)}
}

func (f *fakeNotifier) PublishOrderEvent(_ context.Context, event domain.OrderEvent) error {
	f.events <- event
	return nil
}

type fakeAudit struct {
	mu        sync.Mutex
	snapshots []domain.AuditSnapshot
}

func (f *fakeAudit) Record(_ context.Context, snapshot domain.AuditSnapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshots = append(f.snapshots, snapshot)
}

func (f *fakeAudit) operations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ops := make([]string, len(f.snapshots))
	for i, s := range f.snapshots {
		ops[i] = s.Operation
	}
	return ops
}
