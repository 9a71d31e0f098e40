package domain

import "time"

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusActivated OrderStatus = "ACTIVATED"
	StatusRedeemed  OrderStatus = "REDEEMED"
	StatusVoided    OrderStatus = "VOIDED"
	StatusCompleted OrderStatus = "COMPLETED"
)

// ToOrderStatus converts a stored string back to an OrderStatus.
// Unknown values come back as the empty status.
func ToOrderStatus(s string) OrderStatus {
	switch OrderStatus(s) {
	case StatusPending, StatusActivated, StatusRedeemed, StatusVoided, StatusCompleted:
		return OrderStatus(s)
	default:
		return ""
	}
}

// Order is the unit of access-grant lifecycle managed by this service.
// It is created once, mutated only through the four named transitions
// (activate, redeem, void, return) and never hard-deleted: storage-level
// TTL pruning is the only way a record disappears.
type Order struct {
	ID string

	Namespace     string
	ProductID     string
	ServiceType   string
	ServiceTypeID string

	AuthType   string
	AuthTypeID string

	UserBrowser    string
	UserOS         string
	UserDeviceType string

	Status OrderStatus

	CreatedAt        time.Time
	VerificationCode string

	ActivatedAt *time.Time
	ActivatedBy string
	RedeemCode  string
	Tags        []string

	RedeemedAt  *time.Time
	AccessToken string

	VoidedAt *time.Time
	VoidedBy string

	ReturnedAt *time.Time
	ReturnedBy string

	ExpiredAt time.Time
	UpdatedAt time.Time
	TTL       time.Time
}

// CanActivate reports whether the order may move PENDING -> ACTIVATED.
// The same checks are asserted again atomically by the store condition;
// this in-process pass only exists to fail fast with a precise error.
func (o *Order) CanActivate(productID, namespace string, now time.Time) error {
	if o.ProductID != productID {
		return ErrProductMismatch
	}
	if o.Namespace != namespace {
		return ErrNamespaceMismatch
	}
	if o.Status != StatusPending {
		return ErrActivateConflict
	}
	if !now.Before(o.ExpiredAt) {
		return ErrOrderExpired
	}
	return nil
}

// CanRedeem reports whether the order may move ACTIVATED -> REDEEMED.
// Redeem-code comparison is exact-string.
func (o *Order) CanRedeem(productID, redeemCode string, now time.Time) error {
	if o.ProductID != productID {
		return ErrProductMismatch
	}
	if o.Status != StatusActivated {
		return ErrRedeemConflict
	}
	if !now.Before(o.ExpiredAt) {
		return ErrOrderExpired
	}
	if o.RedeemCode != redeemCode {
		return ErrRedeemCodeMismatch
	}
	return nil
}

// CanVoid reports whether the order may move to VOIDED. Void is reachable
// from PENDING, ACTIVATED and REDEEMED; only re-voiding is rejected.
// That also lets a COMPLETED order be voided, which contradicts the state
// diagram treating COMPLETED as terminal. Deployed clients depend on the
// looser guard's conflict codes, so the observed behavior is kept.
func (o *Order) CanVoid(productID, namespace string) error {
	if o.ProductID != productID {
		return ErrProductMismatch
	}
	if o.Namespace != namespace {
		return ErrNamespaceMismatch
	}
	if o.Status == StatusVoided {
		return ErrVoidConflict
	}
	return nil
}

// CanReturn reports whether the order may move REDEEMED -> COMPLETED.
func (o *Order) CanReturn(productID, namespace string) error {
	if o.ProductID != productID {
		return ErrProductMismatch
	}
	if o.Namespace != namespace {
		return ErrNamespaceMismatch
	}
	if o.Status != StatusRedeemed {
		return ErrReturnConflict
	}
	return nil
}
