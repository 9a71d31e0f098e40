package domain

import "errors"

var (
	// Lookup failures.
	ErrOrderNotFound     = errors.New("order not found")
	ErrLiveSightNotFound = errors.New("live sight not found")

	// Ownership / scoping failures.
	ErrOrgPermissionDenied = errors.New("org has no permission on this live sight")
	ErrProductMismatch     = errors.New("product id has no permission on this order")
	ErrNamespaceMismatch   = errors.New("namespace has no permission on this order")

	// Supplied-secret failures.
	ErrSaltMismatch       = errors.New("salt verification failed")
	ErrRedeemCodeMismatch = errors.New("redeem code verification failed")
	ErrTokenInvalid       = errors.New("access token verification failed")

	// Expiry.
	ErrOrderExpired = errors.New("order expired")
	ErrOrderRevoked = errors.New("order no longer redeemed")

	// Conditional-write conflicts, one per mutating transition. The store
	// cannot tell which clause of the condition failed, so each transition
	// gets its own sentinel and the client documentation enumerates the
	// possible causes per code.
	ErrActivateConflict = errors.New("activate rejected: order missing, not PENDING, expired, or product/namespace mismatch")
	ErrRedeemConflict   = errors.New("redeem rejected: order missing, not ACTIVATED, expired, or product/redeem code mismatch")
	ErrVoidConflict     = errors.New("void rejected: order missing, already VOIDED, or product/namespace mismatch")
	ErrReturnConflict   = errors.New("return rejected: order missing, not REDEEMED, or product/namespace mismatch")

	// Infrastructure failure; wrapped around the driver error and never
	// retried by the usecase.
	ErrStoreUnavailable = errors.New("order store unavailable")
)

// IsTransitionConflict reports whether err is one of the four
// per-transition conditional-write conflicts.
func IsTransitionConflict(err error) bool {
	return errors.Is(err, ErrActivateConflict) ||
		errors.Is(err, ErrRedeemConflict) ||
		errors.Is(err, ErrVoidConflict) ||
		errors.Is(err, ErrReturnConflict)
}
