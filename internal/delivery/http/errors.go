package http

import (
	"errors"
	"net/http"

	"github.com/arplanets/livesight-order-service/internal/domain"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Stable wire error codes. Clients switch on these, so the numbers are
// frozen even where they look sparse.
const (
	codeOrderNotFound     = "order_001"
	codeLiveSightNotFound = "order_002"
	codeOrgPermission     = "order_003"
	codeProductMismatch   = "order_004"
	codeNamespaceMismatch = "order_005"
	codeSaltMismatch      = "order_006"
	codeRedeemMismatch    = "order_007"
	codeTokenInvalid      = "order_008"
	codeOrderExpired      = "order_009"
	codeOrderRevoked      = "order_010"
	codeInvalidRequest    = "order_011"
	codeActivateConflict  = "order_016"
	codeRedeemConflict    = "order_017"
	codeVoidConflict      = "order_018"
	codeReturnConflict    = "order_019"
	codeStoreUnavailable  = "order_503"
	codeInternal          = "order_500"
)

type errorMapping struct {
	status int
	code   string
}

var errorMappings = []struct {
	err     error
	mapping errorMapping
}{
	{domain.ErrOrderNotFound, errorMapping{http.StatusNotFound, codeOrderNotFound}},
	{domain.ErrLiveSightNotFound, errorMapping{http.StatusNotFound, codeLiveSightNotFound}},
	{domain.ErrOrgPermissionDenied, errorMapping{http.StatusForbidden, codeOrgPermission}},
	{domain.ErrProductMismatch, errorMapping{http.StatusForbidden, codeProductMismatch}},
	{domain.ErrNamespaceMismatch, errorMapping{http.StatusForbidden, codeNamespaceMismatch}},
	{domain.ErrSaltMismatch, errorMapping{http.StatusUnauthorized, codeSaltMismatch}},
	{domain.ErrRedeemCodeMismatch, errorMapping{http.StatusUnauthorized, codeRedeemMismatch}},
	{domain.ErrTokenInvalid, errorMapping{http.StatusUnauthorized, codeTokenInvalid}},
	{domain.ErrOrderExpired, errorMapping{http.StatusGone, codeOrderExpired}},
	{domain.ErrOrderRevoked, errorMapping{http.StatusUnauthorized, codeOrderRevoked}},
	{domain.ErrActivateConflict, errorMapping{http.StatusConflict, codeActivateConflict}},
	{domain.ErrRedeemConflict, errorMapping{http.StatusConflict, codeRedeemConflict}},
	{domain.ErrVoidConflict, errorMapping{http.StatusConflict, codeVoidConflict}},
	{domain.ErrReturnConflict, errorMapping{http.StatusConflict, codeReturnConflict}},
	{domain.ErrStoreUnavailable, errorMapping{http.StatusServiceUnavailable, codeStoreUnavailable}},
}

// mapDomainError translates a usecase error to its wire shape. Unmapped
// errors collapse to a generic 500 so internals never leak.
func mapDomainError(err error) (int, errorResponse) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.mapping.status, errorResponse{Code: m.mapping.code, Message: m.err.Error()}
		}
	}
	return http.StatusInternalServerError, errorResponse{Code: codeInternal, Message: "internal error"}
}
