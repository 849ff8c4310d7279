package dto

import "net/http"

// Transport-level error codes
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeInvalidJSON  = "INVALID_JSON"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes. Codes
// absent from the map fall back to 500.
var ErrorCodeHTTPStatus = map[string]int{
	// Input and validation -> 400 Bad Request
	ErrCodeBadRequest:    http.StatusBadRequest,
	ErrCodeInvalidJSON:   http.StatusBadRequest,
	"INVALID_INPUT":      http.StatusBadRequest,
	"INVALID_QUANTITY":   http.StatusBadRequest,
	"INVALID_NAME":       http.StatusBadRequest,
	"INVALID_PRODUCT":    http.StatusBadRequest,
	"INVALID_STORE":      http.StatusBadRequest,
	"INVALID_REFERENCE":  http.StatusBadRequest,
	"INVALID_ORDER":      http.StatusBadRequest,
	"INVALID_WAREHOUSE":  http.StatusBadRequest,
	"INVALID_ZONE":       http.StatusBadRequest,
	"INVALID_RACK":       http.StatusBadRequest,
	"INVALID_SHIPMENT":   http.StatusBadRequest,
	"INVALID_STATUS":     http.StatusBadRequest,
	"BATCH_TOO_LARGE":    http.StatusBadRequest,
	"HIERARCHY_MISMATCH": http.StatusBadRequest,

	// Auth
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	// Resource errors
	ErrCodeNotFound:    http.StatusNotFound,
	"MISSING_UNITS":    http.StatusNotFound,
	"ORDERS_NOT_FOUND": http.StatusNotFound,
	"ALREADY_EXISTS":   http.StatusConflict,

	// Concurrency -> 409 Conflict, caller should re-query and retry
	"RESERVATION_CONFLICT":    http.StatusConflict,
	"CONCURRENT_MODIFICATION": http.StatusConflict,
	"CONCURRENCY_CONFLICT":    http.StatusConflict,

	// Business rule violations -> 422 Unprocessable Entity
	"INVALID_STATE":      http.StatusUnprocessableEntity,
	"INVALID_TRANSITION": http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK": http.StatusUnprocessableEntity,
	"UNMAPPED_PRODUCT":   http.StatusUnprocessableEntity,
	"UNIT_RESERVED":      http.StatusUnprocessableEntity,

	ErrCodeInternal: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
