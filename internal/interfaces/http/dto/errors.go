package dto

import (
	"net/http"
	"strings"
)

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeValidation is used for request validation failures
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeConflict is used for resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// domainCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here fall back to the pattern rules in GetHTTPStatus.
var domainCodeHTTPStatus = map[string]int{
	// Lookups that failed -> 404
	"NOT_FOUND":          http.StatusNotFound,
	"PRODUCT_NOT_FOUND":  http.StatusNotFound,
	"VARIANT_NOT_FOUND":  http.StatusNotFound,
	"SIZE_NOT_FOUND":     http.StatusNotFound,
	"SUPPLIER_NOT_FOUND": http.StatusNotFound,
	"CUSTOMER_NOT_FOUND": http.StatusNotFound,

	// Conflicts -> 409
	"ALREADY_EXISTS":       http.StatusConflict,
	"ALREADY_RECEIVED":     http.StatusConflict,
	"DUPLICATE_INVOICE":    http.StatusConflict,
	"DUPLICATE_SIZE":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// Business rule violations -> 422
	"INVALID_STATE":         http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":    http.StatusUnprocessableEntity,
	"INCONSISTENT_MOVEMENT": http.StatusUnprocessableEntity,

	// Input problems -> 400
	"INVALID_INPUT":    http.StatusBadRequest,
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,
	ErrCodeValidation:  http.StatusBadRequest,

	ErrCodeNotFound: http.StatusNotFound,
	ErrCodeConflict: http.StatusConflict,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status for a domain error code. Unlisted
// codes are classified by shape: INVALID_* means the caller sent bad data,
// *_NOT_FOUND means a missing resource. Anything else is an internal error
// so unexpected codes never leak as client errors.
func GetHTTPStatus(code string) int {
	if status, ok := domainCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasSuffix(code, "_NOT_FOUND") {
		return http.StatusNotFound
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
