package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
)

// Label error codes
const (
	// ErrCodeInvalidAddress is used when a sender address is incomplete
	ErrCodeInvalidAddress = "ERR_INVALID_ADDRESS"
	// ErrCodeEmptyBatch is used when a render request carries no bills
	ErrCodeEmptyBatch = "ERR_EMPTY_BATCH"
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeRenderFailed is used when label rendering fails
	ErrCodeRenderFailed = "ERR_RENDER_FAILED"
	// ErrCodePrintFailed is used when the print flow aborts
	ErrCodePrintFailed = "ERR_PRINT_FAILED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:     http.StatusBadRequest,
	ErrCodeInvalidInput:   http.StatusBadRequest,
	ErrCodeInvalidJSON:    http.StatusBadRequest,
	ErrCodeValidation:     http.StatusBadRequest,
	ErrCodeInvalidAddress: http.StatusBadRequest,
	ErrCodeEmptyBatch:     http.StatusBadRequest,

	ErrCodeNotFound: http.StatusNotFound,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState: http.StatusUnprocessableEntity,

	// Rendering and printing failures -> 500
	ErrCodeRenderFailed: http.StatusInternalServerError,
	ErrCodePrintFailed:  http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// LegacyErrorCodeMapping maps domain error codes to the standardized format
var LegacyErrorCodeMapping = map[string]string{
	"NOT_FOUND":         ErrCodeNotFound,
	"INVALID_INPUT":     ErrCodeInvalidInput,
	"INVALID_STATE":     ErrCodeInvalidState,
	"INVALID_ADDRESS":   ErrCodeInvalidAddress,
	"INVALID_TEMPLATE":  ErrCodeInvalidInput,
	"EMPTY_BATCH":       ErrCodeEmptyBatch,
	"RENDER_FAILED":     ErrCodeRenderFailed,
	"PDF_OUTPUT_FAILED": ErrCodeRenderFailed,
	"BAD_REQUEST":       ErrCodeBadRequest,
	"INTERNAL_ERROR":    ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := LegacyErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
