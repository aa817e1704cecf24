// Package errors provides custom error types for the Tally API.
// All gateway and store errors use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication errors.
var (
	ErrUnauthorized = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidToken = &AppError{Code: "INVALID_TOKEN", Message: "Invalid or expired access token", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Remote row-store errors. The gateway raises exactly one of these per failed
// round trip; the store re-raises them unchanged.
var (
	ErrFetchFailed  = &AppError{Code: "FETCH_FAILED", Message: "Failed to fetch data from the remote store", StatusCode: http.StatusBadGateway}
	ErrCreateFailed = &AppError{Code: "CREATE_FAILED", Message: "Failed to create the record", StatusCode: http.StatusBadGateway}
	ErrUpdateFailed = &AppError{Code: "UPDATE_FAILED", Message: "Failed to update the record", StatusCode: http.StatusBadGateway}
	ErrDeleteFailed = &AppError{Code: "DELETE_FAILED", Message: "Failed to delete the record", StatusCode: http.StatusBadGateway}
)

// Store errors.
var (
	ErrNotInitialized = &AppError{Code: "NOT_INITIALIZED", Message: "Data has not been loaded yet", StatusCode: http.StatusServiceUnavailable}
)

// Transaction errors.
var (
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrZeroAmount          = &AppError{Code: "ZERO_AMOUNT", Message: "Amount must not be zero", StatusCode: http.StatusBadRequest}
)

// Category errors.
var (
	ErrCategoryNotFound = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrDefaultCategory  = &AppError{Code: "DEFAULT_CATEGORY", Message: "Default categories cannot be deleted", StatusCode: http.StatusConflict}
)

// Import errors.
var (
	ErrWorkbookFormat = &AppError{Code: "WORKBOOK_FORMAT", Message: "The file is not a valid workbook", StatusCode: http.StatusBadRequest}
)
