// Package errors provides the structured error types used across the ledger
// engine. Every caller-visible failure is an *AppError carrying a stable code,
// so the UI layer can map failures to messages without string matching.
package errors

// AppError represents a structured application error with an error code,
// human-readable message, and optional internal cause.
type AppError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Internal error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:     sentinel.Code,
		Message:  sentinel.Message,
		Internal: internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:     sentinel.Code,
		Message:  message,
		Internal: sentinel.Internal,
	}
}

// Validation errors.
var (
	ErrInvalidAmount = &AppError{Code: "INVALID_AMOUNT", Message: "Amount must be non-negative"}
	ErrInvalidMonth  = &AppError{Code: "INVALID_MONTH", Message: "Month must be between 1 and 12"}
	ErrInvalidField  = &AppError{Code: "INVALID_FIELD", Message: "Required field is missing or invalid"}
)

// Budget errors.
var (
	ErrBudgetExceeded = &AppError{Code: "BUDGET_EXCEEDED", Message: "Adding this expense exceeds the budget for the month"}
	ErrBudgetNotFound = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found"}
	ErrBudgetExists   = &AppError{Code: "BUDGET_EXISTS", Message: "A budget already exists for this user"}
)

// Transaction store errors.
var (
	ErrDuplicateTransaction = &AppError{Code: "DUPLICATE_TRANSACTION", Message: "Transaction with this ID is already recorded"}
)

// User errors.
var (
	ErrUserNotFound       = &AppError{Code: "USER_NOT_FOUND", Message: "User not found"}
	ErrDuplicateUsername  = &AppError{Code: "DUPLICATE_USERNAME", Message: "A user with this username already exists"}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid username or password"}
)

// Infrastructure errors.
var (
	ErrNotFound           = &AppError{Code: "NOT_FOUND", Message: "Resource not found"}
	ErrPersistenceFailure = &AppError{Code: "PERSISTENCE_FAILURE", Message: "Underlying storage read or write failed"}
	ErrInternal           = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred"}
)
