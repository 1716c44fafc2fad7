package internal

import "errors"

// Accessor outcomes callers are expected to branch on with errors.Is.
// ErrNotFound is an expected condition (no record for the subject/kind pair)
// and is never logged as an error. ErrStoreUnavailable covers transport or
// auth failures reaching the store; callers degrade to context-free mode.
var (
	ErrNotFound         = errors.New("record not found")
	ErrStoreUnavailable = errors.New("record store unavailable")
)

// AppError is the error shape returned inside API response envelopes.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func (e *AppError) Error() string {
	return e.Message
}
