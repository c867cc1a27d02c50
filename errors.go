package authx

import "fmt"

// ErrorCode represents session error categories.
type ErrorCode string

const (
	ErrCodeDecodeFailed ErrorCode = "decode_failed"
	ErrCodeExchange     ErrorCode = "exchange_failed"
	ErrCodeProfileFetch ErrorCode = "profile_fetch_failed"
	ErrCodeNoSession    ErrorCode = "no_session"
	ErrCodeInternal     ErrorCode = "internal_error"
)

var errorMessages = map[ErrorCode]string{
	ErrCodeDecodeFailed: "Token decode failed",
	ErrCodeExchange:     "Authorization code exchange failed",
	ErrCodeProfileFetch: "Profile fetch failed",
	ErrCodeNoSession:    "No active session",
	ErrCodeInternal:     "Internal error",
}

// Error wraps session errors with a stable code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	base := e.Message
	if base == "" {
		base = string(e.Code)
	}
	if e.Err == nil {
		return base
	}
	return fmt.Sprintf("%s: %v", base, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, err error) error {
	msg, ok := errorMessages[code]
	if !ok {
		msg = string(code)
	}
	return &Error{Code: code, Message: msg, Err: err}
}
