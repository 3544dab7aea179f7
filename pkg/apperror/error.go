package apperror

import "net/http"

// Messages returned to callers. They are part of the public contract of the
// relay and must stay machine-readable.
const (
	MsgForbiddenOrigin  = "Forbidden origin"
	MsgMethodNotAllowed = "Method Not Allowed"
	MsgInvalidJSON      = "Invalid JSON"
	MsgMissingFields    = "Missing required fields"
	MsgNotConfigured    = "Server not configured"
	MsgSendFailed       = "Email send failed"
	MsgInternal         = "Internal Server Error"
)

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message, nil)
}

func MethodNotAllowed() *AppError {
	return New(http.StatusMethodNotAllowed, MsgMethodNotAllowed, nil)
}

func Unprocessable(message string, err error) *AppError {
	return New(http.StatusUnprocessableEntity, message, err)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, MsgInternal, err)
}

// NotConfigured is returned when sender or recipient addressing is missing.
func NotConfigured(err error) *AppError {
	return New(http.StatusInternalServerError, MsgNotConfigured, err)
}

// SendFailed wraps an error from the email-sending capability.
func SendFailed(err error) *AppError {
	return New(http.StatusInternalServerError, MsgSendFailed, err)
}
