package errs

import (
	"net/http"
)

// InternalServerErrorMessage is the only message a client ever sees for a 5xx.
const InternalServerErrorMessage = "Internal server error"

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// code is optional; if nil it defaults to "BAD_REQUEST".
func NewBadRequestError(message string, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))

	// Caller supplied codes are used as-is.
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))

	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewTooManyRequestsError creates a 429 Too Many Requests HTTPError.
func NewTooManyRequestsError() *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusTooManyRequests)),
		Message: "Too many requests",
		Status:  http.StatusTooManyRequests,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is always the generic InternalServerErrorMessage, never the
// underlying cause.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message: InternalServerErrorMessage,
		Status:  http.StatusInternalServerError,
	}
}

// NewStatusError creates an HTTPError for an arbitrary status using the
// standard status text as message.
func NewStatusError(status int) *HTTPError {
	if status >= http.StatusInternalServerError {
		err := NewInternalServerError()
		err.Status = status
		return err
	}

	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message: http.StatusText(status),
		Status:  status,
	}
}

// ValidationError converts a generic validation error into a 400 Bad Request HTTPError.
func ValidationError(err error) *HTTPError {
	return NewBadRequestError("Validation failed: "+err.Error(), nil)
}
