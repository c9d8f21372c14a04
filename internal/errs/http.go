package errs

import "strings"

// Response is the JSON body written to the client for every error.
type Response struct {
	Error string `json:"error"`
}

// HTTPError is the main custom error type for API responses.
//
// Only Message is sent to the client (see Response). Code and Status are used
// by the global error handler to pick the status and to tag logs.
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST").
//   - Message: human-friendly message, safe to show to clients.
//   - Status: HTTP status code.
type HTTPError struct {
	Code    string `json:"-"`
	Message string `json:"error"`
	Status  int    `json:"-"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is an *HTTPError with the same Code.
//
// This lets callers keep sentinel values around, e.g.
//
//	errors.Is(err, model.ErrInvalidSearchQuery)
func (e *HTTPError) Is(target error) bool {
	t, ok := target.(*HTTPError)
	if !ok {
		return false
	}

	return t.Code == e.Code
}

// WithMessage returns a *copy* of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:    e.Code,
		Message: message,
		Status:  e.Status,
	}
}

// Body returns the client-facing representation of the error.
func (e *HTTPError) Body() Response {
	return Response{Error: e.Message}
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
