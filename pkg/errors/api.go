package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ConnectionError reports a request that never produced a usable response:
// DNS failures, refused connections, timeouts and bodies that are not JSON.
// It deliberately carries no status code.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error: %s: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error   { return e.Err }
func (e *ConnectionError) ErrorCode() Code { return ErrCodeConnection }

// HTTPError reports a non-2xx response.
type HTTPError struct {
	Status int
	URL    string
	Body   []byte // First bytes of the response body, for inspection.
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: status %d: %s", e.Status, e.URL)
}

// ErrorCode maps the status onto the package error codes.
func (e *HTTPError) ErrorCode() Code {
	switch {
	case e.Status == http.StatusBadRequest:
		return ErrCodeInvalidInput
	case e.Status == http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case e.Status == http.StatusForbidden:
		return ErrCodeForbidden
	case e.Status == http.StatusNotFound:
		return ErrCodeNotFound
	case e.Status == http.StatusTooManyRequests:
		return ErrCodeRateLimited
	case e.Status >= 500:
		return ErrCodeUnavailable
	default:
		return ErrCodeHTTP
	}
}

// ValidationError reports a response that decoded but had the wrong shape.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid response: " + e.Reason
	}
	return fmt.Sprintf("invalid response: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) ErrorCode() Code { return ErrCodeValidation }

// Invalid is shorthand for a [ValidationError].
func Invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// StatusCode returns the HTTP status carried by err, if any.
func StatusCode(err error) (int, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Status, true
	}
	return 0, false
}

// IsConnection reports whether err is a [ConnectionError].
func IsConnection(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}

// UserMessage returns a user-friendly message for the error.
//
// HTTP failures use a fixed table keyed by status code. Connection and
// validation failures get their own messages. For *Error types the message
// without the code prefix is returned; other errors are returned as-is.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if status, ok := StatusCode(err); ok {
		return statusMessage(status)
	}
	if IsConnection(err) {
		return "Could not reach the server. Check your connection and the API URL."
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return "The server returned data in an unexpected format."
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func statusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Bad request. Check the parameters you sent."
	case http.StatusUnauthorized:
		return "Unauthorized. Check your API key."
	case http.StatusForbidden:
		return "Forbidden. You do not have permission for this operation."
	case http.StatusNotFound:
		return "Resource not found."
	case http.StatusTooManyRequests:
		return "Too many requests. Try again later."
	case http.StatusInternalServerError:
		return "Internal server error. Try again later."
	case http.StatusBadGateway:
		return "Bad gateway. The server is unavailable, try again later."
	case http.StatusServiceUnavailable:
		return "Service temporarily unavailable."
	}
	if status > 500 {
		return "The server is unavailable. Try again later."
	}
	return fmt.Sprintf("Server error: %d", status)
}
