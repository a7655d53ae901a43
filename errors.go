package sdk

import (
	"errors"
	"fmt"
)

// Common errors returned by the SDK. These can be used with errors.Is()
// to check for specific failure conditions without inspecting status codes.
//
// Example:
//
//	_, exc := client.Get(ctx, "100ae20131cdbe1").Resolve()
//	if exc != nil {
//	    if errors.Is(exc, sdk.ErrTimeout) {
//	        // Socket timeout, safe to retry
//	    }
//	}
var (
	// ErrInvalidConfig is returned when the client configuration is invalid
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidCacheSpec is returned when a cache spec fails validation
	ErrInvalidCacheSpec = errors.New("invalid cache spec")

	// ErrValidation is returned for bad caller input (empty ids, bad pages)
	ErrValidation = errors.New("validation failed")

	// ErrTimeout is returned when no data arrives within the socket timeout
	ErrTimeout = errors.New("request timeout")

	// ErrRedirectLimit is returned when a call exceeds the redirect limit
	ErrRedirectLimit = errors.New("redirect limit exceeded")

	// ErrTransport is returned for connection and decoding failures
	ErrTransport = errors.New("transport failure")

	// ErrAuth is returned when the credential provider cannot supply credentials
	ErrAuth = errors.New("authentication failure")
)

// StatusCode is a stable, machine-readable identifier for a specific error
// condition. Codes are namespaced strings (dot or colon delimited) defined by
// the remote service's API documentation; codes produced by the client itself
// live under the "framework:client" namespace.
//
// Callers dispatch on the code, never on the human-readable message:
//
//	exc.Dispatch(func(e *sdk.ServiceException) {
//	    // Unknown code: the default arm is mandatory, so swallowing
//	    // unrecognized codes is always an explicit decision.
//	}, map[sdk.StatusCode]sdk.StatusHandler{
//	    sdk.StatusInvalidID: func(e *sdk.ServiceException) { /* ... */ },
//	    "person.illegal.state.change": func(e *sdk.ServiceException) { /* ... */ },
//	})
type StatusCode string

// Status codes originated by the client core. Server-defined codes are passed
// through verbatim and are documented by the remote service.
const (
	// StatusInvalidID indicates a required resource identifier was empty.
	StatusInvalidID StatusCode = "framework:request:invalid:id"

	// StatusInvalidPage indicates a page with non-positive index or size.
	StatusInvalidPage StatusCode = "framework:request:invalid:page"

	// StatusInvalidSort indicates a sort token with an empty field name.
	StatusInvalidSort StatusCode = "framework:request:invalid:sort"

	// StatusIDConflict indicates the server rejected a duplicate identifier.
	StatusIDConflict StatusCode = "framework:request:id:conflict"

	// StatusInvalidConfig indicates the client configuration failed validation.
	StatusInvalidConfig StatusCode = "framework:client:config:invalid"

	// StatusInvalidCacheSpec indicates the cache spec failed validation.
	StatusInvalidCacheSpec StatusCode = "framework:client:config:cache"

	// StatusTimeout indicates the socket timeout elapsed without data.
	StatusTimeout StatusCode = "framework:client:timeout"

	// StatusRedirectLimit indicates too many consecutive redirects.
	StatusRedirectLimit StatusCode = "framework:client:redirect:limit"

	// StatusTransport indicates a connection or response decoding failure.
	StatusTransport StatusCode = "framework:client:transport"

	// StatusAuth indicates the credential provider failed.
	StatusAuth StatusCode = "framework:client:auth"
)

// String returns the code as a plain string.
func (c StatusCode) String() string { return string(c) }

// ServiceException is the single failure type surfaced by the SDK. Every
// failure, whether it originates in caller validation, the transport, or the
// remote service, is normalized into a ServiceException carrying a
// human-readable message and a stable status code.
//
// A ServiceException is immutable once constructed. The message is for humans
// only; programs must dispatch on StatusCode.
type ServiceException struct {
	// Message is a human-readable description of the error.
	Message string

	// StatusCode identifies the error condition for machine dispatch.
	// Server-supplied codes are passed through verbatim.
	StatusCode StatusCode

	// HTTPStatus is the HTTP status of the failing response, if any.
	// Zero for failures that never produced a response.
	HTTPStatus int

	// wrapped is the underlying error, if any
	wrapped error
}

// NewServiceException constructs a ServiceException with the given code and
// message. Intended for tests and for adapters that translate foreign errors
// into the SDK's error model.
func NewServiceException(code StatusCode, message string) *ServiceException {
	return &ServiceException{Message: message, StatusCode: code}
}

// Error implements the error interface.
func (e *ServiceException) Error() string {
	if e.StatusCode != "" {
		return fmt.Sprintf("%s: %s", e.StatusCode, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error, if any.
func (e *ServiceException) Unwrap() error { return e.wrapped }

// Is maps client-originated status codes onto the package sentinel errors so
// that errors.Is(exc, sdk.ErrTimeout) and friends work as expected.
func (e *ServiceException) Is(target error) bool {
	switch e.StatusCode {
	case StatusInvalidID, StatusInvalidPage, StatusInvalidSort:
		return target == ErrValidation
	case StatusInvalidConfig:
		return target == ErrInvalidConfig
	case StatusInvalidCacheSpec:
		return target == ErrInvalidCacheSpec
	case StatusTimeout:
		return target == ErrTimeout
	case StatusRedirectLimit:
		return target == ErrRedirectLimit
	case StatusTransport:
		return target == ErrTransport
	case StatusAuth:
		return target == ErrAuth
	}
	return false
}

// Retryable reports whether the failure is worth retrying by the caller.
// The SDK itself never retries; this only classifies. Timeouts and transport
// failures are retryable, validation and redirect-limit failures are not, and
// server-defined codes are conservatively treated as non-retryable unless the
// HTTP status says otherwise (5xx).
func (e *ServiceException) Retryable() bool {
	switch e.StatusCode {
	case StatusTimeout, StatusTransport:
		return true
	case StatusInvalidID, StatusInvalidPage, StatusInvalidSort,
		StatusInvalidConfig, StatusInvalidCacheSpec,
		StatusRedirectLimit, StatusAuth:
		return false
	}
	return e.HTTPStatus >= 500
}

// StatusHandler handles one dispatched status code.
type StatusHandler func(*ServiceException)

// Dispatch routes the exception to the handler registered for its status
// code. The fallback arm is the first parameter on purpose: an open-ended,
// server-defined code vocabulary means callers will always see codes they do
// not recognize, and the decision of what to do with those must be visible at
// the call site. A nil fallback means "swallow unknown codes" and is legal,
// but it is spelled out in the caller's code.
func (e *ServiceException) Dispatch(fallback StatusHandler, handlers map[StatusCode]StatusHandler) {
	if e == nil {
		return
	}
	if h, ok := handlers[e.StatusCode]; ok && h != nil {
		h(e)
		return
	}
	if fallback != nil {
		fallback(e)
	}
}

// AsServiceException extracts a *ServiceException from an arbitrary error
// chain, or wraps the error in one with the transport status code. Returns
// nil for a nil error.
func AsServiceException(err error) *ServiceException {
	if err == nil {
		return nil
	}
	var exc *ServiceException
	if errors.As(err, &exc) {
		return exc
	}
	return &ServiceException{
		Message:    err.Error(),
		StatusCode: StatusTransport,
		wrapped:    err,
	}
}

// IsRetryable reports whether an error is a retryable ServiceException.
func IsRetryable(err error) bool {
	var exc *ServiceException
	if errors.As(err, &exc) {
		return exc.Retryable()
	}
	return false
}

// newValidationError builds a validation failure.
func newValidationError(code StatusCode, message string) *ServiceException {
	return &ServiceException{Message: message, StatusCode: code, wrapped: ErrValidation}
}

// newTimeoutError builds a socket timeout failure.
func newTimeoutError(op string, cause error) *ServiceException {
	return &ServiceException{
		Message:    fmt.Sprintf("timeout during %s", op),
		StatusCode: StatusTimeout,
		wrapped:    cause,
	}
}

// newRedirectLimitError builds a redirect limit failure.
func newRedirectLimitError(limit int) *ServiceException {
	return &ServiceException{
		Message:    fmt.Sprintf("stopped after %d redirects", limit),
		StatusCode: StatusRedirectLimit,
		wrapped:    ErrRedirectLimit,
	}
}

// newTransportError builds a connection or decoding failure.
func newTransportError(op string, cause error) *ServiceException {
	return &ServiceException{
		Message:    fmt.Sprintf("transport failure during %s: %v", op, cause),
		StatusCode: StatusTransport,
		wrapped:    cause,
	}
}

// newAuthError builds a credential provider failure.
func newAuthError(cause error) *ServiceException {
	return &ServiceException{
		Message:    fmt.Sprintf("failed to obtain credentials: %v", cause),
		StatusCode: StatusAuth,
		wrapped:    cause,
	}
}
