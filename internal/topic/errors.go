package topic

import "fmt"

// ErrorType represents the category of error that occurred while talking to
// the Topic ID service. Every category triggers the same recovery - the
// caller synthesizes a fallback identifier - but the type is kept for
// logging and tests.
type ErrorType int

const (
	// ErrTypeNetwork indicates a transport-level error (connection refused,
	// timeout, DNS failure).
	ErrTypeNetwork ErrorType = iota
	// ErrTypeHTTP indicates a non-success HTTP status from the service.
	ErrTypeHTTP
	// ErrTypeParse indicates a malformed or empty response body.
	ErrTypeParse
)

// String returns a human-readable name for the error type.
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// ServiceError represents an error from the Topic ID service.
type ServiceError struct {
	Type       ErrorType // Category of error
	Message    string    // Human-readable error message
	StatusCode int       // HTTP status code (if applicable)
	Err        error     // Underlying error (if any)
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a transport-level ServiceError
func NewNetworkError(message string, err error) *ServiceError {
	return &ServiceError{Type: ErrTypeNetwork, Message: message, Err: err}
}

// NewHTTPError creates a ServiceError for an unexpected HTTP status
func NewHTTPError(statusCode int, message string) *ServiceError {
	return &ServiceError{Type: ErrTypeHTTP, Message: message, StatusCode: statusCode}
}

// NewParseError creates a ServiceError for a malformed response
func NewParseError(message string, err error) *ServiceError {
	return &ServiceError{Type: ErrTypeParse, Message: message, Err: err}
}
