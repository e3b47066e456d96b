package compute

import "fmt"

// TransportFallbackMessage is the display message used when a request fails
// without any structured detail from the service (network error, timeout,
// malformed response).
const TransportFallbackMessage = "could not reach the compute service; check the service URL and try again"

// RemoteError is a failure the compute service itself reported: a non-2xx
// response, usually with a structured {message, detail} body.
type RemoteError struct {
	// StatusCode is the HTTP status of the failure response.
	StatusCode int
	// Message is the service's short error message, if any.
	Message string
	// Detail is the service's human-readable detail, if any.
	Detail string
}

func (e *RemoteError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("compute service error (status %d): %s", e.StatusCode, e.Detail)
	}
	if e.Message != "" {
		return fmt.Sprintf("compute service error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("compute service error (status %d)", e.StatusCode)
}

// DisplayMessage returns the service-provided text suitable for showing to
// the user verbatim, falling back to the generic transport message when the
// response carried no detail at all.
func (e *RemoteError) DisplayMessage() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Message != "" {
		return e.Message
	}
	return TransportFallbackMessage
}

// TransportError is a failure before any service response could be
// interpreted: connection errors, timeouts, and undecodable bodies.
type TransportError struct {
	// Op is the request that failed (e.g. "generate", "sun_path").
	Op string
	// Err is the underlying error.
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chain traversal.
func (e *TransportError) Unwrap() error {
	return e.Err
}
