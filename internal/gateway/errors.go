package gateway

import "fmt"

// NetworkError indicates the request never produced a usable response:
// a transport failure, a timeout, or a body that could not be parsed.
type NetworkError struct {
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "network error occurred"
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError indicates the backend answered with a non-2xx status. Message
// carries the backend-supplied message verbatim when one was present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// SessionExpiredError is the 401-on-authenticated-request case. By the time a
// caller sees it, the session has already been invalidated and navigation to
// the login route has been forced.
type SessionExpiredError struct{}

func (e *SessionExpiredError) Error() string {
	return "session expired, please login again"
}
