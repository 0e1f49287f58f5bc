package apiclient

import (
	"errors"
	"fmt"
)

// ErrInvalidResponse is returned for bodies that are not JSON, HTML fallback pages included.
var ErrInvalidResponse = errors.New("invalid server response")

// TransportError wraps connectivity failures (DNS, refused, reset, timeout).
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: transport: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is a non-2xx answer of the remote API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote api: status %d", e.Status)
	}
	return fmt.Sprintf("remote api: status %d: %s", e.Status, e.Message)
}

// UserMessage picks the text shown to the user: the server message when there is one, else fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrInvalidResponse) {
		return "Réponse invalide du serveur"
	}
	return fallback
}

// IsTransport reports whether err is a connectivity failure.
func IsTransport(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}
