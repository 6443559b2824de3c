package mmclient

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a failed request against the Mattermost API. A zero
// StatusCode means the request never reached the server (network error).
type APIError struct {
	StatusCode int
	Endpoint   string
	ID         string // Mattermost error id, e.g. "api.webhook.create_incoming.permissions.app_error"
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("request to %s failed: %s", e.Endpoint, e.Message)
	}
	return fmt.Sprintf("request to %s failed with status %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

// IsTransient reports whether the failure is worth retrying: a network
// error, rate limiting, or a 5xx gateway/server condition.
func (e *APIError) IsTransient() bool {
	switch e.StatusCode {
	case 0,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// IsPermission reports whether the server rejected the request for lack of
// permissions.
func (e *APIError) IsPermission() bool {
	return e.StatusCode == http.StatusForbidden
}

// IsConflict reports whether the request collided with an existing object.
func (e *APIError) IsConflict() bool {
	return e.StatusCode == http.StatusConflict
}

// AsAPIError unwraps err into an *APIError, or returns nil.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
