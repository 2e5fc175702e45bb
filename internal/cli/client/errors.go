package client

import (
	"errors"
	"net/http"
)

// Messages shown when the server's error body cannot be parsed (or carries no
// message). Keyed by HTTP status.
var statusMessages = map[int]string{
	http.StatusBadRequest:          "Invalid data sent to the server",
	http.StatusUnauthorized:        "Invalid or expired credentials",
	http.StatusForbidden:           "Access denied",
	http.StatusNotFound:            "Service not found",
	http.StatusInternalServerError: "Internal server error",
	http.StatusBadGateway:          "Server unavailable",
	http.StatusServiceUnavailable:  "Service temporarily unavailable",
}

const (
	genericErrorMessage = "Error communicating with the server"
	connectivityMessage = "Could not connect to the server. Check your network connection."
)

func messageForStatus(status int) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return genericErrorMessage
}

// APIError is the normalized error shape for every Painel API failure. Message
// comes from the server's error body when it parses, otherwise from the fixed
// status table. Status is 0 for transport-level failures.
type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`

	cause error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return genericErrorMessage
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// IsSessionInvalid reports whether err is an API error carrying a
// session-invalidating status (401 or 403).
func IsSessionInvalid(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
}
