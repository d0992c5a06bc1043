package utils

import (
	"net/http"
	"time"
)

// NewHTTPClient returns the client used for calls to collaborator services.
// Requests additionally go through a circuit breaker configured in main.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 5 * time.Second,
	}
}
