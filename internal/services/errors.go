package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured is returned before any request when no model credential is set.
	ErrNotConfigured = errors.New("chat completion service not configured")

	// ErrNoChoices is returned when a reply decodes but carries no usable text.
	ErrNoChoices = errors.New("chat completion returned no content")
)

// APIError is a non-2xx reply from an upstream HTTP API.
type APIError struct {
	Service string
	Status  int
	Body    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error: %d - %s", e.Service, e.Status, e.Body)
}
