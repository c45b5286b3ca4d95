package joplin

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned when the requested item does not exist.
var ErrNotFound = errors.New("item not found")

// APIError is a non-2xx response from the data API. Joplin reports
// errors as {"error": "..."} JSON bodies; Message carries that text
// when present and Body always carries the raw response.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("joplin: API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("joplin: API error (status %d): %s", e.StatusCode, e.Body)
}

// newAPIError builds an APIError from a response body, extracting the
// "error" field when the body is the usual JSON error shape.
func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode, Body: string(body)}
	var wire struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &wire); err == nil && wire.Error != "" {
		apiErr.Message = wire.Error
	}
	return apiErr
}
