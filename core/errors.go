package core

import (
	"errors"
	"fmt"
)

// ErrInvalidCredential is returned when the Torn API rejects an API key
var ErrInvalidCredential = errors.New("invalid torn api key")

// ErrNotRegistered is returned when a user asks for a report without a stored key
var ErrNotRegistered = errors.New("user has no registered api key")

// ErrRemoteFetch is returned when the report data could not be fetched
var ErrRemoteFetch = errors.New("failed to fetch torn data")

// HTTPStatusError represents a non-200 response from a remote API
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Body)
}

// IsHTTPStatusError checks if an error is an HTTPStatusError
func IsHTTPStatusError(err error) (*HTTPStatusError, bool) {
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}

// TornAPIError is the error object Torn returns inside a 200 response,
// e.g. {"error": {"code": 2, "error": "Incorrect key"}}
type TornAPIError struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
}

func (e *TornAPIError) Error() string {
	return fmt.Sprintf("torn api error %d: %s", e.Code, e.Message)
}

// IsTornAPIError checks if an error is a TornAPIError
func IsTornAPIError(err error) (*TornAPIError, bool) {
	var apiErr *TornAPIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
