package alphavantage

import (
	"errors"
	"fmt"
)

// ErrDecode marks a response body that could not be decoded.
var ErrDecode = errors.New("decoding response")

// APIError is an error reported inside an otherwise successful response
// body, such as an invalid symbol or an exhausted request quota.
type APIError struct {
	// Kind is the response field that carried the message: "Error Message",
	// "Note" or "Information".
	Kind    string
	Message string
}

func (e *APIError) Error() string {
	if e.RateLimited() {
		return fmt.Sprintf("rate limited: %s", e.Message)
	}
	return fmt.Sprintf("api error: %s", e.Message)
}

// RateLimited reports whether the API refused the call because the request
// quota was exhausted.
func (e *APIError) RateLimited() bool {
	return e.Kind == "Note" || e.Kind == "Information"
}

// StatusError is returned for non-200 HTTP responses.
type StatusError struct {
	Function   string
	StatusCode int
}

func (e *StatusError) Error() string {
	switch e.StatusCode {
	case 401, 403:
		return "unauthorized"
	case 429:
		return "rate limited"
	default:
		return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
	}
}
