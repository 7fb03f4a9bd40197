package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// FieldError is one entry of the "errors" array the API returns when request
// validation fails.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

// APIError is a non-2xx response decoded from the API's error envelope.
type APIError struct {
	StatusCode int          `json:"-"`
	Message    string       `json:"message"`
	Errors     []FieldError `json:"errors"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	if len(e.Errors) > 0 {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Errors[0].Msg)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// Unwrap maps the status code onto the package sentinels.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized, e.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case e.StatusCode >= http.StatusInternalServerError:
		return ErrUnavailable
	default:
		return nil
	}
}

// FirstFieldMessage returns the message of the first field error, or "".
func (e *APIError) FirstFieldMessage() string {
	if len(e.Errors) == 0 {
		return ""
	}
	return e.Errors[0].Msg
}

// parseAPIError decodes an error envelope. A body that is not JSON still
// yields an APIError with only the status code set.
func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{}
	_ = json.Unmarshal(body, apiErr)
	apiErr.StatusCode = status
	return apiErr
}
