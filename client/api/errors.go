// Package api holds the error types shared by the HTTP client packages.
package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
)

// FetchError is a request that failed, either in transport or with a
// non-2xx status. Status is zero when the request never reached the server.
type FetchError struct {
	Status  int
	Message string
}

func (e *FetchError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// AuthError means the caller has no usable credentials, either because no
// token is stored or because the server rejected the one presented.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// ValidationError reports client-side input rejection. No request is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ErrorFromResponse builds a FetchError from a non-2xx response, pulling the
// server's {"message": ...} body when one is present and falling back to the
// HTTP status text otherwise.
func ErrorFromResponse(resp *http.Response) *FetchError {
	msg := http.StatusText(resp.StatusCode)
	if body, err := io.ReadAll(resp.Body); err == nil && len(body) > 0 {
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
			msg = payload.Message
		}
	}
	return &FetchError{Status: resp.StatusCode, Message: msg}
}
