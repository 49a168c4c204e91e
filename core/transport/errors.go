package transport

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Error is a failed request: a non-2xx status or a network failure (Status 0).
type Error struct {
	Method     string
	URL        string
	Status     int
	Body       string
	RetryAfter time.Duration
	Err        error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	}
	return fmt.Sprintf("%s %s: http %d %s", e.Method, e.URL, e.Status, http.StatusText(e.Status))
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a 404 answer.
func IsNotFound(err error) bool {
	var terr *Error
	return errors.As(err, &terr) && terr.Status == http.StatusNotFound
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var terr *Error
	if errors.As(err, &terr) {
		return terr.Status
	}
	return 0
}

// BodyOf returns the response body carried by err, or "".
func BodyOf(err error) string {
	var terr *Error
	if errors.As(err, &terr) {
		return terr.Body
	}
	return ""
}
