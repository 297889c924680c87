package errors

import (
	"fmt"
	"net/http"
)

// RemoteError reports an unexpected HTTP status from a jasoseol page.
type RemoteError struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	URL       string `json:"url,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

var (
	ErrUnexpectedStatus = func(code int, url string) *RemoteError {
		return New(code, http.StatusText(code), url)
	}
	ErrUnauthorized = func(url string) *RemoteError { return New(http.StatusUnauthorized, "Unauthorized", url) }
	ErrNotFound     = func(url string) *RemoteError { return New(http.StatusNotFound, "Not Found", url) }
)

func New(code int, message, url string) *RemoteError {
	return &RemoteError{
		Code:    code,
		Message: message,
		URL:     url,
	}
}

// FromStatus picks the matching constructor for a non-200 response.
func FromStatus(code int, url string) *RemoteError {
	switch code {
	case http.StatusUnauthorized:
		return ErrUnauthorized(url)
	case http.StatusNotFound:
		return ErrNotFound(url)
	default:
		return ErrUnexpectedStatus(code, url)
	}
}

func (e *RemoteError) WithRequestID(requestID string) *RemoteError {
	e.RequestID = requestID
	return e
}

func (e *RemoteError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "unexpected status"
	}
	if e.URL != "" {
		return fmt.Sprintf("%s (%d): %s", msg, e.Code, e.URL)
	}
	return fmt.Sprintf("%s (%d)", msg, e.Code)
}

func (e *RemoteError) StatusCode() int {
	return e.Code
}
