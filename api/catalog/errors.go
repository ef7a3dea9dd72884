package catalog

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound    = errors.New("book not found")
	ErrBadRequest  = errors.New("bad request")
	ErrUnavailable = errors.New("catalog service unavailable")
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// APIError is a non-2xx answer from the Catalog Service.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("catalog: HTTP %d", e.Status)
	}
	return fmt.Sprintf("catalog: HTTP %d: %s", e.Status, e.Message)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrBadRequest:
		return e.Status == http.StatusBadRequest
	}
	return false
}
