package core

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrSuperseded is returned to a search input that a later input replaced
	// before the debounce window elapsed.
	ErrSuperseded = errors.New("search input superseded")

	// ErrStaleResponse is returned when a refresh finished after a newer one started.
	ErrStaleResponse = errors.New("stale response discarded")

	// ErrNothingToExport is returned when the current page has no rows.
	ErrNothingToExport = errors.New("no data to export")

	// ErrUnknownSortField is returned for sort columns other than title and price.
	ErrUnknownSortField = errors.New("unknown sort field")

	// ErrNoSession is returned for requests whose session cookie is missing or expired.
	ErrNoSession = errors.New("session expired")
)

// NetworkError reports a remote call that failed to complete or returned non-2xx.
type NetworkError struct {
	Op     string // list, get, create, update
	Status int    // HTTP status, 0 when the request never completed
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("HTTP %d", e.Status)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "request failed"
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsStatus reports whether err is a NetworkError carrying the given HTTP status.
func IsStatus(err error, status int) bool {
	var ne *NetworkError
	return errors.As(err, &ne) && ne.Status == status
}

// NotFoundError reports a detail lookup for an id that is not loaded.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ID)
}

// HTTPStatus picks the response status a handler should use for err.
func HTTPStatus(err error) int {
	var nf *NotFoundError
	var ne *NetworkError
	switch {
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.Is(err, ErrUnknownSortField), errors.Is(err, ErrNothingToExport):
		return http.StatusBadRequest
	case errors.Is(err, ErrNoSession):
		return http.StatusUnauthorized
	case errors.As(err, &ne):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
