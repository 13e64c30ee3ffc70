package handlers

import (
	"errors"
	"net/http"

	"github.com/mamadbah2/stockdesk/internal/repository/mongodb"
	"github.com/mamadbah2/stockdesk/internal/service/inventory"
)

// statusFor maps service errors onto HTTP status codes. Anything not
// recognized is treated as a store failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, mongodb.ErrInvalidID),
		errors.Is(err, inventory.ErrUnknownField),
		errors.Is(err, inventory.ErrInvalidFieldValue):
		return http.StatusBadRequest
	case errors.Is(err, mongodb.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

// clientFault reports whether the status blames the caller; those responses
// carry the error detail so the caller can fix the request.
func clientFault(status int) bool {
	return status >= http.StatusBadRequest && status < http.StatusInternalServerError
}
