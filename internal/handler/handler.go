// Package handler exposes the store's operations over HTTP. Handlers stay
// thin: bind, call the store, map refusals to statuses. All invariants live
// in the store.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"barpos/internal/store"
)

// Handler carries the shared store into the route functions.
type Handler struct {
	store *store.Store
}

// New returns a handler bound to the store.
func New(s *store.Store) *Handler {
	return &Handler{store: s}
}

// statusFor maps store refusals onto HTTP statuses. Unknown errors are 500s.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrTicketNotFound),
		errors.Is(err, store.ErrProductNotFound),
		errors.Is(err, store.ErrLineNotFound),
		errors.Is(err, store.ErrOperatorNotFound),
		errors.Is(err, store.ErrNoShift):
		return http.StatusNotFound
	case errors.Is(err, store.ErrShiftActive),
		errors.Is(err, store.ErrUnsettledTabs),
		errors.Is(err, store.ErrTicketNotEmpty):
		return http.StatusConflict
	case errors.Is(err, store.ErrInsufficientTender),
		errors.Is(err, store.ErrEmptyTicket),
		errors.Is(err, store.ErrInvalidChipType),
		errors.Is(err, store.ErrBadChipCount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func fail(c echo.Context, err error) error {
	return c.JSON(statusFor(err), echo.Map{"error": err.Error()})
}
