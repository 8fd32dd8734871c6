package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"barpos/internal/model"
)

// ListOperators returns the roster. PINs are stripped from the response.
func (h *Handler) ListOperators(c echo.Context) error {
	operators := h.store.Operators()
	out := make([]model.Bartender, 0, len(operators))
	for _, op := range operators {
		op.PIN = ""
		out = append(out, op)
	}
	return c.JSON(http.StatusOK, out)
}

// AddOperatorRequest creates a roster entry
type AddOperatorRequest struct {
	Name string `json:"name"`
	PIN  string `json:"pin"`
}

// AddOperator appends a new operator to the roster
func (h *Handler) AddOperator(c echo.Context) error {
	var req AddOperatorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	op := h.store.AddOperator(req.Name, req.PIN)
	op.PIN = ""
	return c.JSON(http.StatusCreated, op)
}

// DeactivateOperator marks an operator inactive
func (h *Handler) DeactivateOperator(c echo.Context) error {
	if err := h.store.DeactivateOperator(c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deactivated": c.Param("id")})
}
