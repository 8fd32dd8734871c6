package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"barpos/internal/middleware"
)

// GetOrdering returns the override list for an operator/key, or the default
// list when no operator is given
func (h *Handler) GetOrdering(c echo.Context) error {
	key := c.QueryParam("key")
	if key == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "key is required"})
	}
	operator := c.QueryParam("operator")
	if operator == "" {
		return c.JSON(http.StatusOK, echo.Map{"key": key, "ids": h.store.DefaultOrdering(key)})
	}
	return c.JSON(http.StatusOK, echo.Map{"key": key, "operator": operator, "ids": h.store.Ordering(operator, key)})
}

// SetOrderingRequest saves an explicit product order for a key. Without an
// operator it updates the default slot.
type SetOrderingRequest struct {
	Operator string   `json:"operator"`
	Key      string   `json:"key"`
	IDs      []string `json:"ids"`
}

// SetOrdering saves an override list
func (h *Handler) SetOrdering(c echo.Context) error {
	var req SetOrderingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Key == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "key is required"})
	}
	if req.Operator == "" {
		h.store.SetDefaultOrdering(req.Key, req.IDs)
	} else {
		h.store.SetOrdering(req.Operator, req.Key, req.IDs)
	}
	return c.JSON(http.StatusOK, echo.Map{"key": req.Key, "count": len(req.IDs)})
}

// ResetOrdering drops every override for an operator
func (h *Handler) ResetOrdering(c echo.Context) error {
	operator := c.Param("operator")
	if operator == "" {
		operator, _ = middleware.OperatorFromContext(c)
	}
	h.store.ResetOrdering(operator)
	return c.JSON(http.StatusOK, echo.Map{"reset": operator})
}
