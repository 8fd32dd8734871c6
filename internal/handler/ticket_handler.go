package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"barpos/internal/middleware"
	"barpos/internal/model"
	"barpos/pkg/logger"
	"barpos/prometheus"
)

// ListTickets returns the open set and the active selection.
func (h *Handler) ListTickets(c echo.Context) error {
	var activeID string
	if active, ok := h.store.ActiveTicket(); ok {
		activeID = active.ID
	}
	return c.JSON(http.StatusOK, echo.Map{
		"tickets":   h.store.Tickets(),
		"active_id": activeID,
	})
}

// CreateTicket opens a fresh tab and selects it
func (h *Handler) CreateTicket(c echo.Context) error {
	return c.JSON(http.StatusCreated, h.store.CreateTicket())
}

// SelectTicket makes a tab the active one
func (h *Handler) SelectTicket(c echo.Context) error {
	if err := h.store.SelectTicket(c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"selected": c.Param("id")})
}

// RenameTicketRequest carries the new tab name
type RenameTicketRequest struct {
	Name string `json:"name"`
}

// RenameTicket sets a tab's display name
func (h *Handler) RenameTicket(c echo.Context) error {
	var req RenameTicketRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := h.store.RenameTicket(c.Param("id"), req.Name); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"renamed": c.Param("id")})
}

// AddLineRequest adds one unit of a product to a tab
type AddLineRequest struct {
	ProductID string   `json:"product_id"`
	Variant   string   `json:"variant"`
	Price     *float64 `json:"price"`
}

// AddLine handles putting a product on a ticket
func (h *Handler) AddLine(c echo.Context) error {
	log := logger.FromContext(c)

	var req AddLineRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	line, err := h.store.AddLine(c.Param("id"), req.ProductID, req.Variant, req.Price)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, line)
}

// DecrementLine reduces a line's quantity by one
func (h *Handler) DecrementLine(c echo.Context) error {
	if err := h.store.DecrementLine(c.Param("id"), c.Param("lineId")); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"decremented": c.Param("lineId")})
}

// RemoveLine deletes a line outright
func (h *Handler) RemoveLine(c echo.Context) error {
	if err := h.store.RemoveLine(c.Param("id"), c.Param("lineId")); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"removed": c.Param("lineId")})
}

// DeleteTicket removes a tab, refusing while it still has lines
func (h *Handler) DeleteTicket(c echo.Context) error {
	if err := h.store.DeleteTicketIfEmpty(c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": c.Param("id")})
}

// CloseTicketRequest settles one tab
type CloseTicketRequest struct {
	Method       model.PaymentMethod `json:"method"`
	CashTendered float64             `json:"cash_tendered"`
}

// CloseTicket handles settling a tab into an immutable close result
func (h *Handler) CloseTicket(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req CloseTicketRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("ticket_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if !req.Method.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown payment method"})
	}

	_, operator := middleware.OperatorFromContext(c)
	result, err := h.store.CloseTicket(id, req.Method, req.CashTendered, operator)
	if err != nil {
		log.Warn("Ticket close refused",
			zap.String("ticket_id", id),
			zap.String("method", string(req.Method)),
			zap.Error(err))
		return fail(c, err)
	}
	prometheus.RecordTicketClosed(string(result.Method), result.Total)
	return c.JSON(http.StatusOK, result)
}

// ListClosedTickets returns the global closed-ticket archive
func (h *Handler) ListClosedTickets(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.ClosedTickets())
}
