package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"barpos/internal/model"
	"barpos/prometheus"
)

// ChipRequest sells or redeems chips of one tier
type ChipRequest struct {
	Type  model.ChipType `json:"type"`
	Count int            `json:"count"`
}

// SellChips adds chip sale lines to the active ticket
func (h *Handler) SellChips(c echo.Context) error {
	var req ChipRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	lines, err := h.store.SellChips(req.Type, req.Count)
	if err != nil {
		return fail(c, err)
	}
	h.publishChipGauges()
	return c.JSON(http.StatusOK, lines)
}

// RedeemChips adds redemption lines to the active ticket
func (h *Handler) RedeemChips(c echo.Context) error {
	var req ChipRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	lines, err := h.store.RedeemChips(req.Type, req.Count)
	if err != nil {
		return fail(c, err)
	}
	h.publishChipGauges()
	return c.JSON(http.StatusOK, lines)
}

// ListChips returns price and outstanding count per tier
func (h *Handler) ListChips(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.ChipStatuses())
}

// ChipPriceRequest overrides one tier's price
type ChipPriceRequest struct {
	Price float64 `json:"price"`
}

// SetChipPrice handles a price override for a chip tier
func (h *Handler) SetChipPrice(c echo.Context) error {
	var req ChipPriceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := h.store.SetChipPrice(model.ChipType(c.Param("type")), req.Price); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"type": c.Param("type"), "price": req.Price})
}

func (h *Handler) publishChipGauges() {
	for _, status := range h.store.ChipStatuses() {
		prometheus.UpdateChipsOutstanding(string(status.Type), status.Outstanding)
	}
}
