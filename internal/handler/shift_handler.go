package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"barpos/internal/middleware"
	"barpos/pkg/logger"
	"barpos/prometheus"
)

// CurrentShift returns the active shift, 404 when none is open
func (h *Handler) CurrentShift(c echo.Context) error {
	shift, ok := h.store.CurrentShift()
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no active shift"})
	}
	return c.JSON(http.StatusOK, shift)
}

// BeginShiftRequest opens a working session
type BeginShiftRequest struct {
	OpeningCash float64 `json:"opening_cash"`
}

// BeginShift handles opening a shift for the authenticated operator
func (h *Handler) BeginShift(c echo.Context) error {
	log := logger.FromContext(c)

	var req BeginShiftRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	_, operator := middleware.OperatorFromContext(c)
	shift, err := h.store.BeginShift(operator, req.OpeningCash)
	if err != nil {
		log.Warn("Begin shift refused", zap.Error(err))
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, shift)
}

// SettleShiftRequest carries the physically counted cash
type SettleShiftRequest struct {
	CountedCash float64 `json:"counted_cash"`
}

// SettleShift reconciles and closes the active shift
func (h *Handler) SettleShift(c echo.Context) error {
	log := logger.FromContext(c)

	var req SettleShiftRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	_, operator := middleware.OperatorFromContext(c)
	report, err := h.store.SettleShift(req.CountedCash, operator)
	if err != nil {
		log.Warn("Settle refused", zap.Error(err))
		return fail(c, err)
	}
	prometheus.RecordShiftSettled(report.Flagged)
	return c.JSON(http.StatusOK, report)
}

// SettleShiftCarryOver settles while preserving tabs that still have lines
func (h *Handler) SettleShiftCarryOver(c echo.Context) error {
	var req SettleShiftRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	_, operator := middleware.OperatorFromContext(c)
	report, err := h.store.SettleShiftWithCarryOver(req.CountedCash, operator)
	if err != nil {
		return fail(c, err)
	}
	prometheus.RecordShiftSettled(report.Flagged)
	return c.JSON(http.StatusOK, report)
}

// CloseAllTabs force-closes every open tab with lines as comped sales
func (h *Handler) CloseAllTabs(c echo.Context) error {
	_, operator := middleware.OperatorFromContext(c)
	results := h.store.CloseAllUnsettledTabs(operator)
	for _, r := range results {
		prometheus.RecordTicketClosed(string(r.Method), r.Total)
	}
	return c.JSON(http.StatusOK, echo.Map{"closed": len(results), "results": results})
}

// ListReports returns the shift report archive, most recent first
func (h *Handler) ListReports(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Reports())
}

// DayReport aggregates the reports for one calendar day
func (h *Handler) DayReport(c echo.Context) error {
	day := time.Now()
	if q := c.QueryParam("date"); q != "" {
		parsed, err := time.ParseInLocation("2006-01-02", q, time.Local)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
		day = parsed
	}
	return c.JSON(http.StatusOK, h.store.DayReport(day))
}
