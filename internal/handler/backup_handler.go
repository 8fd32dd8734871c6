package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"barpos/internal/model"
	"barpos/pkg/logger"
)

// ExportBackup returns the complete state snapshot as a document
func (h *Handler) ExportBackup(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Snapshot())
}

// ImportBackup replaces all state with the posted snapshot (never merged)
// and persists the replacement immediately
func (h *Handler) ImportBackup(c echo.Context) error {
	log := logger.FromContext(c)

	var snap model.Snapshot
	if err := c.Bind(&snap); err != nil {
		log.Error("Invalid snapshot document", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid snapshot document"})
	}
	h.store.Restore(&snap)
	log.Info("Backup imported", zap.Int("version", snap.Version))
	return c.JSON(http.StatusOK, echo.Map{"restored": true})
}
