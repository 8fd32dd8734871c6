package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"barpos/pkg/jwtutil"
	"barpos/pkg/logger"
	"barpos/prometheus"
)

// LoginRequest defines the operator login payload
type LoginRequest struct {
	OperatorID string `json:"operator_id"`
	PIN        string `json:"pin"`
}

// Login authenticates an operator PIN and issues a session token
func (h *Handler) Login(c echo.Context) error {
	log := logger.FromContext(c)

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	operator, ok := h.store.AuthenticateOperator(req.OperatorID, req.PIN)
	prometheus.RecordAuthAttempt(ok)
	if !ok {
		log.Warn("Operator login failed", zap.String("operator_id", req.OperatorID))
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid operator or pin"})
	}

	token, err := jwtutil.GenerateToken(operator.ID, operator.Name, "operator")
	if err != nil {
		log.Error("Failed to sign token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
	}

	log.Info("Operator logged in",
		zap.String("operator_id", operator.ID),
		zap.String("name", operator.Name))
	return c.JSON(http.StatusOK, echo.Map{
		"token":    token,
		"operator": operator.Name,
	})
}

// ManagerUnlockRequest carries the manager PIN
type ManagerUnlockRequest struct {
	PIN string `json:"pin"`
}

// ManagerUnlock verifies the manager PIN and unlocks admin features
func (h *Handler) ManagerUnlock(c echo.Context) error {
	log := logger.FromContext(c)

	var req ManagerUnlockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if !h.store.CheckManagerPIN(req.PIN) {
		log.Warn("Manager unlock failed")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid manager pin"})
	}
	return c.JSON(http.StatusOK, echo.Map{"unlocked": true})
}
