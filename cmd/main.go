package main

import (
	"net/http"

	"barpos/internal/handler"
	mid "barpos/internal/middleware"
	"barpos/internal/persist"
	"barpos/internal/store"
	"barpos/pkg/config"
	"barpos/pkg/database"
	"barpos/pkg/jwtutil"
	"barpos/pkg/logger"
	"barpos/prometheus"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load .env file; missing files are fine, env vars may be set elsewhere
	_ = godotenv.Load()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting barpos",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Pick the snapshot backend
	var gateway persist.Gateway
	switch appConfig.POS.SnapshotBackend {
	case "postgres":
		if err := database.InitDB(appConfig); err != nil {
			log.Fatal("Failed to initialize database", zap.Error(err))
		}
		log.Info("Database connection established")
		gateway = database.NewSnapshotGateway(database.GetDB())
	default:
		gateway = persist.NewFileGateway(appConfig.POS.SnapshotPath)
		log.Info("File snapshot backend selected",
			zap.String("path", appConfig.POS.SnapshotPath))
	}

	// Build the state store; a missing snapshot starts from defaults
	st := store.New(log, gateway, store.Options{
		OverShortThreshold: appConfig.POS.OverShortThreshold,
	})
	h := handler.New(st)

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Login is the only unauthenticated API route
	e.POST("/api/auth/login", h.Login)

	api := e.Group("/api", mid.AuthMiddleware)
	api.POST("/auth/manager-unlock", h.ManagerUnlock)

	api.GET("/products", h.ListProducts)
	api.GET("/products/all", h.ListAllProducts)
	api.POST("/products", h.CreateProduct)
	api.PUT("/products/:id", h.UpdateProduct)
	api.DELETE("/products", h.RemoveProducts)
	api.POST("/products/:id/duplicate", h.DuplicateProduct)
	api.POST("/products/:id/adjust-stock", h.AdjustStock)
	api.GET("/products/low-stock", h.ListLowStock)
	api.GET("/audit", h.ListAudit)

	api.GET("/tickets", h.ListTickets)
	api.POST("/tickets", h.CreateTicket)
	api.POST("/tickets/:id/select", h.SelectTicket)
	api.PUT("/tickets/:id", h.RenameTicket)
	api.POST("/tickets/:id/lines", h.AddLine)
	api.POST("/tickets/:id/lines/:lineId/decrement", h.DecrementLine)
	api.DELETE("/tickets/:id/lines/:lineId", h.RemoveLine)
	api.DELETE("/tickets/:id", h.DeleteTicket)
	api.POST("/tickets/:id/close", h.CloseTicket)
	api.GET("/tickets/closed", h.ListClosedTickets)

	api.GET("/shift", h.CurrentShift)
	api.POST("/shift/begin", h.BeginShift)
	api.POST("/shift/settle", h.SettleShift)
	api.POST("/shift/settle-carry-over", h.SettleShiftCarryOver)
	api.POST("/shift/close-all-tabs", h.CloseAllTabs)
	api.GET("/reports", h.ListReports)
	api.GET("/reports/day", h.DayReport)

	api.POST("/chips/sell", h.SellChips)
	api.POST("/chips/redeem", h.RedeemChips)
	api.GET("/chips", h.ListChips)
	api.PUT("/chips/:type/price", h.SetChipPrice)

	api.GET("/ordering", h.GetOrdering)
	api.PUT("/ordering", h.SetOrdering)
	api.DELETE("/ordering/:operator", h.ResetOrdering)

	api.GET("/operators", h.ListOperators)
	api.POST("/operators", h.AddOperator)
	api.DELETE("/operators/:id", h.DeactivateOperator)

	api.GET("/backup", h.ExportBackup)
	api.POST("/backup", h.ImportBackup)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
