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

// ProductRequest defines the structure for product creation/update requests
type ProductRequest struct {
	Name          string         `json:"name"`
	Category      model.Category `json:"category"`
	Price         float64        `json:"price"`
	Hidden        bool           `json:"hidden"`
	StockQuantity *float64       `json:"stock_quantity"`
	ParLevel      float64        `json:"par_level"`
	Unit          string         `json:"unit"`
	ServingSize   float64        `json:"serving_size"`
	ServingUnit   string         `json:"serving_unit"`
	Cost          float64        `json:"cost"`
	Supplier      string         `json:"supplier"`
	OutOfStock    bool           `json:"out_of_stock"`
	CaseSize      int            `json:"case_size"`
}

func (r ProductRequest) product() model.Product {
	return model.Product{
		Name:          r.Name,
		Category:      r.Category,
		Price:         r.Price,
		Hidden:        r.Hidden,
		StockQuantity: r.StockQuantity,
		ParLevel:      r.ParLevel,
		Unit:          r.Unit,
		ServingSize:   r.ServingSize,
		ServingUnit:   r.ServingUnit,
		Cost:          r.Cost,
		Supplier:      r.Supplier,
		OutOfStock:    r.OutOfStock,
		CaseSize:      r.CaseSize,
	}
}

// ListProducts returns the sale-facing ordered view for a category key.
// The key defaults to "all"; the operator context resolves ordering
// overrides.
func (h *Handler) ListProducts(c echo.Context) error {
	key := c.QueryParam("category")
	if key == "" {
		key = model.OrderingKeyAll
	}
	operatorID, _ := middleware.OperatorFromContext(c)
	if q := c.QueryParam("operator"); q != "" {
		operatorID = q
	}
	products := h.store.OrderedProducts(key, operatorID)
	return c.JSON(http.StatusOK, products)
}

// ListAllProducts returns every product including hidden ones, for
// management views.
func (h *Handler) ListAllProducts(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.AllProducts())
}

// CreateProduct handles adding a new product to the catalog
func (h *Handler) CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if !req.Category.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown category"})
	}

	p := h.store.AddProduct(req.product())
	if p.StockQuantity != nil {
		prometheus.UpdateProductStock(p.ID, p.Name, string(p.Category), *p.StockQuantity)
	}
	return c.JSON(http.StatusCreated, p)
}

// UpdateProduct handles updating an existing product
func (h *Handler) UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("product_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if !req.Category.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown category"})
	}

	p := req.product()
	p.ID = id
	if existing, ok := h.store.Product(id); ok {
		p.DisplayOrder = existing.DisplayOrder
	}
	if err := h.store.UpdateProduct(p); err != nil {
		log.Error("Product not found for update", zap.String("product_id", id), zap.Error(err))
		return fail(c, err)
	}
	if p.StockQuantity != nil {
		prometheus.UpdateProductStock(p.ID, p.Name, string(p.Category), *p.StockQuantity)
	}
	return c.JSON(http.StatusOK, p)
}

// RemoveProductsRequest lists product ids to delete
type RemoveProductsRequest struct {
	IDs []string `json:"ids"`
}

// RemoveProducts handles hard-deleting products from the catalog
func (h *Handler) RemoveProducts(c echo.Context) error {
	var req RemoveProductsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	h.store.RemoveProducts(req.IDs)
	return c.JSON(http.StatusOK, echo.Map{"removed": len(req.IDs)})
}

// DuplicateProduct copies a product under a new identity
func (h *Handler) DuplicateProduct(c echo.Context) error {
	id := c.Param("id")
	dup, err := h.store.DuplicateProduct(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dup)
}

// AdjustStockRequest sets an exact stock quantity with a reason
type AdjustStockRequest struct {
	NewQuantity float64 `json:"new_quantity"`
	Reason      string  `json:"reason"`
}

// AdjustStock handles a manual inventory adjustment with an audit entry
func (h *Handler) AdjustStock(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req AdjustStockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	_, operator := middleware.OperatorFromContext(c)
	entry, err := h.store.AdjustStock(id, req.NewQuantity, req.Reason, operator)
	if err != nil {
		return fail(c, err)
	}
	if p, ok := h.store.Product(id); ok && p.StockQuantity != nil {
		prometheus.UpdateProductStock(p.ID, p.Name, string(p.Category), *p.StockQuantity)
	}
	log.Info("Stock adjusted",
		zap.String("product_id", id),
		zap.Float64("variance", entry.Variance))
	return c.JSON(http.StatusOK, entry)
}

// ListLowStock returns tracked products at or below par level
func (h *Handler) ListLowStock(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.LowStock())
}

// ListAudit returns the inventory adjustment log, newest first
func (h *Handler) ListAudit(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.AuditEntries())
}
