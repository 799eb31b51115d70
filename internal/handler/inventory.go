package handler

import (
	"net/http"
	"strconv"

	"github.com/OKANLA95/Keziah-Shop/internal/apierror"
	"github.com/OKANLA95/Keziah-Shop/internal/dto"
	"github.com/OKANLA95/Keziah-Shop/internal/middleware"
	"github.com/OKANLA95/Keziah-Shop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InventoryHandler exposes stock operations beyond the catalogue itself:
// manual adjustments, movement history and low-stock alerts.
type InventoryHandler struct {
	products service.ProductService
}

func NewInventoryHandler(products service.ProductService) *InventoryHandler {
	return &InventoryHandler{products: products}
}

func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	role := middleware.GetClaims(c).Role
	p, err := h.products.AdjustStock(c.Request.Context(), id, req, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *InventoryHandler) Alerts(c *gin.Context) {
	alerts, err := h.products.LowStockAlerts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": alerts, "total": len(alerts)})
}

func (h *InventoryHandler) Movements(c *gin.Context) {
	var productID *uuid.UUID
	if raw := c.Query("product_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("invalid product_id"))
			return
		}
		productID = &id
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	movements, err := h.products.ListMovements(c.Request.Context(), productID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": movements, "total": len(movements)})
}
