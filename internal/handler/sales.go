package handler

import (
	"net/http"

	"github.com/OKANLA95/Keziah-Shop/internal/dto"
	"github.com/OKANLA95/Keziah-Shop/internal/middleware"
	"github.com/OKANLA95/Keziah-Shop/internal/service"

	"github.com/gin-gonic/gin"
)

// SaleHandler records and lists sales.
type SaleHandler struct {
	sales service.SaleService
}

func NewSaleHandler(sales service.SaleService) *SaleHandler {
	return &SaleHandler{sales: sales}
}

// Record godoc
// @Summary  Record a sale
// @Tags     sales
// @Accept   json
// @Produce  json
// @Param    body body dto.RecordSaleRequest true "Sale"
// @Success  201 {object} dto.SaleResponse
// @Failure  409 {object} apierror.APIError "insufficient stock"
// @Router   /v1/sales [post]
func (h *SaleHandler) Record(c *gin.Context) {
	var req dto.RecordSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	sale, err := h.sales.RecordSale(c.Request.Context(), req, claims.UserID, claims.FullName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

func (h *SaleHandler) List(c *gin.Context) {
	var filter dto.SaleFilter
	if !bindQuery(c, &filter) {
		return
	}
	list, err := h.sales.ListSales(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
