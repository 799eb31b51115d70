package handler

import (
	"net/http"

	"github.com/OKANLA95/Keziah-Shop/internal/apierror"
	"github.com/OKANLA95/Keziah-Shop/internal/dto"
	"github.com/OKANLA95/Keziah-Shop/internal/infra"
	"github.com/OKANLA95/Keziah-Shop/internal/middleware"
	"github.com/OKANLA95/Keziah-Shop/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductHandler serves the inventory catalogue. Read projections are
// role-aware: cost prices only reach Manager and Finance.
type ProductHandler struct {
	products service.ProductService
	store    *infra.FileStore
}

func NewProductHandler(products service.ProductService, store *infra.FileStore) *ProductHandler {
	return &ProductHandler{products: products, store: store}
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	role := middleware.GetClaims(c).Role
	p, err := h.products.Create(c.Request.Context(), req, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	role := middleware.GetClaims(c).Role
	p, err := h.products.Get(c.Request.Context(), id, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) List(c *gin.Context) {
	var filter dto.ProductFilter
	if !bindQuery(c, &filter) {
		return
	}
	role := middleware.GetClaims(c).Role
	list, err := h.products.List(c.Request.Context(), filter, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	role := middleware.GetClaims(c).Role
	p, err := h.products.Update(c.Request.Context(), id, req, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Deactivate(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.products.Deactivate(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) Reactivate(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.products.Reactivate(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImage stores a product photo and records its URL.
func (h *ProductHandler) UploadImage(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("missing file field"))
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, apierror.New("file too large"))
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("unreadable file"))
		return
	}
	defer f.Close()

	url, err := h.store.Save("product-images", fileHeader.Filename, f)
	if err != nil {
		respondError(c, apierror.ErrPersistence)
		return
	}
	role := middleware.GetClaims(c).Role
	p, err := h.products.SetImage(c.Request.Context(), id, url, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
