package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/OKANLA95/Keziah-Shop/internal/dto"
	"github.com/OKANLA95/Keziah-Shop/internal/model"
	"github.com/OKANLA95/Keziah-Shop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const priceCacheTTL = 4 * time.Hour

// PriceCheckHandler is the public price lookup: no auth, heavily cached, and
// never exposes cost prices or any account data.
type PriceCheckHandler struct {
	products service.ProductService
	rdb      *redis.Client
}

func NewPriceCheckHandler(products service.ProductService, rdb *redis.Client) *PriceCheckHandler {
	return &PriceCheckHandler{products: products, rdb: rdb}
}

func (h *PriceCheckHandler) Check(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	cacheKey := "price:" + id.String()

	if cached, err := h.rdb.Get(ctx, cacheKey).Result(); err == nil {
		var resp dto.PriceCheckResponse
		if json.Unmarshal([]byte(cached), &resp) == nil {
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// The Sales projection already strips the cost price.
	p, err := h.products.Get(ctx, id, model.RoleSales)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := dto.PriceCheckResponse{
		Name:      p.Name,
		Price:     p.Price,
		Available: p.Quantity,
		Category:  p.Category,
		Unit:      p.Unit,
	}

	if data, err := json.Marshal(resp); err == nil {
		if err := h.rdb.Set(ctx, cacheKey, data, priceCacheTTL).Err(); err != nil {
			log.Warn().Err(err).Msg("price cache write failed")
		}
	}
	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, resp)
}
