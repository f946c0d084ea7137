package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kazkn/vinted-scout/internal/services"
)

// MarketHandler exposes the compare-prices and get-trending operations.
type MarketHandler struct {
	prices *services.PriceService
	trends *services.TrendService
}

func NewMarketHandler(prices *services.PriceService, trends *services.TrendService) *MarketHandler {
	return &MarketHandler{prices: prices, trends: trends}
}

// ComparePrices handles GET /api/market/compare.
func (h *MarketHandler) ComparePrices(c *gin.Context) {
	args := services.CompareArgs{
		Query:     c.Query("query"),
		Countries: listParam(c, "countries"),
	}

	var ok bool
	if args.Limit, ok = intParam(c, "limit"); !ok {
		return
	}

	comparison, err := h.prices.Compare(c.Request.Context(), args)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comparison)
}

// GetTrending handles GET /api/market/trending.
func (h *MarketHandler) GetTrending(c *gin.Context) {
	args := services.TrendingArgs{
		Query:   c.Query("query"),
		Country: c.Query("country"),
	}

	var ok bool
	if args.CategoryID, ok = intParam(c, "categoryId"); !ok {
		return
	}
	if args.Limit, ok = intParam(c, "limit"); !ok {
		return
	}

	result, err := h.trends.Trending(c.Request.Context(), args)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
