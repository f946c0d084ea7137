package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kazkn/vinted-scout/internal/services"
)

// SellerHandler exposes the get-seller operation over HTTP.
type SellerHandler struct {
	sellers *services.SellerService
}

func NewSellerHandler(sellers *services.SellerService) *SellerHandler {
	return &SellerHandler{sellers: sellers}
}

// GetSeller handles GET /api/sellers/resolve.
func (h *SellerHandler) GetSeller(c *gin.Context) {
	args := services.GetSellerArgs{
		URL:     c.Query("url"),
		Country: c.Query("country"),
	}

	if raw := c.Query("sellerId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sellerId must be a positive integer"})
			return
		}
		args.SellerID = id
	}

	var ok bool
	if args.ItemLimit, ok = intParam(c, "itemLimit"); !ok {
		return
	}

	if raw := c.Query("includeItems"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "includeItems must be a boolean"})
			return
		}
		args.IncludeItems = &include
	}

	profile, err := h.sellers.Get(c.Request.Context(), args)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
