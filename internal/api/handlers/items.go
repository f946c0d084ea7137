package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kazkn/vinted-scout/internal/services"
)

// ItemHandler exposes the search and get-item operations over HTTP. The
// handlers only bind the loosely-typed argument bags; all behavior lives in
// the services.
type ItemHandler struct {
	items *services.ItemService
}

func NewItemHandler(items *services.ItemService) *ItemHandler {
	return &ItemHandler{items: items}
}

// SearchItems handles GET /api/items/search.
func (h *ItemHandler) SearchItems(c *gin.Context) {
	args := services.SearchArgs{
		Query:   c.Query("query"),
		Country: c.Query("country"),
		SortBy:  c.Query("sortBy"),
	}

	var ok bool
	if args.PriceMin, ok = floatParam(c, "priceMin"); !ok {
		return
	}
	if args.PriceMax, ok = floatParam(c, "priceMax"); !ok {
		return
	}
	if args.CategoryID, ok = intParam(c, "categoryId"); !ok {
		return
	}
	if args.Limit, ok = intParam(c, "limit"); !ok {
		return
	}
	if args.BrandIDs, ok = intListParam(c, "brandIds"); !ok {
		return
	}
	args.Conditions = listParam(c, "condition")

	result, err := h.items.Search(c.Request.Context(), args)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetItem handles GET /api/items/resolve.
func (h *ItemHandler) GetItem(c *gin.Context) {
	args := services.GetItemArgs{
		URL:     c.Query("url"),
		Country: c.Query("country"),
	}

	if raw := c.Query("itemId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "itemId must be a positive integer"})
			return
		}
		args.ItemID = id
	}

	lookup, err := h.items.Get(c.Request.Context(), args)
	if err != nil {
		writeError(c, err)
		return
	}

	// A terminal not-found is an expected outcome, not an HTTP failure.
	if lookup.NotFound != nil {
		c.JSON(http.StatusOK, lookup.NotFound)
		return
	}
	c.JSON(http.StatusOK, lookup.Item)
}

// ---------- shared binding helpers ----------

// writeError maps service errors onto the response: argument problems are
// the caller's fault, everything else is an upstream failure.
func writeError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrInvalidArgs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}

func intParam(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be an integer"})
		return 0, false
	}
	return v, true
}

func floatParam(c *gin.Context, name string) (float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a number"})
		return 0, false
	}
	return v, true
}

// listParam splits a comma-separated query value.
func listParam(c *gin.Context, name string) []string {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func intListParam(c *gin.Context, name string) ([]int, bool) {
	var out []int
	for _, part := range listParam(c, name) {
		v, err := strconv.Atoi(part)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a comma-separated list of integers"})
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}
