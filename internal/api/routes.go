package api

import (
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kazkn/vinted-scout/internal/api/handlers"
	"github.com/kazkn/vinted-scout/internal/metrics"
	"github.com/kazkn/vinted-scout/internal/services"
)

// SetupRouter wires the five operations and the catalog resources onto a
// gin engine.
func SetupRouter(items *services.ItemService, sellers *services.SellerService, prices *services.PriceService, trends *services.TrendService, corsOrigins []string) *gin.Engine {
	router := gin.Default()

	config := cors.DefaultConfig()
	if len(corsOrigins) > 0 {
		config.AllowOrigins = corsOrigins
	} else {
		config.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	config.AllowMethods = []string{"GET", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(config))
	router.Use(observeRequests())

	itemHandler := handlers.NewItemHandler(items)
	sellerHandler := handlers.NewSellerHandler(sellers)
	marketHandler := handlers.NewMarketHandler(prices, trends)
	catalogHandler := handlers.NewCatalogHandler()

	api := router.Group("/api")
	{
		apiItems := api.Group("/items")
		{
			apiItems.GET("/search", itemHandler.SearchItems)
			apiItems.GET("/resolve", itemHandler.GetItem)
		}

		apiSellers := api.Group("/sellers")
		{
			apiSellers.GET("/resolve", sellerHandler.GetSeller)
		}

		market := api.Group("/market")
		{
			market.GET("/compare", marketHandler.ComparePrices)
			market.GET("/trending", marketHandler.GetTrending)
		}

		catalog := api.Group("/catalog")
		{
			catalog.GET("/countries", catalogHandler.GetCountries)
			catalog.GET("/categories", catalogHandler.GetCategories)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus exposition
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// observeRequests records the request counter and latency histogram for
// every route.
func observeRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		metrics.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
