package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kazkn/vinted-scout/internal/api"
	"github.com/kazkn/vinted-scout/internal/config"
	"github.com/kazkn/vinted-scout/internal/resolve"
	"github.com/kazkn/vinted-scout/internal/services"
	"github.com/kazkn/vinted-scout/internal/vinted"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// The client handle is constructed once and shared by every operation;
	// it holds no per-request state.
	client := vinted.NewClient(cfg.MaxConcurrency, cfg.RequestDelay)

	prober, err := resolve.NewProber(cfg.ProxyURL, cfg.ProbeTimeout)
	if err != nil {
		log.Fatalf("Failed to configure redirect prober: %v", err)
	}
	if cfg.ProxyURL != "" {
		log.Println("Redirect probes will tunnel through the configured forward proxy")
	}

	resolver := resolve.NewResolver(client, prober)

	itemService := services.NewItemService(client, resolver, cfg.DefaultCountry)
	sellerService := services.NewSellerService(client, cfg.DefaultCountry)
	priceService := services.NewPriceService(client)
	trendService := services.NewTrendService(client, cfg.DefaultCountry)

	router := api.SetupRouter(itemService, sellerService, priceService, trendService, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests a deadline to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
