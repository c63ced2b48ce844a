package main

import (
	"fmt"
	"log"
	"os"

	"github.com/myang/missa-kala/config"
	httpDelivery "github.com/myang/missa-kala/internal/delivery/http"
	"github.com/myang/missa-kala/internal/domain"
	"github.com/myang/missa-kala/internal/infrastructure/cache"
	"github.com/myang/missa-kala/internal/infrastructure/fetch"
	"github.com/myang/missa-kala/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting missa-kala v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Restaurants: %d", len(cfg.Restaurants))
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()

	staticClient := fetch.NewStaticClient(fetch.StaticClientConfig{
		Timeout:           cfg.Fetch.Timeout,
		UserAgent:         cfg.Fetch.UserAgent,
		MaxBodyBytes:      cfg.Fetch.MaxBodyBytes,
		RequestsPerSecond: cfg.Fetch.RequestsPerSecond,
	})

	var renderer domain.RenderedFetcher
	if cfg.Fetch.RenderEnabled {
		renderer = fetch.NewRenderer(fetch.RendererConfig{
			Timeout:     cfg.Fetch.RenderTimeout,
			SettleDelay: cfg.Fetch.RenderSettleDelay,
			Attempts:    cfg.Fetch.RenderAttempts,
		})
		log.Printf("Rendered fetch enabled (timeout %s, settle %s)",
			cfg.Fetch.RenderTimeout, cfg.Fetch.RenderSettleDelay)
	} else {
		log.Printf("Rendered fetch disabled; static-only checks")
	}

	// Initialize usecase layer
	checkService := usecase.NewCheckService(
		memoryCache,
		staticClient,
		renderer,
		usecase.CheckServiceConfig{
			Restaurants: cfg.Restaurants,
			Keywords:    cfg.Keywords,
			WindowDays:  cfg.Detection.WindowDays,
			CacheTTL:    cfg.Cache.TTL,
		},
	)

	log.Printf("Detection: window=±%dd, keywords=%d/%d (primary/secondary)",
		cfg.Detection.WindowDays, len(cfg.Keywords.Primary), len(cfg.Keywords.Secondary))

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(checkService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
