package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joystick-informer/backend/config"
	httpDelivery "github.com/joystick-informer/backend/internal/delivery/http"
	"github.com/joystick-informer/backend/internal/infrastructure/amazon"
	"github.com/joystick-informer/backend/internal/infrastructure/ebay"
	"github.com/joystick-informer/backend/internal/infrastructure/igdb"
	"github.com/joystick-informer/backend/internal/infrastructure/store"
	"github.com/joystick-informer/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Joystick Informer Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize persistence
	db, err := store.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	log.Printf("Database: %s", cfg.Database.DSN)

	userRepo := store.NewUserRepository(db)
	watchlistRepo := store.NewWatchlistRepository(db)

	// Initialize external service clients
	catalogClient := igdb.NewClient(cfg.IGDB.APIKey, cfg.IGDB.BaseURL, cfg.RateLimit.Catalog)
	amazonClient := amazon.NewClient(cfg.Amazon.AccessKey, cfg.Amazon.AssociateTag, cfg.Amazon.BaseURL, cfg.RateLimit.Marketplace)
	ebayClient := ebay.NewClient(cfg.Ebay.AppID, cfg.Ebay.BaseURL, cfg.RateLimit.Marketplace)

	log.Printf("Catalog API: %s", cfg.IGDB.BaseURL)
	log.Printf("Marketplaces: %s, %s", cfg.Amazon.BaseURL, cfg.Ebay.BaseURL)

	// Initialize usecase layer
	catalogService := usecase.NewCatalogService(catalogClient)
	pricingService := usecase.NewPricingService(amazonClient, ebayClient)
	relatedService := usecase.NewRelatedService(catalogClient, nil)
	watchlistService := usecase.NewWatchlistService(watchlistRepo, relatedService)
	authService := usecase.NewAuthService(userRepo, watchlistRepo, cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry)

	// Enable debug logging in development environment
	if cfg.Server.Environment == "development" {
		catalogClient.SetDebug(true)
		amazonClient.SetDebug(true)
		ebayClient.SetDebug(true)
		pricingService.SetDebug(true)
		log.Printf("Debug logging enabled")
	}

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(catalogService, pricingService, watchlistService, authService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, httpDelivery.AuthRequired(authService))

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
