package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"artizon/internal/gateway"
	"artizon/internal/handlers"
	"artizon/internal/router"
	"artizon/internal/session"
	"artizon/internal/storage"
	"artizon/internal/stores"
	"artizon/pkg/events"
)

func main() {
	// --- Configuration ---
	// A .env file is optional; environment variables win either way.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("API_BASE_URL", "https://artizon-api.onrender.com")
	viper.SetDefault("STORAGE_PATH", "artizon.db")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	baseURL := viper.GetString("API_BASE_URL")
	storagePath := viper.GetString("STORAGE_PATH")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Persisted storage ---
	store, err := storage.NewSQLiteStore(storagePath)
	if err != nil {
		log.Fatalf("Failed to open persisted storage: %v", err)
	}

	// --- Gateway and session ---
	client := gateway.NewClient(baseURL, session.NewCredentials(store), nil)
	authAPI := gateway.NewAuthAPI(client)
	productsAPI := gateway.NewProductsAPI(client)
	ordersAPI := gateway.NewOrdersAPI(client)

	sessionManager, err := session.NewManager(store, authAPI)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	// --- Stores ---
	cartStore, err := stores.NewCartStore(store)
	if err != nil {
		log.Fatalf("Failed to initialize cart store: %v", err)
	}

	// The event publisher is optional; without a broker URL order placement
	// simply skips publication.
	var publisher stores.EventPublisher
	if rabbitMQURL != "" {
		mqClient, err := events.NewClient(events.Config{URL: rabbitMQURL})
		if err != nil {
			log.Printf("Event publisher disabled: %v", err)
		} else {
			defer mqClient.Close()
			publisher = mqClient
		}
	}
	ordersStore := stores.NewOrdersStore(ordersAPI, publisher)

	// --- Route guard ---
	// A requirement keyed on an unregistered path is a configuration error
	// and stops startup.
	table, err := router.NewTable(router.DefaultPaths(), router.DefaultRequirements())
	if err != nil {
		log.Fatalf("Invalid route requirement table: %v", err)
	}
	guard := router.NewGuard(sessionManager, table, store)

	// An expired session logs out and forces the UI back to the login route.
	client.OnSessionExpired(func() {
		sessionManager.Logout()
		ordersStore.Reset()
		log.Printf("Session expired, redirecting to %s", router.LoginPath)
	})

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())

	handlers.NewAuthHandler(authAPI, sessionManager, ordersStore).RegisterRoutes(app)
	handlers.NewNavigationHandler(guard).RegisterRoutes(app)
	handlers.NewCartHandler(cartStore).RegisterRoutes(app)
	handlers.NewOrderHandler(ordersStore, ordersAPI).RegisterRoutes(app)
	handlers.NewProductHandler(productsAPI).RegisterRoutes(app)

	// Warm up the backend in the background; failure is non-fatal.
	go client.Ping(context.Background())

	// --- Start server with graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()
	log.Printf("Storefront listening on %s (backend %s)", appPort, baseURL)

	<-quit
	log.Println("Shutting down...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
