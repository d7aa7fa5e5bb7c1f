package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"wishfund/config"
	"wishfund/database"
	"wishfund/extractor"
	"wishfund/handlers"
	"wishfund/middleware"
	"wishfund/repository"
	"wishfund/scheduler"
	"wishfund/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	// Initialize database
	if err := database.InitDatabase(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDatabase()

	if err := database.CreateTables(); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	productRepo := repository.NewProductRepository()
	contribRepo := repository.NewContributionRepository()

	// Initialize the extraction pipeline
	oracle := extractor.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	productExtractor := extractor.New(extractor.NewPageFetcher(), oracle)

	authService := services.NewAuthService(cfg.JWTSecret, cfg.TokenTTL)
	h := handlers.NewHandlers(userRepo, productRepo, contribRepo, authService, productExtractor)

	// Start the scheduled price refresher
	refresher := scheduler.NewPriceRefresher(productRepo, productExtractor, cfg.RefreshCron)
	refresher.Start()
	defer refresher.Stop()

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.RateLimitMiddleware(10))

	r.HandleFunc("/health", healthCheck).Methods("GET")

	// Auth routes (no session required)
	authRoutes := r.PathPrefix("/api/auth").Subrouter()
	authRoutes.HandleFunc("/register", h.Register).Methods("POST")
	authRoutes.HandleFunc("/login", h.Login).Methods("POST")
	authRoutes.HandleFunc("/logout", h.Logout).Methods("POST")

	// Authenticated API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.AuthMiddleware(authService))
	api.HandleFunc("/user/me", h.Me).Methods("GET")
	api.HandleFunc("/user/me", h.UpdateProfile).Methods("PUT")
	api.HandleFunc("/user/me", h.DeleteAccount).Methods("DELETE")
	api.HandleFunc("/products", h.AddProduct).Methods("POST")
	api.HandleFunc("/products", h.GetUserProducts).Methods("GET")
	api.HandleFunc("/products", h.DeleteProducts).Methods("DELETE")
	api.HandleFunc("/contributions", h.AddContribution).Methods("POST")
	api.HandleFunc("/contributions/{productId}", h.AddContribution).Methods("POST")
	api.HandleFunc("/contributions", h.GetUserContributions).Methods("GET")
	api.HandleFunc("/contributions/{id}", h.DeleteContribution).Methods("DELETE")

	// CORS configuration
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	addr := cfg.Host + ":" + cfg.Port
	srv := &http.Server{Addr: addr, Handler: c.Handler(r)}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s (origins: %s)", addr, strings.Join(cfg.AllowedOrigins, ","))
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Returning from main (rather than log.Fatal) lets the deferred database
	// and refresher teardown run.
	select {
	case err := <-errCh:
		log.Printf("Server error: %v", err)
	case sig := <-stop:
		log.Printf("Received %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown failed: %v", err)
		}
	}
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"service":"wishfund","status":"healthy"}`))
}
