package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"pricescout/config"
	"pricescout/database"
	"pricescout/handlers"
	"pricescout/logging"
	"pricescout/middleware"
	"pricescout/repository"
	"pricescout/scheduler"
	"pricescout/scraper"
	"pricescout/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	logger, err := logging.New(cfg.LogDir, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}

	// Initialize database
	if err := database.InitDatabase(); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDatabase()

	// Create tables
	if err := database.CreateTables(); err != nil {
		logger.Fatalf("Failed to create tables: %v", err)
	}

	runRepo := repository.NewRunRepository()

	// Research pipeline
	searcher := scraper.NewSearcher(logger, scraper.SearcherOptions{
		WaitTimeout: cfg.ElementWait,
		ScrollPause: cfg.ScrollPause,
	})
	profiles := scraper.DefaultProfiles(cfg.GoogleShoppingURL, cfg.MercadoLivreURL, cfg.AmazonURL)
	sheets := services.NewSpreadsheetService(logger)
	mailer := services.NewMailService(cfg.Mail, logger)
	if !mailer.IsConfigured() {
		logger.Warn("SMTP not configured, result emails will be skipped")
	}

	research := services.NewResearchService(cfg, logger, searcher, profiles, sheets, mailer, runRepo)

	// Schedule research runs
	researchScheduler := scheduler.NewResearchScheduler(cfg.ResearchCron, cfg.RunOnStart, research, logger)
	if err := researchScheduler.Start(); err != nil {
		logger.Fatalf("Failed to start scheduler: %v", err)
	}
	defer researchScheduler.Stop()

	h := handlers.NewHandlers(research, runRepo, logger)

	// Setup router
	r := mux.NewRouter()

	// Apply global middleware
	r.Use(middleware.LoggingMiddleware(logger))
	r.Use(middleware.RateLimitMiddleware(cfg.RateLimitRPS))
	r.Use(middleware.APIKeyMiddleware(cfg.AdminAPIKey))

	// Health and monitoring endpoints
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/status", h.GetStatus).Methods("GET")

	// API v1 routes
	apiV1 := r.PathPrefix("/api/v1").Subrouter()
	apiV1.HandleFunc("/runs", h.GetRuns).Methods("GET")
	apiV1.HandleFunc("/runs/{id}", h.GetRun).Methods("GET")
	apiV1.HandleFunc("/research/run", h.TriggerResearch).Methods("POST")

	// CORS configuration
	c := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.AllowedOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	addr := cfg.Host + ":" + cfg.Port
	logger.Infof("Server starting on %s", addr)
	logger.Infof("   GET  /health - Health check")
	logger.Infof("   GET  /status - Scheduler status and last run")
	logger.Infof("   GET  /api/v1/runs - Run history")
	logger.Infof("   POST /api/v1/research/run - Trigger a research run")

	// Start server
	logger.Fatal(http.ListenAndServe(addr, c.Handler(r)))
}
