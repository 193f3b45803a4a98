package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/ecotravel/ecotravel-api/internal/config"
	"github.com/ecotravel/ecotravel-api/internal/database"
	"github.com/ecotravel/ecotravel-api/internal/handlers"
	"github.com/ecotravel/ecotravel-api/internal/planner"
	"github.com/ecotravel/ecotravel-api/internal/session"
	"github.com/go-chi/chi/v5"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()

	if cfg.OpenAIAPIKey == "" {
		log.Printf("OPENAI_API_KEY is not set; collaborator calls will fail")
	}

	// Connect to Database
	db := database.Connect(cfg)

	// Initialize Planner and Sessions
	plannerClient := planner.NewOpenAIClient(cfg)
	sessions := session.NewManager(db, plannerClient, time.Duration(cfg.SessionTTLMinutes)*time.Minute, cfg.ProfileName)

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, handlers.NewSessionHandler(sessions))

	// Start Server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
