package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(r *chi.Mux, sessionHandler *SessionHandler) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Initialize Huma API
	config := huma.DefaultConfig("EcoTravel API", "1.0.0")
	api := humachi.New(r, config)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Session lifecycle
	huma.Post(api, "/sessions", sessionHandler.HandleCreateSession)
	huma.Get(api, "/state", sessionHandler.HandleState)

	// Search
	huma.Post(api, "/search", sessionHandler.HandleSearch)
	huma.Post(api, "/search/new", sessionHandler.HandleNewSearch)
	huma.Post(api, "/search/edit", sessionHandler.HandleEditSearch)

	// Chat companion
	huma.Post(api, "/chat", sessionHandler.HandleChat)
	huma.Get(api, "/chat/suggestions", sessionHandler.HandleSuggestions)

	// Trips
	huma.Post(api, "/trips/book", sessionHandler.HandleBookTrip)
	huma.Post(api, "/trips/save", sessionHandler.HandleSaveTrip)

	// Profile
	huma.Get(api, "/profile", sessionHandler.HandleProfile)
	huma.Put(api, "/profile/limits", sessionHandler.HandleUpdateLimits)
	huma.Post(api, "/profile/toggle", sessionHandler.HandleToggleProfile)

	// Search history
	huma.Get(api, "/searches", sessionHandler.HandleSearchHistory)
	huma.Post(api, "/searches/{id}/restore", sessionHandler.HandleRestoreSearch)
}
