package routes

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/leanflow/leanflow-go/internal/handler"
	"github.com/leanflow/leanflow-go/internal/middleware"
	"github.com/leanflow/leanflow-go/internal/repository"
	"github.com/leanflow/leanflow-go/internal/service"
	"github.com/leanflow/leanflow-go/internal/supabase"
)

// allowedOrigins is the fixed development allow-list for cross-origin
// requests.
var allowedOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
}

// New wires the full request pipeline: logging, CORS, the liveness check,
// and the authenticated resource routes backed by the shared store client.
func New(store *supabase.Lazy) *chi.Mux {
	recipeHandler := handler.NewRecipeHandler(
		service.NewRecipeService(repository.NewRecipeRepository(store)))
	mealLogHandler := handler.NewMealLogHandler(
		service.NewMealLogService(repository.NewMealLogRepository(store)))
	bodyEntryHandler := handler.NewBodyEntryHandler(
		service.NewBodyEntryService(repository.NewBodyEntryRepository(store)))
	profileHandler := handler.NewProfileHandler(
		service.NewProfileService(repository.NewProfileRepository(store)))

	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", handler.HandleHealth)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(20, 40))
		r.Use(middleware.Auth(store))

		r.Get("/recipes", recipeHandler.HandleList)
		r.Post("/recipes", recipeHandler.HandleCreate)
		r.Delete("/recipes/{id}", recipeHandler.HandleDelete)

		r.Get("/meal-logs", mealLogHandler.HandleList)
		r.Post("/meal-logs", mealLogHandler.HandleCreate)
		r.Delete("/meal-logs/{id}", mealLogHandler.HandleDelete)

		r.Get("/body-entries", bodyEntryHandler.HandleList)
		r.Post("/body-entries", bodyEntryHandler.HandleCreate)
		r.Delete("/body-entries/{id}", bodyEntryHandler.HandleDelete)

		r.Get("/profiles/me", profileHandler.HandleGet)
		r.Post("/profiles", profileHandler.HandleUpsert)
	})

	return r
}
