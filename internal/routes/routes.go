package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/serenify-wellness/internal/handlers"
	"github.com/AnshRaj112/serenify-wellness/internal/middleware"
	"github.com/AnshRaj112/serenify-wellness/internal/services"
)

func SetupRoutes(r chi.Router, h *handlers.Handler, sessions *services.SessionManager) {
	r.Get("/health", h.Health)

	// Public routes
	r.Post("/api/auth/signup", h.Signup)
	r.Post("/api/auth/login", h.Login)

	r.Get("/api/affirmations", h.RandomAffirmation)
	r.Get("/api/affirmations/categories", h.AffirmationCategories)
	r.Get("/api/meditations", h.ListMeditations)
	r.Get("/api/meditations/{id}", h.GetMeditation)
	r.Get("/api/resources", h.ListResources)
	r.Get("/api/resources/tags", h.ResourceTags)
	r.Get("/api/helplines", h.ListHelplines)
	r.Get("/api/journals/templates", h.JournalTemplates)

	// Scripted chatbot, rate limited by middleware.ChatRateLimit
	r.Post("/api/chat", h.Chat)
	r.Get("/ws/chat", h.ChatWebSocket)

	// Session routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(sessions))

		r.Post("/api/auth/logout", h.Logout)
		r.Get("/api/auth/me", h.Me)

		r.Get("/api/moods", h.ListMoods)
		r.Post("/api/moods", h.LogMood)
		r.Get("/api/moods/today", h.TodayMood)
		r.Get("/api/moods/insights", h.MoodInsights)
		r.Get("/api/moods/calendar", h.MoodCalendar)
		r.Put("/api/moods/{id}", h.UpdateMood)
		r.Delete("/api/moods/{id}", h.DeleteMood)

		r.Get("/api/journals", h.ListJournals)
		r.Post("/api/journals", h.CreateJournal)
		r.Get("/api/journals/tags", h.JournalTags)
		r.Get("/api/journals/{id}", h.GetJournal)
		r.Put("/api/journals/{id}", h.UpdateJournal)
		r.Delete("/api/journals/{id}", h.DeleteJournal)

		r.Get("/api/affirmations/favorites", h.ListFavorites)
		r.Post("/api/affirmations/favorites", h.ToggleFavorite)

		r.Post("/api/export", h.Export)
	})
}
