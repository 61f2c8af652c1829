package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/wordlehub/wordle-tournaments/handlers"
	"github.com/wordlehub/wordle-tournaments/middleware"
)

func SetupRoutes(
	router *chi.Mux,
	auth *middleware.Authenticator,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	tournamentHandler *handlers.TournamentHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.List)
		r.Get("/{id}", userHandler.GetByID)
		r.Get("/{id}/results", userHandler.ListResults)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Delete("/{id}", userHandler.Delete)
			r.Post("/{id}/results", userHandler.SubmitResult)
			r.Put("/{id}/avatar", userHandler.UploadAvatar)
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		// Просмотр открыт всем, но токен расширяет выборку приватными
		// турнирами зрителя.
		r.Group(func(r chi.Router) {
			r.Use(auth.OptionalAuthenticate)
			r.Get("/", tournamentHandler.List)
			r.Get("/{id}", tournamentHandler.GetByID)
			r.Get("/{id}/leaderboard", tournamentHandler.Leaderboard)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Post("/", tournamentHandler.Create)
			r.Post("/{id}/participants", tournamentHandler.AddParticipant)
			r.Put("/{id}/logo", tournamentHandler.UploadLogo)
		})
	})

	router.Get("/ws/tournaments/{id}", webSocketHandler.ServeWs)
}
