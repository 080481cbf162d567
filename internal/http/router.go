package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ajwalsh/piggy/internal/http/dashboard"
	"github.com/ajwalsh/piggy/internal/http/goals"
	"github.com/ajwalsh/piggy/internal/http/onboardinghttp"
	"github.com/ajwalsh/piggy/internal/http/transactions"
	"github.com/ajwalsh/piggy/internal/session"
)

func New(
	jwtSecret []byte,
	dashboardV1 *dashboard.Handler,
	goalsV1 *goals.Handler,
	transactionsV1 *transactions.Handler,
	onboardingV1 *onboardinghttp.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(session.Authenticator(jwtSecret))

		r.Route("/dashboard", dashboardV1.Routes)

		r.Route("/goals", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			goalsV1.Routes(r)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		r.Route("/onboarding", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			onboardingV1.Routes(r)
		})
	})

	return router
}
