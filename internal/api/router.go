package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	swagger "github.com/swaggo/http-swagger"

	_ "rateproxy/docs"
	"rateproxy/internal/proxy/handler"
)

// NewRouter builds the proxy's HTTP surface. An empty origin list allows
// cross-origin access from anywhere; a non-empty list restricts it to the
// configured origins.
func NewRouter(proxyHandler *handler.Handler, allowedOrigins []string) *chi.Mux {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(requestLogger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Get("/health", proxyHandler.Health)
	router.Get("/codes", proxyHandler.GetCodes)
	router.Get("/rates", proxyHandler.GetRates)
	return router
}
