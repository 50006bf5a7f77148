package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"safety-ai/internal/handlers"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Engine   handlers.Engine
	Assessor handlers.RiskAssessor
	Health   func() handlers.HealthStatus
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Add custom middleware
	r.Use(CORS)
	r.Use(LoggerMiddleware)

	searchHandler := handlers.NewSearchHandler(deps.Engine)
	chatHandler := handlers.NewChatHandler(deps.Engine)
	clearHandler := handlers.NewClearHandler(deps.Engine)
	uploadHandler := handlers.NewUploadHandler(deps.Engine)
	incidentsHandler := handlers.NewIncidentsHandler(deps.Engine)
	riskHandler := handlers.NewRiskHandler(deps.Assessor)
	healthHandler := handlers.NewHealthHandler(deps.Health)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/search", searchHandler)
		r.Method(http.MethodPost, "/chat", chatHandler)
		r.Method(http.MethodPost, "/chat/clear", clearHandler)
		r.Method(http.MethodPost, "/upload", uploadHandler)
		r.Method(http.MethodPost, "/incidents/similar", incidentsHandler)
		r.Method(http.MethodPost, "/risk-assessment", riskHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
