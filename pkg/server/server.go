package server

import (
	"net/http"

	handlers "github.com/de-tools/audit-atlas/pkg/handlers/runs"
	auditatlasmiddleware "github.com/de-tools/audit-atlas/pkg/server/middleware"
	"github.com/de-tools/audit-atlas/pkg/services/runs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type Dependencies struct {
	Explorer  runs.Explorer
	ReportDir string
	Logger    zerolog.Logger
}

type Config struct {
	Dependencies Dependencies
}

// ConfigureRouter wires the report-browsing API: a JSON listing of
// emitted runs plus the rendered documents themselves.
func ConfigureRouter(config Config) *chi.Mux {
	handler := handlers.NewHandler(config.Dependencies.Explorer)

	router := chi.NewRouter()

	router.Use(auditatlasmiddleware.Logger(&config.Dependencies.Logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/runs", handler.ListRuns)
		r.Get("/runs/{run}", handler.GetRun)
	})

	fileServer := http.StripPrefix("/reports/", http.FileServer(http.Dir(config.Dependencies.ReportDir)))
	router.Get("/reports/*", fileServer.ServeHTTP)

	return router
}
