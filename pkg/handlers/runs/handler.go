package runs

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/de-tools/audit-atlas/pkg/services/runs"
)

type Handler struct {
	explorer runs.Explorer
}

func NewHandler(explorer runs.Explorer) *Handler {
	return &Handler{explorer: explorer}
}

func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	list, err := h.explorer.ListRuns(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list runs")
		http.Error(w, "failed to list runs", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(list); err != nil {
		logger.Error().Err(err).Msg("failed to encode runs")
	}
}

func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	name := chi.URLParam(r, "run")

	summary, err := h.explorer.GetRun(ctx, name)
	if err != nil {
		logger.Warn().Err(err).Str("run", name).Msg("run not found")
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		logger.Error().Err(err).Str("run", name).Msg("failed to encode run")
	}
}
