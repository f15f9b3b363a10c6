package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	apierrors "housepulse/internal/errors"
	"housepulse/internal/services"
)

// HealthHandler reports service liveness and data readiness
type HealthHandler struct {
	service MarketDataProvider
	version string
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service MarketDataProvider, version string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		version: version,
		logger:  logger.With(slog.String("handler", "health")),
	}
}

// HealthCheck handles GET /api/health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	snap := h.service.Snapshot()
	if snap == nil {
		render.JSON(w, r, map[string]interface{}{
			"status": "degraded",
			"loaded": false,
		})
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status":    "ok",
		"loaded":    true,
		"loaded_at": snap.LoadedAt,
		"states":    len(snap.States),
		"metros":    len(snap.Metros),
		"unmapped":  len(snap.Unmapped),
	})
}

// LivenessCheck handles GET /api/health/live
func (h *HealthHandler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "alive"})
}

// ReadinessCheck handles GET /api/health/ready. Ready means at least one
// load cycle has completed; until then consumers get 503s from data routes.
func (h *HealthHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if h.service.Snapshot() == nil {
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, map[string]string{"status": "not ready"})
		return
	}
	render.JSON(w, r, map[string]string{"status": "ready"})
}

// Version handles GET /api/version
func (h *HealthHandler) Version(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"version": h.version})
}

// SnapshotLoader triggers a load cycle on demand.
type SnapshotLoader interface {
	Load(ctx context.Context) (*services.Snapshot, error)
}

// ReloadHandler exposes an operator endpoint that refreshes the snapshot
type ReloadHandler struct {
	loader SnapshotLoader
	logger *slog.Logger
}

// NewReloadHandler creates a new reload handler
func NewReloadHandler(loader SnapshotLoader, logger *slog.Logger) *ReloadHandler {
	return &ReloadHandler{
		loader: loader,
		logger: logger.With(slog.String("handler", "reload")),
	}
}

// Reload handles POST /api/reload
func (h *ReloadHandler) Reload(w http.ResponseWriter, r *http.Request) {
	snap, err := h.loader.Load(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "reload failed", slog.String("error", err.Error()))
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrLoadFailed(err)))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"success":   true,
		"loaded_at": snap.LoadedAt,
		"states":    len(snap.States),
		"metros":    len(snap.Metros),
		"unmapped":  len(snap.Unmapped),
	})
}
