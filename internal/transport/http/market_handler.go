package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "housepulse/internal/errors"
	"housepulse/internal/services"
)

// maxSearchResults bounds the search response size.
const maxSearchResults = 50

// MarketHandler serves the derived market data: per-geography summaries,
// metro map placements, and reconciliation diagnostics. Every endpoint reads
// from the service's latest snapshot; a request never triggers a load cycle.
type MarketHandler struct {
	service MarketDataProvider
	logger  *slog.Logger
}

// MarketDataProvider is the service surface the handler needs.
type MarketDataProvider interface {
	Snapshot() *services.Snapshot
}

// NewMarketHandler creates a new market data handler
func NewMarketHandler(service MarketDataProvider, logger *slog.Logger) *MarketHandler {
	return &MarketHandler{
		service: service,
		logger:  logger.With(slog.String("component", "market_handler")),
	}
}

// Routes returns the market data routes
func (h *MarketHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/summaries/{scope}", h.GetSummaries)
	r.Get("/summaries/{scope}/{geoID}", h.GetSummary)
	r.Get("/metros", h.GetMetros)
	r.Get("/metros/detailed", h.GetMetrosDetailed)
	r.Get("/metros/search", h.SearchMetros)
	r.Get("/unmapped", h.GetUnmapped)

	return r
}

// snapshot loads the latest snapshot or responds 503 when no load has
// succeeded yet.
func (h *MarketHandler) snapshot(w http.ResponseWriter, r *http.Request) (*services.Snapshot, bool) {
	snap := h.service.Snapshot()
	if snap == nil {
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrDataNotLoaded))
		return nil, false
	}
	return snap, true
}

// GetSummaries handles GET /api/summaries/{scope}
func (h *MarketHandler) GetSummaries(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	scope := chi.URLParam(r, "scope")
	summaries, err := snap.SummariesForScope(scope)
	if err != nil {
		render.Render(w, r, apierrors.NewErrorResponse(
			apierrors.ErrValidation("scope", "scope must be one of national, state, metro")))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"scope":     scope,
		"count":     len(summaries),
		"loaded_at": snap.LoadedAt,
		"data":      summaries,
	})
}

// GetSummary handles GET /api/summaries/{scope}/{geoID}
func (h *MarketHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	scope := chi.URLParam(r, "scope")
	geoID := chi.URLParam(r, "geoID")

	summaries, err := snap.SummariesForScope(scope)
	if err != nil {
		render.Render(w, r, apierrors.NewErrorResponse(
			apierrors.ErrValidation("scope", "scope must be one of national, state, metro")))
		return
	}

	for _, summary := range summaries {
		if summary != nil && strings.EqualFold(summary.GeoID, geoID) {
			render.JSON(w, r, summary)
			return
		}
	}
	render.Render(w, r, apierrors.NewErrorResponse(apierrors.NotFoundError("geography")))
}

// GetMetros handles GET /api/metros. The response maps each placed
// geography label to its [lat, lng] pair, the shape map frontends consume.
func (h *MarketHandler) GetMetros(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	result := make(map[string][2]float64, len(snap.Placed))
	for label, placed := range snap.Placed {
		if _, isMetro := snap.Metros[label]; !isMetro {
			continue
		}
		result[label] = [2]float64{placed.Coordinate.Latitude, placed.Coordinate.Longitude}
	}
	render.JSON(w, r, result)
}

// metroDetail is the detailed placement record for one metro.
type metroDetail struct {
	Name        string     `json:"name"`
	Canonical   string     `json:"canonical"`
	Coordinates [2]float64 `json:"coordinates"`
	Confidence  float64    `json:"confidence"`
}

// GetMetrosDetailed handles GET /api/metros/detailed
func (h *MarketHandler) GetMetrosDetailed(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	result := make(map[string]metroDetail, len(snap.Metros))
	for label := range snap.Metros {
		placed, placedOK := snap.Placed[label]
		if !placedOK {
			continue
		}
		result[label] = metroDetail{
			Name:        label,
			Canonical:   placed.CanonicalLabel,
			Coordinates: [2]float64{placed.Coordinate.Latitude, placed.Coordinate.Longitude},
			Confidence:  placed.Confidence,
		}
	}
	render.JSON(w, r, result)
}

// SearchMetros handles GET /api/metros/search?q=query
func (h *MarketHandler) SearchMetros(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		render.Render(w, r, apierrors.NewErrorResponse(
			apierrors.ErrValidation("q", "query parameter q is required")))
		return
	}
	needle := strings.ToLower(query)

	result := make(map[string]metroDetail)
	for label := range snap.Metros {
		if len(result) >= maxSearchResults {
			break
		}
		placed, placedOK := snap.Placed[label]
		if !placedOK {
			continue
		}
		if !strings.Contains(strings.ToLower(label), needle) &&
			!strings.Contains(strings.ToLower(placed.CanonicalLabel), needle) {
			continue
		}
		result[label] = metroDetail{
			Name:        label,
			Canonical:   placed.CanonicalLabel,
			Coordinates: [2]float64{placed.Coordinate.Latitude, placed.Coordinate.Longitude},
			Confidence:  placed.Confidence,
		}
	}
	render.JSON(w, r, result)
}

// GetUnmapped handles GET /api/unmapped. It surfaces the metro labels the
// reconciler could not place so mapping gaps are visible instead of silent.
func (h *MarketHandler) GetUnmapped(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	unmapped := snap.Unmapped
	if unmapped == nil {
		unmapped = []string{}
	}
	render.JSON(w, r, map[string]interface{}{
		"count": len(unmapped),
		"data":  unmapped,
	})
}
