package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"housepulse/internal/services"
	"housepulse/pkg/contracts/domain"
)

// stubProvider serves a fixed snapshot, nil until a load is simulated.
type stubProvider struct {
	snap *services.Snapshot
}

func (s *stubProvider) Snapshot() *services.Snapshot { return s.snap }

func fptr(v float64) *float64 { return &v }

func testSnapshot() *services.Snapshot {
	austin := &domain.GeographySummary{
		GeoType:    domain.GeoMetro,
		GeoID:      "Austin",
		LatestDate: 202403,
	}
	austin.MetricSummaryFor(domain.MetricActiveListingCount).Latest = fptr(8200)

	return &services.Snapshot{
		LoadedAt: time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
		National: &domain.GeographySummary{GeoType: domain.GeoNational, GeoID: "United States", LatestDate: 202403},
		States: map[string]*domain.GeographySummary{
			"Texas": {GeoType: domain.GeoState, GeoID: "Texas", LatestDate: 202403},
		},
		Metros: map[string]*domain.GeographySummary{
			"Austin":       austin,
			"Nowhereville": {GeoType: domain.GeoMetro, GeoID: "Nowhereville", LatestDate: 202403},
		},
		Placed: map[string]domain.PlacedGeography{
			"Texas": {
				SourceLabel:    "Texas",
				CanonicalLabel: "Texas",
				Confidence:     1.0,
				Coordinate:     domain.Coordinate{Latitude: 31.0545, Longitude: -97.5635},
			},
			"Austin": {
				SourceLabel:    "Austin",
				CanonicalLabel: "Austin-Round Rock-San Marcos, TX Metro Area",
				Confidence:     0.9,
				Coordinate:     domain.Coordinate{Latitude: 30.2672, Longitude: -97.7431},
			},
		},
		Unmapped: []string{"Nowhereville"},
	}
}

func doRequest(t *testing.T, handler http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestMarketHandler(t *testing.T) {
	provider := &stubProvider{snap: testSnapshot()}
	handler := NewMarketHandler(provider, slog.Default()).Routes()

	t.Run("503 before the first load", func(t *testing.T) {
		empty := NewMarketHandler(&stubProvider{}, slog.Default()).Routes()
		for _, target := range []string{
			"/summaries/state",
			"/summaries/state/Texas",
			"/metros",
			"/metros/detailed",
			"/metros/search?q=austin",
			"/unmapped",
		} {
			rec := doRequest(t, empty, http.MethodGet, target)
			assert.Equal(t, http.StatusServiceUnavailable, rec.Code, target)
		}
	})

	t.Run("summaries for a scope", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodGet, "/summaries/metro")
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Scope string                     `json:"scope"`
			Count int                        `json:"count"`
			Data  []*domain.GeographySummary `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "metro", body.Scope)
		assert.Equal(t, 2, body.Count)
		require.Len(t, body.Data, 2)
		assert.Equal(t, "Austin", body.Data[0].GeoID)
	})

	t.Run("invalid scope is a validation error", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodGet, "/summaries/galaxy")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("single summary matches case-insensitively", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodGet, "/summaries/state/texas")
		require.Equal(t, http.StatusOK, rec.Code)

		var summary domain.GeographySummary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
		assert.Equal(t, "Texas", summary.GeoID)
	})

	t.Run("unknown geography is 404", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodGet, "/summaries/state/Atlantis")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("metros returns placed metro coordinates only", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodGet, "/metros")
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string][2]float64
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body, 1)
		assert.InDelta(t, 30.2672, body["Austin"][0], 1e-6)
		// States are placed too but do not belong in the metro map.
		_, hasState := body["Texas"]
		assert.False(t, hasState)
	})

	t.Run("detailed metros carry canonical label and confidence", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodGet, "/metros/detailed")
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]metroDetail
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Contains(t, body, "Austin")
		assert.Equal(t, "Austin-Round Rock-San Marcos, TX Metro Area", body["Austin"].Canonical)
		assert.Equal(t, 0.9, body["Austin"].Confidence)
	})

	t.Run("search matches source and canonical labels", func(t *testing.T) {
		for _, q := range []string{"austin", "round+rock"} {
			rec := doRequest(t, handler, http.MethodGet, "/metros/search?q="+q)
			require.Equal(t, http.StatusOK, rec.Code, q)

			var body map[string]metroDetail
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Contains(t, body, "Austin", q)
		}
	})

	t.Run("search without a query is a validation error", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodGet, "/metros/search")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unmapped labels are listed", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodGet, "/unmapped")
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Count int      `json:"count"`
			Data  []string `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 1, body.Count)
		assert.Equal(t, []string{"Nowhereville"}, body.Data)
	})
}

func TestHealthHandler(t *testing.T) {
	t.Run("degraded before the first load", func(t *testing.T) {
		h := NewHealthHandler(&stubProvider{}, "1.0.0", slog.Default())

		rec := httptest.NewRecorder()
		h.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "degraded", body["status"])
		assert.Equal(t, false, body["loaded"])
	})

	t.Run("ok with counts once loaded", func(t *testing.T) {
		h := NewHealthHandler(&stubProvider{snap: testSnapshot()}, "1.0.0", slog.Default())

		rec := httptest.NewRecorder()
		h.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, float64(2), body["metros"])
	})

	t.Run("readiness flips on first snapshot", func(t *testing.T) {
		provider := &stubProvider{}
		h := NewHealthHandler(provider, "1.0.0", slog.Default())

		rec := httptest.NewRecorder()
		h.ReadinessCheck(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		provider.snap = testSnapshot()
		rec = httptest.NewRecorder()
		h.ReadinessCheck(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("version", func(t *testing.T) {
		h := NewHealthHandler(&stubProvider{}, "1.2.3", slog.Default())

		rec := httptest.NewRecorder()
		h.Version(rec, httptest.NewRequest(http.MethodGet, "/version", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "1.2.3", body["version"])
	})
}

// stubLoader simulates a load cycle for the reload endpoint.
type stubLoader struct {
	snap *services.Snapshot
	err  error
}

func (s *stubLoader) Load(_ context.Context) (*services.Snapshot, error) {
	return s.snap, s.err
}

func TestReloadHandler(t *testing.T) {
	t.Run("successful reload reports counts", func(t *testing.T) {
		h := NewReloadHandler(&stubLoader{snap: testSnapshot()}, slog.Default())

		rec := httptest.NewRecorder()
		h.Reload(rec, httptest.NewRequest(http.MethodPost, "/reload", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, true, body["success"])
		assert.Equal(t, float64(1), body["states"])
	})

	t.Run("failed reload surfaces the error", func(t *testing.T) {
		h := NewReloadHandler(&stubLoader{err: errors.New("boom")}, slog.Default())

		rec := httptest.NewRecorder()
		h.Reload(rec, httptest.NewRequest(http.MethodPost, "/reload", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
