package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"housepulse/pkg/contracts/domain"
)

// Geocoder resolves free-form place names to coordinates through an external
// Nominatim-compatible service. It is a last-resort fallback behind the CBSA
// catalog and the state center table, so every failure path degrades to
// "no coordinate" instead of an error.
type Geocoder struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewGeocoder creates a geocoder client. An empty baseURL produces a disabled
// geocoder whose lookups always miss. rps bounds outbound request rate;
// values at or below zero default to one request per second.
func NewGeocoder(baseURL string, rps float64, timeout time.Duration, logger *slog.Logger) *Geocoder {
	if logger == nil {
		logger = slog.Default()
	}
	if rps <= 0 {
		rps = 1
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Geocoder{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:  logger,
	}
}

// Enabled reports whether the geocoder has a service to call.
func (g *Geocoder) Enabled() bool {
	return g.baseURL != ""
}

type geocodeResponse struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Lookup resolves a place name to a coordinate. It returns false when the
// geocoder is disabled, the service is unreachable, or the name is unknown.
func (g *Geocoder) Lookup(ctx context.Context, place string) (domain.Coordinate, bool) {
	if !g.Enabled() || place == "" {
		return domain.Coordinate{}, false
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return domain.Coordinate{}, false
	}

	coord, err := g.query(ctx, place)
	if err != nil {
		g.logger.Debug("geocoder lookup failed", "place", place, "error", err)
		return domain.Coordinate{}, false
	}
	return coord, true
}

func (g *Geocoder) query(ctx context.Context, place string) (domain.Coordinate, error) {
	params := url.Values{}
	params.Set("q", place)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", "housepulse/1.0")

	resp, err := g.client.Do(req)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinate{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var results []geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Coordinate{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(results) == 0 {
		return domain.Coordinate{}, fmt.Errorf("no results")
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("invalid latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("invalid longitude: %w", err)
	}

	return domain.Coordinate{Latitude: lat, Longitude: lng}, nil
}
