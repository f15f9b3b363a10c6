package sources

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"housepulse/pkg/contracts/domain"
)

// ErrSourceUnavailable marks a fetch failure for a required export. A load
// cycle aborts when any required source cannot be retrieved; partial loads
// would silently skew national baselines.
var ErrSourceUnavailable = errors.New("source unavailable")

// Payload is one fetched export, still undecoded.
type Payload struct {
	GeoType domain.GeoType
	Source  string
	Body    []byte
}

// Fetcher retrieves the national, state and metro exports. Each location is
// either an http(s) URL or a local file path, distinguished by scheme.
type Fetcher struct {
	national string
	state    string
	metro    string
	client   *http.Client
	logger   *slog.Logger
}

// NewFetcher creates a fetcher for the three export locations.
func NewFetcher(national, state, metro string, timeout time.Duration, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Fetcher{
		national: national,
		state:    state,
		metro:    metro,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// FetchAll retrieves all three exports concurrently. It fails as a whole if
// any single source is unavailable.
func (f *Fetcher) FetchAll(ctx context.Context) (map[domain.GeoType]*Payload, error) {
	targets := []struct {
		geoType domain.GeoType
		source  string
	}{
		{domain.GeoNational, f.national},
		{domain.GeoState, f.state},
		{domain.GeoMetro, f.metro},
	}

	payloads := make([]*Payload, len(targets))
	g, ctx := errgroup.WithContext(ctx)

	for i, target := range targets {
		g.Go(func() error {
			start := time.Now()
			payload, err := f.fetch(ctx, target.geoType, target.source)
			if err != nil {
				return err
			}
			f.logger.Info("source fetched",
				"geo_type", target.geoType,
				"source", target.source,
				"bytes", len(payload.Body),
				"duration", time.Since(start))
			payloads[i] = payload
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make(map[domain.GeoType]*Payload, len(payloads))
	for _, payload := range payloads {
		result[payload.GeoType] = payload
	}
	return result, nil
}

func (f *Fetcher) fetch(ctx context.Context, geoType domain.GeoType, source string) (*Payload, error) {
	if source == "" {
		return nil, fmt.Errorf("%w: no %s source configured", ErrSourceUnavailable, geoType)
	}

	var body []byte
	var err error
	if isURL(source) {
		body, err = f.fetchHTTP(ctx, source)
	} else {
		body, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s export from %s: %v", ErrSourceUnavailable, geoType, source, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%w: %s export from %s is empty", ErrSourceUnavailable, geoType, source)
	}

	return &Payload{GeoType: geoType, Source: source, Body: body}, nil
}

func (f *Fetcher) fetchHTTP(ctx context.Context, source string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return body, nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
