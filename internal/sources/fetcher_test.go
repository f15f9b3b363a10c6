package sources

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"housepulse/pkg/contracts/domain"
)

func writeExport(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFetchAll(t *testing.T) {
	csvBody := "month_date_yyyymm,state\n202403,Texas\n"

	t.Run("mixes file and http sources", func(t *testing.T) {
		dir := t.TempDir()
		national := writeExport(t, dir, "national.csv", csvBody)
		state := writeExport(t, dir, "state.csv", csvBody)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(csvBody))
		}))
		defer server.Close()

		f := NewFetcher(national, state, server.URL, time.Second, slog.Default())
		payloads, err := f.FetchAll(context.Background())
		require.NoError(t, err)
		require.Len(t, payloads, 3)

		assert.Equal(t, []byte(csvBody), payloads[domain.GeoNational].Body)
		assert.Equal(t, server.URL, payloads[domain.GeoMetro].Source)
	})

	t.Run("any missing source fails the whole fetch", func(t *testing.T) {
		dir := t.TempDir()
		national := writeExport(t, dir, "national.csv", csvBody)
		state := writeExport(t, dir, "state.csv", csvBody)

		f := NewFetcher(national, state, filepath.Join(dir, "absent.csv"), time.Second, slog.Default())
		_, err := f.FetchAll(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSourceUnavailable)
	})

	t.Run("unconfigured source is unavailable", func(t *testing.T) {
		dir := t.TempDir()
		national := writeExport(t, dir, "national.csv", csvBody)
		state := writeExport(t, dir, "state.csv", csvBody)

		f := NewFetcher(national, state, "", time.Second, slog.Default())
		_, err := f.FetchAll(context.Background())
		assert.ErrorIs(t, err, ErrSourceUnavailable)
	})

	t.Run("empty body is unavailable", func(t *testing.T) {
		dir := t.TempDir()
		national := writeExport(t, dir, "national.csv", csvBody)
		state := writeExport(t, dir, "state.csv", csvBody)
		metro := writeExport(t, dir, "metro.csv", "   \n")

		f := NewFetcher(national, state, metro, time.Second, slog.Default())
		_, err := f.FetchAll(context.Background())
		assert.ErrorIs(t, err, ErrSourceUnavailable)
	})

	t.Run("non-200 response is unavailable", func(t *testing.T) {
		dir := t.TempDir()
		national := writeExport(t, dir, "national.csv", csvBody)
		state := writeExport(t, dir, "state.csv", csvBody)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		f := NewFetcher(national, state, server.URL, time.Second, slog.Default())
		_, err := f.FetchAll(context.Background())
		assert.ErrorIs(t, err, ErrSourceUnavailable)
	})
}
