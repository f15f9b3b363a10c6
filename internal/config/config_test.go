package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom(t *testing.T) {
	t.Run("defaults apply without a file", func(t *testing.T) {
		cfg, err := LoadFrom("")
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "info", cfg.Logging.Level)
		assert.Equal(t, "data/national_data.csv", cfg.Sources.National)
		assert.Equal(t, 2*time.Minute, cfg.Sources.FetchTimeout)
		assert.Equal(t, "data/cbsa_coordinates.csv", cfg.Geo.CBSACoordinates)
		assert.Equal(t, "", cfg.Geo.GeocoderURL)
		assert.Equal(t, 0.5, cfg.Analysis.MinConfidence)
	})

	t.Run("missing file falls back to defaults", func(t *testing.T) {
		cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
	})

	t.Run("yaml file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
sources:
  national: https://example.com/national.csv
analysis:
  min_confidence: 0.7
`), 0o644))

		cfg, err := LoadFrom(path)
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "https://example.com/national.csv", cfg.Sources.National)
		assert.Equal(t, 0.7, cfg.Analysis.MinConfidence)
		// Untouched sections keep their defaults.
		assert.Equal(t, "data/state_data.csv", cfg.Sources.State)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o644))

		t.Setenv("HP_SERVER_PORT", "7070")
		t.Setenv("HP_SOURCES_METRO", "/srv/exports/metro.csv")

		cfg, err := LoadFrom(path)
		require.NoError(t, err)
		assert.Equal(t, 7070, cfg.Server.Port)
		assert.Equal(t, "/srv/exports/metro.csv", cfg.Sources.Metro)
	})

	t.Run("invalid yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server: [not a mapping"), 0o644))

		_, err := LoadFrom(path)
		assert.Error(t, err)
	})

	t.Run("out-of-range values fail validation", func(t *testing.T) {
		tests := []struct {
			name string
			yaml string
		}{
			{"port too large", "server:\n  port: 70000\n"},
			{"unknown log level", "logging:\n  level: verbose\n"},
			{"confidence above one", "analysis:\n  min_confidence: 1.5\n"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				path := filepath.Join(t.TempDir(), "config.yaml")
				require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

				_, err := LoadFrom(path)
				assert.Error(t, err)
			})
		}
	})

	t.Run("geocoder rps must be positive when enabled", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
geo:
  geocoder_url: https://nominatim.example.com/search
  geocoder_rps: -1
`), 0o644))

		_, err := LoadFrom(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "geocoder_rps")
	})
}

func TestResolvePaths(t *testing.T) {
	t.Run("relative directories resolve against the working directory", func(t *testing.T) {
		cfg, err := LoadFrom("")
		require.NoError(t, err)

		paths, err := cfg.ResolvePaths()
		require.NoError(t, err)

		wd, err := os.Getwd()
		require.NoError(t, err)
		assert.Equal(t, wd, paths.BaseDir)
		assert.Equal(t, filepath.Join(wd, "data"), paths.DataDir)
		assert.Equal(t, filepath.Join(wd, "reports"), paths.ReportsDir)
	})

	t.Run("absolute directories pass through", func(t *testing.T) {
		cfg, err := LoadFrom("")
		require.NoError(t, err)
		cfg.Paths.DataDir = "/var/lib/housepulse/data"

		paths, err := cfg.ResolvePaths()
		require.NoError(t, err)
		assert.Equal(t, "/var/lib/housepulse/data", paths.DataDir)
	})

	t.Run("EnsureDirectories creates the layout", func(t *testing.T) {
		base := t.TempDir()
		paths := &Paths{
			BaseDir:    base,
			DataDir:    filepath.Join(base, "data"),
			ReportsDir: filepath.Join(base, "reports"),
			LogsDir:    filepath.Join(base, "logs"),
		}
		require.NoError(t, paths.EnsureDirectories())

		for _, dir := range []string{paths.DataDir, paths.ReportsDir, paths.LogsDir} {
			info, err := os.Stat(dir)
			require.NoError(t, err)
			assert.True(t, info.IsDir())
		}
	})

	t.Run("file path helpers", func(t *testing.T) {
		paths := &Paths{
			DataDir:    "/base/data",
			ReportsDir: "/base/reports",
			LogsDir:    "/base/logs",
		}
		assert.Equal(t, "/base/data/metro.csv", paths.GetDataPath("metro.csv"))
		assert.Equal(t, "/base/reports/summary.csv", paths.GetReportPath("summary.csv"))
		assert.Equal(t, "/base/logs/housepulse.log", paths.GetLogPath("housepulse.log"))
	})
}
