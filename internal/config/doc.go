// Package config provides centralized configuration management for HousePulse.
// It handles loading configuration from multiple sources, validation, and a
// type-safe API for accessing configuration values throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. YAML configuration file
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern HP_* for namespacing:
//
//	HP_SERVER_PORT=8080
//	HP_SOURCES_NATIONAL=https://example.com/national.csv
//	HP_GEO_GEOCODER_URL=https://nominatim.example.com/search
//	HP_LOGGING_LEVEL=info
//
// # Path Management
//
// The package provides centralized path management through the Paths type,
// which resolves the data, reports and logs directories against the working
// directory:
//
//	paths, err := cfg.ResolvePaths()
//	reportPath := paths.GetReportPath("housepulse_state_summary.csv")
//
// # Validation
//
// All configuration is validated at load time: values must be within
// acceptable ranges and the three source locations must be present.
package config
