// Package app provides application initialization and lifecycle management.
// It wires the fetcher, coordinate catalog, geocoder, reconciler and market
// data service together at startup, mounts the HTTP surface, and handles
// graceful shutdown.
//
// # Initialization Flow
//
//  1. Load configuration from environment and files
//  2. Initialize logging and metrics
//  3. Build the geo catalog, geocoder, reconciler and fetcher
//  4. Create the market data service
//  5. Set up HTTP handlers and middleware
//  6. Start the server and kick off the initial load cycle
//
// The initial load runs in the background: the server accepts requests
// immediately and data routes answer 503 until the first snapshot lands.
//
// # Graceful Shutdown
//
// SIGINT and SIGTERM drain active requests within the configured shutdown
// timeout and close the log file before exiting. Initialization errors are
// returned to the caller; the package never calls os.Exit itself.
package app
