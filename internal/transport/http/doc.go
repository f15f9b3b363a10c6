// Package http implements the HTTP request handlers for the HousePulse API.
// It is a thin layer between transport and the service snapshot: handlers
// parse the request, read from the latest snapshot, and render JSON. All
// business logic lives in the services package.
//
// # Request Flow
//
//	HTTP Request → Chi Router → Middleware → Handler → Snapshot read
//
// Until the first load cycle completes, every data route answers 503 with a
// DATA_NOT_LOADED error body.
package http
