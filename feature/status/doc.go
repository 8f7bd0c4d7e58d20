// Package status exposes the bootstrap state over HTTP.
//
// # HTTP Endpoints
//
//   - GET /status : latest bootstrap result (503 before the first pass).
//   - GET /status/history : recorded runs (supports ?limit=n, 404 without a database).
//   - POST /status/bootstrap : runs a new pass and returns its result.
package status
