// Package server holds the HTTP status server configuration.
//
// The start command serves the bootstrap status on Addr; ApiKey, when set,
// is required in the X-API-Key header of every request.
package server
