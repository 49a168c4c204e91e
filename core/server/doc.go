// Package server holds the HTTP server configuration.
//
// The start command owns the server lifecycle; this package only defines the
// listen port, the API key protecting the routes and the path prefixes that
// stay public (Swagger UI by default).
package server
