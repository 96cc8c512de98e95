// Package server holds the HTTP server configuration and constants.
//
// While the serve command handles the server startup, this package defines
// the configuration structures and valid values for server settings, such as
// the default preset format written by the API.
//
// # Configuration
//
// The Config struct defines the HTTP port, the API key, the request body
// limit and the default output format (xml, json, yaml).
//
// # Usage
//
// This package is primarily used by the core/config package to embed server
// settings and by the presets feature to pick file extensions.
package server
