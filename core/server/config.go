package server

import "strings"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// PublicPaths lists comma separated path prefixes served without the API key.
	PublicPaths string `mapstructure:"public_paths" default:"/swagger"`
}

// Public returns the public path prefixes.
func (c Config) Public() []string {
	var out []string
	for _, p := range strings.Split(c.PublicPaths, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Address returns the listen address.
func (c Config) Address() string {
	return ":" + c.Port
}
