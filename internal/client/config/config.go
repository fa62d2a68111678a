package config

import "time"

// Config holds runtime settings for the admin console.
//
// Fields:
//   - ServerURL: base URL of the portal's JSON API.
//   - RequestTimeout: per-request timeout for API calls.
//   - AdminEmail: pre-filled email for the login prompt (optional).
//   - WeekStart: first weekday of calendar rows ("sunday", "monday", ...).
//   - HealthCheckInterval: how often the console probes the server.
type Config struct {
	ServerURL           string
	RequestTimeout      time.Duration
	AdminEmail          string
	WeekStart           string
	HealthCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.AdminEmail = ""
	c.WeekStart = "sunday"
	c.HealthCheckInterval = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
