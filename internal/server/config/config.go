// Package config handles configuration for the portal server: defaults,
// a JSON file overlay, environment variables and command-line flags.
package config

import "time"

// Config holds runtime settings for the portal server.
//
// Fields:
//   - HTTPAddr / GRPCAddr: bind addresses of the JSON API and the gRPC health endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store.
//   - SecretKey: HMAC secret for signing admin session tokens (HS256).
//   - SessionValidityDuration: lifetime of an admin session.
//   - AdminEmail / AdminPassword / AdminPasswordHash: the single admin
//     credential. A bcrypt hash takes precedence over the plain password.
//   - LoginMaxAttempts / LoginLockoutWindow: failed logins allowed per
//     window before the email is locked out for that window.
//   - RedisURL: revocation and lockout store. Empty keeps them in memory.
//   - S3*: object storage for uploaded files. An empty bucket disables uploads
//     (file names are still recorded).
//   - RedirectDelay: delay the client waits on the success screen.
//   - CalendarWeekStart: first weekday of calendar rows ("sunday", "monday", ...).
type Config struct {
	HTTPAddr                string
	GRPCAddr                string
	DatabaseDSN             string
	SecretKey               string
	SessionValidityDuration time.Duration
	AdminEmail              string
	AdminPassword           string
	AdminPasswordHash       string
	LoginMaxAttempts        int
	LoginLockoutWindow      time.Duration
	RedisURL                string
	S3RootUser              string
	S3RootPassword          string
	S3Bucket                string
	S3Region                string
	S3BaseEndpoint          string
	UploadMaxBytes          int64
	RedirectDelay           time.Duration
	CalendarWeekStart       string
	LogLevel                string
	ReadTimeout             time.Duration
	WriteTimeout            time.Duration
	ShutdownTimeout         time.Duration
}

const (
	DefaultSecretKey     = "secretKey"
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "admin123"
)

// LoadDefaults populates Config with development defaults.
// NOTE: the secret and admin credential defaults are placeholders; see
// PlaceholderWarnings.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8080"
	c.GRPCAddr = ":50051"
	c.DatabaseDSN = ""
	c.SecretKey = DefaultSecretKey
	c.SessionValidityDuration = 8 * time.Hour
	c.AdminEmail = DefaultAdminEmail
	c.AdminPassword = DefaultAdminPassword
	c.AdminPasswordHash = ""
	c.LoginMaxAttempts = 5
	c.LoginLockoutWindow = 15 * time.Minute
	c.RedisURL = ""
	c.S3RootUser = ""
	c.S3RootPassword = ""
	c.S3Bucket = ""
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
	c.UploadMaxBytes = 32 << 20
	c.RedirectDelay = 3 * time.Second
	c.CalendarWeekStart = "sunday"
	c.LogLevel = "info"
	c.ReadTimeout = 15 * time.Second
	c.WriteTimeout = 30 * time.Second
	c.ShutdownTimeout = 10 * time.Second
}

// PlaceholderWarnings lists the settings still at an insecure placeholder.
func (c *Config) PlaceholderWarnings() []string {
	var w []string
	if c.SecretKey == DefaultSecretKey {
		w = append(w, "session secret key is the built-in placeholder")
	}
	if c.AdminPasswordHash == "" && c.AdminPassword == DefaultAdminPassword {
		w = append(w, "admin password is the built-in placeholder")
	}
	if c.DatabaseDSN == "" {
		w = append(w, "no database DSN configured, records are kept in memory only")
	}
	return w
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line
// flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
