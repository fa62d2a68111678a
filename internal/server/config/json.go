package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/sitereg/internal/flagx"
	"github.com/dmitrijs2005/sitereg/internal/timex"
)

// JsonConfig is the on-disk form of Config. Durations accept "3s" or
// integer nanoseconds.
type JsonConfig struct {
	HTTPAddr                string         `json:"http_addr"`
	GRPCAddr                string         `json:"grpc_addr"`
	DatabaseDSN             string         `json:"database_dsn"`
	SecretKey               string         `json:"secret_key"`
	SessionValidityDuration timex.Duration `json:"session_validity_duration"`
	AdminEmail              string         `json:"admin_email"`
	AdminPassword           string         `json:"admin_password"`
	AdminPasswordHash       string         `json:"admin_password_hash"`
	LoginMaxAttempts        int            `json:"login_max_attempts"`
	LoginLockoutWindow      timex.Duration `json:"login_lockout_window"`
	RedisURL                string         `json:"redis_url"`
	S3RootUser              string         `json:"s3_root_user"`
	S3RootPassword          string         `json:"s3_root_password"`
	S3Bucket                string         `json:"s3_bucket"`
	S3Region                string         `json:"s3_region"`
	S3BaseEndpoint          string         `json:"s3_base_endpoint"`
	UploadMaxBytes          int64          `json:"upload_max_bytes"`
	RedirectDelay           timex.Duration `json:"redirect_delay"`
	CalendarWeekStart       string         `json:"calendar_week_start"`
	LogLevel                string         `json:"log_level"`
	ReadTimeout             timex.Duration `json:"read_timeout"`
	WriteTimeout            timex.Duration `json:"write_timeout"`
	ShutdownTimeout         timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays the JSON file named by -c/-config onto config. Keys
// absent from the file keep their current value. An unreadable or invalid
// file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigPath()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCAddr, c.GRPCAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setDuration(&config.SessionValidityDuration, c.SessionValidityDuration)
	setString(&config.AdminEmail, c.AdminEmail)
	setString(&config.AdminPassword, c.AdminPassword)
	setString(&config.AdminPasswordHash, c.AdminPasswordHash)
	if c.LoginMaxAttempts > 0 {
		config.LoginMaxAttempts = c.LoginMaxAttempts
	}
	setDuration(&config.LoginLockoutWindow, c.LoginLockoutWindow)
	setString(&config.RedisURL, c.RedisURL)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	if c.UploadMaxBytes > 0 {
		config.UploadMaxBytes = c.UploadMaxBytes
	}
	setDuration(&config.RedirectDelay, c.RedirectDelay)
	setString(&config.CalendarWeekStart, c.CalendarWeekStart)
	setString(&config.LogLevel, c.LogLevel)
	setDuration(&config.ReadTimeout, c.ReadTimeout)
	setDuration(&config.WriteTimeout, c.WriteTimeout)
	setDuration(&config.ShutdownTimeout, c.ShutdownTimeout)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
